package library

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// listStyles holds the styles used by ListProducts. Styles are bound to a
// renderer for the destination writer so color is dropped when it is not a
// terminal.
type listStyles struct {
	header   lipgloss.Style
	product  lipgloss.Style
	variant  lipgloss.Style
	label    lipgloss.Style
	custom   lipgloss.Style
	optional lipgloss.Style
}

func newListStyles(w io.Writer) listStyles {
	r := lipgloss.NewRenderer(w)
	return listStyles{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		product:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		variant:  r.NewStyle().Bold(true),
		label:    r.NewStyle().Foreground(lipgloss.Color("245")),
		custom:   r.NewStyle().Foreground(lipgloss.Color("170")),
		optional: r.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

// ListProducts writes a human-readable listing of the library to w, with
// product types and variants in sorted key order. It does not modify the
// store.
func (s *Store) ListProducts(w io.Writer) error {
	st := newListStyles(w)
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, st.header.Render("=== Product Library ==="))
	if len(s.library) == 0 {
		fmt.Fprintln(bw, st.label.Render("(no products)"))
	}

	for _, key := range s.library.Keys() {
		pt := s.library[key]
		fmt.Fprintf(bw, "\n%s\n", st.product.Render(
			fmt.Sprintf("%s (%smm × %smm):", key, formatMM(pt.Width), formatMM(pt.Height))))

		for _, vk := range pt.VariantKeys() {
			v := pt.Variants[vk]
			fmt.Fprintf(bw, "  - %s\n", st.variant.Render(vk+": "+v.Name))
			fmt.Fprintf(bw, "    %s %s\n", st.label.Render("Description:"), v.Description)
			fmt.Fprintf(bw, "    %s %d (%d required)\n", st.label.Render("Expected Pads:"), v.ExpectedPads, v.RequiredPads())
			custom := strconv.FormatBool(v.IsCustom)
			if v.IsCustom {
				custom = st.custom.Render(custom)
			}
			fmt.Fprintf(bw, "    %s %s\n", st.label.Render("Custom:"), custom)
			fmt.Fprintf(bw, "    %s\n", st.label.Render("Pad Layout:"))
			for _, p := range v.PadLayout {
				line := fmt.Sprintf("* %s: (%.2f, %.2f) %.2f×%.2f [%s]",
					p.Name, p.X, p.Y, p.Width, p.Height, p.Status())
				if !p.Required {
					line = st.optional.Render(line)
				}
				fmt.Fprintf(bw, "      %s\n", line)
			}
		}
	}

	return bw.Flush()
}

// formatMM renders a board dimension without trailing zeros.
func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
