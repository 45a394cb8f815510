package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

// Menu actions, in display order.
const (
	actionList       = "list"
	actionAdd        = "add"
	actionExportJSON = "export-json"
	actionExportWeb  = "export-web"
	actionLoad       = "load"
	actionExit       = "exit"
)

// customProduct holds the answers of the add-custom-product form.
type customProduct struct {
	productType string
	variant     string
	width       float64
	height      float64
	pads        []types.PadSpec
}

// prompter asks the menu's questions. Returning huh.ErrUserAborted ends
// the menu as if exit had been chosen.
type prompter interface {
	Action() (string, error)
	CustomProduct() (customProduct, error)
	Path(title, initial string) (string, error)
}

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Manage the library through an interactive menu",
		Long: "Open a numbered menu to list, add, export, and load products. The\n" +
			"session works on an in-memory copy of the library and saves it to\n" +
			"the workspace on exit. Set ACCESSIBLE=1 for plain line prompts.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.prompter
			if p == nil {
				p = &huhPrompter{
					in:         cmd.InOrStdin(),
					out:        cmd.OutOrStdout(),
					accessible: os.Getenv("ACCESSIBLE") != "",
				}
			}
			return a.runMenu(cmd.OutOrStdout(), p)
		},
	}
}

type menuStyles struct {
	title lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
}

func newMenuStyles(w io.Writer) menuStyles {
	r := lipgloss.NewRenderer(w)
	return menuStyles{
		title: r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (a *app) runMenu(out io.Writer, p prompter) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	defer s.close()

	st := newMenuStyles(out)
	fmt.Fprintln(out, st.title.Render("Gap Pad Product Library Manager"))

	for {
		action, err := p.Action()
		if errors.Is(err, huh.ErrUserAborted) || action == actionExit {
			break
		}
		if err != nil {
			return err
		}

		msg, err := a.menuAction(s, p, action, out)
		switch {
		case errors.Is(err, huh.ErrUserAborted):
			fmt.Fprintln(out, "Cancelled")
		case isInputError(err):
			fmt.Fprintln(out, st.fail.Render("Invalid input: "+err.Error()))
		case err != nil:
			fmt.Fprintln(out, st.fail.Render("Error: "+err.Error()))
		case msg != "":
			fmt.Fprintln(out, st.ok.Render(msg))
		}
	}

	if err := s.save(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Goodbye!")
	return nil
}

// menuAction runs one menu choice against the session and returns the
// message to show on success.
func (a *app) menuAction(s *session, p prompter, action string, out io.Writer) (string, error) {
	switch action {
	case actionList:
		return "", s.store.ListProducts(out)

	case actionAdd:
		cp, err := p.CustomProduct()
		if err != nil {
			return "", err
		}
		if err := s.store.AddCustomProduct(cp.productType, cp.variant, cp.width, cp.height, cp.pads); err != nil {
			return "", err
		}
		return fmt.Sprintf("Added custom product: %s - %s", cp.productType, cp.variant), nil

	case actionExportJSON, actionExportWeb:
		target, key := targetJSON, cfgKeyJSONPath
		if action == actionExportWeb {
			target, key = targetWeb, cfgKeyWebPath
		}
		path, err := p.Path("Output path", a.cfg.GetString(key))
		if err != nil {
			return "", err
		}
		if err := exportTo(s.store, target, path); err != nil {
			return "", err
		}
		return "Product library exported to " + path, nil

	case actionLoad:
		path, err := p.Path("JSON file path", a.cfg.GetString(cfgKeyJSONPath))
		if err != nil {
			return "", err
		}
		if err := s.store.Load(path, formatFromPath(path)); err != nil {
			return "", err
		}
		return "Product library loaded from " + path, nil
	}
	return "", fmt.Errorf("unknown menu action %q", action)
}

// huhPrompter asks the menu's questions with huh forms.
type huhPrompter struct {
	in         io.Reader
	out        io.Writer
	accessible bool
}

func (h *huhPrompter) run(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).
		WithInput(h.in).
		WithOutput(h.out).
		WithAccessible(h.accessible).
		Run()
}

func (h *huhPrompter) Action() (string, error) {
	var action string
	err := h.run(
		huh.NewSelect[string]().
			Title("Options").
			Options(
				huh.NewOption("1. List products", actionList),
				huh.NewOption("2. Add custom product", actionAdd),
				huh.NewOption("3. Export to JSON", actionExportJSON),
				huh.NewOption("4. Export for web app", actionExportWeb),
				huh.NewOption("5. Load from JSON", actionLoad),
				huh.NewOption("6. Exit", actionExit),
			).
			Value(&action),
	)
	return action, err
}

func (h *huhPrompter) CustomProduct() (customProduct, error) {
	var (
		cp            customProduct
		width, height string
		padText       string
	)
	err := h.run(
		huh.NewInput().Title("Product type (e.g. 3U, 6U)").Value(&cp.productType).Validate(validateKey),
		huh.NewInput().Title("Variant name").Value(&cp.variant).Validate(validateKey),
		huh.NewInput().Title("Board width (mm)").Value(&width).Validate(validateFloat),
		huh.NewInput().Title("Board height (mm)").Value(&height).Validate(validateFloat),
		huh.NewText().
			Title("Pads").
			Description("One per line: x,y,width,height,required[,name[,color]]\nLeave a field empty for its default; a single comma is a default pad.").
			Value(&padText).
			Validate(validatePadText),
	)
	if err != nil {
		return cp, err
	}

	cp.width, _ = strconv.ParseFloat(strings.TrimSpace(width), 64)
	cp.height, _ = strconv.ParseFloat(strings.TrimSpace(height), 64)
	cp.pads, err = parsePadLines(strings.Split(padText, "\n"))
	return cp, err
}

func (h *huhPrompter) Path(title, initial string) (string, error) {
	path := initial
	err := h.run(huh.NewInput().Title(title).Value(&path).Validate(validateKey))
	return strings.TrimSpace(path), err
}

func validateKey(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func validateFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("must be a number")
	}
	return types.ValidateDimensions(v, v)
}

func validatePadText(s string) error {
	_, err := parsePadLines(strings.Split(s, "\n"))
	return err
}
