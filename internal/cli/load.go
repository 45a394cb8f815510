package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/padlib/internal/codec"
)

func newLoadCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "load <path>",
		Short: "Replace the working library with a JSON or YAML document",
		Long: "Replace the working library with the document at path, or read it\n" +
			"from standard input when path is \"-\". The format follows the file\n" +
			"extension unless --format is given. A document that fails to parse\n" +
			"or validate leaves the library unchanged.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = formatFromPath(path)
			}

			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if path == "-" {
				err = s.store.Parse(cmd.InOrStdin(), format)
			} else {
				err = s.store.Load(path, format)
			}
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}

			lib := s.store.Library()
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d product types, %d variants\n", len(lib), lib.VariantCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "document format: "+strings.Join(codec.ImportFormats(), ", "))
	return cmd
}

// formatFromPath picks the import format from the file extension,
// falling back to JSON.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec.FormatYAML
	}
	return codec.FormatJSON
}
