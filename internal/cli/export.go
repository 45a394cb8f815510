package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/padlib/internal/codec"
	"github.com/mesh-intelligence/padlib/internal/library"
)

const (
	targetJSON = "json"
	targetWeb  = "web"
	targetYAML = "yaml"

	defaultYAMLPath = "product_library.yaml"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export json|web|yaml [path]",
		Short: "Write the library as JSON, a web module, or YAML",
		Long: "Write the working library to a file. Without a path, json writes to\n" +
			"json_path and web writes to web_path from config.yaml. The web target\n" +
			"creates missing parent directories; the others do not.",
		ValidArgs: []string{targetJSON, targetWeb, targetYAML},
		Args:      cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			path, err := a.exportPath(target, args[1:])
			if err != nil {
				return err
			}

			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.close()

			if err := exportTo(s.store, target, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product library exported to %s\n", path)
			return nil
		},
	}
}

func (a *app) exportPath(target string, rest []string) (string, error) {
	if len(rest) > 0 && rest[0] != "" {
		return rest[0], nil
	}
	switch target {
	case targetJSON:
		return a.cfg.GetString(cfgKeyJSONPath), nil
	case targetWeb:
		return a.cfg.GetString(cfgKeyWebPath), nil
	case targetYAML:
		return defaultYAMLPath, nil
	}
	return "", fmt.Errorf("unknown export target %q (want %s, %s, or %s)", target, targetJSON, targetWeb, targetYAML)
}

func exportTo(store *library.Store, target, path string) error {
	switch target {
	case targetJSON:
		return store.ExportToJSON(path)
	case targetWeb:
		return store.ExportForWebApp(path)
	case targetYAML:
		return store.Export(path, codec.FormatYAML)
	}
	return fmt.Errorf("unknown export target %q", target)
}
