package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/padlib/pkg/types"
)

type addOptions struct {
	productType string
	variant     string
	width       float64
	height      float64
	pads        []string
	padsFile    string
}

func newAddCmd(a *app) *cobra.Command {
	var opts addOptions
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a custom product variant",
		Long: "Add a custom variant under a product type, creating the product type\n" +
			"when it does not exist. Each --pad takes the form\n" +
			"\n" +
			"  x,y,width,height,required[,name[,color]]\n" +
			"\n" +
			"where any field may be left empty to use its default\n" +
			"(0.5,0.5,0.1,0.1,true,Pad<n>,#ff6600).",
		Example: "  padlib add --type 3U --variant 3U-Lab --pad 0.2,0.2,0.15,0.15,true,CPU --pad ,,,,optional\n" +
			"  padlib add --type VPX --variant VPX-Basic --width 160 --height 100 --pads-file pads.yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAdd(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.productType, "type", "", "product type key, e.g. 3U (required)")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "variant key (required)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "board width in mm, for a new product type")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "board height in mm, for a new product type")
	cmd.Flags().StringArrayVar(&opts.pads, "pad", nil, "pad spec, repeatable")
	cmd.Flags().StringVar(&opts.padsFile, "pads-file", "", "YAML or JSON file holding a list of pad specs")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("variant")

	return cmd
}

func (a *app) runAdd(cmd *cobra.Command, opts addOptions) error {
	specs, err := collectPadSpecs(opts)
	if err != nil {
		return err
	}

	s, err := a.openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if _, ok := s.store.Library()[opts.productType]; !ok {
		if !cmd.Flags().Changed("width") || !cmd.Flags().Changed("height") {
			return fmt.Errorf("product type %q does not exist: --width and --height are required", opts.productType)
		}
	}

	if err := s.store.AddCustomProduct(opts.productType, opts.variant, opts.width, opts.height, specs); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s/%s with %d pads\n", opts.productType, opts.variant, len(specs))
	return nil
}

// collectPadSpecs gathers pad specs from --pads-file followed by --pad.
func collectPadSpecs(opts addOptions) ([]types.PadSpec, error) {
	var specs []types.PadSpec
	if opts.padsFile != "" {
		fromFile, err := readPadsFile(opts.padsFile)
		if err != nil {
			return nil, err
		}
		specs = append(specs, fromFile...)
	}
	parsed, err := parsePadLines(opts.pads)
	if err != nil {
		return nil, err
	}
	return append(specs, parsed...), nil
}

// readPadsFile decodes a list of pad specs. JSON input is accepted because
// it is valid YAML.
func readPadsFile(path string) ([]types.PadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pads file: %w", err)
	}
	var specs []types.PadSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("%w: pads file %s: %w", types.ErrInvalidPad, path, err)
	}
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("pads file %s: pad %d: %w", path, i+1, err)
		}
	}
	return specs, nil
}

// parsePadLines parses one pad spec per entry, skipping blank entries.
func parsePadLines(lines []string) ([]types.PadSpec, error) {
	specs := make([]types.PadSpec, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		spec, err := types.ParsePadSpec(line)
		if err != nil {
			return nil, fmt.Errorf("pad %d: %w", i+1, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
