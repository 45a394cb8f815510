package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/padlib/internal/library"
	"github.com/mesh-intelligence/padlib/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the padlib workspace",
		Long: "Create the configuration and workspace directories and seed the\n" +
			"working library with the built-in products. An initialized\n" +
			"workspace is left as it is; use reset to start over.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, empty)
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "start with an empty library instead of the built-in products")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, empty bool) error {
	backend, err := a.attachWorkspace()
	if err != nil {
		return err
	}
	defer backend.Detach()

	seeded, err := backend.Seeded()
	if err != nil {
		return systemError(fmt.Errorf("read workspace: %w", err))
	}
	if seeded {
		fmt.Fprintf(cmd.OutOrStdout(), "Workspace already initialized at %s\n", backend.Path())
		return nil
	}

	s := &session{backend: backend, store: library.NewStore(a.logger)}
	seedStore(s.store, empty)
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Workspace initialized at %s\n", backend.Path())
	return nil
}

func newResetCmd(a *app) *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the working library with the built-in products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.close()

			seedStore(s.store, empty)
			if err := s.save(); err != nil {
				return err
			}
			if empty {
				fmt.Fprintln(cmd.OutOrStdout(), "Library cleared")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Library reset to built-in products")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "clear the library instead of restoring the built-in products")
	return cmd
}

func seedStore(store *library.Store, empty bool) {
	if empty {
		store.SetLibrary(types.Library{})
		return
	}
	store.UseDefaults()
}
