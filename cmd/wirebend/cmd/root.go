package cmd

import (
	"fmt"
	"os"

	"github.com/piwi3910/WireBend/internal/model"
	"github.com/piwi3910/WireBend/internal/project"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	verbose       bool
	configPath    string
	inventoryPath string
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand performs a build.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}
	b := &buildOptions{}

	root := &cobra.Command{
		Use:   "wirebend",
		Short: "Bent-wire biplane generator",
		Long: `Generate the solid model and full-scale cut templates for a bent-wire
biplane, and check that every piece can be cut from the wire spools on hand.

Examples:
  wirebend                                   # Build with the saved config
  wirebend build --out out --formats scad,svg,pdf
  wirebend validate --diameter 0.5 120 80 250
  wirebend inventory --json`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, b)
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVar(&g.configPath, "config", project.DefaultConfigPath(), "config file")
	root.PersistentFlags().StringVar(&g.inventoryPath, "inventory", project.DefaultInventoryPath(), "wire inventory file")
	addBuildFlags(root, b)

	root.AddCommand(newBuildCmd(g), newValidateCmd(g), newInventoryCmd(g))
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadInventory(g *globalOptions) (model.Inventory, error) {
	inv, err := project.LoadInventory(g.inventoryPath)
	if err != nil {
		return model.Inventory{}, fmt.Errorf("failed to load inventory %s: %w", g.inventoryPath, err)
	}
	return inv, nil
}
