package commands

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/goterm/assets"
	"github.com/doeshing/goterm/internal/app"
	"github.com/doeshing/goterm/internal/domain"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect goterm configuration",
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigPathCommand(container),
		newConfigDiffCommand(container),
	)

	return configCmd
}

func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := yaml.Marshal(container.Config)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}

func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
			return nil
		},
	}
}

// newConfigDiffCommand shows how the active configuration deviates from the
// shipped defaults.
func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Diff active configuration against defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			var defaults domain.Config
			if err := yaml.Unmarshal(assets.DefaultConfigYAML, &defaults); err != nil {
				return err
			}
			diff := cmp.Diff(defaults, container.Config)
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration matches defaults.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), diff)
			return nil
		},
	}
}
