package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/goterm/internal/app"
	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/infrastructure/cli/commands"
	"github.com/doeshing/goterm/internal/infrastructure/terminal"
	"github.com/doeshing/goterm/internal/ports"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Running goterm with no arguments
// starts the interactive session.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	var startDir string

	root := &cobra.Command{
		Use:   "goterm",
		Short: "goterm - interactive command terminal",
		Long:  "goterm is an interactive terminal with builtin filesystem commands, system monitoring and shell fallback for everything else.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if startDir != "" {
				container.Session.SetDir(startDir)
			}
			reader, err := buildLineReader(container)
			if err != nil {
				return err
			}
			defer reader.Close()
			container.Session.Reader = reader
			return container.Session.Run(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVar(&startDir, "dir", "", "Start the session in this directory")

	root.AddCommand(commands.NewVersionCommand())
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	return root, nil
}

// buildLineReader picks the interactive readline adapter on a TTY and the
// plain scanner otherwise, so piped scripts work without a terminal.
func buildLineReader(container *app.Container) (ports.LineReader, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return terminal.NewScannerReader(os.Stdin), nil
	}
	completer := terminal.NewCompleter(
		domain.Builtins,
		container.Session.Dir,
		container.Config.Terminal.CompletePathExecutables,
	)
	return terminal.NewReadlineReader(completer, container.Config.History.RecallLimit)
}
