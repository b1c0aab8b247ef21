package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/goterm/internal/app"
	"github.com/doeshing/goterm/internal/infrastructure/history"
)

const msgNoHistoryRecorded = "No history recorded yet."

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect goterm history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryPathCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand. Search
// needs the sqlite backend; the plain file log has no metadata to match on
// beyond the line itself.
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search history for a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query required")
			}
			return searchHistoryEntries(cmd.OutOrStdout(), container, query, searchLimit)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.HistoryStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			return nil
		},
	}
}

func newHistoryPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the history storage path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), container.HistoryStore.Path())
			return nil
		},
	}
}

func listHistoryEntries(out io.Writer, container *app.Container, limit int) error {
	entries, err := container.HistoryStore.Entries(limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}
	for _, entry := range entries {
		if entry.Timestamp.IsZero() {
			fmt.Fprintln(out, entry.Line)
			continue
		}
		fmt.Fprintf(out, "%s | %s\n", entry.Timestamp.Format(TimestampFormat), entry.Line)
	}
	return nil
}

func searchHistoryEntries(out io.Writer, container *app.Container, query string, limit int) error {
	store, ok := container.HistoryStore.(*history.SQLiteStore)
	if !ok {
		return fmt.Errorf("history search requires the sqlite backend (set history.backend: sqlite)")
	}
	entries, err := store.Search(query, limit)
	if err != nil {
		return fmt.Errorf("failed to search history: %w", err)
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s\n", entry.Timestamp.Format(TimestampFormat), entry.Line)
	}
	return nil
}
