package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chris-regnier/namecheck/internal/review"
	"github.com/chris-regnier/namecheck/internal/store"
)

func init() {
	var dir string

	reviewCmd := &cobra.Command{
		Use:   "review [run-id]",
		Short: "Interactively accept or reject the findings of a stored run",
		Long: `Browse the findings of a run stored with check --output. Decisions are
saved next to the run when you quit. Without a run ID the latest run is opened.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fs := store.NewFileStore(dir)

			id, err := resolveRunID(ctx, fs, dir, args)
			if err != nil {
				return err
			}

			log, err := fs.ReadSARIF(ctx, id)
			if err != nil {
				return fmt.Errorf("reading run %s: %w", id, err)
			}

			model := review.NewReviewModel(log, review.WithState(id, fs.ReviewPath(id)))
			final, err := tea.NewProgram(*model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("running review: %w", err)
			}
			if m, ok := final.(review.ReviewModel); ok {
				accepted, rejected := m.Decisions()
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s: %d accepted, %d rejected\n", id, accepted, rejected)
			}
			return nil
		},
	}
	reviewCmd.Flags().StringVar(&dir, "dir", defaultResultsDir, "Directory the runs were stored in")

	rootCmd.AddCommand(reviewCmd)
}

// resolveRunID returns the run named in args, or the latest run in dir.
func resolveRunID(ctx context.Context, fs *store.FileStore, dir string, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	ids, err := fs.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing runs: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no runs stored in %s; store one with 'namecheck check --output %s'", dir, dir)
	}
	return ids[0], nil
}
