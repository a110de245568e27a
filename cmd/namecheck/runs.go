package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/chris-regnier/namecheck/internal/store"
)

func init() {
	var dir string
	var limit int

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs stored with check --output, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := store.NewFileStore(dir)
			ids, err := fs.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}
			if limit > 0 && len(ids) > limit {
				ids = ids[:limit]
			}

			t := newListTable(cmd.OutOrStdout(), "ID", "FILES", "FINDINGS", "MIN LENGTH", "BY RULE")
			for _, id := range ids {
				s, err := fs.ReadSummary(cmd.Context(), id)
				if err != nil {
					t.AppendRow(table.Row{id, "-", "-", "-", "-"})
					continue
				}
				t.AppendRow(table.Row{id, s.Files, s.Findings, s.MinNameLength, formatByRule(s.ByRule)})
			}
			t.Render()
			return nil
		},
	}
	runsCmd.Flags().StringVar(&dir, "dir", defaultResultsDir, "Directory the runs were stored in")
	runsCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")

	rootCmd.AddCommand(runsCmd)
}

func formatByRule(byRule map[string]int) string {
	if len(byRule) == 0 {
		return "-"
	}
	codes := make([]string, 0, len(byRule))
	for code := range byRule {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = fmt.Sprintf("%s=%d", code, byRule[code])
	}
	return strings.Join(parts, " ")
}
