package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/chris-regnier/namecheck/internal/astcheck"
)

func init() {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := newListTable(cmd.OutOrStdout(), "CODE", "NAME", "DESCRIPTION")
			for _, c := range astcheck.DefaultRegistry().Checks() {
				t.AppendRow(table.Row{c.Code(), c.Name(), c.Description()})
			}
			t.Render()
			return nil
		},
	}

	var raw bool
	explainCmd := &cobra.Command{
		Use:   "explain <check>",
		Short: "Show the documentation of a check, by name or code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := astcheck.DefaultRegistry()
			c, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown check %q (known: %s)", args[0], strings.Join(reg.Names(), ", "))
			}
			doc, err := astcheck.Documentation(c)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if raw || !isTerminal(w) {
				_, err = fmt.Fprint(w, doc)
				return err
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				return err
			}
			rendered, err := r.Render(doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, rendered)
			return err
		},
	}
	explainCmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source without rendering")

	rootCmd.AddCommand(rulesCmd, explainCmd)
}
