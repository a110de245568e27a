package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// newListTable returns a borderless table writer that renders to w.
func newListTable(w io.Writer, headers ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options = table.OptionsNoBordersAndSeparators
	t.AppendHeader(table.Row(headers))
	return t
}
