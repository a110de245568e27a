package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	alias := Identifier{Text: "n", Range: Range{Start: 16, End: 17}}

	tests := []struct {
		desc   string
		node   Node
		want   Checkable
		wantOK bool
	}{
		{
			desc:   "identifier",
			node:   Identifier{Text: "C", Range: Range{Start: 6, End: 7}},
			want:   Checkable{Name: "C", Range: Range{Start: 6, End: 7}},
			wantOK: true,
		},
		{
			desc:   "parameter delegates to its identifier",
			node:   Parameter{Ident: Identifier{Text: "a", Range: Range{Start: 6, End: 7}}},
			want:   Checkable{Name: "a", Range: Range{Start: 6, End: 7}},
			wantOK: true,
		},
		{
			desc: "alias present uses the alias",
			node: Alias{
				Name:   Identifier{Text: "numpy", Range: Range{Start: 7, End: 12}},
				AsName: &alias,
			},
			want:   Checkable{Name: "n", Range: Range{Start: 16, End: 17}},
			wantOK: true,
		},
		{
			desc:   "alias absent",
			node:   Alias{Name: Identifier{Text: "numpy", Range: Range{Start: 7, End: 12}}},
			wantOK: false,
		},
		{
			desc:   "name expression uses its own range",
			node:   NameExpr{ID: "x", Range: Range{Start: 0, End: 1}},
			want:   Checkable{Name: "x", Range: Range{Start: 0, End: 1}},
			wantOK: true,
		},
		{
			desc:   "other",
			node:   Other{Kind: "attribute", Range: Range{Start: 0, End: 5}},
			wantOK: false,
		},
		{
			desc:   "nil",
			node:   nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, ok := Extract(tt.node)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_KeepsTextVerbatim(t *testing.T) {
	for _, text := range []string{"__init__", "_x_", "Ünïcode_1", "camelCase"} {
		got, ok := Extract(NameExpr{ID: text})
		assert.True(t, ok)
		assert.Equal(t, text, got.Name)
	}
}

func TestExtract_TotalOverVariants(t *testing.T) {
	variants := []Node{
		Identifier{},
		Parameter{},
		Alias{},
		NameExpr{},
		Other{},
	}
	for _, n := range variants {
		assert.NotPanics(t, func() { Extract(n) })
	}
}
