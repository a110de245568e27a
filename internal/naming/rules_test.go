package naming

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSettings(t *testing.T, minLength int) Settings {
	t.Helper()
	s, err := NewSettings(Options{MinNameLength: &minLength})
	require.NoError(t, err)
	return s
}

func TestTooShortName(t *testing.T) {
	node := NameExpr{ID: "x", Range: Range{Start: 0, End: 1}}

	d, ok := TooShortName(node, mustSettings(t, 2), true)
	require.True(t, ok)
	assert.Equal(t, RuleTooShortName, d.Rule)
	assert.Equal(t, "x", d.Name)
	assert.Equal(t, Range{Start: 0, End: 1}, d.Range)
	assert.Equal(t, "Found too short name: 'x'", d.Message())

	_, ok = TooShortName(node, mustSettings(t, 1), true)
	assert.False(t, ok)
}

func TestTooShortName_TrimFlag(t *testing.T) {
	node := Identifier{Text: "_f", Range: Range{Start: 4, End: 6}}

	_, ok := TooShortName(node, DefaultSettings(), true)
	assert.True(t, ok)

	_, ok = TooShortName(node, DefaultSettings(), false)
	assert.False(t, ok)
}

func TestTooShortName_NotCheckableIsSilent(t *testing.T) {
	d, ok := TooShortName(Alias{Name: Identifier{Text: "os"}}, mustSettings(t, 10), true)
	assert.False(t, ok)
	assert.Equal(t, Diagnostic{}, d)

	_, ok = TooShortName(Other{Kind: "subscript"}, mustSettings(t, 10), true)
	assert.False(t, ok)
}

func TestUnderscoredNumberName(t *testing.T) {
	d, ok := UnderscoredNumberName(NameExpr{ID: "iso_123_456", Range: Range{Start: 0, End: 11}})
	require.True(t, ok)
	assert.Equal(t, RuleUnderscoredNumberName, d.Rule)
	assert.Equal(t, "Found underscored number name pattern: 'iso_123_456'", d.Message())
	assert.Equal(t, Range{Start: 0, End: 11}, d.Range)

	_, ok = UnderscoredNumberName(NameExpr{ID: "iso123_456"})
	assert.False(t, ok)

	_, ok = UnderscoredNumberName(Alias{Name: Identifier{Text: "mod_1"}})
	assert.False(t, ok, "the imported name is not user-chosen")
}

func TestRules_BothMayFire(t *testing.T) {
	node := Parameter{Ident: Identifier{Text: "_1", Range: Range{Start: 6, End: 8}}}
	settings := mustSettings(t, 3)

	_, short := TooShortName(node, settings, false)
	assert.True(t, short)

	node = Parameter{Ident: Identifier{Text: "a_1", Range: Range{Start: 6, End: 9}}}
	_, short = TooShortName(node, settings, true)
	assert.False(t, short, "a_1 has exactly three characters")

	_, short = TooShortName(node, mustSettings(t, 4), true)
	_, numbered := UnderscoredNumberName(node)
	assert.True(t, short)
	assert.True(t, numbered)
}

func TestRules_OrderIndependent(t *testing.T) {
	nodes := []Node{
		NameExpr{ID: "x", Range: Range{Start: 0, End: 1}},
		NameExpr{ID: "a_1", Range: Range{Start: 6, End: 9}},
		Alias{Name: Identifier{Text: "numpy"}, AsName: &Identifier{Text: "n", Range: Range{Start: 20, End: 21}}},
		Other{Kind: "attribute"},
	}
	settings := mustSettings(t, 4)

	type runner func(Node) (Diagnostic, bool)
	short := func(n Node) (Diagnostic, bool) { return TooShortName(n, settings, true) }

	collect := func(order ...runner) []Diagnostic {
		var out []Diagnostic
		for _, n := range nodes {
			for _, run := range order {
				if d, ok := run(n); ok {
					out = append(out, d)
				}
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Range.Start != out[j].Range.Start {
				return out[i].Range.Start < out[j].Range.Start
			}
			return out[i].Rule < out[j].Rule
		})
		return out
	}

	forward := collect(short, UnderscoredNumberName)
	backward := collect(UnderscoredNumberName, short)
	assert.Equal(t, forward, backward)
	assert.Len(t, forward, 4)
}

func TestRuleMetadata(t *testing.T) {
	assert.Equal(t, []Rule{RuleTooShortName, RuleUnderscoredNumberName}, Rules())
	assert.Equal(t, "WPS111", RuleTooShortName.Code())
	assert.Equal(t, "WPS114", RuleUnderscoredNumberName.Code())
	assert.Equal(t, "too-short-name", RuleTooShortName.String())
	assert.Equal(t, "underscored-number-name", RuleUnderscoredNumberName.Name())
}
