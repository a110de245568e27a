package astcheck

import (
	"context"
	"strings"
	"testing"

	"github.com/chris-regnier/namecheck/internal/naming"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func parsePython(t *testing.T, source string) *File {
	t.Helper()
	f, err := ParseFile(context.Background(), "test.py", []byte(source))
	if err != nil {
		t.Fatalf("failed to parse source: %v", err)
	}
	return f
}

func settingsWith(t *testing.T, minLength int) naming.Settings {
	t.Helper()
	s, err := naming.NewSettings(naming.Options{MinNameLength: &minLength})
	if err != nil {
		t.Fatalf("building settings: %v", err)
	}
	return s
}

func matchNames(matches []Match) []string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
	}
	return names
}

// ---------------------------------------------------------------------------
// Registry tests
// ---------------------------------------------------------------------------

func TestRegistryBasics(t *testing.T) {
	r := NewRegistry()
	if len(r.Names()) != 0 {
		t.Fatal("new registry should be empty")
	}

	r.Register(&UnderscoredNumberName{})
	r.Register(&TooShortName{})

	names := r.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(names))
	}
	// Names() returns sorted
	if names[0] != "too-short-name" || names[1] != "underscored-number-name" {
		t.Fatalf("unexpected names: %v", names)
	}

	c, ok := r.Get("too-short-name")
	if !ok || c == nil {
		t.Fatal("expected to find too-short-name check")
	}

	c, ok = r.Get("WPS114")
	if !ok || c.Name() != "underscored-number-name" {
		t.Fatal("expected lookup by code to find underscored-number-name")
	}

	_, ok = r.Get("nonexistent")
	if ok {
		t.Fatal("should not find nonexistent check")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	checks := r.Checks()
	expected := []string{"WPS111", "WPS114"}
	if len(checks) != len(expected) {
		t.Fatalf("expected %d checks, got %d", len(expected), len(checks))
	}
	for i, code := range expected {
		if checks[i].Code() != code {
			t.Errorf("expected checks[%d]=%q, got %q", i, code, checks[i].Code())
		}
		if checks[i].Description() == "" {
			t.Errorf("check %s has no description", code)
		}
	}
}

func TestRegistrySelect(t *testing.T) {
	r := DefaultRegistry()

	selected, unknown := r.Select([]string{"WPS114", "too-short-name", "WPS111", "bogus"})
	if len(selected) != 2 {
		t.Fatalf("expected 2 selected checks, got %d", len(selected))
	}
	if selected[0].Code() != "WPS111" || selected[1].Code() != "WPS114" {
		t.Errorf("selection not sorted by code: %s, %s", selected[0].Code(), selected[1].Code())
	}
	if len(unknown) != 1 || unknown[0] != "bogus" {
		t.Errorf("expected unknown=[bogus], got %v", unknown)
	}
}

// ---------------------------------------------------------------------------
// Language detection tests
// ---------------------------------------------------------------------------

func TestDetect(t *testing.T) {
	tests := []struct {
		path     string
		wantName string
		wantOK   bool
	}{
		{"script.py", "python", true},
		{"stubs.pyi", "python", true},
		{"/path/to/file.PY", "python", true}, // case insensitive
		{"main.go", "", false},
		{"readme.md", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, name, ok := Detect(tt.path)
			if ok != tt.wantOK {
				t.Errorf("Detect(%q) ok=%v, want %v", tt.path, ok, tt.wantOK)
			}
			if name != tt.wantName {
				t.Errorf("Detect(%q) name=%q, want %q", tt.path, name, tt.wantName)
			}
			if ok && lang == nil {
				t.Errorf("Detect(%q) returned nil language", tt.path)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TooShortName tests
// ---------------------------------------------------------------------------

func TestTooShortNameSingleAssignment(t *testing.T) {
	f := parsePython(t, "x = 1\n")
	c := &TooShortName{}

	matches := c.Run(f, settingsWith(t, 2))
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Name != "x" || m.Message != "Found too short name: 'x'" {
		t.Errorf("unexpected match: %+v", m)
	}
	if m.Code != "WPS111" || m.Check != "too-short-name" {
		t.Errorf("unexpected rule identity: %s/%s", m.Code, m.Check)
	}
	if m.StartLine != 1 || m.StartColumn != 1 || m.EndColumn != 2 {
		t.Errorf("unexpected position: %d:%d-%d", m.StartLine, m.StartColumn, m.EndColumn)
	}

	if matches := c.Run(f, settingsWith(t, 1)); len(matches) != 0 {
		t.Errorf("expected no matches with min length 1, got %d", len(matches))
	}
}

func TestTooShortNameFixture(t *testing.T) {
	src := `from matplotlib import pyplot as p  # bad
from matplotlib import pyplot as plt  # good

import numpy as n  # bad
import numpy as np  # good

x = 1  # bad
x_coordinate = 1  # good

z: int = 1  # bad
z_coordinate: int = 1  # good

_ = "unused"  # good


def f(a: int, b):  # bad
    pass


def some_function(arg1: int, arg2):  # good
    pass


class C:  # bad
    pass


class SomeClass:  # good
    pass
`
	f := parsePython(t, src)
	matches := (&TooShortName{}).Run(f, naming.DefaultSettings())

	got := strings.Join(matchNames(matches), ",")
	want := "p,n,x,z,f,a,b,C"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	lines := []int{1, 4, 7, 10, 16, 16, 16, 24}
	for i, m := range matches {
		if i < len(lines) && m.StartLine != lines[i] {
			t.Errorf("match %q on line %d, want %d", m.Name, m.StartLine, lines[i])
		}
	}
}

func TestTooShortNameDefinitionsAreUntrimmed(t *testing.T) {
	src := "def _f():\n    pass\n\n_g = 1\n"
	matches := (&TooShortName{}).Run(parsePython(t, src), naming.DefaultSettings())

	got := strings.Join(matchNames(matches), ",")
	if got != "_g" {
		t.Errorf("expected only the trimmed variable _g, got %q", got)
	}
}

func TestTooShortNameUnaliasedImport(t *testing.T) {
	src := "import os\nfrom re import M\n"
	matches := (&TooShortName{}).Run(parsePython(t, src), settingsWith(t, 5))
	if len(matches) != 0 {
		t.Errorf("imported names are not user-chosen, got %v", matchNames(matches))
	}
}

// ---------------------------------------------------------------------------
// UnderscoredNumberName tests
// ---------------------------------------------------------------------------

func TestUnderscoredNumberNameAssignments(t *testing.T) {
	c := &UnderscoredNumberName{}

	matches := c.Run(parsePython(t, "iso_123_456 = 'a'\n"), naming.DefaultSettings())
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Message != "Found underscored number name pattern: 'iso_123_456'" {
		t.Errorf("unexpected message %q", matches[0].Message)
	}
	if matches[0].Range != (naming.Range{Start: 0, End: 11}) {
		t.Errorf("unexpected range %+v", matches[0].Range)
	}

	matches = c.Run(parsePython(t, "iso123_456 = 'a'\n"), naming.DefaultSettings())
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matchNames(matches))
	}
}

func TestUnderscoredNumberNameEverywhere(t *testing.T) {
	src := `import numpy as np_1

def episode_2(arg_3):
    star_wars_episode2 = 1
    come_44_me = 2


class Model_5:
    pass
`
	matches := (&UnderscoredNumberName{}).Run(parsePython(t, src), naming.DefaultSettings())
	got := strings.Join(matchNames(matches), ",")
	want := "np_1,episode_2,arg_3,come_44_me,Model_5"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	var bindings []string
	for _, m := range matches {
		bindings = append(bindings, m.Binding)
	}
	if got := strings.Join(bindings, ","); got != "import,definition,parameter,assignment,definition" {
		t.Errorf("unexpected binding kinds: %s", got)
	}
}

func TestChecksCanBothFire(t *testing.T) {
	f := parsePython(t, "a_1 = 0\n")
	settings := settingsWith(t, 4)

	short := (&TooShortName{}).Run(f, settings)
	numbered := (&UnderscoredNumberName{}).Run(f, settings)
	if len(short) != 1 || len(numbered) != 1 {
		t.Fatalf("expected both checks to fire, got %d and %d", len(short), len(numbered))
	}
	if short[0].Range != numbered[0].Range {
		t.Errorf("both findings should anchor on the same identifier")
	}
}

// ---------------------------------------------------------------------------
// Documentation tests
// ---------------------------------------------------------------------------

func TestDocumentation(t *testing.T) {
	for _, c := range DefaultRegistry().Checks() {
		doc, err := Documentation(c)
		if err != nil {
			t.Fatalf("documentation for %s: %v", c.Name(), err)
		}
		if !strings.Contains(doc, c.Code()) || !strings.Contains(doc, "## Example") {
			t.Errorf("documentation for %s is incomplete", c.Name())
		}
	}
}

func TestDocumentationListsAliases(t *testing.T) {
	doc, err := Documentation(&TooShortName{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "{{") {
		t.Error("alias placeholder was not expanded")
	}
	for _, alias := range naming.AliasWhitelist() {
		if !strings.Contains(doc, "`"+alias+"`") {
			t.Errorf("documentation does not mention alias %q", alias)
		}
	}
	if !strings.Contains(doc, "`tf` and `cv`") {
		t.Errorf("unexpected alias list rendering:\n%s", doc)
	}
}
