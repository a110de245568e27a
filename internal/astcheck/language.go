package astcheck

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chris-regnier/namecheck/internal/pyast"
)

type langEntry struct {
	language *sitter.Language
	name     string
}

var extToLang map[string]langEntry

func init() {
	extToLang = map[string]langEntry{
		".py":  {language: pyast.Language(), name: "python"},
		".pyi": {language: pyast.Language(), name: "python"},
	}
}

// Detect returns the tree-sitter Language, language name, and whether the
// file extension was recognized.
func Detect(path string) (*sitter.Language, string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	entry, ok := extToLang[ext]
	if !ok {
		return nil, "", false
	}
	return entry.language, entry.name, true
}
