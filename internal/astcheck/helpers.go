package astcheck

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chris-regnier/namecheck/internal/naming"
	"github.com/chris-regnier/namecheck/internal/pyast"
)

// File is a parsed source file shared by every check that runs on it.
// Bindings are collected once per file.
type File struct {
	Path     string
	Source   []byte
	Tree     *sitter.Tree
	Bindings []pyast.Binding
	Lines    *pyast.LineIndex
}

// ParseFile parses source and collects its binding sites.
func ParseFile(ctx context.Context, path string, source []byte) (*File, error) {
	tree, err := pyast.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{
		Path:     path,
		Source:   source,
		Tree:     tree,
		Bindings: pyast.Collect(tree.RootNode(), source),
		Lines:    pyast.NewLineIndex(source),
	}, nil
}

// toMatch anchors a naming diagnostic raised for binding b in the file.
func toMatch(file *File, c Check, b pyast.Binding, d naming.Diagnostic) Match {
	startLine, startCol := file.Lines.Locate(d.Range.Start)
	endLine, endCol := file.Lines.Locate(d.Range.End)
	return Match{
		Check:       c.Name(),
		Code:        c.Code(),
		Name:        d.Name,
		Binding:     b.Kind.String(),
		Message:     d.Message(),
		Range:       d.Range,
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}
