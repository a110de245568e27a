// Package pyast turns tree-sitter Python syntax trees into the node shapes
// understood by the naming rules.
package pyast

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Language returns the tree-sitter Python grammar.
func Language() *sitter.Language {
	return python.GetLanguage()
}

// Parse parses Python source into a syntax tree.
func Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(Language())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing python source: %w", err)
	}
	return tree, nil
}
