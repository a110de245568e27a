package pyast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chris-regnier/namecheck/internal/naming"
)

// Kind describes the syntactic context a binding was found in.
type Kind int

const (
	KindAssignment Kind = iota
	KindParameter
	KindImport
	KindDefinition
	KindLoop
	KindContext
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindAssignment:
		return "assignment"
	case KindParameter:
		return "parameter"
	case KindImport:
		return "import"
	case KindDefinition:
		return "definition"
	case KindLoop:
		return "loop"
	case KindContext:
		return "context"
	case KindPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Binding is a place in the source where a name is bound.
// Trim tells the too-short-name rule whether surrounding underscores
// should be ignored when measuring the name.
type Binding struct {
	Node naming.Node
	Kind Kind
	Trim bool
}

// Collect walks the tree rooted at root and returns every binding site in
// source order.
func Collect(root *sitter.Node, source []byte) []Binding {
	c := &collector{source: source}
	c.walk(root)
	return c.bindings
}

type collector struct {
	source   []byte
	bindings []Binding
}

func (c *collector) add(n naming.Node, kind Kind, trim bool) {
	c.bindings = append(c.bindings, Binding{Node: n, Kind: kind, Trim: trim})
}

func (c *collector) walk(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "function_definition", "class_definition":
		if name := node.ChildByFieldName("name"); name != nil {
			c.add(c.identifier(name), KindDefinition, false)
		}
		if params := node.ChildByFieldName("parameters"); params != nil {
			c.parameters(params)
		}
	case "lambda":
		if params := node.ChildByFieldName("parameters"); params != nil {
			c.parameters(params)
		}
	case "assignment", "augmented_assignment":
		c.targets(node.ChildByFieldName("left"), KindAssignment)
	case "named_expression":
		c.targets(node.ChildByFieldName("name"), KindAssignment)
	case "for_statement", "for_in_clause":
		c.targets(node.ChildByFieldName("left"), KindLoop)
	case "with_item":
		c.targets(node.ChildByFieldName("alias"), KindContext)
	case "as_pattern":
		kind := KindContext
		if insideCase(node) {
			kind = KindPattern
		}
		if alias := node.ChildByFieldName("alias"); alias != nil {
			c.targets(alias, kind)
		} else {
			c.afterAs(node, kind)
		}
	case "except_clause":
		c.afterAs(node, KindContext)
	case "import_statement":
		c.imports(node, nil)
	case "import_from_statement":
		c.imports(node, node.ChildByFieldName("module_name"))
	case "case_pattern", "keyword_pattern":
		c.capture(node)
	case "splat_pattern":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c.targets(node.NamedChild(i), KindPattern)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		c.walk(node.Child(i))
	}
}

func (c *collector) identifier(node *sitter.Node) naming.Identifier {
	return naming.Identifier{Text: node.Content(c.source), Range: rangeOf(node)}
}

func (c *collector) parameters(params *sitter.Node) {
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			c.add(naming.Parameter{Ident: c.identifier(child)}, KindParameter, true)
		case "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern":
			c.add(c.parameterName(child), KindParameter, true)
		case "default_parameter", "typed_default_parameter":
			name := child.ChildByFieldName("name")
			if name != nil && name.Type() == "identifier" {
				c.add(naming.Parameter{Ident: c.identifier(name)}, KindParameter, true)
			} else {
				c.add(other(child), KindParameter, true)
			}
		}
	}
}

// parameterName digs the identifier out of typed and splat parameters, e.g.
// `a: int`, `*args`, `**kwargs: Any`.
func (c *collector) parameterName(node *sitter.Node) naming.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			return naming.Parameter{Ident: c.identifier(child)}
		case "list_splat_pattern", "dictionary_splat_pattern":
			return c.parameterName(child)
		}
	}
	return other(node)
}

func (c *collector) targets(node *sitter.Node, kind Kind) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "identifier":
		c.add(naming.NameExpr{ID: node.Content(c.source), Range: rangeOf(node)}, kind, true)
	case "pattern_list", "tuple_pattern", "list_pattern", "tuple", "list",
		"expression_list", "parenthesized_expression", "list_splat_pattern", "list_splat":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c.targets(node.NamedChild(i), kind)
		}
	case "as_pattern_target":
		if node.NamedChildCount() == 0 {
			c.add(naming.NameExpr{ID: node.Content(c.source), Range: rangeOf(node)}, kind, true)
			return
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c.targets(node.NamedChild(i), kind)
		}
	default:
		c.add(other(node), kind, true)
	}
}

// afterAs binds the named node following an `as` keyword. Some grammar
// versions keep `except E as e:` targets and case pattern aliases as plain
// children instead of an alias field.
func (c *collector) afterAs(node *sitter.Node, kind Kind) {
	for i := 0; i+1 < int(node.ChildCount()); i++ {
		if node.Child(i).Type() != "as" {
			continue
		}
		next := node.Child(i + 1)
		if next != nil && next.IsNamed() {
			c.targets(next, kind)
		}
		return
	}
}

func (c *collector) imports(node, module *sitter.Node) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if module != nil && sameNode(child, module) {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			c.add(naming.Alias{Name: c.identifier(child)}, KindImport, true)
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil {
				continue
			}
			a := naming.Alias{Name: c.identifier(name)}
			if alias != nil {
				asName := c.identifier(alias)
				a.AsName = &asName
			}
			c.add(a, KindImport, true)
		}
	}
}

// capture reports a bare capture pattern such as `d` in `case ["go", d]:`
// or `px` in `case Point(x=px):`. Dotted value patterns like `Color.RED`
// bind nothing, and neither does the keyword of a keyword pattern.
func (c *collector) capture(node *sitter.Node) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "dotted_name" || child.NamedChildCount() != 1 {
			continue
		}
		if ident := child.NamedChild(0); ident.Type() == "identifier" {
			c.add(naming.NameExpr{ID: ident.Content(c.source), Range: rangeOf(ident)}, KindPattern, true)
		}
	}
}

func insideCase(node *sitter.Node) bool {
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "case_clause", "case_pattern":
			return true
		case "block", "module":
			return false
		}
	}
	return false
}

func other(node *sitter.Node) naming.Other {
	return naming.Other{Kind: node.Type(), Range: rangeOf(node)}
}

func rangeOf(node *sitter.Node) naming.Range {
	return naming.Range{Start: node.StartByte(), End: node.EndByte()}
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
