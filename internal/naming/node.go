package naming

// Range is a byte offset span into the analyzed source.
type Range struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// Node is a syntax tree node shape the naming rules know how to read.
// The set of variants is closed: Identifier, Parameter, Alias, NameExpr and Other.
type Node interface {
	namingNode()
}

// Identifier is a bare name token, e.g. the name of a def or class.
type Identifier struct {
	Text  string
	Range Range
}

// Parameter is a function or lambda parameter.
type Parameter struct {
	Ident Identifier
}

// Alias is one entry of an import statement. AsName is nil for a plain
// `import pkg` or `from pkg import name`.
type Alias struct {
	Name   Identifier
	AsName *Identifier
}

// NameExpr is a name reference used as a binding target, e.g. `x` in `x = 1`.
type NameExpr struct {
	ID    string
	Range Range
}

// Other is any expression or statement that carries no user-chosen name.
type Other struct {
	Kind  string
	Range Range
}

func (Identifier) namingNode() {}
func (Parameter) namingNode()  {}
func (Alias) namingNode()      {}
func (NameExpr) namingNode()   {}
func (Other) namingNode()      {}
