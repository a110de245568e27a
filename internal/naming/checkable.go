package naming

// Checkable is an identifier eligible for naming rule evaluation.
type Checkable struct {
	Name  string
	Range Range
}

// Extract derives the checkable identifier carried by n. The boolean is false
// when n has no user-chosen name; callers skip such nodes silently.
func Extract(n Node) (Checkable, bool) {
	switch v := n.(type) {
	case Identifier:
		return fromIdentifier(v), true
	case Parameter:
		return fromIdentifier(v.Ident), true
	case Alias:
		if v.AsName == nil {
			return Checkable{}, false
		}
		return fromIdentifier(*v.AsName), true
	case NameExpr:
		return Checkable{Name: v.ID, Range: v.Range}, true
	case Other:
		return Checkable{}, false
	default:
		return Checkable{}, false
	}
}

func fromIdentifier(id Identifier) Checkable {
	return Checkable{Name: id.Text, Range: id.Range}
}
