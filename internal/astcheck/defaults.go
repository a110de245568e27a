package astcheck

// DefaultRegistry returns a Registry pre-loaded with all built-in AST checks.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TooShortName{})
	r.Register(&UnderscoredNumberName{})
	return r
}
