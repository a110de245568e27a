package astcheck

import "github.com/chris-regnier/namecheck/internal/naming"

// TooShortName flags variable, parameter, alias and definition names shorter
// than the configured minimum length.
type TooShortName struct{}

func (c *TooShortName) Name() string { return naming.RuleTooShortName.Name() }

func (c *TooShortName) Code() string { return naming.RuleTooShortName.Code() }

func (c *TooShortName) Description() string {
	return "Forbid short variable or module names"
}

func (c *TooShortName) Run(file *File, settings naming.Settings) []Match {
	var matches []Match
	for _, b := range file.Bindings {
		if d, ok := naming.TooShortName(b.Node, settings, b.Trim); ok {
			matches = append(matches, toMatch(file, c, b, d))
		}
	}
	return matches
}
