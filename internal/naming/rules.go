package naming

import "fmt"

// Rule identifies a naming rule.
type Rule int

const (
	// RuleTooShortName flags names shorter than the configured minimum (WPS111).
	RuleTooShortName Rule = iota
	// RuleUnderscoredNumberName flags names like "episode_2" (WPS114).
	RuleUnderscoredNumberName
)

// Rules returns every naming rule in code order.
func Rules() []Rule {
	return []Rule{RuleTooShortName, RuleUnderscoredNumberName}
}

// Code returns the wemake-python-styleguide violation code.
func (r Rule) Code() string {
	switch r {
	case RuleTooShortName:
		return "WPS111"
	case RuleUnderscoredNumberName:
		return "WPS114"
	default:
		return "WPS000"
	}
}

// Name returns the kebab-case check name used in configuration.
func (r Rule) Name() string {
	switch r {
	case RuleTooShortName:
		return "too-short-name"
	case RuleUnderscoredNumberName:
		return "underscored-number-name"
	default:
		return "unknown"
	}
}

func (r Rule) String() string { return r.Name() }

// Message renders the stable diagnostic message for rule and name.
func Message(r Rule, name string) string {
	switch r {
	case RuleTooShortName:
		return fmt.Sprintf("Found too short name: '%s'", name)
	case RuleUnderscoredNumberName:
		return fmt.Sprintf("Found underscored number name pattern: '%s'", name)
	default:
		return fmt.Sprintf("Found naming violation: '%s'", name)
	}
}

// Diagnostic is a single naming violation anchored at the identifier's range.
type Diagnostic struct {
	Rule  Rule
	Name  string
	Range Range
}

// Message returns the human-readable message for d.
func (d Diagnostic) Message() string {
	return Message(d.Rule, d.Name)
}

// TooShortName reports node's identifier if it is shorter than the
// configured minimum. trim controls whether surrounding underscores count.
func TooShortName(node Node, settings Settings, trim bool) (Diagnostic, bool) {
	c, ok := Extract(node)
	if !ok {
		return Diagnostic{}, false
	}
	if !IsTooShortName(c.Name, settings.MinNameLength(), trim) {
		return Diagnostic{}, false
	}
	return Diagnostic{Rule: RuleTooShortName, Name: c.Name, Range: c.Range}, true
}

// UnderscoredNumberName reports node's identifier if it contains an
// underscored number pattern.
func UnderscoredNumberName(node Node) (Diagnostic, bool) {
	c, ok := Extract(node)
	if !ok {
		return Diagnostic{}, false
	}
	if !DoesContainUnderscoredNumber(c.Name) {
		return Diagnostic{}, false
	}
	return Diagnostic{Rule: RuleUnderscoredNumberName, Name: c.Name, Range: c.Range}, true
}
