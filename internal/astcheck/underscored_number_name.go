package astcheck

import "github.com/chris-regnier/namecheck/internal/naming"

// UnderscoredNumberName flags names that put an underscore between text and
// a number, such as star_wars_episode_2.
type UnderscoredNumberName struct{}

func (c *UnderscoredNumberName) Name() string { return naming.RuleUnderscoredNumberName.Name() }

func (c *UnderscoredNumberName) Code() string { return naming.RuleUnderscoredNumberName.Code() }

func (c *UnderscoredNumberName) Description() string {
	return "Forbid names with underscored numbers pattern"
}

func (c *UnderscoredNumberName) Run(file *File, _ naming.Settings) []Match {
	var matches []Match
	for _, b := range file.Bindings {
		if d, ok := naming.UnderscoredNumberName(b.Node); ok {
			matches = append(matches, toMatch(file, c, b, d))
		}
	}
	return matches
}
