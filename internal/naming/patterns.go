// Package naming implements wemake-python-styleguide naming heuristics over
// identifiers extracted from a Python syntax tree.
package naming

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

const unusedPlaceholder = "_"

// Conventional short aliases for well-known libraries. Never too short.
var aliasNamesWhitelist = []string{"np", "pd", "df", "plt", "sns", "tf", "cv"}

var (
	unusedVariablePattern    = regexp.MustCompile(`^_+$`)
	underscoredNumberPattern = regexp.MustCompile(`[^\p{Nd}]_\p{Nd}+(?:[^\p{Nd}]|$)`)
)

// AliasWhitelist returns the names exempt from the too-short-name rule.
func AliasWhitelist() []string {
	return slices.Clone(aliasNamesWhitelist)
}

// IsUnused reports whether name is a pure placeholder such as "_" or "___".
func IsUnused(name string) bool {
	return unusedVariablePattern.MatchString(name)
}

// IsTooShortName reports whether name is shorter than minLength characters.
// With trim set, leading and trailing underscores are not counted.
func IsTooShortName(name string, minLength int, trim bool) bool {
	if slices.Contains(aliasNamesWhitelist, name) {
		return false
	}
	if IsUnused(name) {
		return false
	}

	measured := name
	if trim {
		measured = strings.Trim(name, unusedPlaceholder)
	}
	return utf8.RuneCountInString(measured) < minLength
}

// DoesContainUnderscoredNumber reports whether name separates text from a
// digit run with an underscore, as in "episode_2" or "iso_123_456".
func DoesContainUnderscoredNumber(name string) bool {
	return underscoredNumberPattern.MatchString(name)
}
