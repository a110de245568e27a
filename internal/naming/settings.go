package naming

import (
	"errors"
	"fmt"
)

// DefaultMinNameLength is the minimum number of characters for a valid
// variable or module name.
const DefaultMinNameLength = 2

// ErrInvalidMinNameLength is returned for a negative minimum name length.
var ErrInvalidMinNameLength = errors.New("min-name-length must be a non-negative integer")

// Options is the raw, optional form of the naming settings as read from
// configuration. Nil fields take their defaults.
type Options struct {
	MinNameLength *int `yaml:"min-name-length,omitempty" json:"min-name-length,omitempty"`
}

// Settings is the resolved, immutable view of the naming configuration for
// one analysis run. The zero Settings holds the defaults.
type Settings struct {
	// offset from DefaultMinNameLength
	minNameLengthDelta int
}

// DefaultSettings returns Settings with every option at its default.
func DefaultSettings() Settings {
	return Settings{}
}

// NewSettings resolves opts into Settings.
func NewSettings(opts Options) (Settings, error) {
	s := DefaultSettings()
	if opts.MinNameLength != nil {
		if *opts.MinNameLength < 0 {
			return Settings{}, fmt.Errorf("%w, got %d", ErrInvalidMinNameLength, *opts.MinNameLength)
		}
		s.minNameLengthDelta = *opts.MinNameLength - DefaultMinNameLength
	}
	return s, nil
}

// MinNameLength returns the minimum accepted name length.
func (s Settings) MinNameLength() int {
	return DefaultMinNameLength + s.minNameLengthDelta
}

// Options converts s back into its raw configuration form.
func (s Settings) Options() Options {
	n := s.MinNameLength()
	return Options{MinNameLength: &n}
}
