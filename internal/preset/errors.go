package preset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownProfile = errors.New("unknown profile")
	ErrInvalidPreset  = errors.New("invalid preset")
)

// FieldError names one offending entry by its json path, e.g.
// "texts[0].fontSize", with the value that broke Rule.
type FieldError struct {
	Field string
	Rule  string
	Value interface{}
}

// ValidationError collects every shape violation found in a profile.
type ValidationError struct {
	Profile string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("profile ")
	b.WriteString(e.Profile)
	b.WriteString(": ")
	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Field)
		b.WriteString(" failed ")
		b.WriteString(f.Rule)
		fmt.Fprintf(&b, " (got %v)", f.Value)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPreset
}
