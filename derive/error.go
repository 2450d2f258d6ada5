package derive

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

var (
	ErrEmptyShape       = errors.New("at least one field expected")
	ErrUnsupportedShape = errors.New("unsupported shape")
)

// ErrorList is a list of Errors.
type ErrorList []*Error

// Append appends an Error for type t to e.  kind is ErrEmptyShape or
// ErrUnsupportedShape.
func (e *ErrorList) Append(kind error, t *Type, msg string) {
	*e = append(*e, &Error{Kind: kind, Type: t.Name, Msg: msg, Pos: t.Pos, line: t.line})
}

// Err returns e as an error or nil if e is empty.
func (e ErrorList) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Error concatenates the errors in e with a newline between each.
func (e ErrorList) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e ErrorList) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, err := range e {
		errs = append(errs, err)
	}
	return errs
}

// An Error is a shape that cannot be derived.
type Error struct {
	Kind error
	Type string
	Msg  string
	Pos  token.Position
	line string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

// Source returns the line declaring the offending type with a marker under
// the type's name or the empty string if the line is not known.
func (e *Error) Source() string {
	if e.line == "" || e.Pos.Column < 1 {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.line)
	b.WriteByte('\n')
	col := min(e.Pos.Column-1, len(e.line))
	for _, c := range []byte(e.line[:col]) {
		// Keep tabs so the marker lines up under the source.
		if c == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(strings.Repeat("~", max(len(e.Type), 1)))
	return b.String()
}

func emptyShape(t *Type) string {
	return fmt.Sprintf("type %s: %s", t.Name, ErrEmptyShape)
}

func emptyVariant(t, v *Type) string {
	return fmt.Sprintf("type %s: variant %s: %s", t.Name, v.Name, ErrEmptyShape)
}

func unsupported(t *Type, reason string) string {
	return fmt.Sprintf("type %s: %s: %s", t.Name, ErrUnsupportedShape, reason)
}
