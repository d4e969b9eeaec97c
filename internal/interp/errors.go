package interp

import (
	"fmt"

	"github.com/cwbudde/go-pascal/pkg/token"
)

// ErrorKind classifies runtime failures.
type ErrorKind string

// Runtime error kinds.
const (
	NameError        ErrorKind = "name error"
	TypeError        ErrorKind = "type error"
	BoundsError      ErrorKind = "bounds error"
	PointerError     ErrorKind = "pointer error"
	FileError        ErrorKind = "file error"
	ArityError       ErrorKind = "arity error"
	UnsupportedError ErrorKind = "unsupported"
	IOError          ErrorKind = "i/o error"
)

// RuntimeError is an evaluation failure. It aborts the current run; there
// is no local recovery.
type RuntimeError struct {
	Message string
	Kind    ErrorKind
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}
