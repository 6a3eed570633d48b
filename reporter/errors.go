package reporter

import (
	"errors"
	"fmt"

	"github.com/weftlang/weft/desc"
)

// ErrInvalidSchema is a sentinel error returned by linking operations when
// errors were encountered but the configured ErrorReporter chose to keep
// going and returned nil for all of them.
var ErrInvalidSchema = errors.New("link failed: invalid weft schema")

// ErrorWithPos is an error about a schema file that includes the location in
// the file that caused it.
//
// The value of Error() contains both the position and the underlying error.
// The value of Unwrap() is only the underlying error.
type ErrorWithPos interface {
	error
	GetPosition() desc.SourcePos
	Unwrap() error
}

// Error wraps err with the given source position.
func Error(pos desc.SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

// Errorf creates an ErrorWithPos from a format string, like fmt.Errorf.
func Errorf(pos desc.SourcePos, format string, args ...any) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithSourcePos struct {
	underlying error
	pos        desc.SourcePos
}

func (e errorWithSourcePos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithSourcePos) GetPosition() desc.SourcePos {
	return e.pos
}

func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}
