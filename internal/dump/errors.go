package dump

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLevel is matched by errors.Is for Level lines whose id is
	// not an integer.
	ErrMalformedLevel = errors.New("malformed level line")
	// ErrMalformedPoint is matched by errors.Is for Point lines whose
	// coordinates are missing or not numbers.
	ErrMalformedPoint = errors.New("malformed point line")
)

// ParseError reports the line that stopped a parse.
type ParseError struct {
	Line  int    // 1-based
	Text  string // the offending line, trimmed
	Kind  error  // ErrMalformedLevel or ErrMalformedPoint
	Cause error  // underlying conversion error, if any
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %v %q", e.Line, e.Kind, e.Text)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Is lets errors.Is match the error kind as well as the cause chain.
func (e *ParseError) Is(target error) bool {
	return target == e.Kind
}
