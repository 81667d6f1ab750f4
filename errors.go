package gopoly

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelector is returned for an expression id other than 1 or 2.
	ErrInvalidSelector = errors.New("invalid expression id")

	// ErrMissingLine is returned when an input file has fewer than two lines.
	ErrMissingLine = errors.New("missing expression line")
)

// ExprError ties a parse failure to the session slot it was meant for.
type ExprError struct {
	Selector Selector
	Err      error
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("invalid expression for %s: %v", e.Selector, e.Err)
}

func (e *ExprError) Unwrap() error { return e.Err }

// IOError describes a failure to load expressions from a file.
//
// Op is "open" or "read".
//
//	var ioErr *IOError
//	if errors.As(err, &ioErr) && errors.Is(err, ErrMissingLine) {
//	    // the file had fewer than two lines
//	}
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
