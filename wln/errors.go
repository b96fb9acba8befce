package wln

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies a parse failure per the reader's error taxonomy.
type ErrorKind int

const (
	// InvalidCharacter is an unknown symbol in the current state.
	InvalidCharacter ErrorKind = iota
	// InvalidState is a character that is legal in isolation but not given
	// the parser's current pending flags.
	InvalidState
	// ValenceExceeded is an edge addition that would exceed allowed_edges.
	ValenceExceeded
	// RingClosure covers a missing J, mismatched aromatic count, or a bad
	// locant path.
	RingClosure
	// LocantOutOfRange is an expanded locant beyond 252, or a reference to
	// a position absent from the ring.
	LocantOutOfRange
	// CapacityExceeded is an atom/ring/edge pool at capacity, or a carbon
	// chain longer than 100.
	CapacityExceeded
	// ChargeIndex is a post-ionic index with no matching atom source
	// position.
	ChargeIndex
	// MacroRing is a ring-in-ring not closed with -<size>-.
	MacroRing
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case InvalidState:
		return "InvalidState"
	case ValenceExceeded:
		return "ValenceExceeded"
	case RingClosure:
		return "RingClosure"
	case LocantOutOfRange:
		return "LocantOutOfRange"
	case CapacityExceeded:
		return "CapacityExceeded"
	case ChargeIndex:
		return "ChargeIndex"
	case MacroRing:
		return "MacroRing"
	default:
		return "Unknown"
	}
}

// ParseError is the structured failure the reader surfaces to the caller.
// It records the offending 0-based offset into the original string and
// implements `causer` (github.com/pkg/errors) so callers can recover the
// underlying error with errors.Cause.
type ParseError struct {
	Kind    ErrorKind
	Offset  int
	Message string
	cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Offset, e.Message)
}

// Cause implements the github.com/pkg/errors causer interface.
func (e *ParseError) Cause() error { return e.cause }

func newParseError(kind ErrorKind, offset int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
		cause:   errors.Errorf(format, args...),
	}
}

// wrapParseError attaches position context to an error bubbling up from a
// builder (ring builder, arena) that did not already carry one.
func wrapParseError(kind ErrorKind, offset int, err error, context string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Offset:  offset,
		Message: context + ": " + err.Error(),
		cause:   errors.Wrap(err, context),
	}
}

// FormatDiagnostic renders the section 7 user-visible failure format:
//
//	Fatal: <original string>
//	       <caret at offset>
//	<message>
func FormatDiagnostic(original string, err *ParseError) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("Fatal: ")
	b.WriteString(original)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", len("Fatal: ")+clamp(err.Offset, 0, len(original))))
	b.WriteString("^\n")
	b.WriteString(err.Message)
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Warning is a non-fatal, lenient-mode recovery recorded during a parse
// (a bond skipped because it would exceed a valence ceiling). Warnings are
// aggregated with go.uber.org/multierr so a successful lenient parse can
// still report what it skipped.
type Warning struct {
	Offset  int
	Message string
}

func (w Warning) Error() string {
	return fmt.Sprintf("warning at %d: %s", w.Offset, w.Message)
}
