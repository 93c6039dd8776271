package format

import (
	"errors"
	"fmt"
)

// ErrInvariant is the sentinel all core faults unwrap to.
var ErrInvariant = errors.New("format: internal invariant violated")

// InvariantError describes a broken contract between the visitor and the core,
// e.g. an unbalanced breakable stack. It is raised with panic and recovered
// only by Formatter.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("format: %s: %s", e.Op, e.Msg)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func fault(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
