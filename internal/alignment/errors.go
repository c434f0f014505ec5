package alignment

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an alignment could not be produced.
type ErrorKind int

const (
	// AllocationFailure means the per-call scratch buffers would exceed the cell limit.
	AllocationFailure ErrorKind = iota + 1
	// AlignmentOverflow means the alignment is longer than the configured maximum.
	AlignmentOverflow
	// AlphabetViolation means a symbol outside the IUPAC alphabet reached the engine.
	AlphabetViolation
	// PriorityQueueExhaustion means the frontier emptied before the terminal cell settled.
	PriorityQueueExhaustion
)

func (k ErrorKind) String() string {
	switch k {
	case AllocationFailure:
		return "allocation failure"
	case AlignmentOverflow:
		return "alignment overflow"
	case AlphabetViolation:
		return "alphabet violation"
	case PriorityQueueExhaustion:
		return "priority queue exhaustion"
	default:
		return "unknown"
	}
}

// Error is implemented by every error the engine returns.
type Error interface {
	error
	Kind() ErrorKind
}

// KindOf returns the kind of the first engine error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e Error
	if errors.As(err, &e) {
		return e.Kind(), true
	}
	return 0, false
}

// AllocationError is returned when (m+1)*(n+1) exceeds the cell limit.
type AllocationError struct {
	Cells int
	Limit int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("edit graph needs %d cells, limit is %d", e.Cells, e.Limit)
}

func (e *AllocationError) Kind() ErrorKind { return AllocationFailure }

// OverflowError is returned when the backtrace outgrows the maximum alignment length.
type OverflowError struct {
	Limit int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("alignment longer than maximum length %d", e.Limit)
}

func (e *OverflowError) Kind() ErrorKind { return AlignmentOverflow }

// AlphabetError is returned when a symbol has no code. Sequence is 1 or 2;
// Position is -1 when the symbol was looked up directly.
type AlphabetError struct {
	Sequence int
	Position int
	Found    byte
}

func (e *AlphabetError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("sequence %d: symbol %q is not in the alphabet", e.Sequence, e.Found)
	}
	return fmt.Sprintf("sequence %d: symbol %q at position %d is not in the alphabet",
		e.Sequence, e.Found, e.Position)
}

func (e *AlphabetError) Kind() ErrorKind { return AlphabetViolation }

// QueueExhaustedError is returned when no path to the terminal cell was found.
type QueueExhaustedError struct {
	I, J    int
	Settled int
}

func (e *QueueExhaustedError) Error() string {
	return fmt.Sprintf("priority queue empty before cell (%d,%d) settled (%d cells settled)",
		e.I, e.J, e.Settled)
}

func (e *QueueExhaustedError) Kind() ErrorKind { return PriorityQueueExhaustion }
