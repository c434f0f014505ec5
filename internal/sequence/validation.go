package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when a sequence is empty.
type EmptySequenceError struct{}

func (e *EmptySequenceError) Error() string {
	return "sequence must have at least one base"
}

func (e *EmptySequenceError) IsSequenceError() {}

// InvalidBaseError is returned when a symbol outside the IUPAC alphabet is encountered.
type InvalidBaseError struct {
	Position int
	Found    rune
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base '%c' at position %d", e.Found, e.Position)
}

func (e *InvalidBaseError) IsSequenceError() {}

// TooLongError is returned when a sequence exceeds the configured length limit.
type TooLongError struct {
	Limit  int
	Actual int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("sequence length %d exceeds limit %d", e.Actual, e.Limit)
}

func (e *TooLongError) IsSequenceError() {}

// ValidateDNA validates that a string contains only IUPAC nucleotide symbols.
func ValidateDNA(bases string) error {
	for i := 0; i < len(bases); i++ {
		if _, ok := Encode(bases[i]); !ok {
			return &InvalidBaseError{Position: i, Found: rune(bases[i])}
		}
	}
	return nil
}
