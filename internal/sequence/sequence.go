// Package sequence provides validated nucleotide sequences over the IUPAC
// alphabet.
//
// Sequences are upper-cased and checked once at construction; the alignment
// engine relies on that and treats any later out-of-alphabet symbol as an
// internal error.
package sequence

import (
	"fmt"
	"strings"
)

// Sequence represents a validated nucleotide sequence.
type Sequence struct {
	Bases       string
	ID          string
	Description string
}

// New creates a new sequence with validation.
func New(bases string) (*Sequence, error) {
	normalized := strings.ToUpper(bases)

	if len(normalized) == 0 {
		return nil, &EmptySequenceError{}
	}

	if err := ValidateDNA(normalized); err != nil {
		return nil, err
	}

	return &Sequence{
		Bases: normalized,
	}, nil
}

// WithID creates a new sequence with an identifier.
func WithID(bases, id string) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	seq, err := New(bases)
	if err != nil {
		return nil, err
	}

	seq.ID = id
	return seq, nil
}

// WithMetadata creates a new sequence with full metadata.
func WithMetadata(bases, id, description string) (*Sequence, error) {
	seq, err := New(bases)
	if err != nil {
		return nil, err
	}

	seq.ID = id
	seq.Description = description
	return seq, nil
}

// Len returns the length of the sequence.
func (s *Sequence) Len() int {
	return len(s.Bases)
}

// Name returns the ID, or "sequence" when the sequence has none.
func (s *Sequence) Name() string {
	if s.ID == "" {
		return "sequence"
	}
	return s.ID
}

// CountAmbiguous counts the number of ambiguity codes.
func (s *Sequence) CountAmbiguous() int {
	count := 0
	for i := 0; i < len(s.Bases); i++ {
		if IsAmbiguousSymbol(s.Bases[i]) {
			count++
		}
	}
	return count
}

// Subsequence returns the half-open slice [start, end) of the sequence.
func (s *Sequence) Subsequence(start, end int) (*Sequence, error) {
	if start < 0 {
		return nil, fmt.Errorf("start index must be non-negative")
	}
	if end <= start {
		return nil, fmt.Errorf("end must be greater than start")
	}
	if end > len(s.Bases) {
		return nil, fmt.Errorf("end must not exceed sequence length")
	}

	return &Sequence{
		Bases:       s.Bases[start:end],
		ID:          s.ID,
		Description: s.Description,
	}, nil
}

// ReverseComplement returns the sequence read on the opposite strand.
func (s *Sequence) ReverseComplement() *Sequence {
	n := len(s.Bases)
	rc := make([]byte, n)
	for i := 0; i < n; i++ {
		rc[n-1-i] = ComplementBase(s.Bases[i])
	}
	return &Sequence{Bases: string(rc), ID: s.ID, Description: s.Description}
}

// ToFASTA returns the sequence as a FASTA record wrapped at width columns.
func (s *Sequence) ToFASTA(width int) string {
	if width <= 0 {
		width = 60
	}

	var sb strings.Builder
	sb.WriteByte('>')
	sb.WriteString(s.Name())
	if s.Description != "" {
		sb.WriteByte(' ')
		sb.WriteString(s.Description)
	}
	sb.WriteByte('\n')

	for i := 0; i < len(s.Bases); i += width {
		sb.WriteString(s.Bases[i:min(i+width, len(s.Bases))])
		sb.WriteByte('\n')
	}
	return sb.String()
}
