package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/seqdiff-go/internal/sequence"
)

// Alignment is the result of aligning sequence 1 (Top) against sequence 2
// (Bottom). Top, Mid, Bottom and Classes always have the same length, and
// columns are in left-to-right order. Gaps are written as sequence.Gap.
type Alignment struct {
	Top     []byte
	Mid     []byte
	Bottom  []byte
	Classes []Class

	// Cost is the minimum path cost; Cost.Penalty is the total penalty.
	Cost Cost

	Len1 int
	Len2 int
	Mode Mode
}

// Side names the sequence an indel column is attributed to.
type Side int

const (
	// NoSide is returned for columns that are not indels.
	NoSide Side = iota
	// Seq1 means sequence 1 has a base opposite a gap.
	Seq1
	// Seq2 means sequence 2 has a base opposite a gap.
	Seq2
)

// Length returns the number of columns.
func (a *Alignment) Length() int {
	return len(a.Top)
}

// Penalty returns the total penalty.
func (a *Alignment) Penalty() int {
	return a.Cost.Penalty
}

// Side returns which sequence carries the base in indel column k.
func (a *Alignment) Side(k int) Side {
	if a.Classes[k] != Indel {
		return NoSide
	}
	if a.Top[k] == sequence.Gap {
		return Seq2
	}
	return Seq1
}

// Count returns the number of columns of class c.
func (a *Alignment) Count(c Class) int {
	count := 0
	for _, k := range a.Classes {
		if k == c {
			count++
		}
	}
	return count
}

// Aligned returns the two rows with gaps drawn as '-'.
func (a *Alignment) Aligned() (string, string) {
	top := make([]byte, len(a.Top))
	bottom := make([]byte, len(a.Bottom))
	for k := range a.Top {
		top[k], bottom[k] = a.Top[k], a.Bottom[k]
		if top[k] == sequence.Gap {
			top[k] = '-'
		}
		if bottom[k] == sequence.Gap {
			bottom[k] = '-'
		}
	}
	return string(top), string(bottom)
}

// ToCIGAR generates a CIGAR string with sequence 1 as the reference.
// Ambiguity columns are reported as M, substitutions as X.
func (a *Alignment) ToCIGAR() string {
	if len(a.Classes) == 0 {
		return ""
	}

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for k, c := range a.Classes {
		var op byte
		switch c {
		case Match, Ambiguity:
			op = 'M'
		case Substitution:
			op = 'X'
		default:
			if a.Side(k) == Seq2 {
				op = 'I'
			} else {
				op = 'D'
			}
		}

		if op == currentOp {
			count++
			continue
		}
		if count > 0 {
			fmt.Fprintf(&cigar, "%d%c", count, currentOp)
		}
		currentOp = op
		count = 1
	}
	fmt.Fprintf(&cigar, "%d%c", count, currentOp)

	return cigar.String()
}

// Format returns the three rows followed by the penalty and CIGAR.
func (a *Alignment) Format() string {
	return fmt.Sprintf("Seq1: %s\n      %s\nSeq2: %s\nPenalty: %d\nCIGAR: %s",
		a.Top, a.Mid, a.Bottom, a.Cost.Penalty, a.ToCIGAR())
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { mode: %s, penalty: %d, overhang: %d, length: %d }",
		a.Mode, a.Cost.Penalty, a.Cost.Overhang, a.Length())
}
