// Package quality handles per-base Phred quality scores for reads loaded
// from FASTQ.
//
// Phred quality scores are logarithmically related to base-calling error
// probabilities:
//
//	Q = -10 * log10(P_error)
package quality

import (
	"fmt"
)

// Valid Phred+33 score range.
const (
	PhredMin = 0
	PhredMax = 93
)

// QualityError is implemented by all errors in this package.
type QualityError interface {
	error
	IsQualityError()
}

// EmptyScoresError is returned when quality scores are empty.
type EmptyScoresError struct{}

func (e *EmptyScoresError) Error() string {
	return "quality scores cannot be empty"
}
func (e *EmptyScoresError) IsQualityError() {}

// ScoreOutOfRangeError is returned when a score is out of valid range.
type ScoreOutOfRangeError struct {
	Position int
	Score    int
}

func (e *ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("score %d at position %d is out of range [%d, %d]", e.Score, e.Position, PhredMin, PhredMax)
}
func (e *ScoreOutOfRangeError) IsQualityError() {}

// InvalidEncodingError is returned when a quality encoding character is invalid.
type InvalidEncodingError struct {
	Position int
	Char     rune
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("invalid encoding character '%c' at position %d", e.Char, e.Position)
}
func (e *InvalidEncodingError) IsQualityError() {}

// Scores holds one quality score per base of a read.
type Scores struct {
	Values []int
}

// New creates quality scores from a copy of scores.
func New(scores []int) (*Scores, error) {
	if len(scores) == 0 {
		return nil, &EmptyScoresError{}
	}

	for i, score := range scores {
		if score < PhredMin || score > PhredMax {
			return nil, &ScoreOutOfRangeError{Position: i, Score: score}
		}
	}

	values := make([]int, len(scores))
	copy(values, scores)

	return &Scores{Values: values}, nil
}

// FromPhred33 decodes a Phred+33 string: Q = ord(char) - 33.
func FromPhred33(encoded string) (*Scores, error) {
	if len(encoded) == 0 {
		return nil, &EmptyScoresError{}
	}

	scores := make([]int, 0, len(encoded))
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c < '!' || c > '~' {
			return nil, &InvalidEncodingError{Position: i, Char: rune(c)}
		}
		scores = append(scores, int(c)-33)
	}
	return New(scores)
}

// Len returns the number of quality scores.
func (s *Scores) Len() int {
	return len(s.Values)
}

// ScoreAt returns the quality score at a specific position.
func (s *Scores) ScoreAt(index int) (int, bool) {
	if index < 0 || index >= len(s.Values) {
		return 0, false
	}
	return s.Values[index], true
}

// Slice returns the scores in [start, end).
func (s *Scores) Slice(start, end int) (*Scores, error) {
	if start < 0 {
		return nil, fmt.Errorf("start index must be non-negative")
	}
	if end <= start {
		return nil, fmt.Errorf("end must be greater than start")
	}
	if end > len(s.Values) {
		return nil, fmt.Errorf("end must not exceed length")
	}

	slicedValues := make([]int, end-start)
	copy(slicedValues, s.Values[start:end])

	return &Scores{Values: slicedValues}, nil
}

// Reverse returns the scores in reverse order, matching a reverse
// complemented read.
func (s *Scores) Reverse() *Scores {
	n := len(s.Values)
	values := make([]int, n)
	for i, score := range s.Values {
		values[n-1-i] = score
	}
	return &Scores{Values: values}
}

// TrimEnds returns the bounds [start, end) left after dropping the bases
// below threshold at either end. end <= start means no base reaches it.
func (s *Scores) TrimEnds(threshold int) (int, int) {
	n := len(s.Values)

	trimStart := n
	for i := 0; i < n; i++ {
		if s.Values[i] >= threshold {
			trimStart = i
			break
		}
	}

	trimEnd := trimStart
	for i := n - 1; i >= trimStart; i-- {
		if s.Values[i] >= threshold {
			trimEnd = i + 1
			break
		}
	}

	return trimStart, trimEnd
}

// ToPhred33 encodes quality scores to Phred+33 format.
func (s *Scores) ToPhred33() string {
	result := make([]byte, len(s.Values))
	for i, score := range s.Values {
		result[i] = byte(score + 33)
	}
	return string(result)
}
