// Package alignment finds least-penalty overlap alignments between two
// nucleotide sequences.
//
// The search runs Dijkstra's algorithm over an implicit edit graph whose
// cells are prefix pairs (i, j). Down, Right and Diagonal edges consume a
// base of sequence 1, sequence 2, or both. Edges along the outermost rows and
// columns can be free, which lets reads overhang one another at either end
// without penalty.
package alignment

import (
	"fmt"

	"github.com/aria-lang/seqdiff-go/internal/sequence"
)

// Class labels one aligned column.
type Class uint8

const (
	// Match is an identical pair of symbols.
	Match Class = iota
	// Substitution is a pair whose base sets do not intersect.
	Substitution
	// Ambiguity is a pair involving an ambiguity code compatible with the other side.
	Ambiguity
	// Indel is a base opposite a gap.
	Indel
)

func (c Class) String() string {
	switch c {
	case Match:
		return "match"
	case Substitution:
		return "substitution"
	case Ambiguity:
		return "ambiguity"
	case Indel:
		return "indel"
	default:
		return "unknown"
	}
}

// Mark returns the annotation-row symbol for c.
func (c Class) Mark() byte {
	switch c {
	case Match:
		return MatchMark
	case Ambiguity:
		return AmbiguityMark
	case Substitution:
		return SubstitutionMark
	default:
		return IndelMark
	}
}

// Annotation row symbols.
const (
	MatchMark        byte = ' '
	AmbiguityMark    byte = '|'
	SubstitutionMark byte = '*'
	IndelMark        byte = '-'
)

// Penalties holds the unit costs of the edit model.
type Penalties struct {
	Indel        int `mapstructure:"indel" json:"indel" yaml:"indel" validate:"gt=0"`
	Substitution int `mapstructure:"substitution" json:"substitution" yaml:"substitution" validate:"gte=0"`
	Ambiguity    int `mapstructure:"ambiguity" json:"ambiguity" yaml:"ambiguity" validate:"gte=0"`
}

// DefaultPenalties returns indel 5, substitution 4, and free ambiguity matches.
func DefaultPenalties() Penalties {
	return Penalties{
		Indel:        5,
		Substitution: 4,
		Ambiguity:    0,
	}
}

// Validate checks 0 <= Ambiguity <= Substitution and Indel > 0.
func (p Penalties) Validate() error {
	if p.Indel <= 0 {
		return fmt.Errorf("indel penalty must be positive")
	}
	if p.Substitution < 0 || p.Ambiguity < 0 {
		return fmt.Errorf("substitution and ambiguity penalties must be non-negative")
	}
	if p.Ambiguity > p.Substitution {
		return fmt.Errorf("ambiguity penalty %d exceeds substitution penalty %d", p.Ambiguity, p.Substitution)
	}
	return nil
}

// PenaltyTable maps an ordered pair of codes to a penalty and class.
// It is immutable once built and safe to share between goroutines.
type PenaltyTable struct {
	penalties Penalties
	weight    [sequence.NumCodes][sequence.NumCodes]int
	class     [sequence.NumCodes][sequence.NumCodes]Class
}

// NewPenaltyTable builds the 15x15 table for p.
func NewPenaltyTable(p Penalties) (*PenaltyTable, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	t := &PenaltyTable{penalties: p}
	for a := sequence.CodeA; a <= sequence.CodeN; a++ {
		for b := sequence.CodeA; b <= sequence.CodeN; b++ {
			var c Class
			switch {
			case a == b:
				c = Match
			case !sequence.Compatible(a, b):
				c = Substitution
			case a.IsAmbiguous() || b.IsAmbiguous():
				c = Ambiguity
			default:
				c = Substitution
			}
			t.class[a][b] = c
			t.weight[a][b] = p.weightOf(c)
		}
	}
	return t, nil
}

func (p Penalties) weightOf(c Class) int {
	switch c {
	case Substitution:
		return p.Substitution
	case Ambiguity:
		return p.Ambiguity
	case Indel:
		return p.Indel
	default:
		return 0
	}
}

// Penalties returns the unit costs the table was built from.
func (t *PenaltyTable) Penalties() Penalties {
	return t.penalties
}

// Lookup returns the penalty and class of aligning a against b.
func (t *PenaltyTable) Lookup(a, b sequence.Code) (int, Class, error) {
	if !a.Valid() {
		return 0, 0, &AlphabetError{Sequence: 1, Position: -1, Found: a.Symbol()}
	}
	if !b.Valid() {
		return 0, 0, &AlphabetError{Sequence: 2, Position: -1, Found: b.Symbol()}
	}
	return t.weight[a][b], t.class[a][b], nil
}

// lookup is Lookup for codes already checked by encode.
func (t *PenaltyTable) lookup(a, b sequence.Code) (int, Class) {
	return t.weight[a][b], t.class[a][b]
}

// String returns a string representation of the penalties.
func (p Penalties) String() string {
	return fmt.Sprintf("Penalties { indel: %d, substitution: %d, ambiguity: %d }",
		p.Indel, p.Substitution, p.Ambiguity)
}
