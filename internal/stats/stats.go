// Package stats classifies the columns of an alignment into offsets, matches
// and errors, and summarises the input sequences.
package stats

import (
	"fmt"

	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/sequence"
)

// Offsets counts the bases of one sequence that overhang the other.
type Offsets struct {
	Leading  int `json:"leading" yaml:"leading"`
	Trailing int `json:"trailing" yaml:"trailing"`
}

// Options controls FromAlignment.
type Options struct {
	// Translate enables the codon-aware counters.
	Translate bool
	// CountOffsets splits leading and trailing indel runs off as offsets.
	// When false every column is interior.
	CountOffsets bool
}

// OptionsFor returns the usual options for an alignment mode: offsets are
// counted unless every gap was charged.
func OptionsFor(mode alignment.Mode, translate bool) Options {
	return Options{Translate: translate, CountOffsets: mode != alignment.Global}
}

// Statistics is the classification of one alignment.
//
// Columns [Begin, End) are the interior; Seq1 and Seq2 hold the offsets
// outside it. An insert is attributed to the sequence carrying the base.
type Statistics struct {
	Seq1 Offsets `json:"seq1_offsets" yaml:"seq1_offsets"`
	Seq2 Offsets `json:"seq2_offsets" yaml:"seq2_offsets"`

	Begin int `json:"interior_begin" yaml:"interior_begin"`
	End   int `json:"interior_end" yaml:"interior_end"`

	Matches         int `json:"matches" yaml:"matches"`
	Substitutions   int `json:"substitutions" yaml:"substitutions"`
	Indels          int `json:"indels" yaml:"indels"`
	Seq1Inserts     int `json:"seq1_inserts" yaml:"seq1_inserts"`
	Seq2Inserts     int `json:"seq2_inserts" yaml:"seq2_inserts"`
	Ambiguities     int `json:"ambiguities" yaml:"ambiguities"`
	Seq1Ambiguities int `json:"seq1_ambiguities" yaml:"seq1_ambiguities"`
	Seq2Ambiguities int `json:"seq2_ambiguities" yaml:"seq2_ambiguities"`

	Translated              bool `json:"translated" yaml:"translated"`
	SubstitutionsTranslated int  `json:"substitutions_translated,omitempty" yaml:"substitutions_translated,omitempty"`
	IndelsTranslated        int  `json:"indels_translated,omitempty" yaml:"indels_translated,omitempty"`
	Seq1InsertsTranslated   int  `json:"seq1_inserts_translated,omitempty" yaml:"seq1_inserts_translated,omitempty"`
	Seq2InsertsTranslated   int  `json:"seq2_inserts_translated,omitempty" yaml:"seq2_inserts_translated,omitempty"`
}

// FromAlignment classifies every column of aln in one left-to-right pass.
func FromAlignment(aln *alignment.Alignment, opts Options) *Statistics {
	s := &Statistics{End: aln.Length(), Translated: opts.Translate}

	if opts.CountOffsets {
		for s.Begin < s.End && aln.Classes[s.Begin] == alignment.Indel {
			s.offset(aln, s.Begin, true)
			s.Begin++
		}
		for s.End > s.Begin && aln.Classes[s.End-1] == alignment.Indel {
			s.offset(aln, s.End-1, false)
			s.End--
		}
	}

	for k := s.Begin; k < s.End; k++ {
		switch aln.Classes[k] {
		case alignment.Match:
			s.Matches++
		case alignment.Substitution:
			s.Substitutions++
		case alignment.Ambiguity:
			s.Ambiguities++
			if sequence.IsAmbiguousSymbol(aln.Top[k]) {
				s.Seq1Ambiguities++
			} else {
				s.Seq2Ambiguities++
			}
		case alignment.Indel:
			s.Indels++
			if aln.Side(k) == alignment.Seq1 {
				s.Seq1Inserts++
			} else {
				s.Seq2Inserts++
			}
		}
	}

	if opts.Translate {
		s.countTranslated(aln)
	}
	return s
}

func (s *Statistics) offset(aln *alignment.Alignment, k int, leading bool) {
	side := &s.Seq2
	if aln.Side(k) == alignment.Seq1 {
		side = &s.Seq1
	}
	if leading {
		side.Leading++
	} else {
		side.Trailing++
	}
}

// countTranslated walks the interior in codons of sequence 1. A codon spans
// the columns after the previous codon up to its third sequence 1 base;
// columns after the last whole codon are ignored.
func (s *Statistics) countTranslated(aln *alignment.Alignment) {
	start, bases := s.Begin, 0
	for k := s.Begin; k < s.End; k++ {
		if aln.Top[k] != sequence.Gap {
			bases++
		}
		if bases < 3 {
			continue
		}
		s.codon(aln, start, k+1)
		start, bases = k+1, 0
	}
}

func (s *Statistics) codon(aln *alignment.Alignment, from, to int) {
	framed := true
	for k := from; k < to; k++ {
		if aln.Classes[k] == alignment.Indel {
			framed = false
			break
		}
	}

	if framed {
		top, bottom := aln.Top[from:to], aln.Bottom[from:to]
		if TranslateCodon(top[0], top[1], top[2]) == TranslateCodon(bottom[0], bottom[1], bottom[2]) {
			return
		}
	}

	for k := from; k < to; k++ {
		switch aln.Classes[k] {
		case alignment.Substitution:
			s.SubstitutionsTranslated++
		case alignment.Indel:
			s.IndelsTranslated++
			if aln.Side(k) == alignment.Seq1 {
				s.Seq1InsertsTranslated++
			} else {
				s.Seq2InsertsTranslated++
			}
		}
	}
}

// Interior returns the number of columns between the offsets.
func (s *Statistics) Interior() int {
	return s.End - s.Begin
}

// Mismatches returns every interior column that is not an exact match.
func (s *Statistics) Mismatches() int {
	return s.Indels + s.Ambiguities + s.Substitutions
}

// Errors returns interior indels plus substitutions.
func (s *Statistics) Errors() int {
	return s.Indels + s.Substitutions
}

// ErrorRate returns Errors per interior column, or 0 for an empty interior.
func (s *Statistics) ErrorRate() float64 {
	if s.Interior() == 0 {
		return 0.0
	}
	return float64(s.Errors()) / float64(s.Interior())
}

// Identity returns the fraction of interior columns that are exact matches.
func (s *Statistics) Identity() float64 {
	if s.Interior() == 0 {
		return 0.0
	}
	return float64(s.Matches) / float64(s.Interior())
}

func (s *Statistics) String() string {
	return fmt.Sprintf(`Statistics {
  offsets: seq1 %d/%d, seq2 %d/%d
  interior: %d
  matches: %d, substitutions: %d, ambiguities: %d, indels: %d
  error rate: %.2f%%
}`, s.Seq1.Leading, s.Seq1.Trailing, s.Seq2.Leading, s.Seq2.Trailing,
		s.Interior(), s.Matches, s.Substitutions, s.Ambiguities, s.Indels,
		s.ErrorRate()*100)
}

// SequenceStats summarises one input sequence.
type SequenceStats struct {
	Name      string  `json:"name" yaml:"name"`
	Length    int     `json:"length" yaml:"length"`
	Ambiguous int     `json:"ambiguous" yaml:"ambiguous"`
	GCContent float64 `json:"gc_content" yaml:"gc_content"`
}

// FromSequence summarises seq. GC content is measured over definite bases
// plus S, which is always G or C.
func FromSequence(seq *sequence.Sequence) *SequenceStats {
	gc, counted := 0, 0
	for i := 0; i < len(seq.Bases); i++ {
		switch seq.Bases[i] {
		case 'G', 'C', 'S':
			gc++
			counted++
		case 'A', 'T', 'W':
			counted++
		}
	}

	gcContent := 0.0
	if counted > 0 {
		gcContent = float64(gc) / float64(counted)
	}

	return &SequenceStats{
		Name:      seq.Name(),
		Length:    seq.Len(),
		Ambiguous: seq.CountAmbiguous(),
		GCContent: gcContent,
	}
}

func (s *SequenceStats) String() string {
	return fmt.Sprintf("SequenceStats { name: %s, length: %d, ambiguous: %d, GC: %.1f%% }",
		s.Name, s.Length, s.Ambiguous, s.GCContent*100)
}
