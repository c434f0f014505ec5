// Package report renders alignments and their statistics: the diff listing,
// fixed-width alignment blocks, the labelled statistics report, and
// JSON/YAML documents.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/quality"
	"github.com/aria-lang/seqdiff-go/internal/stats"
)

// DiffKind names a non-matching interior column.
type DiffKind string

const (
	// Ins means sequence 2 has a base that sequence 1 lacks.
	Ins DiffKind = "ins"
	// Del means sequence 1 has a base that sequence 2 lacks.
	Del DiffKind = "del"
	// Amb is an ambiguity-compatible pair.
	Amb DiffKind = "amb"
	// Sub is a substitution.
	Sub DiffKind = "sub"
)

// Diff is one difference between the sequences. Positions are 1-based in
// each original sequence; for an indel the position on the gapped side is
// that of the next base.
type Diff struct {
	Pos1  int      `json:"pos1" yaml:"pos1"`
	Pos2  int      `json:"pos2" yaml:"pos2"`
	Kind  DiffKind `json:"kind" yaml:"kind"`
	Base1 string   `json:"base1" yaml:"base1"`
	Base2 string   `json:"base2" yaml:"base2"`

	// Qual1 and Qual2 are the Phred scores of the bases involved, set by
	// AnnotateQuality; zero when unknown or on the gapped side.
	Qual1 int `json:"qual1,omitempty" yaml:"qual1,omitempty"`
	Qual2 int `json:"qual2,omitempty" yaml:"qual2,omitempty"`
}

// Diffs lists the interior differences of aln in column order.
func Diffs(aln *alignment.Alignment, s *stats.Statistics) []Diff {
	diffs := make([]Diff, 0, s.Mismatches())
	i := 1 + s.Seq1.Leading
	j := 1 + s.Seq2.Leading

	for k := s.Begin; k < s.End; k++ {
		top, bottom := string(aln.Top[k]), string(aln.Bottom[k])

		switch aln.Classes[k] {
		case alignment.Match:
			i++
			j++
		case alignment.Indel:
			if aln.Side(k) == alignment.Seq2 {
				diffs = append(diffs, Diff{Pos1: i, Pos2: j, Kind: Ins, Base1: "-", Base2: bottom})
				j++
			} else {
				diffs = append(diffs, Diff{Pos1: i, Pos2: j, Kind: Del, Base1: top, Base2: "-"})
				i++
			}
		case alignment.Ambiguity:
			diffs = append(diffs, Diff{Pos1: i, Pos2: j, Kind: Amb, Base1: top, Base2: bottom})
			i++
			j++
		case alignment.Substitution:
			diffs = append(diffs, Diff{Pos1: i, Pos2: j, Kind: Sub, Base1: top, Base2: bottom})
			i++
			j++
		}
	}
	return diffs
}

// AnnotateQuality fills in the quality of each base named by a diff.
// Either score set may be nil.
func AnnotateQuality(diffs []Diff, q1, q2 *quality.Scores) {
	for k := range diffs {
		d := &diffs[k]
		if q1 != nil && d.Kind != Ins {
			d.Qual1, _ = q1.ScoreAt(d.Pos1 - 1)
		}
		if q2 != nil && d.Kind != Del {
			d.Qual2, _ = q2.ScoreAt(d.Pos2 - 1)
		}
	}
}

func (d Diff) String() string {
	return fmt.Sprintf("%4d %4d %s %s %s", d.Pos1, d.Pos2, d.Kind, d.Base1, d.Base2)
}

// WriteDiffs writes one line per diff.
func WriteDiffs(w io.Writer, diffs []Diff) error {
	var buf bytes.Buffer
	for _, d := range diffs {
		buf.WriteString(d.String())
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}
