package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aria-lang/seqdiff-go/internal/stats"
)

type statLine struct {
	label string
	value int
}

// WriteStats writes the labelled statistics report followed by the
// sequence lengths.
func WriteStats(w io.Writer, s *stats.Statistics, len1, len2 int) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%-25s%4d    %4d\n", "seq1 offsets:", s.Seq1.Leading, s.Seq1.Trailing)
	fmt.Fprintf(&buf, "%-25s%4d    %4d\n", "seq2 offsets:", s.Seq2.Leading, s.Seq2.Trailing)

	lines := []statLine{
		{"Matches:", s.Matches},
		{"Mismatches:", s.Mismatches()},
		{"Errors:", s.Errors()},
		{"Substitution Errors:", s.Substitutions},
		{"Indels:", s.Indels},
		{"Insertions in seq 1:", s.Seq1Inserts},
		{"Insertions in seq 2:", s.Seq2Inserts},
		{"Ambiguity substitutions:", s.Ambiguities},
		{"Ambiguities in seq 1:", s.Seq1Ambiguities},
		{"Ambiguities in seq 2:", s.Seq2Ambiguities},
	}
	if s.Translated {
		lines = append(lines, []statLine{
			{"AA substitution errors:", s.SubstitutionsTranslated},
			{"AA indels:", s.IndelsTranslated},
			{"AA insertions in seq 1:", s.Seq1InsertsTranslated},
			{"AA insertions in seq 2:", s.Seq2InsertsTranslated},
		}...)
	}
	lines = append(lines, []statLine{
		{"seq1 len:", len1},
		{"seq2 len:", len2},
	}...)

	for _, l := range lines {
		fmt.Fprintf(&buf, "%-25s%4d\n", l.label, l.value)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
