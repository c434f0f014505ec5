package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/sequence"
	"github.com/aria-lang/seqdiff-go/internal/stats"
)

// DefaultWidth is the number of alignment columns per block.
const DefaultWidth = 60

const separatorWidth = 79

type row struct {
	label string
	data  []byte
}

// Blocks writes the alignment in blocks of width columns, each block
// showing the top, annotation and bottom rows under an 18-character name
// gutter and ending with a separator line. A width of 0 means DefaultWidth.
func Blocks(w io.Writer, name1, name2 string, aln *alignment.Alignment, width int) error {
	return writeBlocks(w, width, []row{
		{name1, aln.Top},
		{"", aln.Mid},
		{name2, aln.Bottom},
	})
}

// TranslatedBlocks is Blocks with each sequence's reading-frame-1
// translation shown beside it, one amino acid per base.
func TranslatedBlocks(w io.Writer, name1, name2 string, aln *alignment.Alignment, width int) error {
	return writeBlocks(w, width, []row{
		{"", translatedRow(aln.Top)},
		{name1, aln.Top},
		{"", aln.Mid},
		{name2, aln.Bottom},
		{"", translatedRow(aln.Bottom)},
	})
}

// translatedRow lays the triplicate translation of the ungapped bases back
// over the gapped row.
func translatedRow(gapped []byte) []byte {
	bases := bytes.ReplaceAll(gapped, []byte{sequence.Gap}, nil)
	aa := stats.Translate(string(bases))

	out := make([]byte, len(gapped))
	n := 0
	for k, b := range gapped {
		if b == sequence.Gap {
			out[k] = ' '
			continue
		}
		out[k] = aa[n]
		n++
	}
	return out
}

func writeBlocks(w io.Writer, width int, rows []row) error {
	if width <= 0 {
		width = DefaultWidth
	}
	total := len(rows[0].data)
	separator := strings.Repeat("_", separatorWidth)

	var buf bytes.Buffer
	for start := 0; ; start += width {
		end := start + width
		if end > total {
			end = total
		}
		for _, r := range rows {
			fmt.Fprintf(&buf, "%-18.18s %s\n", r.label, r.data[start:end])
		}
		buf.WriteString(separator)
		buf.WriteByte('\n')

		if end >= total {
			break
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}
