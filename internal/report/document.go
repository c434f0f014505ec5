package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/stats"
	"gopkg.in/yaml.v3"
)

// Format selects how a Document is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Input describes one compared sequence.
type Input struct {
	Name   string `json:"name" yaml:"name"`
	Length int    `json:"length" yaml:"length"`
}

// Rows is the alignment with gaps drawn as '-'.
type Rows struct {
	Top    string `json:"top" yaml:"top"`
	Mid    string `json:"mid" yaml:"mid"`
	Bottom string `json:"bottom" yaml:"bottom"`
}

// Summary holds the derived statistics.
type Summary struct {
	Interior   int     `json:"interior" yaml:"interior"`
	Mismatches int     `json:"mismatches" yaml:"mismatches"`
	Errors     int     `json:"errors" yaml:"errors"`
	ErrorRate  float64 `json:"error_rate" yaml:"error_rate"`
	Identity   float64 `json:"identity" yaml:"identity"`
}

// Document is the structured form of one comparison.
type Document struct {
	Seq1      Input             `json:"seq1" yaml:"seq1"`
	Seq2      Input             `json:"seq2" yaml:"seq2"`
	Mode      string            `json:"mode" yaml:"mode"`
	Cost      alignment.Cost    `json:"cost" yaml:"cost"`
	Length    int               `json:"length" yaml:"length"`
	CIGAR     string            `json:"cigar" yaml:"cigar"`
	Alignment *Rows             `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Stats     *stats.Statistics `json:"stats" yaml:"stats"`
	Summary   Summary           `json:"summary" yaml:"summary"`
	Diffs     []Diff            `json:"diffs,omitempty" yaml:"diffs,omitempty"`
}

// NewDocument assembles a Document. Rows are included when withRows is set.
func NewDocument(name1, name2 string, aln *alignment.Alignment, s *stats.Statistics, diffs []Diff, withRows bool) *Document {
	doc := &Document{
		Seq1:   Input{Name: name1, Length: aln.Len1},
		Seq2:   Input{Name: name2, Length: aln.Len2},
		Mode:   aln.Mode.String(),
		Cost:   aln.Cost,
		Length: aln.Length(),
		CIGAR:  aln.ToCIGAR(),
		Stats:  s,
		Summary: Summary{
			Interior:   s.Interior(),
			Mismatches: s.Mismatches(),
			Errors:     s.Errors(),
			ErrorRate:  s.ErrorRate(),
			Identity:   s.Identity(),
		},
		Diffs: diffs,
	}
	if withRows {
		top, bottom := aln.Aligned()
		doc.Alignment = &Rows{Top: top, Mid: string(aln.Mid), Bottom: bottom}
	}
	return doc
}

// Encode writes doc as JSON or YAML.
func Encode(w io.Writer, format Format, doc *Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}
