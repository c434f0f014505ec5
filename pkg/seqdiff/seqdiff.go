// Package seqdiff compares nucleotide reads by least-penalty overlap
// alignment and reports where they disagree.
//
// Example usage:
//
//	engine, err := seqdiff.New(seqdiff.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := engine.Compare(ctx, seq1, seq2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Alignment.Format())
//	fmt.Printf("errors: %d\n", res.Stats.Errors())
package seqdiff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/report"
	"github.com/aria-lang/seqdiff-go/internal/sequence"
	"github.com/aria-lang/seqdiff-go/internal/stats"
)

// Re-export types for convenience
type (
	Sequence   = sequence.Sequence
	Alignment  = alignment.Alignment
	Cost       = alignment.Cost
	Mode       = alignment.Mode
	Penalties  = alignment.Penalties
	Statistics = stats.Statistics
	Diff       = report.Diff
	Document   = report.Document
)

// Boundary modes
const (
	Dovetail = alignment.Dovetail
	Bounded  = alignment.Bounded
	Global   = alignment.Global
)

// Config controls an Engine.
type Config struct {
	alignment.Config

	// Translate enables the codon-aware statistics.
	Translate bool
}

// DefaultConfig returns the default penalties and limits in Dovetail mode.
func DefaultConfig() Config {
	return Config{Config: alignment.DefaultConfig()}
}

// Engine compares sequence pairs. It is safe for concurrent use.
type Engine struct {
	aligner   *alignment.Engine
	translate bool
	logger    *slog.Logger
}

// New builds an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	aligner, err := alignment.NewEngine(cfg.Config)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}
	return &Engine{aligner: aligner, translate: cfg.Translate, logger: cfg.Logger}, nil
}

// Mode returns the engine's boundary mode.
func (e *Engine) Mode() Mode {
	return e.aligner.Config().Mode
}

// Penalties returns the engine's unit costs.
func (e *Engine) Penalties() Penalties {
	return e.aligner.Table().Penalties()
}

// Result is one comparison.
type Result struct {
	Name1     string
	Name2     string
	Alignment *Alignment
	Stats     *Statistics
	Diffs     []Diff
}

// Compare aligns seq1 against seq2 and classifies the result.
func (e *Engine) Compare(ctx context.Context, seq1, seq2 *Sequence) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aln, err := e.aligner.Align(seq1.Bases, seq2.Bases)
	if err != nil {
		return nil, fmt.Errorf("comparing %s with %s: %w", seq1.Name(), seq2.Name(), err)
	}

	s := stats.FromAlignment(aln, stats.OptionsFor(aln.Mode, e.translate))
	res := &Result{
		Name1:     seq1.Name(),
		Name2:     seq2.Name(),
		Alignment: aln,
		Stats:     s,
		Diffs:     report.Diffs(aln, s),
	}

	e.logger.Debug("comparison complete",
		"seq1", res.Name1,
		"seq2", res.Name2,
		"penalty", aln.Penalty(),
		"errors", s.Errors(),
		"interior", s.Interior())

	return res, nil
}

// CompareReads is Compare with each diff annotated by the base qualities
// of reads that carry them.
func (e *Engine) CompareReads(ctx context.Context, r1, r2 *Read) (*Result, error) {
	res, err := e.Compare(ctx, r1.Sequence, r2.Sequence)
	if err != nil {
		return nil, err
	}
	report.AnnotateQuality(res.Diffs, r1.Quality, r2.Quality)
	return res, nil
}

// Score returns the minimum cost of aligning seq1 against seq2 without
// building the alignment.
func (e *Engine) Score(ctx context.Context, seq1, seq2 *Sequence) (Cost, error) {
	if err := ctx.Err(); err != nil {
		return Cost{}, err
	}

	cost, err := e.aligner.Score(seq1.Bases, seq2.Bases)
	if err != nil {
		return Cost{}, fmt.Errorf("scoring %s with %s: %w", seq1.Name(), seq2.Name(), err)
	}
	return cost, nil
}

// Document returns the structured form of r.
func (r *Result) Document(withRows bool) *Document {
	return report.NewDocument(r.Name1, r.Name2, r.Alignment, r.Stats, r.Diffs, withRows)
}

// Version returns the seqdiff version.
func Version() string {
	return "1.0.0"
}

// Info returns information about seqdiff.
func Info() string {
	return fmt.Sprintf(`seqdiff v%s - least-penalty overlap alignment of nucleotide reads

Features:
  - IUPAC ambiguity-aware comparison
  - Free leading and trailing overhangs (dovetail, bounded or global ends)
  - Offset, substitution, indel and ambiguity counts
  - Codon-aware error counts
  - Diff listing with base qualities from FASTQ input
  - FASTA/FASTQ input, text/JSON/YAML output
`, Version())
}
