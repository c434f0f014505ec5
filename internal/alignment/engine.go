package alignment

import (
	"log/slog"
)

// Default resource limits.
const (
	DefaultMaxAlignLength = 16000
	DefaultMaxCells       = 64_000_000
)

// Config controls an Engine.
type Config struct {
	Penalties Penalties

	// Mode selects the boundary model.
	Mode Mode

	// LeadWindow overrides the estimated lead window in Bounded mode.
	// Zero means estimate it from the sequence lengths.
	LeadWindow int

	// MaxAlignLength bounds the number of alignment columns.
	// Zero means len1+len2, which always suffices.
	MaxAlignLength int

	// MaxCells bounds (len1+1)*(len2+1). Zero disables the check.
	MaxCells int

	// Logger receives debug summaries of each search. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a Dovetail configuration with the default penalties and limits.
func DefaultConfig() Config {
	return Config{
		Penalties:      DefaultPenalties(),
		Mode:           Dovetail,
		MaxAlignLength: DefaultMaxAlignLength,
		MaxCells:       DefaultMaxCells,
	}
}

// Engine aligns sequence pairs. It holds only immutable state and may be
// shared between goroutines; each call allocates its own search buffers.
type Engine struct {
	table  *PenaltyTable
	cfg    Config
	logger *slog.Logger
}

// NewEngine builds an engine and its penalty table.
func NewEngine(cfg Config) (*Engine, error) {
	table, err := NewPenaltyTable(cfg.Penalties)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{table: table, cfg: cfg, logger: logger}, nil
}

// Table returns the engine's penalty table.
func (e *Engine) Table() *PenaltyTable {
	return e.table
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Align returns a least-cost alignment of seq1 (top) against seq2 (bottom).
// Both sequences must be drawn from the IUPAC alphabet in either case; the
// alignment rows are always upper case.
func (e *Engine) Align(seq1, seq2 string) (*Alignment, error) {
	s1, err := encode(seq1, 1)
	if err != nil {
		return nil, err
	}
	s2, err := encode(seq2, 2)
	if err != nil {
		return nil, err
	}

	g := newGrid(s1, s2, e.table, e.cfg.Mode, e.cfg.LeadWindow)
	if e.cfg.MaxCells > 0 && g.cells() > e.cfg.MaxCells {
		return nil, &AllocationError{Cells: g.cells(), Limit: e.cfg.MaxCells}
	}

	l, err := search(g)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("search complete",
		"len1", g.m,
		"len2", g.n,
		"mode", g.mode.String(),
		"cells", g.cells(),
		"settled", l.settled,
		"penalty", l.cost[g.index(g.m, g.n)].Penalty)

	return backtrace(g, l, e.maxAlignLength(g))
}

func (e *Engine) maxAlignLength(g *grid) int {
	if e.cfg.MaxAlignLength > 0 {
		return e.cfg.MaxAlignLength
	}
	return g.m + g.n
}
