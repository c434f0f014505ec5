package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/seqdiff-go/internal/sequence"
)

// Direction is the edge a cell was reached by.
type Direction uint8

const (
	// None marks the origin and unreached cells.
	None Direction = iota
	// Diagonal consumes a base of both sequences.
	Diagonal
	// Up consumes a base of sequence 1 only.
	Up
	// Left consumes a base of sequence 2 only.
	Left
)

// Mode selects which boundary edges are free.
type Mode int

const (
	// Dovetail makes every edge on the outermost rows and columns free.
	Dovetail Mode = iota
	// Bounded keeps trailing overhangs free but limits free leading
	// overhangs to a window.
	Bounded
	// Global charges every gap.
	Global
)

func (m Mode) String() string {
	switch m {
	case Dovetail:
		return "dovetail"
	case Bounded:
		return "bounded"
	case Global:
		return "global"
	default:
		return "unknown"
	}
}

// ParseMode parses the String form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dovetail", "overlap":
		return Dovetail, nil
	case "bounded":
		return Bounded, nil
	case "global":
		return Global, nil
	default:
		return 0, fmt.Errorf("unknown alignment mode %q", s)
	}
}

// Cost orders paths by penalty, then by how many free overhang columns they use.
// Preferring the smaller overhang keeps zero-penalty all-gap paths from tying
// with real overlaps.
type Cost struct {
	Penalty  int `json:"penalty" yaml:"penalty"`
	Overhang int `json:"overhang" yaml:"overhang"`
}

// Less reports whether c is strictly cheaper than o.
func (c Cost) Less(o Cost) bool {
	if c.Penalty != o.Penalty {
		return c.Penalty < o.Penalty
	}
	return c.Overhang < o.Overhang
}

// Add returns the component-wise sum.
func (c Cost) Add(o Cost) Cost {
	return Cost{Penalty: c.Penalty + o.Penalty, Overhang: c.Overhang + o.Overhang}
}

var freeEdge = Cost{Overhang: 1}

// grid is the implicit edit graph for one call. Cell (i,j) is stored at
// i*(n+1)+j.
type grid struct {
	s1, s2 []sequence.Code
	m, n   int

	table *PenaltyTable
	indel Cost
	mode  Mode

	rightWindow int
	downWindow  int
}

func newGrid(s1, s2 []sequence.Code, table *PenaltyTable, mode Mode, leadWindow int) *grid {
	g := &grid{
		s1:    s1,
		s2:    s2,
		m:     len(s1),
		n:     len(s2),
		table: table,
		indel: Cost{Penalty: table.Penalties().Indel},
		mode:  mode,
	}
	if mode == Bounded {
		g.rightWindow, g.downWindow = leadWindows(g.m, g.n, leadWindow)
	}
	return g
}

// leadWindows returns how far a free leading overhang may reach along row 0
// and column 0. An explicit window applies to both sides; otherwise the longer
// sequence may overhang by the length difference and the shorter by a tenth
// of the other's length.
func leadWindows(m, n, explicit int) (right, down int) {
	if explicit > 0 {
		return explicit, explicit
	}
	if n > m {
		return n - m, m / 10
	}
	return n / 10, m - n
}

func (g *grid) cells() int {
	return (g.m + 1) * (g.n + 1)
}

func (g *grid) index(i, j int) int {
	return i*(g.n+1) + j
}

func (g *grid) cell(x int) (i, j int) {
	return x / (g.n + 1), x % (g.n + 1)
}

// right is the weight of (i,j) -> (i,j+1).
func (g *grid) right(i, j int) Cost {
	switch g.mode {
	case Global:
		return g.indel
	case Bounded:
		if i == g.m || (i == 0 && j < g.rightWindow) {
			return freeEdge
		}
		return g.indel
	default:
		if i == 0 || i == g.m {
			return freeEdge
		}
		return g.indel
	}
}

// down is the weight of (i,j) -> (i+1,j).
func (g *grid) down(i, j int) Cost {
	switch g.mode {
	case Global:
		return g.indel
	case Bounded:
		if j == g.n || (j == 0 && i < g.downWindow) {
			return freeEdge
		}
		return g.indel
	default:
		if j == 0 || j == g.n {
			return freeEdge
		}
		return g.indel
	}
}

// diag is the weight and class of (i,j) -> (i+1,j+1).
func (g *grid) diag(i, j int) (Cost, Class) {
	p, c := g.table.lookup(g.s1[i], g.s2[j])
	return Cost{Penalty: p}, c
}

// encode maps a sequence to codes, reporting the first symbol with none.
func encode(s string, which int) ([]sequence.Code, error) {
	out := make([]sequence.Code, len(s))
	for k := 0; k < len(s); k++ {
		c, ok := sequence.Encode(s[k])
		if !ok {
			return nil, &AlphabetError{Sequence: which, Position: k, Found: s[k]}
		}
		out[k] = c
	}
	return out, nil
}
