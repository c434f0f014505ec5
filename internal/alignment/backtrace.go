package alignment

import (
	"fmt"

	"github.com/aria-lang/seqdiff-go/internal/sequence"
)

// backtrace follows predecessors from (m,n) to (0,0), emitting one column per
// step. Columns come out last-first and are reversed before returning. Rows
// carry the canonical upper-case symbol of each code.
func backtrace(g *grid, l *lattice, limit int) (*Alignment, error) {
	capacity := g.m + g.n
	if capacity > limit {
		capacity = limit
	}
	a := &Alignment{
		Top:     make([]byte, 0, capacity),
		Mid:     make([]byte, 0, capacity),
		Bottom:  make([]byte, 0, capacity),
		Classes: make([]Class, 0, capacity),
		Len1:    g.m,
		Len2:    g.n,
		Mode:    g.mode,
	}

	var sum Cost
	i, j := g.m, g.n
	for i > 0 || j > 0 {
		if len(a.Top) >= limit {
			return nil, &OverflowError{Limit: limit}
		}

		switch l.from[g.index(i, j)] {
		case Diagonal:
			w, c := g.diag(i-1, j-1)
			sum = sum.Add(w)
			a.push(g.s1[i-1].Symbol(), c, g.s2[j-1].Symbol())
			i--
			j--
		case Up:
			sum = sum.Add(g.down(i-1, j))
			a.push(g.s1[i-1].Symbol(), Indel, sequence.Gap)
			i--
		case Left:
			sum = sum.Add(g.right(i, j-1))
			a.push(sequence.Gap, Indel, g.s2[j-1].Symbol())
			j--
		default:
			return nil, fmt.Errorf("alignment: cell (%d,%d) has no predecessor", i, j)
		}
	}

	if want := l.cost[g.index(g.m, g.n)]; sum != want {
		return nil, fmt.Errorf("alignment: path cost %+v disagrees with search cost %+v", sum, want)
	}
	a.Cost = sum
	a.reverse()
	return a, nil
}

func (a *Alignment) push(top byte, c Class, bottom byte) {
	a.Top = append(a.Top, top)
	a.Mid = append(a.Mid, c.Mark())
	a.Bottom = append(a.Bottom, bottom)
	a.Classes = append(a.Classes, c)
}

func (a *Alignment) reverse() {
	for i, j := 0, len(a.Top)-1; i < j; i, j = i+1, j-1 {
		a.Top[i], a.Top[j] = a.Top[j], a.Top[i]
		a.Mid[i], a.Mid[j] = a.Mid[j], a.Mid[i]
		a.Bottom[i], a.Bottom[j] = a.Bottom[j], a.Bottom[i]
		a.Classes[i], a.Classes[j] = a.Classes[j], a.Classes[i]
	}
}
