package alignment

import (
	"github.com/aria-lang/seqdiff-go/internal/pqueue"
)

type cellState uint8

const (
	unvisited cellState = iota
	frontier
	settled
)

// lattice is the per-call search state, one entry per cell.
type lattice struct {
	cost    []Cost
	from    []Direction
	state   []cellState
	settled int
}

// search settles cells in cost order until (m,n) is settled.
func search(g *grid) (*lattice, error) {
	size := g.cells()
	l := &lattice{
		cost:  make([]Cost, size),
		from:  make([]Direction, size),
		state: make([]cellState, size),
	}
	q := pqueue.New(size, Cost.Less)

	relax := func(to int, c Cost, dir Direction) {
		if l.state[to] == settled {
			return
		}
		if q.Update(to, c) {
			l.cost[to] = c
			l.from[to] = dir
			l.state[to] = frontier
		}
	}

	terminal := g.index(g.m, g.n)
	q.Update(0, Cost{})
	l.state[0] = frontier

	for {
		x, c, ok := q.Pop()
		if !ok {
			return nil, &QueueExhaustedError{I: g.m, J: g.n, Settled: l.settled}
		}
		l.state[x] = settled
		l.cost[x] = c
		l.settled++
		if x == terminal {
			return l, nil
		}

		i, j := g.cell(x)
		if j < g.n {
			relax(x+1, c.Add(g.right(i, j)), Left)
		}
		if i < g.m {
			relax(x+g.n+1, c.Add(g.down(i, j)), Up)
		}
		if i < g.m && j < g.n {
			w, _ := g.diag(i, j)
			relax(x+g.n+2, c.Add(w), Diagonal)
		}
	}
}
