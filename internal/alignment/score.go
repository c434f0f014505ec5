package alignment

// Score returns the minimum cost without building an alignment.
//
// The edit graph is acyclic in row-major order, so a two-row sweep gives the
// same optimum as the search in O(len2) memory. No cell limit applies.
func (e *Engine) Score(seq1, seq2 string) (Cost, error) {
	s1, err := encode(seq1, 1)
	if err != nil {
		return Cost{}, err
	}
	s2, err := encode(seq2, 2)
	if err != nil {
		return Cost{}, err
	}

	g := newGrid(s1, s2, e.table, e.cfg.Mode, e.cfg.LeadWindow)
	prevRow := make([]Cost, g.n+1)
	currRow := make([]Cost, g.n+1)

	// Row 0 is reachable only by Right edges.
	for j := 1; j <= g.n; j++ {
		prevRow[j] = prevRow[j-1].Add(g.right(0, j-1))
	}

	for i := 1; i <= g.m; i++ {
		currRow[0] = prevRow[0].Add(g.down(i-1, 0))

		for j := 1; j <= g.n; j++ {
			w, _ := g.diag(i-1, j-1)
			best := prevRow[j-1].Add(w)

			if up := prevRow[j].Add(g.down(i-1, j)); up.Less(best) {
				best = up
			}
			if left := currRow[j-1].Add(g.right(i, j-1)); left.Less(best) {
				best = left
			}
			currRow[j] = best
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[g.n], nil
}
