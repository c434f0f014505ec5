package alignment

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/aria-lang/seqdiff-go/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t testing.TB, mode Mode) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Mode = mode
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	return e
}

func TestPenaltyTable(t *testing.T) {
	table, err := NewPenaltyTable(DefaultPenalties())
	require.NoError(t, err)

	t.Run("symmetric with zero diagonal", func(t *testing.T) {
		for a := sequence.CodeA; a <= sequence.CodeN; a++ {
			for b := sequence.CodeA; b <= sequence.CodeN; b++ {
				pab, cab, err := table.Lookup(a, b)
				require.NoError(t, err)
				pba, cba, err := table.Lookup(b, a)
				require.NoError(t, err)
				assert.Equal(t, pab, pba, "%c/%c", a.Symbol(), b.Symbol())
				assert.Equal(t, cab, cba, "%c/%c", a.Symbol(), b.Symbol())
			}
			p, c, _ := table.Lookup(a, a)
			assert.Equal(t, 0, p)
			assert.Equal(t, Match, c)
		}
	})

	tests := []struct {
		name  string
		a, b  byte
		class Class
		want  int
	}{
		{"definite mismatch", 'A', 'C', Substitution, 4},
		{"N against base", 'N', 'G', Ambiguity, 0},
		{"R contains A", 'A', 'R', Ambiguity, 0},
		{"R excludes C", 'C', 'R', Substitution, 4},
		{"disjoint codes", 'M', 'K', Substitution, 4},
		{"overlapping codes", 'M', 'V', Ambiguity, 0},
		{"B excludes A", 'A', 'B', Substitution, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := sequence.Encode(tt.a)
			b, _ := sequence.Encode(tt.b)
			p, c, err := table.Lookup(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.class, c)
			assert.Equal(t, tt.want, p)
		})
	}

	t.Run("invalid code", func(t *testing.T) {
		_, _, err := table.Lookup(sequence.Invalid, sequence.CodeA)
		require.Error(t, err)
		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, AlphabetViolation, kind)
	})
}

func TestPenaltiesValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Penalties
		wantErr bool
	}{
		{"defaults", DefaultPenalties(), false},
		{"zero indel", Penalties{Indel: 0, Substitution: 4}, true},
		{"ambiguity above substitution", Penalties{Indel: 5, Substitution: 1, Ambiguity: 2}, true},
		{"negative substitution", Penalties{Indel: 5, Substitution: -1}, true},
		{"weighted ambiguity", Penalties{Indel: 5, Substitution: 4, Ambiguity: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPenaltyTable(tt.p)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	seq := "ACGTACGTTGCANRYACG"
	for _, mode := range []Mode{Dovetail, Bounded, Global} {
		t.Run(mode.String(), func(t *testing.T) {
			aln, err := newTestEngine(t, mode).Align(seq, seq)
			require.NoError(t, err)

			assert.Equal(t, Cost{}, aln.Cost)
			assert.Equal(t, len(seq), aln.Length())
			assert.Equal(t, len(seq), aln.Count(Match))
			assert.Equal(t, strings.Repeat(" ", len(seq)), string(aln.Mid))
			assert.Equal(t, seq, string(aln.Top))
			assert.Equal(t, seq, string(aln.Bottom))
		})
	}
}

func TestPureInsertion(t *testing.T) {
	t.Run("global charges the extra base", func(t *testing.T) {
		aln, err := newTestEngine(t, Global).Align("ACGT", "AACGT")
		require.NoError(t, err)

		assert.Equal(t, 5, aln.Penalty())
		assert.Equal(t, 5, aln.Length())
		assert.Equal(t, 1, aln.Count(Indel))
		assert.Equal(t, 0, aln.Count(Substitution))
		for k, c := range aln.Classes {
			if c == Indel {
				assert.Equal(t, Seq2, aln.Side(k))
				assert.Equal(t, byte('A'), aln.Bottom[k])
			}
		}
	})

	t.Run("dovetail treats it as an overhang", func(t *testing.T) {
		aln, err := newTestEngine(t, Dovetail).Align("ACGT", "AACGT")
		require.NoError(t, err)

		assert.Equal(t, Cost{Penalty: 0, Overhang: 1}, aln.Cost)
		assert.Equal(t, " ACGT", string(aln.Top))
		assert.Equal(t, "-    ", string(aln.Mid))
		assert.Equal(t, "AACGT", string(aln.Bottom))
		assert.Equal(t, Seq2, aln.Side(0))
	})
}

func TestAmbiguityTolerance(t *testing.T) {
	e := newTestEngine(t, Dovetail)
	aln, err := e.Align("ACGT", "ANGT")
	require.NoError(t, err)

	assert.Equal(t, []Class{Match, Ambiguity, Match, Match}, aln.Classes)
	assert.Equal(t, " |  ", string(aln.Mid))
	assert.LessOrEqual(t, aln.Penalty(), e.Table().Penalties().Substitution)
	assert.Equal(t, 0, aln.Count(Substitution))
}

func TestLowerCaseRowsAreCanonical(t *testing.T) {
	e := newTestEngine(t, Global)
	aln, err := e.Align("acgtn", "ACrTN")
	require.NoError(t, err)

	assert.Equal(t, "ACGTN", string(aln.Top))
	assert.Equal(t, "ACRTN", string(aln.Bottom))
	assert.Equal(t, []Class{Match, Match, Ambiguity, Match, Match}, aln.Classes)
}

func TestOffsetTolerance(t *testing.T) {
	aln, err := newTestEngine(t, Dovetail).Align("TTTTACGT", "ACGTGGGG")
	require.NoError(t, err)

	assert.Equal(t, Cost{Penalty: 0, Overhang: 8}, aln.Cost)
	assert.Equal(t, "TTTTACGT    ", string(aln.Top))
	assert.Equal(t, "----    ----", string(aln.Mid))
	assert.Equal(t, "    ACGTGGGG", string(aln.Bottom))
	assert.Equal(t, "4D4M4I", aln.ToCIGAR())
}

func TestSingleSubstitution(t *testing.T) {
	aln, err := newTestEngine(t, Global).Align("ACGTACGT", "ACGAACGT")
	require.NoError(t, err)

	assert.Equal(t, 4, aln.Penalty())
	assert.Equal(t, 1, aln.Count(Substitution))
	assert.Equal(t, "   *    ", string(aln.Mid))
}

func TestBoundedWindow(t *testing.T) {
	tests := []struct {
		name      string
		m, n      int
		explicit  int
		wantRight int
		wantDown  int
	}{
		{"second longer", 20, 50, 0, 30, 2},
		{"first longer", 50, 20, 0, 2, 30},
		{"equal", 40, 40, 0, 4, 0},
		{"explicit", 40, 40, 7, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			right, down := leadWindows(tt.m, tt.n, tt.explicit)
			assert.Equal(t, tt.wantRight, right)
			assert.Equal(t, tt.wantDown, down)
		})
	}

	t.Run("overhang beyond window is charged", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Mode = Bounded
		cfg.LeadWindow = 2
		e, err := NewEngine(cfg)
		require.NoError(t, err)

		aln, err := e.Align("TTTTACGT", "ACGTGGGG")
		require.NoError(t, err)
		assert.Greater(t, aln.Penalty(), 0)

		score, err := e.Score("TTTTACGT", "ACGTGGGG")
		require.NoError(t, err)
		assert.Equal(t, score, aln.Cost)
	})
}

func TestEmptySequences(t *testing.T) {
	aln, err := newTestEngine(t, Dovetail).Align("", "ACG")
	require.NoError(t, err)
	assert.Equal(t, Cost{Overhang: 3}, aln.Cost)
	assert.Equal(t, 3, aln.Count(Indel))

	aln, err = newTestEngine(t, Global).Align("ACG", "")
	require.NoError(t, err)
	assert.Equal(t, 15, aln.Penalty())
	assert.Equal(t, Seq1, aln.Side(0))
}

func TestErrors(t *testing.T) {
	t.Run("alphabet violation", func(t *testing.T) {
		_, err := newTestEngine(t, Dovetail).Align("ACGT", "ACXT")
		require.Error(t, err)

		var ae *AlphabetError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, 2, ae.Sequence)
		assert.Equal(t, 2, ae.Position)
		assert.Equal(t, byte('X'), ae.Found)
	})

	t.Run("allocation failure", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxCells = 10
		e, err := NewEngine(cfg)
		require.NoError(t, err)

		_, err = e.Align("ACGT", "ACGT")
		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, AllocationFailure, kind)
	})

	t.Run("alignment overflow", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxAlignLength = 3
		e, err := NewEngine(cfg)
		require.NoError(t, err)

		_, err = e.Align("ACGT", "ACGT")
		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, AlignmentOverflow, kind)

		cfg.MaxAlignLength = 4
		e, err = NewEngine(cfg)
		require.NoError(t, err)
		_, err = e.Align("ACGT", "ACGT")
		require.NoError(t, err)
	})

	t.Run("kinds", func(t *testing.T) {
		var err error = &QueueExhaustedError{I: 3, J: 4}
		kind, ok := KindOf(err)
		require.True(t, ok)
		assert.Equal(t, PriorityQueueExhaustion, kind)
		assert.Contains(t, err.Error(), "(3,4)")

		_, ok = KindOf(assert.AnError)
		assert.False(t, ok)
	})
}

func TestDeterminism(t *testing.T) {
	e := newTestEngine(t, Dovetail)
	first, err := e.Align("GATTACAGATTACA", "TACAGGTTACAGAT")
	require.NoError(t, err)

	for k := 0; k < 5; k++ {
		again, err := e.Align("GATTACAGATTACA", "TACAGGTTACAGAT")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// bruteForce finds the cheapest path of the edit graph by exhaustive
// recursion over every cell, with edge weights written out directly from the
// boundary rules. lead is the explicit Bounded lead window; 0 estimates it
// from the lengths.
func bruteForce(s1, s2 string, mode Mode, p Penalties, lead int) Cost {
	m, n := len(s1), len(s2)

	// free leading overhang along row 0 (seq2 leads) and column 0 (seq1 leads)
	var seq2Lead, seq1Lead int
	switch {
	case lead > 0:
		seq2Lead, seq1Lead = lead, lead
	case n > m:
		seq2Lead, seq1Lead = n-m, m/10
	default:
		seq2Lead, seq1Lead = n/10, m-n
	}

	free := Cost{Overhang: 1}
	indel := Cost{Penalty: p.Indel}

	// insertion: (i,j) -> (i,j+1)
	ins := func(i, j int) Cost {
		switch {
		case mode == Dovetail && (i == 0 || i == m):
			return free
		case mode == Bounded && (i == m || (i == 0 && j < seq2Lead)):
			return free
		}
		return indel
	}
	// deletion: (i,j) -> (i+1,j)
	del := func(i, j int) Cost {
		switch {
		case mode == Dovetail && (j == 0 || j == n):
			return free
		case mode == Bounded && (j == n || (j == 0 && i < seq1Lead)):
			return free
		}
		return indel
	}
	sub := func(a, b byte) Cost {
		ca, _ := sequence.Encode(a)
		cb, _ := sequence.Encode(b)
		switch {
		case a == b:
			return Cost{}
		case sequence.Compatible(ca, cb) && (ca.IsAmbiguous() || cb.IsAmbiguous()):
			return Cost{Penalty: p.Ambiguity}
		default:
			return Cost{Penalty: p.Substitution}
		}
	}

	memo := make(map[[2]int]Cost)
	var walk func(i, j int) Cost
	walk = func(i, j int) Cost {
		if i == m && j == n {
			return Cost{}
		}
		if c, ok := memo[[2]int{i, j}]; ok {
			return c
		}
		var best *Cost
		try := func(c Cost) {
			if best == nil || c.Less(*best) {
				best = &c
			}
		}
		if j < n {
			try(ins(i, j).Add(walk(i, j+1)))
		}
		if i < m {
			try(del(i, j).Add(walk(i+1, j)))
		}
		if i < m && j < n {
			try(sub(s1[i], s2[j]).Add(walk(i+1, j+1)))
		}
		memo[[2]int{i, j}] = *best
		return *best
	}
	return walk(0, 0)
}

func randomSeq(rng *rand.Rand, n int, alphabet string) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

func TestOptimality(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		name      string
		mode      Mode
		penalties Penalties
		lead      int
		maxLen    int
	}{
		{"dovetail", Dovetail, DefaultPenalties(), 0, 6},
		{"bounded", Bounded, DefaultPenalties(), 0, 6},
		{"bounded with long reads", Bounded, DefaultPenalties(), 0, 12},
		{"bounded explicit window", Bounded, DefaultPenalties(), 2, 6},
		{"global", Global, DefaultPenalties(), 0, 6},
		{"dovetail custom penalties", Dovetail, Penalties{Indel: 3, Substitution: 2, Ambiguity: 1}, 0, 6},
		{"bounded custom penalties", Bounded, Penalties{Indel: 3, Substitution: 2, Ambiguity: 1}, 0, 6},
		{"global custom penalties", Global, Penalties{Indel: 3, Substitution: 2, Ambiguity: 1}, 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = tt.mode
			cfg.Penalties = tt.penalties
			cfg.LeadWindow = tt.lead
			e, err := NewEngine(cfg)
			require.NoError(t, err)

			for k := 0; k < 150; k++ {
				s1 := randomSeq(rng, rng.Intn(tt.maxLen), "ACGTRN")
				s2 := randomSeq(rng, rng.Intn(tt.maxLen), "ACGTRN")

				aln, err := e.Align(s1, s2)
				require.NoError(t, err)
				assert.Equal(t, bruteForce(s1, s2, tt.mode, tt.penalties, tt.lead), aln.Cost, "%q vs %q", s1, s2)
			}
		})
	}
}

func TestScoreMatchesSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for _, mode := range []Mode{Dovetail, Bounded, Global} {
		e := newTestEngine(t, mode)
		t.Run(mode.String(), func(t *testing.T) {
			for k := 0; k < 100; k++ {
				s1 := randomSeq(rng, 1+rng.Intn(40), "ACGTMRWSYKVHDBN")
				s2 := randomSeq(rng, 1+rng.Intn(40), "ACGT")

				aln, err := e.Align(s1, s2)
				require.NoError(t, err)
				score, err := e.Score(s1, s2)
				require.NoError(t, err)
				assert.Equal(t, score, aln.Cost)

				// length invariant
				require.Len(t, aln.Mid, aln.Length())
				require.Len(t, aln.Bottom, aln.Length())
				require.Len(t, aln.Classes, aln.Length())

				top, bottom := aln.Aligned()
				assert.Equal(t, s1, strings.ReplaceAll(top, "-", ""))
				assert.Equal(t, s2, strings.ReplaceAll(bottom, "-", ""))
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Dovetail, false},
		{"Dovetail", Dovetail, false},
		{"bounded", Bounded, false},
		{"global", Global, false},
		{"local", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func BenchmarkAlign(b *testing.B) {
	s1 := strings.Repeat("ACGT", 100)
	s2 := strings.Repeat("AGCT", 100)
	e := newTestEngine(b, Dovetail)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Align(s1, s2)
	}
}

func BenchmarkScore(b *testing.B) {
	s1 := strings.Repeat("ACGT", 100)
	s2 := strings.Repeat("AGCT", 100)
	e := newTestEngine(b, Dovetail)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Score(s1, s2)
	}
}
