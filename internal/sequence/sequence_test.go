package sequence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		bases   string
		wantErr bool
		errType interface{}
	}{
		{
			name:    "read",
			bases:   "TTTTACGTGGGG",
			wantErr: false,
		},
		{
			name:    "lower case is folded",
			bases:   "gattaca",
			wantErr: false,
		},
		{
			name:    "all ambiguity codes",
			bases:   "MRWSYKVHDBN",
			wantErr: false,
		},
		{
			name:    "empty",
			bases:   "",
			wantErr: true,
			errType: &EmptySequenceError{},
		},
		{
			name:    "unknown symbol",
			bases:   "ACGTXACGT",
			wantErr: true,
			errType: &InvalidBaseError{},
		},
		{
			name:    "RNA base U",
			bases:   "AUGC",
			wantErr: true,
			errType: &InvalidBaseError{},
		},
		{
			name:    "gap character",
			bases:   "AT-GC",
			wantErr: true,
			errType: &InvalidBaseError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(tt.bases)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errType != nil {
					assert.IsType(t, tt.errType, err)
				}
			} else {
				require.NoError(t, err)
				assert.NotNil(t, seq)
				assert.Equal(t, len(tt.bases), seq.Len())
			}
		})
	}
}

func TestInvalidBasePosition(t *testing.T) {
	_, err := New("ACGTZ")
	require.Error(t, err)

	var ibe *InvalidBaseError
	require.ErrorAs(t, err, &ibe)
	assert.Equal(t, 4, ibe.Position)
	assert.Equal(t, 'Z', ibe.Found)
}

func TestComplement(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		want     string
	}{
		{"canonical", "GATTACA", "CTAATGT"},
		{"N is its own complement", "ANNT", "TNNA"},
		{"two-base codes", "MRWSYK", "KYWSRM"},
		{"three-base codes", "VHDB", "BDHV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []byte(tt.sequence)
			for i := range got {
				got[i] = ComplementBase(got[i])
			}
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		want     string
	}{
		{"canonical", "TTTTACGT", "ACGTAAAA"},
		{"EcoRI site", "GAATTC", "GAATTC"},
		{"single base", "G", "C"},
		{"ambiguous", "ACRN", "NYGT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(tt.sequence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, seq.ReverseComplement().Bases)
		})
	}
}

func TestComplementIsInvolution(t *testing.T) {
	for i := 0; i < len(Alphabet); i++ {
		b := Alphabet[i]
		assert.Equal(t, b, ComplementBase(ComplementBase(b)), "symbol %c", b)
	}
	assert.Equal(t, byte('t'), ComplementBase('a'))
}

func TestCountAmbiguous(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		want     int
	}{
		{"none", "GATTACA", 0},
		{"only N", "NNNN", 4},
		{"mixed codes", "ARYNGC", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(tt.sequence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, seq.CountAmbiguous())
		})
	}
}

func TestSubsequence(t *testing.T) {
	seq, err := New("TTACGGAA")
	require.NoError(t, err)

	tests := []struct {
		name    string
		start   int
		end     int
		want    string
		wantErr bool
	}{
		{"trimmed ends", 2, 6, "ACGG", false},
		{"whole read", 0, 8, "TTACGGAA", false},
		{"last base", 7, 8, "A", false},
		{"negative start", -1, 3, "", true},
		{"empty range", 3, 3, "", true},
		{"past the end", 5, 9, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := seq.Subsequence(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, sub.Bases)
			}
		})
	}
}

func TestCodes(t *testing.T) {
	for i := 0; i < len(Alphabet); i++ {
		c, ok := Encode(Alphabet[i])
		require.True(t, ok)
		assert.Equal(t, Code(i+1), c)
		assert.Equal(t, Alphabet[i], c.Symbol())
		assert.Equal(t, i >= 4, c.IsAmbiguous())
	}

	_, ok := Encode('X')
	assert.False(t, ok)
	assert.Equal(t, byte('?'), Invalid.Symbol())
	assert.True(t, Compatible(CodeA, CodeR))
	assert.False(t, Compatible(CodeM, CodeK))
	assert.Equal(t, []byte("AG"), Expand('R'))
	assert.Equal(t, []byte("ACGT"), Expand('n'))
}

func TestToFASTA(t *testing.T) {
	tests := []struct {
		name  string
		seq   *Sequence
		width int
		want  string
	}{
		{"with description", &Sequence{Bases: "ATGC", ID: "seq1", Description: "test read"}, 0, ">seq1 test read\nATGC\n"},
		{"wrapped", &Sequence{Bases: "ACGTACGTAC", ID: "r"}, 4, ">r\nACGT\nACGT\nAC\n"},
		{"unnamed", &Sequence{Bases: "NN"}, 60, ">sequence\nNN\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seq.ToFASTA(tt.width))
		})
	}
}

func BenchmarkNew(b *testing.B) {
	bases := strings.Repeat("acgtnRYKM", 1000)
	for b.Loop() {
		_, _ = New(bases)
	}
}

func BenchmarkReverseComplement(b *testing.B) {
	seq, _ := New(strings.Repeat("GATTACA", 1000))
	for b.Loop() {
		_ = seq.ReverseComplement()
	}
}
