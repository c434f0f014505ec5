package stats

import (
	"github.com/aria-lang/seqdiff-go/internal/sequence"
)

// Amino acid symbols returned for codons that cannot be resolved.
const (
	// UnknownAmino marks a codon containing a symbol outside the alphabet.
	UnknownAmino byte = '?'
	// AmbiguousAmino marks an IUPAC codon whose expansions disagree.
	AmbiguousAmino byte = 'X'
)

// codonTable is the standard genetic code; '*' is a stop.
var codonTable = map[string]byte{
	"AAA": 'K', "AAC": 'N', "AAG": 'K', "AAT": 'N',
	"ACA": 'T', "ACC": 'T', "ACG": 'T', "ACT": 'T',
	"AGA": 'R', "AGC": 'S', "AGG": 'R', "AGT": 'S',
	"ATA": 'I', "ATC": 'I', "ATG": 'M', "ATT": 'I',

	"CAA": 'Q', "CAC": 'H', "CAG": 'Q', "CAT": 'H',
	"CCA": 'P', "CCC": 'P', "CCG": 'P', "CCT": 'P',
	"CGA": 'R', "CGC": 'R', "CGG": 'R', "CGT": 'R',
	"CTA": 'L', "CTC": 'L', "CTG": 'L', "CTT": 'L',

	"GAA": 'E', "GAC": 'D', "GAG": 'E', "GAT": 'D',
	"GCA": 'A', "GCC": 'A', "GCG": 'A', "GCT": 'A',
	"GGA": 'G', "GGC": 'G', "GGG": 'G', "GGT": 'G',
	"GTA": 'V', "GTC": 'V', "GTG": 'V', "GTT": 'V',

	"TAA": '*', "TAC": 'Y', "TAG": '*', "TAT": 'Y',
	"TCA": 'S', "TCC": 'S', "TCG": 'S', "TCT": 'S',
	"TGA": '*', "TGC": 'C', "TGG": 'W', "TGT": 'C',
	"TTA": 'L', "TTC": 'F', "TTG": 'L', "TTT": 'F',
}

// TranslateCodon returns the amino acid for three nucleotide symbols.
// Ambiguity codes are expanded; if every expansion gives the same amino acid
// that one is returned (e.g. "GCN" is 'A'), otherwise AmbiguousAmino.
func TranslateCodon(n1, n2, n3 byte) byte {
	x1 := sequence.Expand(n1)
	x2 := sequence.Expand(n2)
	x3 := sequence.Expand(n3)
	if len(x1) == 0 || len(x2) == 0 || len(x3) == 0 {
		return UnknownAmino
	}

	var result byte
	codon := make([]byte, 3)
	for _, a := range x1 {
		for _, b := range x2 {
			for _, c := range x3 {
				codon[0], codon[1], codon[2] = a, b, c
				aa := codonTable[string(codon)]
				if result == 0 {
					result = aa
				} else if aa != result {
					return AmbiguousAmino
				}
			}
		}
	}
	return result
}

// Translate returns the protein translation of dna in reading frame 1, in
// triplicate form: each base maps to the amino acid of its codon, so
// "GATCCAGCG" becomes "DDDPPPAAA". Leftover bases translate to '?'.
func Translate(dna string) string {
	out := make([]byte, len(dna))
	whole := len(dna) / 3 * 3

	i := 0
	for ; i < whole; i += 3 {
		aa := TranslateCodon(dna[i], dna[i+1], dna[i+2])
		out[i], out[i+1], out[i+2] = aa, aa, aa
	}
	for ; i < len(dna); i++ {
		out[i] = UnknownAmino
	}
	return string(out)
}
