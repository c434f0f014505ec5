package sequence

// Code is the dense code of an alphabet symbol. Definite bases come first so
// that IsAmbiguous is a single comparison.
type Code uint8

const (
	Invalid Code = iota
	CodeA
	CodeC
	CodeG
	CodeT
	CodeM
	CodeR
	CodeW
	CodeS
	CodeY
	CodeK
	CodeV
	CodeH
	CodeD
	CodeB
	CodeN
)

// NumCodes is the size of a table indexed by Code, including Invalid.
const NumCodes = 16

// Alphabet lists the symbols in code order.
const Alphabet = "ACGTMRWSYKVHDBN"

// Gap is the spacer written opposite an inserted base.
const Gap byte = ' '

var (
	codeOf  [256]Code
	symbols [NumCodes]byte
	// bit0=A bit1=C bit2=G bit3=T
	masks   [NumCodes]uint8
	comps   [NumCodes]Code
)

func init() {
	set := func(sym byte, c Code, mask uint8, comp Code) {
		codeOf[sym] = c
		codeOf[sym+'a'-'A'] = c
		symbols[c] = sym
		masks[c] = mask
		comps[c] = comp
	}
	set('A', CodeA, 1, CodeT)
	set('C', CodeC, 2, CodeG)
	set('G', CodeG, 4, CodeC)
	set('T', CodeT, 8, CodeA)
	set('M', CodeM, 1|2, CodeK)     // A/C
	set('R', CodeR, 1|4, CodeY)     // A/G
	set('W', CodeW, 1|8, CodeW)     // A/T
	set('S', CodeS, 2|4, CodeS)     // C/G
	set('Y', CodeY, 2|8, CodeR)     // C/T
	set('K', CodeK, 4|8, CodeM)     // G/T
	set('V', CodeV, 1|2|4, CodeB)   // A/C/G
	set('H', CodeH, 1|2|8, CodeD)   // A/C/T
	set('D', CodeD, 1|4|8, CodeH)   // A/G/T
	set('B', CodeB, 2|4|8, CodeV)   // C/G/T
	set('N', CodeN, 1|2|4|8, CodeN) // any
}

// Encode maps a symbol (either case) to its code.
func Encode(b byte) (Code, bool) {
	c := codeOf[b]
	return c, c != Invalid
}

// Valid reports whether c names an alphabet symbol.
func (c Code) Valid() bool {
	return c > Invalid && c < NumCodes
}

// IsAmbiguous reports whether c stands for more than one base.
func (c Code) IsAmbiguous() bool {
	return c > CodeT
}

// Symbol returns the upper-case symbol for c, or '?' for an invalid code.
func (c Code) Symbol() byte {
	if !c.Valid() {
		return '?'
	}
	return symbols[c]
}

// Mask returns the set of definite bases c stands for.
func (c Code) Mask() uint8 {
	if !c.Valid() {
		return 0
	}
	return masks[c]
}

// Complement returns the code of the complementary base set.
func (c Code) Complement() Code {
	if !c.Valid() {
		return Invalid
	}
	return comps[c]
}

// Compatible reports whether a and b can stand for a common base.
func Compatible(a, b Code) bool {
	return a.Mask()&b.Mask() != 0
}

// IsAmbiguousSymbol reports whether b is an ambiguity code.
func IsAmbiguousSymbol(b byte) bool {
	c, ok := Encode(b)
	return ok && c.IsAmbiguous()
}

// Expand returns the definite bases a symbol stands for, in ACGT order.
func Expand(b byte) []byte {
	c, ok := Encode(b)
	if !ok {
		return nil
	}
	out := make([]byte, 0, 4)
	for i, base := range []byte("ACGT") {
		if c.Mask()&(1<<uint(i)) != 0 {
			out = append(out, base)
		}
	}
	return out
}

// ComplementBase returns the complement of an IUPAC symbol, preserving case.
// Symbols outside the alphabet map to 'N'.
func ComplementBase(b byte) byte {
	c, ok := Encode(b)
	if !ok {
		return 'N'
	}
	out := c.Complement().Symbol()
	if b >= 'a' && b <= 'z' {
		out += 'a' - 'A'
	}
	return out
}
