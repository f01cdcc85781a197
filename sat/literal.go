package sat

import "fmt"

// Lit represents a boolean variable or its negation, packed into 32 bits as
// 2*var+sign. The topmost four values are reserved for the special literals
// undef, elim, one and zero. A proper literal has its top bit clear, so its
// variable index is below 2^30.
type Lit uint32

const (
	// LitZero is the constant-false literal.
	LitZero Lit = 0xFFFFFFFF
	// LitOne is the constant-true literal.
	LitOne Lit = 0xFFFFFFFE
	// LitUndef marks an unknown or absent literal.
	LitUndef Lit = 0xFFFFFFFD
	// LitElim marks a variable removed by elimination. It must never appear
	// inside a clause.
	LitElim Lit = 0xFFFFFFFC
)

// NewLit creates a literal from a variable index and a sign. sign=true denotes
// the negated literal.
func NewLit(v int, sign bool) Lit {
	if sign {
		return Lit(2*v + 1)
	}
	return Lit(2 * v)
}

// LitFixed returns the constant literal that makes a literal of the given sign
// true, i.e. LitFixed(false)=one and LitFixed(true)=zero. Combined with
// XorSign this is how fixed variables flow through renumbering.
func LitFixed(sign bool) Lit {
	if sign {
		return LitZero
	}
	return LitOne
}

// LitFromDimacs converts a nonzero DIMACS integer to a literal: k>0 is
// variable k-1 positive, k<0 is variable -k-1 negated.
func LitFromDimacs(x int) Lit {
	if x > 0 {
		return Lit(2*x - 2)
	}
	return Lit(-2*x - 1)
}

// Var returns the variable index of a proper literal.
func (l Lit) Var() int { return int(l >> 1) }

// Sign reports whether the literal is negated.
func (l Lit) Sign() bool { return l&1 != 0 }

// Neg returns the negation of this literal.
func (l Lit) Neg() Lit { return l ^ 1 }

// XorSign flips the literal if sign is true. Also meaningful on the fixed
// literals one and zero, which negate into each other.
func (l Lit) XorSign(sign bool) Lit {
	if sign {
		return l ^ 1
	}
	return l
}

// Proper reports whether l is an actual literal rather than one of the special
// values.
func (l Lit) Proper() bool { return int32(l) >= 0 }

// Fixed reports whether l is one of the constant literals one/zero.
func (l Lit) Fixed() bool { return l&^1 == LitOne&^1 }

// ToDimacs converts a proper literal back to the DIMACS convention.
func (l Lit) ToDimacs() int {
	if l.Sign() {
		return -l.Var() - 1
	}
	return l.Var() + 1
}

// String renders the literal in DIMACS convention, or a symbolic name for the
// special values.
func (l Lit) String() string {
	switch {
	case l.Proper():
		return fmt.Sprintf("%d", l.ToDimacs())
	case l == LitUndef:
		return "undef"
	case l == LitOne:
		return "true"
	case l == LitZero:
		return "false"
	case l == LitElim:
		return "elim"
	}
	return fmt.Sprintf("Lit(%d)", uint32(l))
}

// CRef is a reference to a clause inside a ClauseStorage. The highest bit is
// reserved for tagging inside watches and reasons, so the arena is limited to
// 2^31-1 words.
type CRef uint32

// CRefUndef represents "no clause".
const CRefUndef CRef = 0xFFFFFFFF

// CRefMax is the largest valid clause reference.
const CRefMax CRef = 0x7FFFFFFF

// Proper reports whether the reference points at an actual clause.
func (c CRef) Proper() bool { return c <= CRefMax }
