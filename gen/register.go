package gen

import "github.com/xDarkicex/cdcl/sat"

// Register is a 32-bit word whose bits are literals of a SAT problem, the
// building block for bit-blasting integer computations. Bits of constants
// are the fixed literals, so gate helpers collapse them away during clause
// normalization.
type Register struct {
	s    *sat.Sat
	lits [32]sat.Lit
}

// NewRegister creates a constant register.
func NewRegister(s *sat.Sat, value uint32) Register {
	r := Register{s: s}
	for i := range r.lits {
		r.lits[i] = sat.LitFixed(value>>i&1 == 0)
	}
	return r
}

// UnknownRegister creates a register of 32 fresh variables.
func UnknownRegister(s *sat.Sat) Register {
	r := Register{s: s}
	for i := range r.lits {
		r.lits[i] = sat.NewLit(s.AddVar(), false)
	}
	return r
}

// Lit returns the literal of bit i.
func (r Register) Lit(i int) sat.Lit { return r.lits[i] }

// Value extracts the register's value under a complete assignment. Constant
// bits read directly.
func (r Register) Value(a *sat.Assignment) uint32 {
	var v uint32
	for i, l := range r.lits {
		if l == sat.LitOne || (l.Proper() && a.IsTrue(l)) {
			v |= 1 << i
		}
	}
	return v
}

func makeAnd(s *sat.Sat, a, b sat.Lit) sat.Lit {
	r := sat.NewLit(s.AddVar(), false)
	s.AddAndGate(r, a, b)
	return r
}

func makeOr(s *sat.Sat, a, b sat.Lit) sat.Lit {
	r := sat.NewLit(s.AddVar(), false)
	s.AddOrGate(r, a, b)
	return r
}

func makeXor(s *sat.Sat, a, b sat.Lit) sat.Lit {
	r := sat.NewLit(s.AddVar(), false)
	s.AddXorGate(r, a, b)
	return r
}

func makeXor3(s *sat.Sat, a, b, c sat.Lit) sat.Lit {
	r := sat.NewLit(s.AddVar(), false)
	s.AddXor3Gate(r, a, b, c)
	return r
}

func makeMaj(s *sat.Sat, a, b, c sat.Lit) sat.Lit {
	r := sat.NewLit(s.AddVar(), false)
	s.AddMajGate(r, a, b, c)
	return r
}

func makeChoose(s *sat.Sat, a, b, c sat.Lit) sat.Lit {
	r := sat.NewLit(s.AddVar(), false)
	s.AddChooseGate(r, a, b, c)
	return r
}

// And returns the bitwise conjunction.
func (r Register) And(o Register) Register {
	out := Register{s: r.s}
	for i := range out.lits {
		out.lits[i] = makeAnd(r.s, r.lits[i], o.lits[i])
	}
	return out
}

// Or returns the bitwise disjunction.
func (r Register) Or(o Register) Register {
	out := Register{s: r.s}
	for i := range out.lits {
		out.lits[i] = makeOr(r.s, r.lits[i], o.lits[i])
	}
	return out
}

// Xor returns the bitwise exclusive or.
func (r Register) Xor(o Register) Register {
	out := Register{s: r.s}
	for i := range out.lits {
		out.lits[i] = makeXor(r.s, r.lits[i], o.lits[i])
	}
	return out
}

// Not returns the bitwise complement. No new variables are created.
func (r Register) Not() Register {
	out := Register{s: r.s}
	for i := range out.lits {
		out.lits[i] = r.lits[i].Neg()
	}
	return out
}

// Maj returns the bitwise majority of three registers.
func Maj(a, b, c Register) Register {
	out := Register{s: a.s}
	for i := range out.lits {
		out.lits[i] = makeMaj(a.s, a.lits[i], b.lits[i], c.lits[i])
	}
	return out
}

// Choose returns the bitwise choose function (a ? b : c).
func Choose(a, b, c Register) Register {
	out := Register{s: a.s}
	for i := range out.lits {
		out.lits[i] = makeChoose(a.s, a.lits[i], b.lits[i], c.lits[i])
	}
	return out
}

// Shr shifts right by n bits, filling with zeros.
func (r Register) Shr(n int) Register {
	out := NewRegister(r.s, 0)
	for i := 0; i < 32-n; i++ {
		out.lits[i] = r.lits[i+n]
	}
	return out
}

// Rotr rotates right by n bits.
func (r Register) Rotr(n int) Register {
	out := Register{s: r.s}
	for i := range out.lits {
		out.lits[i] = r.lits[(i+n)%32]
	}
	return out
}

// Add returns the 32-bit sum, building a ripple-carry adder out of xor and
// majority gates.
func (r Register) Add(o Register) Register {
	out := Register{s: r.s}
	carry := sat.LitZero
	for i := range out.lits {
		out.lits[i] = makeXor3(r.s, r.lits[i], o.lits[i], carry)
		carry = makeMaj(r.s, r.lits[i], o.lits[i], carry)
	}
	return out
}

// AddConst adds a constant.
func (r Register) AddConst(v uint32) Register {
	return r.Add(NewRegister(r.s, v))
}

// Byteswap reverses the byte order.
func (r Register) Byteswap() Register {
	out := r
	for i := 0; i < 8; i++ {
		out.lits[i], out.lits[i+24] = out.lits[i+24], out.lits[i]
		out.lits[i+8], out.lits[i+16] = out.lits[i+16], out.lits[i+8]
	}
	return out
}

// Equal constrains two registers to the same value.
func Equal(a, b Register) {
	for i := 0; i < 32; i++ {
		a.s.AddClauseSafe([]sat.Lit{a.lits[i].Neg(), b.lits[i]})
		a.s.AddClauseSafe([]sat.Lit{a.lits[i], b.lits[i].Neg()})
	}
}
