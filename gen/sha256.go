package gen

import "github.com/xDarkicex/cdcl/sat"

// SHA-256 bit-blaster: builds the full compression function, message
// schedule and padding over Registers, so preimage problems become CNF
// instances.

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1,
	0x923f82a4, 0xab1c5ed5, 0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174, 0xe49b69c1, 0xefbe4786,
	0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147,
	0x06ca6351, 0x14292967, 0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85, 0xa2bfe8a1, 0xa81a664b,
	0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a,
	0x5b9cca4f, 0x682e6ff3, 0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func ep0(x Register) Register {
	return x.Rotr(2).Xor(x.Rotr(13)).Xor(x.Rotr(22))
}

func ep1(x Register) Register {
	return x.Rotr(6).Xor(x.Rotr(11)).Xor(x.Rotr(25))
}

func sig0(x Register) Register {
	return x.Rotr(7).Xor(x.Rotr(18)).Xor(x.Shr(3))
}

func sig1(x Register) Register {
	return x.Rotr(17).Xor(x.Rotr(19)).Xor(x.Shr(10))
}

// Byteswap32 is the host-side byte order reversal matching
// Register.Byteswap.
func Byteswap32(x uint32) uint32 {
	return x>>24 | x>>8&0xff00 | x<<8&0xff0000 | x<<24
}

// sha256Transform runs the compression function over one 16-word block,
// truncated to the given number of rounds.
func sha256Transform(state []Register, data []Register, rounds int) {
	m := make([]Register, 0, 64)
	for i := 0; i < 16; i++ {
		m = append(m, data[i].Byteswap())
	}
	for i := 16; i < 64; i++ {
		m = append(m, sig1(m[i-2]).Add(m[i-7]).Add(sig0(m[i-15])).Add(m[i-16]))
	}

	a, b, c, d := state[0], state[1], state[2], state[3]
	e, f, g, h := state[4], state[5], state[6], state[7]

	for i := 0; i < rounds; i++ {
		t1 := h.Add(ep1(e)).Add(Choose(e, f, g)).AddConst(sha256K[i]).Add(m[i])
		t2 := ep0(a).Add(Maj(a, b, c))
		h = g
		g = f
		f = e
		e = d.Add(t1)
		d = c
		c = b
		b = a
		a = t1.Add(t2)
	}

	state[0] = state[0].Add(a)
	state[1] = state[1].Add(b)
	state[2] = state[2].Add(c)
	state[3] = state[3].Add(d)
	state[4] = state[4].Add(e)
	state[5] = state[5].Add(f)
	state[6] = state[6].Add(g)
	state[7] = state[7].Add(h)
}

// SHA256 bit-blasts the hash of the data words (interpreted as a byte
// message of 4*len(data) bytes, little-endian words) with standard padding,
// truncating every compression to the given number of rounds. Returns the
// eight hash words in output byte order.
func SHA256(s *sat.Sat, data []Register, rounds int) []Register {
	if rounds < 0 || rounds > 64 {
		panic("gen: sha256 rounds out of range")
	}
	state := []Register{
		NewRegister(s, 0x6a09e667), NewRegister(s, 0xbb67ae85),
		NewRegister(s, 0x3c6ef372), NewRegister(s, 0xa54ff53a),
		NewRegister(s, 0x510e527f), NewRegister(s, 0x9b05688c),
		NewRegister(s, 0x1f83d9ab), NewRegister(s, 0x5be0cd19),
	}

	blocks := len(data) / 16
	tail := len(data) % 16
	for i := 0; i < blocks; i++ {
		sha256Transform(state, data[16*i:16*i+16], rounds)
	}

	tmp := make([]Register, 16)
	for i := range tmp {
		tmp[i] = NewRegister(s, 0)
	}
	copy(tmp, data[16*blocks:])

	// the trailing 0x80 always fits in the last incomplete block, the
	// trailing size might not
	tmp[tail] = NewRegister(s, 0x80)
	if tail >= 14 {
		sha256Transform(state, tmp, rounds)
		for i := range tmp {
			tmp[i] = NewRegister(s, 0)
		}
	}

	bitlen := uint64(32 * len(data))
	tmp[15] = NewRegister(s, Byteswap32(uint32(bitlen)))
	tmp[14] = NewRegister(s, Byteswap32(uint32(bitlen>>32)))
	sha256Transform(state, tmp, rounds)

	for i := range state {
		state[i] = state[i].Byteswap()
	}
	return state
}

// SHA256Preimage builds a preimage instance: inputBits/32 unknown input
// words hashed with the given number of rounds, the first zeroBits of the
// hash forced to zero, and the first inputZeroBits of the input forced to
// zero. Returns the input and hash registers for inspection.
func SHA256Preimage(s *sat.Sat, inputBits, zeroBits, inputZeroBits, rounds int) (data, hash []Register) {
	if inputBits%32 != 0 || zeroBits%32 != 0 || inputZeroBits%32 != 0 {
		panic("gen: sha256 bit counts must be multiples of 32")
	}
	data = make([]Register, 0, inputBits/32)
	for i := 0; i < inputBits/32; i++ {
		data = append(data, UnknownRegister(s))
	}
	hash = SHA256(s, data, rounds)
	zero := NewRegister(s, 0)
	for i := 0; i < zeroBits/32; i++ {
		Equal(hash[i], zero)
	}
	for i := 0; i < inputZeroBits/32; i++ {
		Equal(data[i], zero)
	}
	return data, hash
}
