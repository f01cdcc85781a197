package gen

import (
	"math/rand"

	"github.com/xDarkicex/cdcl/sat"
)

// Circuit generates a circuit inversion instance: height layers of width
// variables, each variable defined by a random AND or XOR gate over the
// previous layer. The final layer is fixed to the value it takes under a
// random input, so solving means inverting the circuit back to a consistent
// first layer.
func Circuit(width, height int, xorRatio float64, rng *rand.Rand) *sat.CNF {
	nvars := width * height
	cnf := sat.NewCNF(nvars)
	solution := make([]bool, nvars)
	for i := 0; i < width; i++ {
		solution[i] = rng.Intn(2) == 1
	}

	val := func(l sat.Lit) bool { return solution[l.Var()] != l.Sign() }

	for k := 1; k < height; k++ {
		for i := 0; i < width; i++ {
			index := k*width + i
			a := sat.NewLit(rng.Intn(width)+(k-1)*width, rng.Intn(2) == 1)
			b := sat.NewLit(rng.Intn(width)+(k-1)*width, rng.Intn(2) == 1)
			c := sat.NewLit(index, rng.Intn(2) == 1)

			if rng.Float64() <= xorRatio {
				cnf.AddXorGate(c, a, b)
				solution[index] = (val(a) != val(b)) != c.Sign()
			} else {
				cnf.AddAndGate(c, a, b)
				solution[index] = (val(a) && val(b)) != c.Sign()
			}
		}
	}

	for i := 0; i < width; i++ {
		index := (height-1)*width + i
		cnf.AddUnary(sat.NewLit(index, !solution[index]))
	}
	return cnf
}
