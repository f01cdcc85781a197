package sat

// Gate construction helpers. Each emits the CNF encoding of r being the given
// function of its inputs, by case enumeration of the truth table. Inputs may
// be constant literals; AddClauseSafe collapses those away.

// AddAndGate encodes r = a AND b.
func (c *CNF) AddAndGate(r, a, b Lit) {
	c.AddClauseSafe([]Lit{r, a.Neg(), b.Neg()})
	c.AddClauseSafe([]Lit{r.Neg(), a})
	c.AddClauseSafe([]Lit{r.Neg(), b})
}

// AddOrGate encodes r = a OR b.
func (c *CNF) AddOrGate(r, a, b Lit) {
	c.AddAndGate(r.Neg(), a.Neg(), b.Neg())
}

// AddXorGate encodes r = a XOR b.
func (c *CNF) AddXorGate(r, a, b Lit) {
	c.AddClauseSafe([]Lit{r, a, b.Neg()})
	c.AddClauseSafe([]Lit{r, a.Neg(), b})
	c.AddClauseSafe([]Lit{r.Neg(), a, b})
	c.AddClauseSafe([]Lit{r.Neg(), a.Neg(), b.Neg()})
}

// AddXor3Gate encodes r = a XOR b XOR d.
func (c *CNF) AddXor3Gate(r, a, b, d Lit) {
	c.AddClauseSafe([]Lit{r, a, b, d.Neg()})
	c.AddClauseSafe([]Lit{r, a, b.Neg(), d})
	c.AddClauseSafe([]Lit{r, a.Neg(), b, d})
	c.AddClauseSafe([]Lit{r.Neg(), a, b, d})
	c.AddClauseSafe([]Lit{r, a.Neg(), b.Neg(), d.Neg()})
	c.AddClauseSafe([]Lit{r.Neg(), a, b.Neg(), d.Neg()})
	c.AddClauseSafe([]Lit{r.Neg(), a.Neg(), b, d.Neg()})
	c.AddClauseSafe([]Lit{r.Neg(), a.Neg(), b.Neg(), d})
}

// AddMajGate encodes r = majority(a, b, d).
func (c *CNF) AddMajGate(r, a, b, d Lit) {
	c.AddClauseSafe([]Lit{r.Neg(), a, b})
	c.AddClauseSafe([]Lit{r.Neg(), a, d})
	c.AddClauseSafe([]Lit{r.Neg(), b, d})
	c.AddClauseSafe([]Lit{r, a.Neg(), b.Neg()})
	c.AddClauseSafe([]Lit{r, a.Neg(), d.Neg()})
	c.AddClauseSafe([]Lit{r, b.Neg(), d.Neg()})
}

// AddChooseGate encodes r = (a ? b : d), the bitwise choose function.
func (c *CNF) AddChooseGate(r, a, b, d Lit) {
	c.AddClauseSafe([]Lit{r, a.Neg(), b.Neg()})
	c.AddClauseSafe([]Lit{r, a, d.Neg()})
	c.AddClauseSafe([]Lit{r.Neg(), a.Neg(), b})
	c.AddClauseSafe([]Lit{r.Neg(), a, d})

	// redundant, but they help propagation when b and d agree
	c.AddClauseSafe([]Lit{r, b.Neg(), d.Neg()})
	c.AddClauseSafe([]Lit{r.Neg(), b, d})
}
