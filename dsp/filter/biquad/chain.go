package biquad

// Chain is a fixed cascade of sections processed in series. The section
// count is set at construction so retuning never allocates.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade with one section per coefficient set.
func NewChain(coeffs ...Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample runs x through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// SetCoefficients retunes section i and keeps its delay state, so the
// output stays continuous across the change.
func (c *Chain) SetCoefficients(i int, coeffs Coefficients) {
	c.sections[i].Coefficients = coeffs
}

// Section returns a pointer to the i-th section.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// NumSections returns the number of sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Order returns the filter order.
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// Reset clears every section.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Settle settles every section. It reports false if any section had to be
// cleared, in which case the whole cascade is reset.
func (c *Chain) Settle() bool {
	ok := true
	for i := range c.sections {
		if !c.sections[i].Settle() {
			ok = false
		}
	}

	if !ok {
		c.Reset()
	}

	return ok
}
