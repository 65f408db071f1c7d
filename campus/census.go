package campus

// Census counts the people created through it.
//
// The composition root creates one Census at process start and passes it into every person constructor.
type Census struct {
	total int
}

// NewCensus creates a Census starting at zero.
func NewCensus() *Census {
	return &Census{}
}

// Count returns the number of people registered so far.
func (c *Census) Count() int {
	return c.total
}

func (c *Census) register() {
	c.total++
}
