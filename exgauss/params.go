package exgauss

import (
	"errors"
	"fmt"
)

// ErrInvalidLength reports a parameter vector whose length is not 3k+1, k >= 1.
var ErrInvalidLength = errors.New("parameter vector length must be 3k+1 with k >= 1")

// Params is a flat parameter vector for a sum of k exGaussian components:
// k (amplitude, location, scale) triples followed by one shared decay
// timescale. Length is 3k+1.
type Params []float64

// New validates vals and returns it as a Params vector.
func New(vals ...float64) (Params, error) {
	p := Params(vals)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the 3k+1 length invariant.
func (p Params) Validate() error {
	if len(p) < 4 || len(p)%3 != 1 {
		return fmt.Errorf("%w: got length %d", ErrInvalidLength, len(p))
	}
	return nil
}

// NumComponents returns k, implied by the vector length.
func (p Params) NumComponents() int {
	return (len(p) - 1) / 3
}

// Component returns the (amplitude, location, scale) triple of component i.
func (p Params) Component(i int) (amp, loc, scale float64) {
	return p[3*i], p[3*i+1], p[3*i+2]
}

// Timescale returns the shared exponential decay timescale.
func (p Params) Timescale() float64 {
	return p[len(p)-1]
}

// ComponentParams returns a single-component vector for component i,
// carrying the shared timescale. Useful for plotting individual pulses.
func (p Params) ComponentParams(i int) Params {
	out := make(Params, 4)
	out[0], out[1], out[2] = p.Component(i)
	out[3] = p.Timescale()
	return out
}

// Extend returns a copy of p with one extra component triple inserted
// before the shared timescale.
func (p Params) Extend(amp, loc, scale float64) Params {
	out := make(Params, 0, len(p)+3)
	out = append(out, p[:len(p)-1]...)
	out = append(out, amp, loc, scale, p.Timescale())
	return out
}

// Copy returns a deep copy of the vector.
func (p Params) Copy() Params {
	out := make(Params, len(p))
	copy(out, p)
	return out
}

// TotalArea returns the sum of component amplitudes, the limit of the
// model integral as x grows large.
func (p Params) TotalArea() float64 {
	total := 0.0
	for i := 0; i < p.NumComponents(); i++ {
		amp, _, _ := p.Component(i)
		total += amp
	}
	return total
}
