package scale

import "PriceChart/internal/calculator"

// Linear interpolates a numeric domain onto a pixel range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale from [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

func (s *Linear) Kind() Kind { return KindLinear }

// Map returns the pixel for v. A degenerate domain maps everything to the range midpoint.
func (s *Linear) Map(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	t := (v - s.d0) / (s.d1 - s.d0)
	return s.r0 + t*(s.r1-s.r0)
}

// Invert returns the domain value for px. A degenerate range yields the domain start.
func (s *Linear) Invert(px float64) float64 {
	if s.r1 == s.r0 {
		return s.d0
	}
	t := (px - s.r0) / (s.r1 - s.r0)
	return s.d0 + t*(s.d1-s.d0)
}

func (s *Linear) Domain() (float64, float64) { return s.d0, s.d1 }

func (s *Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Nice returns a copy whose domain is extended to round tick boundaries.
func (s *Linear) Nice(count int) *Linear {
	d0, d1 := calculator.Nice(s.d0, s.d1, count)
	return NewLinear(d0, d1, s.r0, s.r1)
}

// Ticks returns round domain values for axis labels.
func (s *Linear) Ticks(count int) []float64 {
	return calculator.Ticks(s.d0, s.d1, count)
}
