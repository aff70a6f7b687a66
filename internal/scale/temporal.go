package scale

import (
	"time"

	"PriceChart/internal/calculator"
)

// Temporal maps UTC instants onto a pixel range. The domain is held in Unix milliseconds.
type Temporal struct {
	lin Linear
}

// NewTemporal builds a temporal scale from [first, last] onto [r0, r1].
func NewTemporal(first, last time.Time, r0, r1 float64) *Temporal {
	return &Temporal{lin: *NewLinear(millis(first), millis(last), r0, r1)}
}

func (s *Temporal) Kind() Kind { return KindTemporal }

func (s *Temporal) Map(ms float64) float64 { return s.lin.Map(ms) }

func (s *Temporal) Invert(px float64) float64 { return s.lin.Invert(px) }

func (s *Temporal) Domain() (float64, float64) { return s.lin.Domain() }

func (s *Temporal) Range() (float64, float64) { return s.lin.Range() }

// MapTime returns the pixel for t.
func (s *Temporal) MapTime(t time.Time) float64 { return s.lin.Map(millis(t)) }

// InvertTime returns the instant at px, in UTC.
func (s *Temporal) InvertTime(px float64) time.Time {
	return time.UnixMilli(int64(roundHalfAway(s.lin.Invert(px)))).UTC()
}

// DomainTimes returns the domain as instants.
func (s *Temporal) DomainTimes() (time.Time, time.Time) {
	d0, d1 := s.lin.Domain()
	return time.UnixMilli(int64(d0)).UTC(), time.UnixMilli(int64(d1)).UTC()
}

// Ticks returns calendar-aligned ticks across the domain.
func (s *Temporal) Ticks(count int) []calculator.TimeTick {
	first, last := s.DomainTimes()
	if last.Before(first) {
		first, last = last, first
	}
	return calculator.TimeTicks(first, last, count)
}

func millis(t time.Time) float64 { return float64(t.UnixMilli()) }

func roundHalfAway(v float64) float64 {
	if v < 0 {
		return -float64(int64(-v + 0.5))
	}
	return float64(int64(v + 0.5))
}
