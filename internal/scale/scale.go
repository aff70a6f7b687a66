// Package scale maps data values onto pixel coordinates and back.
//
// Two variants exist: Linear for numeric domains and Temporal for dates. Both
// are immutable once built and safe to share between pointer handlers.
package scale

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a scale is derived from a dataset without records.
var ErrEmptyDataset = errors.New("cannot build scale from empty dataset")

// Kind selects a scale variant.
type Kind int

const (
	KindLinear Kind = iota
	KindTemporal
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindTemporal:
		return "temporal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Scale is a domain -> range transform with its inverse.
type Scale interface {
	Kind() Kind
	Map(v float64) float64
	Invert(px float64) float64
	Domain() (float64, float64)
	Range() (float64, float64)
}

// New builds a scale of the given kind. Temporal domains are Unix milliseconds.
func New(kind Kind, domain, rng [2]float64) (Scale, error) {
	lin := NewLinear(domain[0], domain[1], rng[0], rng[1])
	switch kind {
	case KindLinear:
		return lin, nil
	case KindTemporal:
		return &Temporal{lin: *lin}, nil
	default:
		return nil, fmt.Errorf("unknown scale kind %v", kind)
	}
}
