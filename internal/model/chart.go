package model

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when the drawable area would be empty.
var ErrInvalidDimensions = errors.New("invalid chart dimensions")

// Dimensions is the fixed outer size of the chart and its uniform margin.
type Dimensions struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// DefaultDimensions matches the classic 1000x500 layout with a 50px margin.
func DefaultDimensions() Dimensions {
	return Dimensions{Width: 1000, Height: 500, Margin: 50}
}

// BoundedWidth is the width of the drawable area.
func (d Dimensions) BoundedWidth() float64 { return d.Width - 2*d.Margin }

// BoundedHeight is the height of the drawable area.
func (d Dimensions) BoundedHeight() float64 { return d.Height - 2*d.Margin }

// Validate checks that the drawable area is non-empty.
func (d Dimensions) Validate() error {
	if d.Margin < 0 {
		return fmt.Errorf("%w: margin %.0f is negative", ErrInvalidDimensions, d.Margin)
	}
	if d.BoundedWidth() <= 0 || d.BoundedHeight() <= 0 {
		return fmt.Errorf("%w: %.0fx%.0f with margin %.0f leaves no drawable area",
			ErrInvalidDimensions, d.Width, d.Height, d.Margin)
	}
	return nil
}

// Contains reports whether a point relative to the drawable origin lies inside it.
func (d Dimensions) Contains(x, y float64) bool {
	return x >= 0 && x <= d.BoundedWidth() && y >= 0 && y <= d.BoundedHeight()
}

// Point is a pixel coordinate relative to the drawable area's origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
