package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		dims    Dimensions
		wantErr bool
	}{
		{name: "default", dims: DefaultDimensions()},
		{name: "zero margin", dims: Dimensions{Width: 10, Height: 10}},
		{name: "negative margin", dims: Dimensions{Width: 1000, Height: 500, Margin: -1}, wantErr: true},
		{name: "margin eats width", dims: Dimensions{Width: 100, Height: 500, Margin: 50}, wantErr: true},
		{name: "margin eats height", dims: Dimensions{Width: 1000, Height: 90, Margin: 50}, wantErr: true},
		{name: "zero size", dims: Dimensions{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dims.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDimensions)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDimensions_Bounded(t *testing.T) {
	d := DefaultDimensions()
	assert.Equal(t, 900.0, d.BoundedWidth())
	assert.Equal(t, 400.0, d.BoundedHeight())
}

func TestDimensions_Contains(t *testing.T) {
	d := DefaultDimensions()
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"origin", 0, 0, true},
		{"far corner", 900, 400, true},
		{"centre", 450, 200, true},
		{"left of area", -0.5, 10, false},
		{"above area", 10, -0.5, false},
		{"right of area", 900.5, 10, false},
		{"below area", 10, 400.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Contains(tt.x, tt.y))
		})
	}
}
