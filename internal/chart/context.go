// Package chart holds the immutable chart context built once per draw, the path
// builder, the step-before locator and the hover state machine.
package chart

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"PriceChart/internal/model"
	"PriceChart/internal/scale"
)

// ErrEmptyDataset is returned when a chart is built without records.
var ErrEmptyDataset = scale.ErrEmptyDataset

// Options tune how a Context is derived from a dataset.
type Options struct {
	NiceY bool
	Snap  SnapMode
}

// DefaultOptions mirrors the classic chart: nice y domain, step-before snapping.
func DefaultOptions() Options {
	return Options{NiceY: true, Snap: SnapBefore}
}

// Context is everything a draw and its pointer handlers need. It is never mutated.
type Context struct {
	Dataset    model.Dataset
	Dimensions model.Dimensions
	X          *scale.Temporal
	Y          *scale.Linear
	Snap       SnapMode
}

// NewContext validates the dimensions and derives both scales from the dataset.
func NewContext(ds model.Dataset, dims model.Dimensions, opts Options) (*Context, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if opts.Snap == "" {
		opts.Snap = SnapBefore
	}
	if !opts.Snap.Valid() {
		return nil, fmt.Errorf("unknown snap mode %q", opts.Snap)
	}
	x, err := scale.XFromDataset(ds, dims)
	if err != nil {
		return nil, err
	}
	y, err := scale.YFromDataset(ds, dims, opts.NiceY)
	if err != nil {
		return nil, err
	}
	if !ds.IsSorted() {
		log.Warn().Int("records", len(ds)).Msg("dataset is not sorted by date, hover lookups may be wrong")
	}
	return &Context{Dataset: ds, Dimensions: dims, X: x, Y: y, Snap: opts.Snap}, nil
}

// Path builds the polyline for the context's dataset.
func (c *Context) Path() []model.Point {
	return BuildPath(c.Dataset, c.X, c.Y)
}

// Project maps a record to its pixel coordinate.
func (c *Context) Project(r model.Record) model.Point {
	return model.Point{X: c.X.MapTime(r.Date), Y: c.Y.Map(r.Close)}
}
