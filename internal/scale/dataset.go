package scale

import (
	"errors"
	"fmt"

	"PriceChart/internal/calculator"
	"PriceChart/internal/model"
)

// DefaultTickCount is the tick density used for nice domains and axes.
const DefaultTickCount = 10

// XFromDataset builds the date scale over the dataset's date extent onto [0, BoundedWidth].
func XFromDataset(ds model.Dataset, dims model.Dimensions) (*Temporal, error) {
	first, last, err := calculator.DateExtent(ds)
	if err != nil {
		return nil, extentErr("x", err)
	}
	return NewTemporal(first, last, 0, dims.BoundedWidth()), nil
}

// YFromDataset builds the close scale onto [BoundedHeight, 0], optionally with a nice domain.
func YFromDataset(ds model.Dataset, dims model.Dimensions, nice bool) (*Linear, error) {
	low, high, err := calculator.CloseExtent(ds)
	if err != nil {
		return nil, extentErr("y", err)
	}
	y := NewLinear(low, high, dims.BoundedHeight(), 0)
	if nice {
		y = y.Nice(DefaultTickCount)
	}
	return y, nil
}

func extentErr(axis string, err error) error {
	if errors.Is(err, calculator.ErrNoRecords) {
		return fmt.Errorf("%s scale: %w", axis, ErrEmptyDataset)
	}
	return fmt.Errorf("%s scale: %w", axis, err)
}
