package calculator

import (
	"errors"
	"math"
	"time"

	"PriceChart/internal/model"
)

// ErrNoRecords is returned when an extent is requested over an empty dataset.
var ErrNoRecords = errors.New("no records provided")

// CloseExtent scans the dataset and returns the lowest and highest close.
func CloseExtent(ds model.Dataset) (low, high float64, err error) {
	if len(ds) == 0 {
		return 0, 0, ErrNoRecords
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, r := range ds {
		if r.Close < low {
			low = r.Close
		}
		if r.Close > high {
			high = r.Close
		}
	}
	return low, high, nil
}

// DateExtent returns the earliest and latest date. It does not rely on ordering.
func DateExtent(ds model.Dataset) (first, last time.Time, err error) {
	if len(ds) == 0 {
		return time.Time{}, time.Time{}, ErrNoRecords
	}
	first, last = ds[0].Date, ds[0].Date
	for _, r := range ds[1:] {
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last, nil
}
