package chart

import (
	"fmt"
	"sort"
	"time"

	"PriceChart/internal/model"
)

// SnapMode selects how a pointer date is resolved to a record.
type SnapMode string

const (
	// SnapBefore picks the most recent record at or before the date.
	SnapBefore SnapMode = "before"
	// SnapNearest picks the record closest to the date in either direction.
	SnapNearest SnapMode = "nearest"
)

// Valid reports whether m is a known mode.
func (m SnapMode) Valid() bool {
	return m == SnapBefore || m == SnapNearest
}

// Location is the record a query resolved to.
type Location struct {
	Record  model.Record
	Index   int
	Clamped bool // target preceded the first record
}

// Locate returns the last record dated at or before target.
// A target before the first record is clamped to the first record.
func Locate(ds model.Dataset, target time.Time) (Location, error) {
	if len(ds) == 0 {
		return Location{}, ErrEmptyDataset
	}
	i := upperBound(ds, target)
	if i == 0 {
		return Location{Record: ds[0], Index: 0, Clamped: true}, nil
	}
	return Location{Record: ds[i-1], Index: i - 1}, nil
}

// LocateNearest returns the record with the smallest distance to target. Ties go to the earlier record.
func LocateNearest(ds model.Dataset, target time.Time) (Location, error) {
	if len(ds) == 0 {
		return Location{}, ErrEmptyDataset
	}
	i := upperBound(ds, target)
	switch {
	case i == 0:
		return Location{Record: ds[0], Index: 0, Clamped: true}, nil
	case i == len(ds):
		return Location{Record: ds[i-1], Index: i - 1}, nil
	}
	before, after := ds[i-1], ds[i]
	if after.Date.Sub(target) < target.Sub(before.Date) {
		return Location{Record: after, Index: i}, nil
	}
	return Location{Record: before, Index: i - 1}, nil
}

// LocateMode dispatches on the snap mode.
func LocateMode(ds model.Dataset, target time.Time, mode SnapMode) (Location, error) {
	switch mode {
	case SnapBefore, "":
		return Locate(ds, target)
	case SnapNearest:
		return LocateNearest(ds, target)
	default:
		return Location{}, fmt.Errorf("unknown snap mode %q", mode)
	}
}

// upperBound is the number of leading records dated at or before target.
func upperBound(ds model.Dataset, target time.Time) int {
	return sort.Search(len(ds), func(i int) bool { return ds[i].Date.After(target) })
}
