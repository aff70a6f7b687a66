package model

import (
	"sort"
	"time"
)

// DateLayout is the day-precision layout used by price files.
const DateLayout = "2006-01-02"

// Record is a single closing price on a calendar day.
type Record struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Dataset is a price series ordered ascending by date.
type Dataset []Record

// IsSorted reports whether the dataset is in non-decreasing date order.
func (d Dataset) IsSorted() bool {
	return sort.SliceIsSorted(d, func(i, j int) bool { return d[i].Date.Before(d[j].Date) })
}

// Sorted returns a chronologically ordered copy. Records sharing a date keep their input order.
func (d Dataset) Sorted() Dataset {
	out := make(Dataset, len(d))
	copy(out, d)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, dd := t.UTC().Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}
