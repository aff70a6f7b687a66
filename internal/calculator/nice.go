package calculator

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// TickIncrement returns the tick step for roughly count ticks over [start, stop].
// A negative result -k means a step of 1/k, which keeps sub-unit steps exact.
func TickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || stop == start {
		return 0
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// Nice extends [low, high] outward to round tick boundaries.
func Nice(low, high float64, count int) (float64, float64) {
	if math.IsNaN(low) || math.IsNaN(high) || low == high || count <= 0 {
		return low, high
	}
	reversed := high < low
	if reversed {
		low, high = high, low
	}
	var prev float64
	for i := 0; i < 10; i++ {
		step := TickIncrement(low, high, count)
		if step == 0 || step == prev {
			break
		}
		if step > 0 {
			low = math.Floor(low/step) * step
			high = math.Ceil(high/step) * step
		} else {
			low = math.Ceil(low*step) / step
			high = math.Floor(high*step) / step
		}
		prev = step
	}
	if reversed {
		return high, low
	}
	return low, high
}

// Ticks returns round values within [low, high], about count of them.
func Ticks(low, high float64, count int) []float64 {
	if count <= 0 || math.IsNaN(low) || math.IsNaN(high) {
		return nil
	}
	if low == high {
		return []float64{low}
	}
	if high < low {
		low, high = high, low
	}
	step := TickIncrement(low, high, count)
	if step == 0 || math.IsInf(step, 0) {
		return nil
	}
	var ticks []float64
	if step > 0 {
		i0, i1 := math.Ceil(low/step), math.Floor(high/step)
		for i := i0; i <= i1; i++ {
			ticks = append(ticks, i*step)
		}
		return ticks
	}
	inv := -step
	i0, i1 := math.Ceil(low*inv), math.Floor(high*inv)
	for i := i0; i <= i1; i++ {
		ticks = append(ticks, i/inv)
	}
	return ticks
}
