package calculator

import "time"

// TimeTick is an axis tick on a temporal scale.
type TimeTick struct {
	Time  time.Time
	Label string
}

type timeStep struct {
	unit   string
	n      int
	approx time.Duration
	layout string
}

const day = 24 * time.Hour

var timeSteps = []timeStep{
	{"day", 1, day, "Jan 02"},
	{"day", 2, 2 * day, "Jan 02"},
	{"week", 1, 7 * day, "Jan 02"},
	{"week", 2, 14 * day, "Jan 02"},
	{"month", 1, 30 * day, "January"},
	{"month", 3, 91 * day, "January"},
	{"month", 6, 182 * day, "January"},
	{"year", 1, 365 * day, "2006"},
	{"year", 2, 2 * 365 * day, "2006"},
	{"year", 5, 5 * 365 * day, "2006"},
	{"year", 10, 10 * 365 * day, "2006"},
}

// TimeTicks returns calendar-aligned UTC ticks within [first, last], about count of them.
// Month ticks falling on January are labelled with the year.
func TimeTicks(first, last time.Time, count int) []TimeTick {
	if count <= 0 || last.Before(first) {
		return nil
	}
	first, last = first.UTC(), last.UTC()
	span := last.Sub(first)
	step := timeSteps[len(timeSteps)-1]
	for _, s := range timeSteps {
		if span/s.approx <= time.Duration(count) {
			step = s
			break
		}
	}

	var ticks []TimeTick
	for t := alignTime(first, step); !t.After(last); t = advanceTime(t, step) {
		if t.Before(first) {
			continue
		}
		label := t.Format(step.layout)
		if step.unit == "month" && t.Month() == time.January {
			label = t.Format("2006")
		}
		ticks = append(ticks, TimeTick{Time: t, Label: label})
		if len(ticks) > 4*count {
			break
		}
	}
	return ticks
}

func alignTime(t time.Time, s timeStep) time.Time {
	y, m, d := t.Date()
	switch s.unit {
	case "week":
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return start.AddDate(0, 0, -int(start.Weekday()))
	case "month":
		mi := (int(m) - 1) / s.n * s.n
		return time.Date(y, time.Month(mi+1), 1, 0, 0, 0, 0, time.UTC)
	case "year":
		return time.Date(y/s.n*s.n, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

func advanceTime(t time.Time, s timeStep) time.Time {
	switch s.unit {
	case "week":
		return t.AddDate(0, 0, 7*s.n)
	case "month":
		return t.AddDate(0, s.n, 0)
	case "year":
		return t.AddDate(s.n, 0, 0)
	default:
		return t.AddDate(0, 0, s.n)
	}
}
