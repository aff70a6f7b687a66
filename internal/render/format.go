package render

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatPrice formats a close for the tooltip, e.g. "$110" or "$110.5".
func FormatPrice(close float64) string {
	return "$" + decimal.NewFromFloat(close).Round(2).String()
}

// FormatDate formats a record date for the tooltip, e.g. "January 3, 2020".
func FormatDate(t time.Time) string {
	return t.UTC().Format("January 2, 2006")
}

// FormatTick labels a y axis tick.
func FormatTick(v float64) string {
	return "$" + decimal.NewFromFloat(v).Round(6).String()
}

func tooltipLines(close float64, date time.Time) []string {
	return []string{FormatPrice(close), FormatDate(date)}
}
