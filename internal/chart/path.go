package chart

import (
	"PriceChart/internal/model"
	"PriceChart/internal/scale"
)

// BuildPath projects every record, in dataset order, through the two scales.
func BuildPath(ds model.Dataset, x *scale.Temporal, y scale.Scale) []model.Point {
	pts := make([]model.Point, len(ds))
	for i, r := range ds {
		pts[i] = model.Point{X: x.MapTime(r.Date), Y: y.Map(r.Close)}
	}
	return pts
}
