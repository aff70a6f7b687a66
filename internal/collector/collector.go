package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"PriceChart/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Records model.Dataset
	Err     error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

// GenerateMockRecords builds count daily closes ending today, drifting around basePrice.
func GenerateMockRecords(basePrice float64, count int) model.Dataset {
	ds := make(model.Dataset, count)
	today := model.Day(time.Now())
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		ds[i] = model.Record{
			Date:  today.AddDate(0, 0, -(count - 1 - i)),
			Close: p,
		}
	}
	return ds
}

// Collect loads the dataset from src. With sortRecords the result is put in chronological
// order; otherwise an unsorted dataset is only reported.
func Collect(ctx context.Context, src Source, sortRecords bool) (model.Dataset, error) {
	start := time.Now()
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	if !ds.IsSorted() {
		if sortRecords {
			ds = ds.Sorted()
		} else {
			log.Warn().Str("source", src.Name()).Msg("records are not in date order")
		}
	}
	log.Info().
		Str("source", src.Name()).
		Int("records", len(ds)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")
	return ds, nil
}
