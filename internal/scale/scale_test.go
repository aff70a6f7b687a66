package scale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceChart/internal/model"
)

func date(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sample() model.Dataset {
	return model.Dataset{
		{Date: date("2020-01-01"), Close: 100},
		{Date: date("2020-01-03"), Close: 110},
		{Date: date("2020-01-05"), Close: 90},
	}
}

func TestNew_Kinds(t *testing.T) {
	lin, err := New(KindLinear, [2]float64{0, 10}, [2]float64{0, 100})
	require.NoError(t, err)
	assert.Equal(t, KindLinear, lin.Kind())
	assert.InDelta(t, 50, lin.Map(5), 1e-12)

	tmp, err := New(KindTemporal, [2]float64{0, 1000}, [2]float64{0, 10})
	require.NoError(t, err)
	assert.Equal(t, KindTemporal, tmp.Kind())
	assert.IsType(t, &Temporal{}, tmp)

	_, err = New(Kind(7), [2]float64{0, 1}, [2]float64{0, 1})
	assert.Error(t, err)
}

func TestLinear_RoundTrip(t *testing.T) {
	s := NewLinear(90, 110, 400, 0)
	for _, v := range []float64{90, 95.5, 100, 109.99, 110, 250, -3} {
		assert.InDelta(t, v, s.Invert(s.Map(v)), 1e-9, "value %v", v)
	}
	for _, px := range []float64{0, 0.5, 123.25, 400, 512} {
		assert.InDelta(t, px, s.Map(s.Invert(px)), 1e-9, "pixel %v", px)
	}
	assert.InDelta(t, 400, s.Map(90), 1e-12)
	assert.InDelta(t, 0, s.Map(110), 1e-12)
}

func TestLinear_Degenerate(t *testing.T) {
	s := NewLinear(100, 100, 400, 0)
	assert.Equal(t, 200.0, s.Map(100))
	assert.Equal(t, 200.0, s.Map(5))
	assert.Equal(t, 100.0, s.Invert(17))

	flat := NewLinear(0, 10, 50, 50)
	assert.Equal(t, 0.0, flat.Invert(50))
}

func TestLinear_Nice(t *testing.T) {
	s := NewLinear(91.3, 118.7, 400, 0).Nice(DefaultTickCount)
	d0, d1 := s.Domain()
	assert.InDelta(t, 90, d0, 1e-9)
	assert.InDelta(t, 120, d1, 1e-9)
	r0, r1 := s.Range()
	assert.Equal(t, 400.0, r0)
	assert.Equal(t, 0.0, r1)
	assert.NotEmpty(t, s.Ticks(5))
}

func TestTemporal_RoundTrip(t *testing.T) {
	s := NewTemporal(date("2020-01-01"), date("2020-12-31"), 0, 900)
	for _, d := range []string{"2020-01-01", "2020-02-29", "2020-07-04", "2020-12-31"} {
		got := s.InvertTime(s.MapTime(date(d)))
		assert.True(t, got.Equal(date(d)), "%s -> %s", d, got)
	}
	for _, px := range []float64{0, 1, 450, 899.5, 900} {
		assert.InDelta(t, px, s.MapTime(s.InvertTime(px)), 1e-3)
	}
	assert.Equal(t, time.UTC, s.InvertTime(10).Location())
}

func TestFromDataset(t *testing.T) {
	dims := model.DefaultDimensions()
	x, err := XFromDataset(sample(), dims)
	require.NoError(t, err)
	assert.InDelta(t, 0, x.MapTime(date("2020-01-01")), 1e-9)
	assert.InDelta(t, 900, x.MapTime(date("2020-01-05")), 1e-9)
	assert.InDelta(t, 450, x.MapTime(date("2020-01-03")), 1e-9)

	y, err := YFromDataset(sample(), dims, false)
	require.NoError(t, err)
	assert.InDelta(t, 400, y.Map(90), 1e-9)
	assert.InDelta(t, 0, y.Map(110), 1e-9)

	ny, err := YFromDataset(sample(), dims, true)
	require.NoError(t, err)
	d0, d1 := ny.Domain()
	assert.LessOrEqual(t, d0, 90.0)
	assert.GreaterOrEqual(t, d1, 110.0)
}

func TestFromDataset_Empty(t *testing.T) {
	dims := model.DefaultDimensions()
	assert.NotPanics(t, func() {
		_, err := XFromDataset(nil, dims)
		assert.ErrorIs(t, err, ErrEmptyDataset)
		_, err = YFromDataset(model.Dataset{}, dims, true)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestFromDataset_SingleRecord(t *testing.T) {
	ds := model.Dataset{{Date: date("2020-01-01"), Close: 42}}
	dims := model.DefaultDimensions()
	x, err := XFromDataset(ds, dims)
	require.NoError(t, err)
	y, err := YFromDataset(ds, dims, true)
	require.NoError(t, err)
	assert.Equal(t, 450.0, x.MapTime(ds[0].Date))
	assert.Equal(t, 200.0, y.Map(42))
}
