package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceChart/internal/model"
)

func day0(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCloseExtent(t *testing.T) {
	ds := model.Dataset{
		{Date: day0("2020-01-01"), Close: 100},
		{Date: day0("2020-01-03"), Close: 110},
		{Date: day0("2020-01-05"), Close: 90},
	}
	low, high, err := CloseExtent(ds)
	require.NoError(t, err)
	assert.Equal(t, 90.0, low)
	assert.Equal(t, 110.0, high)
}

func TestDateExtent_Unordered(t *testing.T) {
	ds := model.Dataset{
		{Date: day0("2020-01-03"), Close: 110},
		{Date: day0("2020-01-01"), Close: 100},
		{Date: day0("2020-01-05"), Close: 90},
	}
	first, last, err := DateExtent(ds)
	require.NoError(t, err)
	assert.True(t, first.Equal(day0("2020-01-01")))
	assert.True(t, last.Equal(day0("2020-01-05")))
}

func TestExtent_Empty(t *testing.T) {
	_, _, err := CloseExtent(nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, _, err = DateExtent(model.Dataset{})
	assert.ErrorIs(t, err, ErrNoRecords)
}
