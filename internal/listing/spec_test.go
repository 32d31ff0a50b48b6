package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func p(v int) *int { return &v }

func TestParseDefaults(t *testing.T) {
	s, err := Parse(RawParams{}, 100)
	require.NoError(t, err)

	assert.Equal(t, SortDate, s.Sort)
	assert.Equal(t, DirDesc, s.Dir)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultPageSize, s.PageSize)
	assert.Empty(t, s.Category)
	assert.Nil(t, s.PriceMin)
	assert.Nil(t, s.PriceMax)
}

func TestParseValidParams(t *testing.T) {
	s, err := Parse(RawParams{
		Category: "electronics",
		Query:    "vélo",
		PriceMin: f(10),
		PriceMax: f(250),
		Sort:     SortPrice,
		Dir:      DirAsc,
		Page:     p(3),
		PageSize: p(50),
	}, 100)
	require.NoError(t, err)

	assert.Equal(t, "electronics", s.Category)
	assert.Equal(t, "vélo", s.Query)
	assert.Equal(t, 10.0, *s.PriceMin)
	assert.Equal(t, 250.0, *s.PriceMax)
	assert.Equal(t, SortPrice, s.Sort)
	assert.Equal(t, DirAsc, s.Dir)
	assert.Equal(t, 100, s.Offset())
}

func TestParseInvalidRange(t *testing.T) {
	_, err := Parse(RawParams{PriceMin: f(50), PriceMax: f(10)}, 100)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeInvalidRange, verr.Code)
	assert.Equal(t, "min_price", verr.Field)

	// Equal bounds are a valid single-price filter.
	_, err = Parse(RawParams{PriceMin: f(25), PriceMax: f(25)}, 100)
	assert.NoError(t, err)
}

func TestParseInvalidPagination(t *testing.T) {
	cases := []RawParams{
		{Page: p(0)},
		{Page: p(-1)},
		{PageSize: p(0)},
		{PageSize: p(-5)},
		{PageSize: p(101)},
	}
	for _, raw := range cases {
		_, err := Parse(raw, 100)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "raw %+v", raw)
		assert.Equal(t, CodeInvalidPagination, verr.Code)
	}

	// Only absent values take defaults.
	s, err := Parse(RawParams{}, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultPageSize, s.PageSize)

	// The ceiling itself is accepted.
	s, err = Parse(RawParams{PageSize: p(100)}, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, s.PageSize)
}

func TestParseInvalidSort(t *testing.T) {
	_, err := Parse(RawParams{Sort: "popularity"}, 100)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeInvalidSort, verr.Code)
	assert.Equal(t, "sort", verr.Field)

	_, err = Parse(RawParams{Dir: "sideways"}, 100)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeInvalidSort, verr.Code)
	assert.Equal(t, "order", verr.Field)
}
