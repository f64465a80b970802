package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideLadder_BestAscending(t *testing.T) {
	asks := newSideLadder(false)
	asks.GetOrCreate(decimal.NewFromInt(105))
	asks.GetOrCreate(decimal.NewFromInt(100))
	asks.GetOrCreate(decimal.NewFromInt(110))

	best, ok := asks.Best()
	require.True(t, ok)
	assert.True(t, best.Price.Equal(decimal.NewFromInt(100)))
}

func TestSideLadder_BestDescending(t *testing.T) {
	bids := newSideLadder(true)
	bids.GetOrCreate(decimal.NewFromInt(95))
	bids.GetOrCreate(decimal.NewFromInt(100))
	bids.GetOrCreate(decimal.NewFromInt(90))

	best, ok := bids.Best()
	require.True(t, ok)
	assert.True(t, best.Price.Equal(decimal.NewFromInt(100)))
}

func TestSideLadder_BestOnEmpty(t *testing.T) {
	bids := newSideLadder(true)
	_, ok := bids.Best()
	assert.False(t, ok)
}

func TestSideLadder_GetOrCreateReusesLevel(t *testing.T) {
	ladder := newSideLadder(false)
	price := decimal.NewFromInt(100)

	first := ladder.GetOrCreate(price)
	second := ladder.GetOrCreate(price)

	assert.Same(t, first, second)
	assert.Equal(t, 1, ladder.Len())
}

func TestSideLadder_Remove(t *testing.T) {
	ladder := newSideLadder(false)
	price := decimal.NewFromInt(100)
	ladder.GetOrCreate(price)

	ladder.Remove(price)
	assert.Equal(t, 0, ladder.Len())
	_, ok := ladder.Get(price)
	assert.False(t, ok)
}

func TestSideLadder_WalkOrder(t *testing.T) {
	asks := newSideLadder(false)
	asks.GetOrCreate(decimal.NewFromInt(102))
	asks.GetOrCreate(decimal.NewFromInt(101))
	asks.GetOrCreate(decimal.NewFromInt(103))

	var seen []string
	asks.Walk(func(level *PriceLevel) bool {
		seen = append(seen, level.Price.String())
		return true
	})
	assert.Equal(t, []string{"101", "102", "103"}, seen)

	bids := newSideLadder(true)
	bids.GetOrCreate(decimal.NewFromInt(102))
	bids.GetOrCreate(decimal.NewFromInt(101))
	bids.GetOrCreate(decimal.NewFromInt(103))

	seen = nil
	bids.Walk(func(level *PriceLevel) bool {
		seen = append(seen, level.Price.String())
		return true
	})
	assert.Equal(t, []string{"103", "102", "101"}, seen)
}
