package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLevel_EnqueueDequeueFIFO(t *testing.T) {
	price := decimal.NewFromInt(100)
	level := NewPriceLevel(price)

	first := NewOrder("BTC-USD", SideSell, OrderTypeLimit, 10, price, 1, "agent-1")
	second := NewOrder("BTC-USD", SideSell, OrderTypeLimit, 5, price, 2, "agent-2")

	level.Enqueue(first)
	level.Enqueue(second)

	assert.Equal(t, 2, level.Len())
	assert.Equal(t, int64(15), level.TotalQuantity())

	front, ok := level.Peek()
	require.True(t, ok)
	assert.Equal(t, first.ID, front.ID)

	dequeued, ok := level.DequeueFront()
	require.True(t, ok)
	assert.Equal(t, first.ID, dequeued.ID)
	assert.Equal(t, 1, level.Len())
}

func TestPriceLevel_RemoveMiddlePreservesOrder(t *testing.T) {
	price := decimal.NewFromInt(100)
	level := NewPriceLevel(price)

	a := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 1, price, 1, "a")
	b := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 1, price, 2, "b")
	c := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 1, price, 3, "c")
	level.Enqueue(a)
	level.Enqueue(b)
	level.Enqueue(c)

	removed, ok := level.Remove(b.ID)
	require.True(t, ok)
	assert.Equal(t, b.ID, removed.ID)

	orders := level.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, a.ID, orders[0].ID)
	assert.Equal(t, c.ID, orders[1].ID)
}

func TestPriceLevel_RemoveUnknownID(t *testing.T) {
	level := NewPriceLevel(decimal.NewFromInt(100))
	_, ok := level.Remove("does-not-exist")
	assert.False(t, ok)
}

func TestPriceLevel_IsEmptyAfterDraining(t *testing.T) {
	price := decimal.NewFromInt(100)
	level := NewPriceLevel(price)
	order := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 1, price, 1, "a")
	level.Enqueue(order)

	assert.False(t, level.IsEmpty())
	_, ok := level.DequeueFront()
	require.True(t, ok)
	assert.True(t, level.IsEmpty())
}
