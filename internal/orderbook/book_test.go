package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(side Side, typ OrderType, qty int64, price float64, ts int64) *Order {
	return NewOrder("BTC-USD", side, typ, qty, decimal.NewFromFloat(price), ts, "agent")
}

func TestOrderBook_SimpleCross(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	sell := newTestOrder(SideSell, OrderTypeLimit, 100, 10.00, 1)
	trades, err := book.Submit(sell, 1)
	require.NoError(t, err)
	assert.Empty(t, trades)

	buy := newTestOrder(SideBuy, OrderTypeLimit, 100, 10.00, 2)
	trades, err = book.Submit(buy, 2)
	require.NoError(t, err)

	require.Len(t, trades, 1)
	trade := trades[0]
	assert.Equal(t, int64(100), trade.Quantity)
	assert.True(t, trade.Price.Equal(decimal.NewFromFloat(10.00)))
	assert.Equal(t, buy.ID, trade.BuyOrderID)
	assert.Equal(t, sell.ID, trade.SellOrderID)

	_, ok := book.BestBid()
	assert.False(t, ok)
	_, ok = book.BestAsk()
	assert.False(t, ok)
}

func TestOrderBook_PriceTimePriority(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	first := newTestOrder(SideSell, OrderTypeLimit, 50, 10.00, 1)
	second := newTestOrder(SideSell, OrderTypeLimit, 50, 10.00, 2)
	_, err := book.Submit(first, 1)
	require.NoError(t, err)
	_, err = book.Submit(second, 2)
	require.NoError(t, err)

	buy := newTestOrder(SideBuy, OrderTypeMarket, 60, 0, 3)
	trades, err := book.Submit(buy, 3)
	require.NoError(t, err)

	require.Len(t, trades, 2)
	assert.Equal(t, int64(50), trades[0].Quantity)
	assert.Equal(t, first.ID, trades[0].SellOrderID)
	assert.Equal(t, int64(10), trades[1].Quantity)
	assert.Equal(t, second.ID, trades[1].SellOrderID)

	ask, ok := book.BestAsk()
	require.True(t, ok)
	assert.True(t, ask.Price.Equal(decimal.NewFromFloat(10.00)))
	assert.Equal(t, int64(40), ask.Quantity)
}

func TestOrderBook_MarketWalksLevels(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	_, err := book.Submit(newTestOrder(SideSell, OrderTypeLimit, 30, 10.00, 1), 1)
	require.NoError(t, err)
	_, err = book.Submit(newTestOrder(SideSell, OrderTypeLimit, 30, 10.05, 2), 2)
	require.NoError(t, err)

	trades, err := book.Submit(newTestOrder(SideBuy, OrderTypeMarket, 50, 0, 3), 3)
	require.NoError(t, err)

	require.Len(t, trades, 2)
	assert.True(t, trades[0].Price.Equal(decimal.NewFromFloat(10.00)))
	assert.Equal(t, int64(30), trades[0].Quantity)
	assert.True(t, trades[1].Price.Equal(decimal.NewFromFloat(10.05)))
	assert.Equal(t, int64(20), trades[1].Quantity)

	ask, ok := book.BestAsk()
	require.True(t, ok)
	assert.True(t, ask.Price.Equal(decimal.NewFromFloat(10.05)))
	assert.Equal(t, int64(10), ask.Quantity)
}

func TestOrderBook_FOKRejectsWhenInsufficientLiquidity(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	_, err := book.Submit(newTestOrder(SideSell, OrderTypeLimit, 50, 10.00, 1), 1)
	require.NoError(t, err)
	_, err = book.Submit(newTestOrder(SideSell, OrderTypeLimit, 30, 10.10, 2), 2)
	require.NoError(t, err)

	fok := newTestOrder(SideBuy, OrderTypeFOK, 100, 10.10, 3)
	trades, err := book.Submit(fok, 3)
	require.NoError(t, err)
	assert.Empty(t, trades)

	_, ok := book.orders[fok.ID]
	assert.False(t, ok)

	ask, ok := book.BestAsk()
	require.True(t, ok)
	assert.True(t, ask.Price.Equal(decimal.NewFromFloat(10.00)))
	assert.Equal(t, int64(50), ask.Quantity)
}

func TestOrderBook_FOKFillsInFullWhenFeasible(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	_, err := book.Submit(newTestOrder(SideSell, OrderTypeLimit, 50, 10.00, 1), 1)
	require.NoError(t, err)
	_, err = book.Submit(newTestOrder(SideSell, OrderTypeLimit, 30, 10.10, 2), 2)
	require.NoError(t, err)

	fok := newTestOrder(SideBuy, OrderTypeFOK, 80, 10.10, 3)
	trades, err := book.Submit(fok, 3)
	require.NoError(t, err)

	var filled int64
	for _, trade := range trades {
		filled += trade.Quantity
	}
	assert.Equal(t, int64(80), filled)

	_, ok := book.BestAsk()
	assert.False(t, ok)
}

func TestOrderBook_IOCPartialFillDiscardsRemainder(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	_, err := book.Submit(newTestOrder(SideSell, OrderTypeLimit, 40, 10.00, 1), 1)
	require.NoError(t, err)

	ioc := newTestOrder(SideBuy, OrderTypeIOC, 100, 10.00, 2)
	trades, err := book.Submit(ioc, 2)
	require.NoError(t, err)

	require.Len(t, trades, 1)
	assert.Equal(t, int64(40), trades[0].Quantity)

	_, ok := book.orders[ioc.ID]
	assert.False(t, ok)
	assert.False(t, book.Cancel(ioc.ID))

	_, ok = book.BestAsk()
	assert.False(t, ok)
}

func TestOrderBook_CancelThenRequery(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	order := newTestOrder(SideBuy, OrderTypeLimit, 100, 9.95, 1)
	_, err := book.Submit(order, 1)
	require.NoError(t, err)

	bid, ok := book.BestBid()
	require.True(t, ok)
	assert.True(t, bid.Price.Equal(decimal.NewFromFloat(9.95)))
	assert.Equal(t, int64(100), bid.Quantity)

	assert.True(t, book.Cancel(order.ID))
	_, ok = book.BestBid()
	assert.False(t, ok)

	assert.False(t, book.Cancel(order.ID))
}

func TestOrderBook_PriceImprovementRestingPriceWins(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	_, err := book.Submit(newTestOrder(SideSell, OrderTypeLimit, 10, 10.00, 1), 1)
	require.NoError(t, err)

	trades, err := book.Submit(newTestOrder(SideBuy, OrderTypeLimit, 10, 10.05, 2), 2)
	require.NoError(t, err)

	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(decimal.NewFromFloat(10.00)))
}

func TestOrderBook_MarketAgainstEmptyBookIsNoOp(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	trades, err := book.Submit(newTestOrder(SideBuy, OrderTypeMarket, 10, 0, 1), 1)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestOrderBook_SpreadAndMidPrice(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	_, err := book.Submit(newTestOrder(SideBuy, OrderTypeLimit, 10, 99.00, 1), 1)
	require.NoError(t, err)
	_, err = book.Submit(newTestOrder(SideSell, OrderTypeLimit, 10, 101.00, 2), 2)
	require.NoError(t, err)

	spread, ok := book.Spread()
	require.True(t, ok)
	assert.True(t, spread.Equal(decimal.NewFromInt(2)))

	mid, ok := book.MidPrice()
	require.True(t, ok)
	assert.True(t, mid.Equal(decimal.NewFromInt(100)))
}

func TestOrderBook_Depth(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	for i, price := range []float64{101, 102, 103} {
		_, err := book.Submit(newTestOrder(SideSell, OrderTypeLimit, 10, price, int64(i)), int64(i))
		require.NoError(t, err)
	}

	bids, asks := book.Depth(2)
	assert.Empty(t, bids)
	require.Len(t, asks, 2)
	assert.True(t, asks[0].Price.Equal(decimal.NewFromInt(101)))
	assert.True(t, asks[1].Price.Equal(decimal.NewFromInt(102)))
}

func TestOrderBook_LastTrade(t *testing.T) {
	book := NewOrderBook("BTC-USD")

	_, _, ok := book.LastTrade()
	assert.False(t, ok)

	_, err := book.Submit(newTestOrder(SideSell, OrderTypeLimit, 10, 50.00, 1), 1)
	require.NoError(t, err)
	_, err = book.Submit(newTestOrder(SideBuy, OrderTypeLimit, 10, 50.00, 2), 2)
	require.NoError(t, err)

	price, ts, ok := book.LastTrade()
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromFloat(50.00)))
	assert.Equal(t, int64(2), ts)
}

func TestOrderBook_Submit_RejectsBadQuantity(t *testing.T) {
	book := NewOrderBook("BTC-USD")
	order := newTestOrder(SideBuy, OrderTypeLimit, 0, 10, 1)

	_, err := book.Submit(order, 1)
	assert.Error(t, err)
}

func TestOrderBook_Submit_RejectsWrongInstrument(t *testing.T) {
	book := NewOrderBook("BTC-USD")
	order := NewOrder("ETH-USD", SideBuy, OrderTypeLimit, 10, decimal.NewFromInt(1), 1, "agent")

	_, err := book.Submit(order, 1)
	assert.Error(t, err)
}
