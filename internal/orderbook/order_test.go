package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewOrder_CanonicalizesPrice(t *testing.T) {
	price := decimal.NewFromFloat(10.123456789)
	order := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 100, price, 1, "agent-1")

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, int64(100), order.Quantity)
	assert.Equal(t, int64(100), order.Remaining)
	assert.True(t, order.Price.Equal(decimal.NewFromFloat(10.12345679)))
}

func TestNewOrder_MarketLeavesPriceUntouched(t *testing.T) {
	price := decimal.NewFromFloat(123.456789123)
	order := NewOrder("BTC-USD", SideSell, OrderTypeMarket, 10, price, 1, "agent-1")

	assert.True(t, order.Price.Equal(price))
}

func TestOrder_IsLive(t *testing.T) {
	order := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 10, decimal.NewFromInt(1), 1, "agent-1")
	assert.True(t, order.IsLive())

	order.Remaining = 0
	assert.False(t, order.IsLive())
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}
