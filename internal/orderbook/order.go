// Package orderbook implements a single-instrument limit order book and
// its price-time priority matching engine.
//
// The package is deliberately free of logging, configuration, and I/O:
// callers supply the current time and own everything that happens
// outside a single Submit/Cancel/query call. See the surrounding
// internal/engine package for the Kafka/Redis-backed host that drives
// this package in the rest of this repository.
package orderbook

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// priceScale is the number of decimal places a Price is canonicalized
// to before it is ever used as a price-level key. Equality on prices
// drives level lookup, so every price that enters the book, incoming
// order or resting level, is rounded to this scale first.
const priceScale = 8

// Side is which side of the book an order belongs to.
type Side string

// The two sides of the book.
const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType is the execution discipline requested for an order.
type OrderType string

// Supported order types.
const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeIOC    OrderType = "IOC"
	OrderTypeFOK    OrderType = "FOK"
)

// Order is the unit of identity: an intent to trade, live while
// Remaining > 0 and referenced by the owning OrderBook's id index.
type Order struct {
	ID         string
	Instrument string
	Side       Side
	Type       OrderType
	Quantity   int64 // original quantity requested
	Remaining  int64 // mutable; 0 <= Remaining <= Quantity
	Price      decimal.Decimal
	Timestamp  int64 // caller-supplied, monotonically nondecreasing
	AgentID    string
}

// NewOrder builds an Order with a fresh id and Remaining == Quantity.
// Limit prices are rounded to priceScale decimal places. For market
// orders Price is stored exactly as passed and is never consulted
// during matching.
func NewOrder(instrument string, side Side, typ OrderType, quantity int64, price decimal.Decimal, timestamp int64, agentID string) *Order {
	canonical := price
	if typ != OrderTypeMarket {
		canonical = canonicalizePrice(price)
	}
	return &Order{
		ID:         ulid.Make().String(),
		Instrument: instrument,
		Side:       side,
		Type:       typ,
		Quantity:   quantity,
		Remaining:  quantity,
		Price:      canonical,
		Timestamp:  timestamp,
		AgentID:    agentID,
	}
}

func canonicalizePrice(p decimal.Decimal) decimal.Decimal {
	return p.Round(priceScale)
}

// IsLive reports whether the order still has quantity to fill.
func (o *Order) IsLive() bool {
	return o.Remaining > 0
}

// Trade is an immutable record of a single execution. By convention
// BuyOrderID is always the buy side's order id regardless of which
// side was the aggressor.
type Trade struct {
	ID          string
	Instrument  string
	BuyOrderID  string
	SellOrderID string
	BuyAgentID  string
	SellAgentID string
	Price       decimal.Decimal
	Quantity    int64
	Timestamp   int64
}

// newTradeID mints a trade id. Trades use uuid rather than the ulid
// Order.ID uses: trades are never walked in id-sorted order, so there
// is no benefit to a sortable id here, and google/uuid is what the
// rest of this repository already uses for opaque request-scoped ids.
func newTradeID() string {
	return uuid.NewString()
}
