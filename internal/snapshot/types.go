package snapshot

import (
	"github.com/kesslerquant/matchbook/internal/orderbook"
	"github.com/shopspring/decimal"
)

// BookOrder is the wire shape of one resting order within a Snapshot.
// Price is carried as a string so the JSON round-trip never loses the
// decimal's exact scale the way a float64 would.
type BookOrder struct {
	ID         string `json:"id"`
	Instrument string `json:"instrument"`
	Side       string `json:"side"`
	Type       string `json:"type"`
	Quantity   int64  `json:"quantity"`
	Remaining  int64  `json:"remaining"`
	Price      string `json:"price"`
	Timestamp  int64  `json:"timestamp"`
	AgentID    string `json:"agent_id"`
}

// Snapshot is a point-in-time capture of an OrderBook's resting
// orders, sufficient to restore it on restart without replaying the
// full order topic from the beginning.
type Snapshot struct {
	Instrument     string      `json:"instrument"`
	Orders         []BookOrder `json:"orders"`
	TradesCaptured int64       `json:"trades_captured"`
}

// FromOrderBook captures book's current resting orders into a
// Snapshot. tradesCaptured is stored alongside the orders as given;
// internal/engine passes the number of trades it processed since its
// previous snapshot. Restoring a snapshot does not read it.
func FromOrderBook(book *orderbook.OrderBook, tradesCaptured int64) *Snapshot {
	resting := book.RestingOrders()
	orders := make([]BookOrder, 0, len(resting))
	for _, order := range resting {
		orders = append(orders, BookOrder{
			ID:         order.ID,
			Instrument: order.Instrument,
			Side:       string(order.Side),
			Type:       string(order.Type),
			Quantity:   order.Quantity,
			Remaining:  order.Remaining,
			Price:      order.Price.String(),
			Timestamp:  order.Timestamp,
			AgentID:    order.AgentID,
		})
	}
	return &Snapshot{
		Instrument:     book.Instrument(),
		Orders:         orders,
		TradesCaptured: tradesCaptured,
	}
}

// ToOrders reconstructs the orderbook.Order values captured in the
// snapshot, suitable for orderbook.OrderBook.Restore.
func (s *Snapshot) ToOrders() []*orderbook.Order {
	restored := make([]*orderbook.Order, 0, len(s.Orders))
	for _, bo := range s.Orders {
		price, _ := decimal.NewFromString(bo.Price)
		restored = append(restored, &orderbook.Order{
			ID:         bo.ID,
			Instrument: bo.Instrument,
			Side:       orderbook.Side(bo.Side),
			Type:       orderbook.OrderType(bo.Type),
			Quantity:   bo.Quantity,
			Remaining:  bo.Remaining,
			Price:      price,
			Timestamp:  bo.Timestamp,
			AgentID:    bo.AgentID,
		})
	}
	return restored
}
