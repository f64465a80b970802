package orderbook

import (
	"github.com/shopspring/decimal"
)

// Level is a read-only view of aggregate resting quantity at a single
// price, returned by the query methods below.
type Level struct {
	Price    decimal.Decimal
	Quantity int64
}

// OrderBook is a single-instrument limit order book. It owns the two
// SideLadders, the id index, and the trade tape, and is the only type
// in this package with mutating methods that cross both sides at
// once. An OrderBook is not safe for concurrent use, callers that
// share one across goroutines must serialize Submit, Cancel, and the
// query methods themselves; see internal/engine for how this
// repository does that.
type OrderBook struct {
	instrument string

	bids *SideLadder
	asks *SideLadder

	orders map[string]*Order

	tape []Trade

	hasLastTrade   bool
	lastTradePrice decimal.Decimal
	lastTradeTime  int64
}

// NewOrderBook creates an empty book for instrument.
func NewOrderBook(instrument string) *OrderBook {
	return &OrderBook{
		instrument: instrument,
		bids:       newSideLadder(true),
		asks:       newSideLadder(false),
		orders:     make(map[string]*Order),
	}
}

// Instrument returns the instrument this book was constructed for.
func (b *OrderBook) Instrument() string {
	return b.instrument
}

// Submit accepts order into the book at time now, matching it against
// resting liquidity under price-time priority and returning the
// trades it generated, in generation order. An error return means
// order was rejected on a caller-contract violation (bad quantity,
// unknown side/type, negative price, wrong instrument) before any
// book state was touched; it is never returned for a no-op outcome
// like an unfilled IOC or a rejected FOK, both of which return a nil
// error and an empty (possibly non-nil) trade slice.
func (b *OrderBook) Submit(order *Order, now int64) ([]Trade, error) {
	if err := validate(order); err != nil {
		return nil, err
	}
	if order.Instrument != b.instrument {
		return nil, InvalidOrder("order instrument does not match this book", "instrument")
	}

	opposite := b.oppositeLadder(order.Side)
	trades := make([]Trade, 0)

	if order.Type == OrderTypeFOK && !b.fokFeasible(order, opposite) {
		return trades, nil
	}

	if b.isCrossing(order, opposite) {
		b.match(order, opposite, now, &trades)
	}

	if order.Remaining > 0 && order.Type == OrderTypeLimit {
		level := b.ownLadder(order.Side).GetOrCreate(order.Price)
		level.Enqueue(order)
		b.orders[order.ID] = order
	}
	// MARKET, IOC, and any FOK residual that reaches here are discarded:
	// never booked, never indexed, never cancellable.

	return trades, nil
}

// Cancel removes order_id's unfilled remainder from the book and
// returns true, or returns false without side effect if the id is
// unknown or already terminal. Cancelling a partially filled order
// only discards what is left resting; prior trades stand.
func (b *OrderBook) Cancel(orderID string) bool {
	order, ok := b.orders[orderID]
	if !ok {
		return false
	}

	ladder := b.ownLadder(order.Side)
	level, ok := ladder.Get(order.Price)
	if !ok {
		panic("orderbook: indexed order has no price level on its side")
	}
	if _, ok := level.Remove(orderID); !ok {
		panic("orderbook: indexed order missing from its price level's queue")
	}
	if level.IsEmpty() {
		ladder.Remove(order.Price)
	}
	delete(b.orders, orderID)
	return true
}

// BestBid returns the best (highest) bid price and its aggregate
// resting quantity, or false if there are no bids.
func (b *OrderBook) BestBid() (Level, bool) {
	return bestLevel(b.bids)
}

// BestAsk returns the best (lowest) ask price and its aggregate
// resting quantity, or false if there are no asks.
func (b *OrderBook) BestAsk() (Level, bool) {
	return bestLevel(b.asks)
}

// Spread returns best ask minus best bid, or false if either side is
// empty.
func (b *OrderBook) Spread() (decimal.Decimal, bool) {
	bid, ask, ok := b.bestPair()
	if !ok {
		return decimal.Decimal{}, false
	}
	return ask.Price.Sub(bid.Price), true
}

// MidPrice returns the midpoint of best bid and best ask, or false if
// either side is empty.
func (b *OrderBook) MidPrice() (decimal.Decimal, bool) {
	bid, ask, ok := b.bestPair()
	if !ok {
		return decimal.Decimal{}, false
	}
	return bid.Price.Add(ask.Price).Div(decimal.NewFromInt(2)), true
}

// Depth returns up to n price levels per side, best-first, as
// (price, aggregate quantity) pairs. A side with fewer than n levels
// returns what it has; neither slice is ever padded.
func (b *OrderBook) Depth(n int) (bids, asks []Level) {
	return levelsOf(b.bids, n), levelsOf(b.asks, n)
}

// LastTrade returns the price and timestamp of the most recent trade
// executed against this book, or false if none has occurred yet.
func (b *OrderBook) LastTrade() (decimal.Decimal, int64, bool) {
	if !b.hasLastTrade {
		return decimal.Decimal{}, 0, false
	}
	return b.lastTradePrice, b.lastTradeTime, true
}

// Tape returns the full append-only trade history for this book. The
// core never truncates it; callers running long simulations should
// drain what they need periodically.
func (b *OrderBook) Tape() []Trade {
	return b.tape
}

func (b *OrderBook) oppositeLadder(side Side) *SideLadder {
	if side == SideBuy {
		return b.asks
	}
	return b.bids
}

func (b *OrderBook) ownLadder(side Side) *SideLadder {
	if side == SideBuy {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) bestPair() (bid, ask Level, ok bool) {
	bid, okBid := b.BestBid()
	ask, okAsk := b.BestAsk()
	return bid, ask, okBid && okAsk
}

// crossSatisfied reports whether order's limit reaches a level priced
// at levelPrice. MARKET orders have no limit and always satisfy.
func crossSatisfied(order *Order, levelPrice decimal.Decimal) bool {
	if order.Type == OrderTypeMarket {
		return true
	}
	if order.Side == SideBuy {
		return order.Price.GreaterThanOrEqual(levelPrice)
	}
	return order.Price.LessThanOrEqual(levelPrice)
}

// isCrossing classifies order per the submit algorithm's first step:
// MARKET always crosses; LIMIT/IOC/FOK cross only if the opposite
// ladder is non-empty and the order's limit touches its best price.
func (b *OrderBook) isCrossing(order *Order, opposite *SideLadder) bool {
	if order.Type == OrderTypeMarket {
		return true
	}
	best, ok := opposite.Best()
	if !ok {
		return false
	}
	return crossSatisfied(order, best.Price)
}

// fokFeasible walks the opposite ladder, best price first, summing
// the aggregate quantity available at levels the order's limit
// reaches, stopping as soon as either the limit is no longer
// satisfied or enough quantity has been found. It never mutates the
// ladder, the FOK pre-check must be side-effect free so a rejected
// FOK leaves the book untouched.
func (b *OrderBook) fokFeasible(order *Order, opposite *SideLadder) bool {
	var available int64
	opposite.Walk(func(level *PriceLevel) bool {
		if !crossSatisfied(order, level.Price) {
			return false
		}
		available += level.TotalQuantity()
		return available < order.Remaining
	})
	return available >= order.Remaining
}

// match consumes liquidity from opposite on behalf of order, one
// resting order at a time, appending each resulting Trade to trades
// and to the book's tape, until order is filled, the opposite ladder
// is empty, or the next best opposite price no longer satisfies
// order's limit.
func (b *OrderBook) match(order *Order, opposite *SideLadder, now int64, trades *[]Trade) {
	for order.Remaining > 0 {
		level, ok := opposite.Best()
		if !ok {
			break
		}
		if !crossSatisfied(order, level.Price) {
			break
		}

		resting, ok := level.Peek()
		if !ok {
			panic("orderbook: price level present in ladder with no resting order")
		}

		tradeQty := order.Remaining
		if resting.Remaining < tradeQty {
			tradeQty = resting.Remaining
		}

		trade := newTrade(order, resting, level.Price, tradeQty, now)
		order.Remaining -= tradeQty
		resting.Remaining -= tradeQty
		level.Fill(tradeQty)

		if resting.Remaining == 0 {
			level.DequeueFront()
			delete(b.orders, resting.ID)
		}
		if level.IsEmpty() {
			opposite.Remove(level.Price)
		}

		b.tape = append(b.tape, trade)
		b.hasLastTrade = true
		b.lastTradePrice = trade.Price
		b.lastTradeTime = trade.Timestamp
		*trades = append(*trades, trade)
	}
}

// newTrade builds a Trade at price between incoming and resting,
// recording whichever of the two is the buy side as BuyOrderID
// regardless of which one was aggressive.
func newTrade(incoming, resting *Order, price decimal.Decimal, quantity int64, now int64) Trade {
	buyOrder, sellOrder := incoming, resting
	if incoming.Side == SideSell {
		buyOrder, sellOrder = resting, incoming
	}
	return Trade{
		ID:          newTradeID(),
		Instrument:  incoming.Instrument,
		BuyOrderID:  buyOrder.ID,
		SellOrderID: sellOrder.ID,
		BuyAgentID:  buyOrder.AgentID,
		SellAgentID: sellOrder.AgentID,
		Price:       price,
		Quantity:    quantity,
		Timestamp:   now,
	}
}

// RestingOrders returns every order currently resting in the book,
// bid levels first then ask levels, each level in FIFO order. Intended
// for snapshotting; mutating the returned orders is unsafe.
func (b *OrderBook) RestingOrders() []*Order {
	orders := make([]*Order, 0, len(b.orders))
	collect := func(level *PriceLevel) bool {
		orders = append(orders, level.Orders()...)
		return true
	}
	b.bids.Walk(collect)
	b.asks.Walk(collect)
	return orders
}

// Restore repopulates an empty book from a previously captured set of
// resting orders, re-indexing and re-enqueueing each one without
// running it through the matcher. Restore panics if called on a book
// that already holds state, it is meant to run once, immediately
// after NewOrderBook, before any Submit/Cancel call.
func (b *OrderBook) Restore(orders []*Order) {
	if len(b.orders) != 0 || b.bids.Len() != 0 || b.asks.Len() != 0 {
		panic("orderbook: Restore called on a non-empty book")
	}
	for _, order := range orders {
		level := b.ownLadder(order.Side).GetOrCreate(order.Price)
		level.Enqueue(order)
		b.orders[order.ID] = order
	}
}

func bestLevel(ladder *SideLadder) (Level, bool) {
	level, ok := ladder.Best()
	if !ok {
		return Level{}, false
	}
	return Level{Price: level.Price, Quantity: level.TotalQuantity()}, true
}

func levelsOf(ladder *SideLadder, n int) []Level {
	if n <= 0 {
		return nil
	}
	levels := make([]Level, 0, n)
	ladder.Walk(func(level *PriceLevel) bool {
		levels = append(levels, Level{Price: level.Price, Quantity: level.TotalQuantity()})
		return len(levels) < n
	})
	return levels
}
