package orderbook

import (
	"container/list"

	"github.com/shopspring/decimal"
)

// PriceLevel is a FIFO queue of live resting orders that share a
// price, plus a cached aggregate of their remaining quantity.
//
// Resting orders live in a doubly-linked list (container/list) with an
// id -> *list.Element index alongside it, so cancelling an order in
// the middle of the queue is O(1) instead of the O(n) a plain slice
// rebuild would cost, the data structure the source repository uses
// is the plain-slice kind; this is the linked-list alternative its own
// design notes recommend.
type PriceLevel struct {
	Price         decimal.Decimal
	queue         *list.List
	index         map[string]*list.Element
	totalQuantity int64
}

// NewPriceLevel creates an empty level at price.
func NewPriceLevel(price decimal.Decimal) *PriceLevel {
	return &PriceLevel{
		Price: price,
		queue: list.New(),
		index: make(map[string]*list.Element),
	}
}

// Enqueue appends order to the tail of the level and adds its
// remaining quantity to the cached total. The caller is responsible
// for ensuring order.Price equals the level's price and order.Side
// matches the ladder this level lives in.
func (l *PriceLevel) Enqueue(order *Order) {
	elem := l.queue.PushBack(order)
	l.index[order.ID] = elem
	l.totalQuantity += order.Remaining
}

// Peek returns the front (earliest-submitted) order without removing
// it, or false if the level is empty.
func (l *PriceLevel) Peek() (*Order, bool) {
	front := l.queue.Front()
	if front == nil {
		return nil, false
	}
	return front.Value.(*Order), true
}

// DequeueFront removes and returns the front order, subtracting its
// remaining quantity from the cached total.
func (l *PriceLevel) DequeueFront() (*Order, bool) {
	front := l.queue.Front()
	if front == nil {
		return nil, false
	}
	order := front.Value.(*Order)
	l.queue.Remove(front)
	delete(l.index, order.ID)
	l.totalQuantity -= order.Remaining
	return order, true
}

// Fill reduces the cached total by qty, reflecting a partial or full
// fill applied to the front order by the caller. It does not touch
// the queue itself, pair with DequeueFront when the front order's
// remaining quantity reaches zero.
func (l *PriceLevel) Fill(qty int64) {
	l.totalQuantity -= qty
}

// Remove deletes the order identified by id from anywhere in the
// queue, preserving the relative order of the survivors, and returns
// it. Used by cancellation; O(1) thanks to the id index.
func (l *PriceLevel) Remove(orderID string) (*Order, bool) {
	elem, ok := l.index[orderID]
	if !ok {
		return nil, false
	}
	order := elem.Value.(*Order)
	l.queue.Remove(elem)
	delete(l.index, orderID)
	l.totalQuantity -= order.Remaining
	return order, true
}

// IsEmpty reports whether the level has no resting orders left. A
// level in this state must not persist in its ladder past the
// boundary of the operation that emptied it.
func (l *PriceLevel) IsEmpty() bool {
	return l.queue.Len() == 0
}

// Len returns the number of resting orders at this level.
func (l *PriceLevel) Len() int {
	return l.queue.Len()
}

// TotalQuantity returns the cached sum of remaining quantity over the
// level's queue.
func (l *PriceLevel) TotalQuantity() int64 {
	return l.totalQuantity
}

// Orders returns a snapshot copy of the resting orders in FIFO order
// (earliest first). Intended for queries/snapshots; mutating the
// returned slice has no effect on the level.
func (l *PriceLevel) Orders() []*Order {
	orders := make([]*Order, 0, l.queue.Len())
	for e := l.queue.Front(); e != nil; e = e.Next() {
		orders = append(orders, e.Value.(*Order))
	}
	return orders
}
