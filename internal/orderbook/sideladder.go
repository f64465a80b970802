package orderbook

import (
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

// SideLadder is an ordered mapping from price to PriceLevel, one per
// side of the book. It is always stored ascending by price
// internally; a descending ladder (the bid side) simply walks and
// picks its "best" from the opposite end of the tree. "Best" always
// means the best price from the owning side's perspective: highest
// for bids, lowest for asks.
type SideLadder struct {
	tree       *btree.BTreeG[*PriceLevel]
	descending bool
}

func newSideLadder(descending bool) *SideLadder {
	return &SideLadder{
		tree: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price.LessThan(b.Price)
		}),
		descending: descending,
	}
}

// Best returns the best-priced level on this side, or false if the
// ladder is empty. O(log n).
func (s *SideLadder) Best() (*PriceLevel, bool) {
	if s.descending {
		return s.tree.Max()
	}
	return s.tree.Min()
}

// Get returns the level at price, if any. O(log n).
func (s *SideLadder) Get(price decimal.Decimal) (*PriceLevel, bool) {
	return s.tree.Get(&PriceLevel{Price: price})
}

// GetOrCreate returns the level at price, creating an empty one and
// inserting it if absent. O(log n).
func (s *SideLadder) GetOrCreate(price decimal.Decimal) *PriceLevel {
	if level, ok := s.Get(price); ok {
		return level
	}
	level := NewPriceLevel(price)
	s.tree.Set(level)
	return level
}

// Remove deletes the level at price, if present. O(log n).
func (s *SideLadder) Remove(price decimal.Decimal) {
	s.tree.Delete(&PriceLevel{Price: price})
}

// Len returns the number of distinct price levels on this side.
func (s *SideLadder) Len() int {
	return s.tree.Len()
}

// Walk visits levels in best-first order (highest-first for bids,
// lowest-first for asks), stopping early if visit returns false.
func (s *SideLadder) Walk(visit func(level *PriceLevel) bool) {
	if s.descending {
		s.tree.Reverse(visit)
	} else {
		s.tree.Scan(visit)
	}
}
