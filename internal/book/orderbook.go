// Package book implements a single-symbol price-time priority order
// book: the price levels, the two sorted sides, and the matching
// algorithm that runs against them.
//
// An OrderBook is not safe for concurrent use by itself — callers (the
// matching engine) are expected to serialize access, the way the
// engine's mutation lock does.
package book

import (
	"auction/internal/common"

	"github.com/tidwall/btree"
)

// Sides is the ordered collection of price levels for one side of the
// book. Bids are ordered with the highest price first; asks with the
// lowest price first. Keyed and compared purely on Level.Price, so
// price keys are implicitly unique per side.
type Sides = btree.BTreeG[*Level]

// OrderBook is the book for a single symbol.
type OrderBook struct {
	Symbol string

	bids *Sides
	asks *Sides

	// Cached best-of-book pointers, refreshed whenever the front of a
	// side could have changed. This is what makes BestBid/BestAsk/
	// BestBidSize/BestAskSize true O(1) reads instead of O(log n)
	// btree lookups on every call.
	bestBid *Level
	bestAsk *Level
}

// New creates an empty order book for symbol.
func New(symbol string) *OrderBook {
	return &OrderBook{
		Symbol: symbol,
		bids:   btree.NewBTreeG(func(a, b *Level) bool { return a.Price > b.Price }),
		asks:   btree.NewBTreeG(func(a, b *Level) bool { return a.Price < b.Price }),
	}
}

func (b *OrderBook) side(s common.Side) *Sides {
	if s == common.Buy {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) oppositeSide(s common.Side) *Sides {
	if s == common.Buy {
		return b.asks
	}
	return b.bids
}

func (b *OrderBook) refreshBest() {
	if m, ok := b.bids.MinMut(); ok {
		b.bestBid = m
	} else {
		b.bestBid = nil
	}
	if m, ok := b.asks.MinMut(); ok {
		b.bestAsk = m
	} else {
		b.bestAsk = nil
	}
}

// BestBid returns the highest resting bid price, or (0, false) if the
// bid side is empty.
func (b *OrderBook) BestBid() (float64, bool) {
	if b.bestBid == nil {
		return common.NoPrice, false
	}
	return b.bestBid.Price, true
}

// BestAsk returns the lowest resting ask price, or (0, false) if the
// ask side is empty.
func (b *OrderBook) BestAsk() (float64, bool) {
	if b.bestAsk == nil {
		return common.NoPrice, false
	}
	return b.bestAsk.Price, true
}

// BestBidSize returns the cached total quantity at the best bid, or 0.
func (b *OrderBook) BestBidSize() uint32 {
	if b.bestBid == nil {
		return 0
	}
	return b.bestBid.TotalQty
}

// BestAskSize returns the cached total quantity at the best ask, or 0.
func (b *OrderBook) BestAskSize() uint32 {
	if b.bestAsk == nil {
		return 0
	}
	return b.bestAsk.TotalQty
}

// crosses reports whether the taker can match at the opposite side's
// current best price p.
func crosses(order *common.Order, p float64) bool {
	switch order.Type {
	case common.Market:
		return true
	case common.Limit:
		if order.Side == common.Buy {
			return order.Price >= p
		}
		return order.Price <= p
	}
	return false
}

// Admit stamps the order with RemainingQty and matches it against the
// opposite side in strict best-price-first, then-FIFO order. Any
// unfilled LIMIT residual rests on the order's own side; an unfilled
// MARKET residual is discarded. Returns the trades produced, in the
// order they occurred.
func (b *OrderBook) Admit(order *common.Order) []common.Trade {
	order.RemainingQty = order.OriginalQty

	opposite := b.oppositeSide(order.Side)
	var trades []common.Trade

	for order.RemainingQty > 0 {
		best, ok := opposite.MinMut()
		if !ok {
			break
		}
		if !crosses(order, best.Price) {
			break
		}

		for order.RemainingQty > 0 && !best.IsEmpty() {
			maker := best.Head()
			qty := order.RemainingQty
			if maker.RemainingQty < qty {
				qty = maker.RemainingQty
			}

			trades = append(trades, common.Trade{
				MakerOrderID: maker.ID,
				TakerOrderID: order.ID,
				Symbol:       b.Symbol,
				Price:        best.Price,
				Quantity:     qty,
				TakerSide:    order.Side,
			})

			order.RemainingQty -= qty
			best.HeadConsume(qty)
		}

		if best.IsEmpty() {
			opposite.Delete(best)
		}
	}

	if order.RemainingQty > 0 && order.Type == common.Limit {
		b.rest(order)
	}

	b.refreshBest()
	return trades
}

// rest inserts order into its own side at order.Price, creating the
// level if one does not already exist at that price.
func (b *OrderBook) rest(order *common.Order) {
	side := b.side(order.Side)
	if level, ok := side.GetMut(&Level{Price: order.Price}); ok {
		level.Append(order)
		return
	}
	level := NewLevel(order.Price)
	level.Append(order)
	side.Set(level)
}

// Cancel removes the resting order with orderID from the given side,
// scanning price levels in best-price-first order. Removes the level
// too if it becomes empty. Returns whether the order was found.
func (b *OrderBook) Cancel(orderID uint64, side common.Side) bool {
	s := b.side(side)
	found := false
	var emptyLevel *Level

	s.Scan(func(level *Level) bool {
		if level.RemoveByID(orderID) {
			found = true
			if level.IsEmpty() {
				emptyLevel = level
			}
			return false
		}
		return true
	})

	if emptyLevel != nil {
		s.Delete(emptyLevel)
	}
	if found {
		b.refreshBest()
	}
	return found
}

// Bids returns the resting bid levels, best price first. Exposed for
// tests and read-only inspection; callers must not mutate the slice's
// Level contents outside the book's own mutation path.
func (b *OrderBook) Bids() []*Level { return b.bids.Items() }

// Asks returns the resting ask levels, best price first.
func (b *OrderBook) Asks() []*Level { return b.asks.Items() }
