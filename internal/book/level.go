package book

import "auction/internal/common"

// Level is a FIFO queue of resting orders at one price, with a cached
// total quantity so depth queries don't need to rescan the queue.
//
// Orders is kept as a slice used as a queue: appended at the tail,
// trimmed from the head as orders are consumed, and spliced out at
// whatever position they hold when cancelled. This
// mirrors the teacher's approach of slicing a price level's order list
// from the front during a sweep rather than using a linked list.
type Level struct {
	Price    float64
	Orders   []*common.Order
	TotalQty uint32
}

// NewLevel creates an empty level at the given price.
func NewLevel(price float64) *Level {
	return &Level{Price: price}
}

// Append adds an order to the tail of the queue.
func (l *Level) Append(o *common.Order) {
	l.Orders = append(l.Orders, o)
	l.TotalQty += o.RemainingQty
}

// HeadConsume decrements the head order's remaining quantity by qty
// (0 < qty <= head.RemainingQty) and removes the head if it is now
// fully filled. Returns the head order consumed from (nil if empty).
func (l *Level) HeadConsume(qty uint32) *common.Order {
	if len(l.Orders) == 0 {
		return nil
	}
	head := l.Orders[0]
	head.RemainingQty -= qty
	l.TotalQty -= qty
	if head.RemainingQty == 0 {
		l.Orders = l.Orders[1:]
	}
	return head
}

// Head returns the front order of the queue, or nil if empty.
func (l *Level) Head() *common.Order {
	if len(l.Orders) == 0 {
		return nil
	}
	return l.Orders[0]
}

// RemoveByID scans linearly for the order and removes it, decrementing
// TotalQty by its remaining quantity. Returns whether it was found.
//
// O(n) at the level: acceptable because cancellation is already routed
// to the correct level by the engine's order index, and levels are
// small in practice.
func (l *Level) RemoveByID(orderID uint64) bool {
	for i, o := range l.Orders {
		if o.ID == orderID {
			l.TotalQty -= o.RemainingQty
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			return true
		}
	}
	return false
}

// IsEmpty reports whether the level has no resting orders.
func (l *Level) IsEmpty() bool {
	return len(l.Orders) == 0
}
