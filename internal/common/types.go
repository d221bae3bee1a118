// Package common holds the value types shared across the book, engine,
// market-data and transport layers.
package common

import "fmt"

// Side is which side of the book an order rests on, or which side a
// taker is trading from.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// OrderType distinguishes resting limit orders from marketable orders
// that never rest.
type OrderType int

const (
	Limit OrderType = iota
	Market
)

func (t OrderType) String() string {
	if t == Limit {
		return "LIMIT"
	}
	return "MARKET"
}

// Order is a single order as tracked by the book. Price is meaningless
// for Market orders and is expected to be zero on the way in.
//
// RemainingQty is mutated in place while an order rests or is matched;
// OriginalQty never changes after admit.
type Order struct {
	ID           uint64
	Symbol       string
	Side         Side
	Type         OrderType
	Price        float64
	OriginalQty  uint32
	RemainingQty uint32
	ArrivalSeq   uint64
	Owner        string
}

func (o Order) String() string {
	return fmt.Sprintf("Order{id=%d symbol=%s side=%s type=%s price=%g qty=%d/%d seq=%d}",
		o.ID, o.Symbol, o.Side, o.Type, o.Price, o.RemainingQty, o.OriginalQty, o.ArrivalSeq)
}

// Trade is a single fill produced by a match. It is a value emitted to
// listeners and never stored by the book.
type Trade struct {
	MakerOrderID uint64
	TakerOrderID uint64
	Symbol       string
	Price        float64
	Quantity     uint32
	TakerSide    Side
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade{symbol=%s price=%g qty=%d taker=%d(%s) maker=%d}",
		t.Symbol, t.Price, t.Quantity, t.TakerOrderID, t.TakerSide, t.MakerOrderID)
}

// OrderResult is returned to the caller of Engine.Admit.
type OrderResult struct {
	Success      bool
	OrderID      uint64
	ErrorMessage string
}

// BookUpdate reports the terminal best-quote state of a symbol after an
// admit or cancel. A zero BestBid/BestAsk with size 0 means that side is
// empty.
type BookUpdate struct {
	Symbol   string
	BestBid  float64
	BestAsk  float64
	BidSize  uint32
	AskSize  uint32
}

// NoPrice is the sentinel returned by book queries when a side is empty.
const NoPrice = 0.0
