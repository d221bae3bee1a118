// Package engine is the multi-symbol matching engine facade: it owns
// the per-symbol order books, order-ID assignment, the order index used
// to route cancels, the listener registry, and the single mutation lock
// that serializes every operation that touches book state.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"auction/internal/book"
	"auction/internal/common"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownSymbol   = errors.New("unknown symbol")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Listener receives trade and book-update notifications. Implementations
// must not block on anything that could in turn call back into the
// engine — the mutation lock is held for the duration of the dispatch.
// A panicking listener is isolated and logged, never allowed to escape
// into the admit/cancel path.
type Listener interface {
	OnTrade(trade common.Trade)
	OnBookUpdate(update common.BookUpdate)
}

// Recorder is an optional, nil-safe metrics sink. See internal/metrics.
type Recorder interface {
	ObserveAdmit(symbol string, trades int)
	ObserveCancel(symbol string, found bool)
	ObserveRejection(reason string)
}

type indexEntry struct {
	symbol string
	side   common.Side
}

// Engine is the matching engine. Zero value is not usable; use New.
type Engine struct {
	mu sync.Mutex

	books map[string]*book.OrderBook
	index map[uint64]indexEntry

	nextID uint64

	listeners []Listener
	metrics   Recorder

	log zerolog.Logger
}

// New creates an empty engine with no registered symbols.
func New() *Engine {
	return &Engine{
		books: make(map[string]*book.OrderBook),
		index: make(map[uint64]indexEntry),
		log:   log.With().Str("component", "engine").Logger(),
	}
}

// SetMetrics installs a metrics recorder. Must be called before serving
// traffic; not safe to change concurrently with admits/cancels.
func (e *Engine) SetMetrics(r Recorder) { e.metrics = r }

// RegisterSymbol creates an empty order book for symbol if one does not
// already exist. Idempotent.
func (e *Engine) RegisterSymbol(symbol string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.books[symbol]; ok {
		return
	}
	e.books[symbol] = book.New(symbol)
	e.log.Info().Str("symbol", symbol).Msg("registered symbol")
}

// next assigns the next engine-wide monotonic counter value. It is used
// for both Order.ID and Order.ArrivalSeq: both must be monotonic and
// unique for the process lifetime, both are assigned at the same admit
// instant, so one counter correctly satisfies both invariants.
func (e *Engine) next() uint64 {
	e.nextID++
	return e.nextID
}

// Admit validates, assigns an ID, and matches order against its book,
// then dispatches trade events (in order) followed by exactly one
// book-update event for the symbol. Order.ID, Order.ArrivalSeq and
// Order.RemainingQty are set by Admit; the caller-supplied values are
// ignored.
func (e *Engine) Admit(order common.Order) common.OrderResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if order.OriginalQty == 0 {
		if e.metrics != nil {
			e.metrics.ObserveRejection("invalid_quantity")
		}
		return common.OrderResult{Success: false, ErrorMessage: ErrInvalidQuantity.Error()}
	}

	b, ok := e.books[order.Symbol]
	if !ok {
		if e.metrics != nil {
			e.metrics.ObserveRejection("unknown_symbol")
		}
		return common.OrderResult{Success: false, ErrorMessage: fmt.Sprintf("%s: %s", ErrUnknownSymbol, order.Symbol)}
	}

	id := e.next()
	order.ID = id
	order.ArrivalSeq = id
	order.RemainingQty = order.OriginalQty

	e.index[id] = indexEntry{symbol: order.Symbol, side: order.Side}

	trades := b.Admit(&order)
	e.reconcileMakers(b, trades)

	fullyFilled := order.RemainingQty == 0 || order.Type == common.Market
	if fullyFilled {
		delete(e.index, order.ID)
	}

	for _, t := range trades {
		e.dispatchTrade(t)
	}
	e.dispatchBookUpdate(b)

	if e.metrics != nil {
		e.metrics.ObserveAdmit(order.Symbol, len(trades))
	}

	return common.OrderResult{Success: true, OrderID: order.ID}
}

// reconcileMakers removes from the index every maker order ID that this
// admit's trades touched and that the book no longer reports resting —
// the book already dropped fully-filled makers from their levels, so
// this just mirrors that into the engine's cancel index.
func (e *Engine) reconcileMakers(b *book.OrderBook, trades []common.Trade) {
	if len(trades) == 0 {
		return
	}
	touched := make(map[uint64]struct{}, len(trades))
	for _, t := range trades {
		touched[t.MakerOrderID] = struct{}{}
	}
	for makerID := range touched {
		entry, ok := e.index[makerID]
		if !ok {
			continue
		}
		if !e.restingOrderExists(b, entry.side, makerID) {
			delete(e.index, makerID)
		}
	}
}

// restingOrderExists reports whether orderID is still resting on side
// of b. Used only to reconcile the index after a match; scans every
// resting order on that side in the worst case.
func (e *Engine) restingOrderExists(b *book.OrderBook, side common.Side, orderID uint64) bool {
	levels := b.Bids()
	if side == common.Sell {
		levels = b.Asks()
	}
	for _, lvl := range levels {
		for _, o := range lvl.Orders {
			if o.ID == orderID {
				return true
			}
		}
	}
	return false
}

// Cancel removes the resting order with orderID, if found, and
// dispatches one book-update event for its symbol on success.
func (e *Engine) Cancel(orderID uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.index[orderID]
	if !ok {
		if e.metrics != nil {
			e.metrics.ObserveCancel("", false)
		}
		return false
	}

	b := e.books[entry.symbol]
	cancelled := b.Cancel(orderID, entry.side)
	if cancelled {
		delete(e.index, orderID)
		e.dispatchBookUpdate(b)
	}

	if e.metrics != nil {
		e.metrics.ObserveCancel(entry.symbol, cancelled)
	}
	return cancelled
}

// RegisterListener adds l to the listener registry. l must remain valid
// until a corresponding UnregisterListener call returns.
func (e *Engine) RegisterListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// UnregisterListener removes l from the listener registry, if present.
func (e *Engine) UnregisterListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, existing := range e.listeners {
		if existing == l {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// BookView is the read-only subset of OrderBook exposed to non-owning
// callers such as the synthetic order generator.
type BookView interface {
	BestBid() (float64, bool)
	BestAsk() (float64, bool)
	BestBidSize() uint32
	BestAskSize() uint32
}

// OrderBook returns a read-only handle to symbol's book, or nil if the
// symbol is not registered.
func (e *Engine) OrderBook(symbol string) BookView {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.books[symbol]
	if !ok {
		return nil
	}
	return b
}

func (e *Engine) dispatchTrade(t common.Trade) {
	for _, l := range e.listeners {
		e.safeDispatch(func() { l.OnTrade(t) })
	}
}

func (e *Engine) dispatchBookUpdate(b *book.OrderBook) {
	bestBid, _ := b.BestBid()
	bestAsk, _ := b.BestAsk()
	update := common.BookUpdate{
		Symbol:  b.Symbol,
		BestBid: bestBid,
		BestAsk: bestAsk,
		BidSize: b.BestBidSize(),
		AskSize: b.BestAskSize(),
	}
	for _, l := range e.listeners {
		e.safeDispatch(func() { l.OnBookUpdate(update) })
	}
}

// safeDispatch isolates a listener panic so it cannot poison the
// mutation lock or abort the admit/cancel path.
func (e *Engine) safeDispatch(call func()) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("listener panicked, isolating")
		}
	}()
	call()
}
