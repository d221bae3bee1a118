// Package marketdata turns matching-engine events into sequenced,
// per-connection update streams: one subscriber set per symbol, a
// single process-wide sequence counter, and a lossy-on-slow delivery
// policy so a stalled subscriber never stalls the engine.
package marketdata

import (
	"context"
	"sync"

	"auction/internal/common"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// UpdateKind distinguishes the two MarketUpdate payload variants.
type UpdateKind int

const (
	KindTrade UpdateKind = iota
	KindBookUpdate
)

// Update is a single sequenced market-data message. Exactly one of the
// Trade/Book-shaped field groups is meaningful, per Kind.
type Update struct {
	Seq    uint64
	Symbol string
	Kind   UpdateKind

	// Trade fields (Kind == KindTrade).
	Price     float64
	Quantity  uint32
	TakerSide common.Side

	// Book fields (Kind == KindBookUpdate).
	BestBid float64
	BestAsk float64
	BidSize uint32
	AskSize uint32
}

// subscriberBufferSize bounds how many undelivered updates a slow
// subscriber can accumulate before new ones are dropped for it. This is
// the reference design's "lossy on slow subscribers" policy rendered as
// a bounded channel instead of a blocking write under the fan-out lock.
const subscriberBufferSize = 64

type subscriber struct {
	ch chan Update
}

// Fanout is the market-data fan-out. It implements engine.Listener, so
// it can be registered directly with a matching engine.
type Fanout struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
	seq  uint64

	onSubscriberChange func(symbol string, n int)

	log zerolog.Logger
}

// New creates an empty fan-out with no subscribers.
func New() *Fanout {
	return &Fanout{
		subs: make(map[string]map[*subscriber]struct{}),
		log:  log.With().Str("component", "marketdata").Logger(),
	}
}

// SetOnSubscriberChange installs a hook called with the new subscriber
// count for symbol every time a subscription starts or ends. Used to
// drive the marketdata_subscribers gauge; not safe to change
// concurrently with Subscribe.
func (f *Fanout) SetOnSubscriberChange(hook func(symbol string, n int)) {
	f.onSubscriberChange = hook
}

// Subscribe registers a new subscription for symbol and returns a
// receive-only channel of updates. The subscription's "parked thread"
// is the goroutine below, blocked on ctx.Done() as its cancellation
// signal — the idiomatic Go rendering of the spec's cooperative-wait
// contract. The returned channel is closed once the subscriber is
// deregistered; callers must stop reading after that point.
func (f *Fanout) Subscribe(ctx context.Context, symbol string) <-chan Update {
	sub := &subscriber{ch: make(chan Update, subscriberBufferSize)}

	f.mu.Lock()
	if f.subs[symbol] == nil {
		f.subs[symbol] = make(map[*subscriber]struct{})
	}
	f.subs[symbol][sub] = struct{}{}
	n := len(f.subs[symbol])
	hook := f.onSubscriberChange
	f.mu.Unlock()
	if hook != nil {
		hook(symbol, n)
	}

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs[symbol], sub)
		n := len(f.subs[symbol])
		hook := f.onSubscriberChange
		f.mu.Unlock()
		close(sub.ch)
		if hook != nil {
			hook(symbol, n)
		}
	}()

	return sub.ch
}

// SubscriberCount returns the number of active subscriptions for symbol.
func (f *Fanout) SubscriberCount(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[symbol])
}

// OnTrade implements engine.Listener.
func (f *Fanout) OnTrade(trade common.Trade) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	update := Update{
		Seq:       f.seq,
		Symbol:    trade.Symbol,
		Kind:      KindTrade,
		Price:     trade.Price,
		Quantity:  trade.Quantity,
		TakerSide: trade.TakerSide,
	}
	f.publishLocked(trade.Symbol, update)
}

// OnBookUpdate implements engine.Listener.
func (f *Fanout) OnBookUpdate(upd common.BookUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	update := Update{
		Seq:     f.seq,
		Symbol:  upd.Symbol,
		Kind:    KindBookUpdate,
		BestBid: upd.BestBid,
		BestAsk: upd.BestAsk,
		BidSize: upd.BidSize,
		AskSize: upd.AskSize,
	}
	f.publishLocked(upd.Symbol, update)
}

// publishLocked writes update to every current subscriber of symbol.
// Callers must hold f.mu. A full subscriber buffer is treated as a slow
// subscriber: the update is dropped for that subscriber rather than
// blocking the fan-out (and transitively, the engine's mutation lock).
func (f *Fanout) publishLocked(symbol string, update Update) {
	for sub := range f.subs[symbol] {
		select {
		case sub.ch <- update:
		default:
			f.log.Warn().Str("symbol", symbol).Msg("dropping update for slow subscriber")
		}
	}
}
