// Package generator implements the synthetic order generator: a
// background producer that drives test traffic through the matching
// engine's public admit interface, exactly as any other client would.
package generator

import (
	"math/rand"
	"time"

	"auction/internal/common"
	"auction/internal/engine"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// Admitter is the subset of the matching engine the generator depends
// on. It is a client of the engine, not a privileged caller: it only
// ever reaches the book through Admit and OrderBook.
type Admitter interface {
	Admit(order common.Order) common.OrderResult
	OrderBook(symbol string) engine.BookView
}

// Config is the generator's policy configuration.
type Config struct {
	Enabled       bool
	IntervalMs    int
	MinOrderSize  uint32
	MaxOrderSize  uint32
	PriceVariance float64
}

// Generator periodically samples a symbol uniformly at random and
// submits a random order through the engine's public interface.
type Generator struct {
	cfg     Config
	engine  Admitter
	symbols []string
	rng     *rand.Rand
	log     zerolog.Logger
}

// New creates a generator over symbols, driving orders into engine
// according to cfg.
func New(engine Admitter, symbols []string, cfg Config) *Generator {
	return &Generator{
		cfg:     cfg,
		engine:  engine,
		symbols: symbols,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log.With().Str("component", "generator").Logger(),
	}
}

// Run drives the generator loop until t is told to die. Started with
// t.Go(func() error { return gen.Run(t) }).
func (g *Generator) Run(t *tomb.Tomb) error {
	if !g.cfg.Enabled || len(g.symbols) == 0 {
		return nil
	}

	interval := time.Duration(g.cfg.IntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.Dying():
			return nil
		case <-ticker.C:
			g.tick()
		}
	}
}

// tick samples one symbol and submits one random order, or skips the
// tick if that symbol currently has no quote on a side it needs.
func (g *Generator) tick() {
	symbol := g.symbols[g.rng.Intn(len(g.symbols))]

	bv := g.engine.OrderBook(symbol)
	if bv == nil {
		return
	}
	bestBid, bidOk := bv.BestBid()
	bestAsk, askOk := bv.BestAsk()
	if !bidOk || !askOk {
		return
	}

	order := g.randomOrder(symbol, bestBid, bestAsk)
	result := g.engine.Admit(order)
	if !result.Success {
		g.log.Debug().Str("symbol", symbol).Str("error", result.ErrorMessage).Msg("generated order rejected")
		return
	}
	g.log.Debug().
		Str("symbol", symbol).
		Str("side", order.Side.String()).
		Str("type", order.Type.String()).
		Uint32("qty", order.OriginalQty).
		Uint64("orderID", result.OrderID).
		Msg("generated order admitted")
}

func (g *Generator) randomOrder(symbol string, bestBid, bestAsk float64) common.Order {
	order := common.Order{Symbol: symbol, Owner: "generator"}

	// 50/50 side coin.
	if g.rng.Intn(2) == 0 {
		order.Side = common.Buy
	} else {
		order.Side = common.Sell
	}

	// 80/20 limit/market coin.
	if g.rng.Intn(10) < 8 {
		order.Type = common.Limit
	} else {
		order.Type = common.Market
	}

	span := g.cfg.MaxOrderSize - g.cfg.MinOrderSize + 1
	order.OriginalQty = g.cfg.MinOrderSize + uint32(g.rng.Intn(int(span)))

	if order.Type == common.Limit {
		variance := (g.rng.Float64()*2 - 1) * g.cfg.PriceVariance
		ref := bestBid
		if order.Side == common.Sell {
			ref = bestAsk
		}
		order.Price = ref + variance
		if order.Price <= 0 {
			order.Price = ref
		}
	}

	return order
}
