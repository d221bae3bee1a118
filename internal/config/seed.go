package config

import "auction/internal/common"

// Engine is the subset of *engine.Engine the seed loader needs.
type Engine interface {
	RegisterSymbol(symbol string)
	Admit(order common.Order) common.OrderResult
}

// Seed registers every configured symbol and admits its initial depth
// as ordinary LIMIT orders, bids then asks, in file order. Per spec,
// initial depth is loaded before any listener is registered; a
// configuration whose bids and asks already cross is not an error —
// the admits match them away exactly as live traffic would.
func Seed(eng Engine, cfg *Config) {
	for _, sym := range cfg.Symbols {
		eng.RegisterSymbol(sym.Symbol)
		for _, lvl := range sym.InitialDepth.Bids {
			eng.Admit(common.Order{
				Symbol:      sym.Symbol,
				Side:        common.Buy,
				Type:        common.Limit,
				Price:       lvl.Price,
				OriginalQty: lvl.Quantity,
				Owner:       "seed",
			})
		}
		for _, lvl := range sym.InitialDepth.Asks {
			eng.Admit(common.Order{
				Symbol:      sym.Symbol,
				Side:        common.Sell,
				Type:        common.Limit,
				Price:       lvl.Price,
				OriginalQty: lvl.Quantity,
				Owner:       "seed",
			})
		}
	}
}
