package service

import (
	"context"

	"auction/internal/marketdata"
)

// Subscriber is the subset of *marketdata.Fanout the streaming surface
// needs. Grounded in original_source/server/MarketDataGrpcService.h,
// which delegates Subscribe straight through to the listener impl.
type Subscriber interface {
	Subscribe(ctx context.Context, symbol string) <-chan marketdata.Update
}

// MarketDataService implements Subscribe against a market-data fan-out.
type MarketDataService struct {
	fanout Subscriber
}

// NewMarketDataService wraps fanout.
func NewMarketDataService(fanout Subscriber) *MarketDataService {
	return &MarketDataService{fanout: fanout}
}

// Subscribe returns a channel of sequenced updates for symbol. The
// subscription ends when ctx is cancelled; the returned channel is
// closed at that point.
func (s *MarketDataService) Subscribe(ctx context.Context, symbol string) <-chan marketdata.Update {
	return s.fanout.Subscribe(ctx, symbol)
}
