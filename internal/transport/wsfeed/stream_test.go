package wsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction/internal/marketdata"
	"auction/internal/service"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFanout struct {
	ch chan marketdata.Update
}

func (f *fakeFanout) Subscribe(ctx context.Context, symbol string) <-chan marketdata.Update {
	return f.ch
}

func TestStream_DeliversUpdateAsJSON(t *testing.T) {
	ch := make(chan marketdata.Update, 1)
	fanout := &fakeFanout{ch: ch}
	mux := http.NewServeMux()
	NewHandler(service.NewMarketDataService(fanout)).Register(mux)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/stream?symbol=ACME"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	ch <- marketdata.Update{Seq: 1, Symbol: "ACME", Kind: marketdata.KindTrade, Price: 100, Quantity: 5}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got wireUpdate
	require.NoError(t, conn.ReadJSON(&got))

	assert.Equal(t, uint64(1), got.Seq)
	assert.Equal(t, "ACME", got.Symbol)
	require.NotNil(t, got.Trade)
	assert.Equal(t, 100.0, got.Trade.Price)
}

func TestStream_MissingSymbolReturns400(t *testing.T) {
	mux := http.NewServeMux()
	NewHandler(service.NewMarketDataService(&fakeFanout{ch: make(chan marketdata.Update)})).Register(mux)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestToWire_TradeAndBookShapes(t *testing.T) {
	trade := toWire(marketdata.Update{Seq: 1, Symbol: "ACME", Kind: marketdata.KindTrade, Price: 10, Quantity: 2})
	assert.NotNil(t, trade.Trade)
	assert.Nil(t, trade.Book)

	book := toWire(marketdata.Update{Seq: 2, Symbol: "ACME", Kind: marketdata.KindBookUpdate, BestBid: 9, BestAsk: 11})
	assert.Nil(t, book.Trade)
	assert.NotNil(t, book.Book)
}
