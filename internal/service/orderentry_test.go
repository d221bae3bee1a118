package service

import (
	"testing"

	"auction/internal/common"

	"github.com/stretchr/testify/assert"
)

type fakeEngine struct {
	admitResult common.OrderResult
	cancelled   map[uint64]bool
	lastAdmit   common.Order
}

func (f *fakeEngine) Admit(order common.Order) common.OrderResult {
	f.lastAdmit = order
	return f.admitResult
}

func (f *fakeEngine) Cancel(orderID uint64) bool {
	return f.cancelled[orderID]
}

func TestOrderEntryService_PlaceOrderRejectsZeroQuantity(t *testing.T) {
	svc := NewOrderEntryService(&fakeEngine{})
	resp := svc.PlaceOrder(PlaceOrderRequest{Symbol: "TEST", Qty: 0})

	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.ErrorMessage)
}

func TestOrderEntryService_PlaceOrderZeroesPriceForMarketOrders(t *testing.T) {
	eng := &fakeEngine{admitResult: common.OrderResult{Success: true, OrderID: 1}}
	svc := NewOrderEntryService(eng)

	resp := svc.PlaceOrder(PlaceOrderRequest{Symbol: "TEST", Type: common.Market, Price: 123.45, Qty: 10})

	assert.True(t, resp.Success)
	assert.Equal(t, uint64(1), resp.OrderID)
	assert.Equal(t, 0.0, eng.lastAdmit.Price, "market order price is never forwarded to the engine")
}

func TestOrderEntryService_PlaceOrderForwardsLimitPrice(t *testing.T) {
	eng := &fakeEngine{admitResult: common.OrderResult{Success: true, OrderID: 1}}
	svc := NewOrderEntryService(eng)

	svc.PlaceOrder(PlaceOrderRequest{Symbol: "TEST", Type: common.Limit, Price: 99.5, Qty: 10})
	assert.Equal(t, 99.5, eng.lastAdmit.Price)
}

func TestOrderEntryService_CancelOrderNotFoundMessage(t *testing.T) {
	eng := &fakeEngine{cancelled: map[uint64]bool{}}
	svc := NewOrderEntryService(eng)

	resp := svc.CancelOrder(42)
	assert.False(t, resp.Success)
	assert.Equal(t, "Order not found", resp.ErrorMessage)
}

func TestOrderEntryService_CancelOrderSuccess(t *testing.T) {
	eng := &fakeEngine{cancelled: map[uint64]bool{42: true}}
	svc := NewOrderEntryService(eng)

	resp := svc.CancelOrder(42)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.ErrorMessage)
}
