// Package service holds the transport-agnostic, RPC-shaped operations
// a wire adapter (HTTP, gRPC, a custom TCP protocol — whichever the
// transport layer chooses) delegates to: PlaceOrder, CancelOrder and
// Subscribe, exactly as named in the spec's external-interfaces
// section. Grounded in original_source/server/OrderEntryService.{h,cpp}
// and MarketDataGrpcService.h, minus the gRPC plumbing itself.
package service

import (
	"auction/internal/common"
	"auction/internal/engine"
)

// Engine is the subset of *engine.Engine the order-entry surface needs.
type Engine interface {
	Admit(order common.Order) common.OrderResult
	Cancel(orderID uint64) bool
}

// OrderEntryService implements PlaceOrder/CancelOrder against an
// engine.Engine. It performs no transport I/O itself.
type OrderEntryService struct {
	eng Engine
}

// NewOrderEntryService wraps eng.
func NewOrderEntryService(eng Engine) *OrderEntryService {
	return &OrderEntryService{eng: eng}
}

// PlaceOrderRequest mirrors the spec's PlaceOrder request shape.
type PlaceOrderRequest struct {
	Symbol string
	Side   common.Side
	Type   common.OrderType
	Price  float64
	Qty    uint32
	Owner  string
}

// PlaceOrderResponse mirrors the spec's PlaceOrder response shape.
type PlaceOrderResponse struct {
	Success      bool
	OrderID      uint64
	ErrorMessage string
}

// PlaceOrder validates and admits req. Price is ignored for MARKET
// orders but expected to be zero by convention; qty must be > 0.
func (s *OrderEntryService) PlaceOrder(req PlaceOrderRequest) PlaceOrderResponse {
	if req.Qty == 0 {
		return PlaceOrderResponse{Success: false, ErrorMessage: engine.ErrInvalidQuantity.Error()}
	}

	price := req.Price
	if req.Type == common.Market {
		price = 0
	}

	result := s.eng.Admit(common.Order{
		Symbol:      req.Symbol,
		Side:        req.Side,
		Type:        req.Type,
		Price:       price,
		OriginalQty: req.Qty,
		Owner:       req.Owner,
	})

	return PlaceOrderResponse{
		Success:      result.Success,
		OrderID:      result.OrderID,
		ErrorMessage: result.ErrorMessage,
	}
}

// CancelOrderResponse mirrors the spec's CancelOrder response shape.
type CancelOrderResponse struct {
	Success      bool
	ErrorMessage string
}

// CancelOrder cancels orderID.
func (s *OrderEntryService) CancelOrder(orderID uint64) CancelOrderResponse {
	if s.eng.Cancel(orderID) {
		return CancelOrderResponse{Success: true}
	}
	return CancelOrderResponse{Success: false, ErrorMessage: "Order not found"}
}
