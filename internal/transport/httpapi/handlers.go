// Package httpapi is the minimal order-entry transport: two JSON routes
// over stdlib net/http delegating straight to internal/service. This is
// the concrete stand-in for "the RPC transport", which the spec
// excludes from the tested/specified surface — its wire format is not
// a spec invariant.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"auction/internal/common"
	"auction/internal/service"

	"github.com/rs/zerolog/log"
)

// Handler serves the order-entry HTTP surface.
type Handler struct {
	orderEntry *service.OrderEntryService
}

// NewHandler wraps svc.
func NewHandler(svc *service.OrderEntryService) *Handler {
	return &Handler{orderEntry: svc}
}

// Register mounts the handler's routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/orders", h.placeOrder)
	mux.HandleFunc("DELETE /v1/orders/{id}", h.cancelOrder)
}

type placeOrderBody struct {
	Symbol string  `json:"symbol"`
	Side   string  `json:"side"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
	Qty    uint32  `json:"qty"`
	Owner  string  `json:"owner"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var body placeOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, service.PlaceOrderResponse{ErrorMessage: "malformed request body"})
		return
	}

	side, ok := parseSide(body.Side)
	if !ok {
		writeJSON(w, http.StatusBadRequest, service.PlaceOrderResponse{ErrorMessage: "invalid side"})
		return
	}
	orderType, ok := parseOrderType(body.Type)
	if !ok {
		writeJSON(w, http.StatusBadRequest, service.PlaceOrderResponse{ErrorMessage: "invalid order type"})
		return
	}

	resp := h.orderEntry.PlaceOrder(service.PlaceOrderRequest{
		Symbol: body.Symbol,
		Side:   side,
		Type:   orderType,
		Price:  body.Price,
		Qty:    body.Qty,
		Owner:  body.Owner,
	})

	status := http.StatusOK
	if !resp.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	orderID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, service.CancelOrderResponse{ErrorMessage: "invalid order id"})
		return
	}

	resp := h.orderEntry.CancelOrder(orderID)
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusNotFound
	}
	writeJSON(w, status, resp)
}

func parseSide(s string) (common.Side, bool) {
	switch strings.ToUpper(s) {
	case "BUY":
		return common.Buy, true
	case "SELL":
		return common.Sell, true
	default:
		return 0, false
	}
}

func parseOrderType(s string) (common.OrderType, bool) {
	switch strings.ToUpper(s) {
	case "LIMIT":
		return common.Limit, true
	case "MARKET":
		return common.Market, true
	default:
		return 0, false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed writing http response")
	}
}
