package rest

import (
	"errors"
	"net/http"

	"smartcart-be/internal/order"
	"smartcart-be/internal/utils"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	Items           []order.RequestedItem `json:"items"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	Discount        float64               `json:"discount"`
}

func orderErrorStatus(err error) int {
	switch {
	case errors.Is(err, order.ErrMissingItems),
		errors.Is(err, order.ErrProductUnavailable),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidAmount),
		errors.Is(err, order.ErrInvalidStatusUpdate),
		errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, order.ErrInvalidPaging):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *OrderHandler) respondOrderError(w http.ResponseWriter, r *http.Request, err error) {
	status := orderErrorStatus(err)
	if status == http.StatusInternalServerError {
		internalError(w, r, err)
		return
	}
	writeError(w, status, err.Error())
}

func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req placeOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.Place(r.Context(), order.PlaceParams{
		UserID:          userID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		Discount:        req.Discount,
	})
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"order": o})
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	page, limit, ok := utils.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid page or limit")
		return
	}

	result, err := h.orders.MyOrders(r.Context(), userID, page, limit)
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *OrderHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orderID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	updates, err := h.orders.Tracking(r.Context(), userID, orderID)
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"trackingUpdates": updates})
}

type cancelRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orderID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req cancelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.Cancel(r.Context(), userID, orderID, req.Status)
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := utils.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid page or limit")
		return
	}

	result, err := h.orders.ListAll(r.Context(), page, limit)
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *OrderHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var params order.AdminUpdateParams
	if !decodeJSON(w, r, &params) {
		return
	}

	o, err := h.orders.AdminUpdate(r.Context(), orderID, params)
	if err != nil {
		h.respondOrderError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}
