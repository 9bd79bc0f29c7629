package rest

import (
	"errors"
	"net/http"
	"strconv"

	"smartcart-be/internal/cart"
	"smartcart-be/internal/utils"

	"github.com/gorilla/mux"
)

type CartHandler struct {
	carts cart.Service
}

func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) respondCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, cart.ErrCartItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		internalError(w, r, err)
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	items, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type addCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req addCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items, err := h.carts.AddItem(r.Context(), cart.AddParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.respondCartError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func cartProductID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["productId"], 10, 64)
	return id, err == nil
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	productID, ok := cartProductID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req updateCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items, err := h.carts.UpdateQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.respondCartError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	productID, ok := cartProductID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.carts.RemoveItem(r.Context(), userID, productID); err != nil {
		h.respondCartError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.carts.Clear(r.Context(), userID); err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
