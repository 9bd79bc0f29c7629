package rest

import (
	"errors"
	"net/http"
	"strconv"

	"smartcart-be/internal/product"
	"smartcart-be/internal/utils"

	"github.com/gorilla/mux"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, limit, ok := utils.ParsePagination(q.Get("page"), q.Get("limit"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid page or limit")
		return
	}

	result, err := h.products.List(r.Context(), product.ListOptions{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		if errors.Is(err, product.ErrInvalidPaging) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.Featured(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	var excludeID int64
	if v := r.URL.Query().Get("exclude"); v != "" {
		excludeID, _ = strconv.ParseInt(v, 10, 64)
	}

	products, err := h.products.Related(r.Context(), category, excludeID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *ProductHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.products.Count(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params product.CreateParams
	if !decodeJSON(w, r, &params) {
		return
	}

	p, err := h.products.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, product.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var params product.UpdateParams
	if !decodeJSON(w, r, &params) {
		return
	}

	p, err := h.products.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *ProductHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	p, err := h.products.ToggleStatus(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}
