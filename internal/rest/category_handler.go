package rest

import (
	"errors"
	"net/http"

	"smartcart-be/internal/category"
)

type CategoryHandler struct {
	categories category.Service
}

func NewCategoryHandler(categories category.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) respondCategoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, category.ErrMissingName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, category.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		internalError(w, r, err)
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if categories == nil {
		categories = []*category.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	c, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		h.respondCategoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c category.Category
	if !decodeJSON(w, r, &c) {
		return
	}

	created, err := h.categories.Create(r.Context(), &c)
	if err != nil {
		h.respondCategoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var params category.UpdateParams
	if !decodeJSON(w, r, &params) {
		return
	}

	c, err := h.categories.Update(r.Context(), id, params)
	if err != nil {
		h.respondCategoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		h.respondCategoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
