package rest

import (
	"errors"
	"net/http"
	"time"

	"smartcart-be/internal/user"
	"smartcart-be/internal/utils"
)

type UserHandler struct {
	users user.Service
}

func NewUserHandler(users user.Service) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if users == nil {
		users = []*user.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.users.ListCustomers(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if customers == nil {
		customers = []*user.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.users.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, u)
}

type updateUserRequest struct {
	Name     *string    `json:"name"`
	Email    *string    `json:"email"`
	Password *string    `json:"password"`
	Role     *string    `json:"role"`
	Avatar   *string    `json:"avatar"`
	MobileNo *string    `json:"mobileNo"`
	Country  *string    `json:"country"`
	DOB      *time.Time `json:"dob"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	// Customers may only edit themselves; admins may edit anyone.
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	if callerID != id && utils.GetUserRoleFromContext(r.Context()) != utils.RoleAdmin {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := user.UpdateParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
		MobileNo: req.MobileNo,
		Country:  req.Country,
		DOB:      req.DOB,
	}
	// Role changes are admin-only; silently kept as-is for everyone else.
	if utils.GetUserRoleFromContext(r.Context()) == utils.RoleAdmin {
		params.Role = req.Role
	}

	u, err := h.users.Update(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrEmailExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, user.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, u)
}
