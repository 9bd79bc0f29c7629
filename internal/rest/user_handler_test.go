package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smartcart-be/internal/user"
	"smartcart-be/internal/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func userUpdateRequest(callerID int64, role, targetID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+targetID, strings.NewReader(body))
	ctx := utils.SetUserContext(req.Context(), callerID, "caller@example.com", role)
	return mux.SetURLVars(req.WithContext(ctx), map[string]string{"id": targetID})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("SelfUpdate", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc)

		svc.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(p user.UpdateParams) bool {
			return p.Name != nil && *p.Name == "Janet" && p.Role == nil
		})).Return(&user.User{ID: 7, Name: "Janet"}, nil)

		rec := httptest.NewRecorder()
		h.Update(rec, userUpdateRequest(7, utils.RoleCustomer, "7", `{"name":"Janet"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("CustomerCannotEditOthers", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc)

		rec := httptest.NewRecorder()
		h.Update(rec, userUpdateRequest(7, utils.RoleCustomer, "8", `{"name":"Janet"}`))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CustomerRoleChangeIgnored", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc)

		svc.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(p user.UpdateParams) bool {
			return p.Role == nil
		})).Return(&user.User{ID: 7}, nil)

		rec := httptest.NewRecorder()
		h.Update(rec, userUpdateRequest(7, utils.RoleCustomer, "7", `{"role":"admin"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("AdminEditsAnyoneIncludingRole", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc)

		svc.On("Update", mock.Anything, int64(8), mock.MatchedBy(func(p user.UpdateParams) bool {
			return p.Role != nil && *p.Role == "seller"
		})).Return(&user.User{ID: 8}, nil)

		rec := httptest.NewRecorder()
		h.Update(rec, userUpdateRequest(1, utils.RoleAdmin, "8", `{"role":"seller"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc)

		svc.On("Update", mock.Anything, int64(7), mock.Anything).
			Return(nil, user.ErrEmailExists)

		rec := httptest.NewRecorder()
		h.Update(rec, userUpdateRequest(7, utils.RoleCustomer, "7", `{"email":"taken@example.com"}`))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUserHandler_UpdateStatus(t *testing.T) {
	t.Run("InvalidEnum", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc)

		svc.On("UpdateStatus", mock.Anything, int64(7), "Suspended").
			Return(nil, user.ErrInvalidStatus)

		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodPatch, "/api/users/7/status",
				strings.NewReader(`{"status":"Suspended"}`)),
			map[string]string{"id": "7"})
		rec := httptest.NewRecorder()
		h.UpdateStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewUserHandler(svc)

		svc.On("UpdateStatus", mock.Anything, int64(7), "Blocked").
			Return(&user.User{ID: 7, Status: user.StatusBlocked}, nil)

		req := mux.SetURLVars(
			httptest.NewRequest(http.MethodPatch, "/api/users/7/status",
				strings.NewReader(`{"status":"Blocked"}`)),
			map[string]string{"id": "7"})
		rec := httptest.NewRecorder()
		h.UpdateStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Blocked")
	})
}

func TestUserHandler_List(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc)

	svc.On("List", mock.Anything).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"users":[]}`, rec.Body.String())
}
