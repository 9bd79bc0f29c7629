package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartcart-be/internal/product"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of the product service
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, opts product.ListOptions) (*product.ListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Featured(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	var products []*product.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]*product.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductService) Related(ctx context.Context, category string, excludeID int64) ([]*product.Product, error) {
	args := m.Called(ctx, category, excludeID)
	var products []*product.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]*product.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, params product.CreateParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, params product.UpdateParams) (*product.Product, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) ToggleStatus(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func TestProductHandler_List(t *testing.T) {
	t.Run("DefaultsAndPayloadShape", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc)

		svc.On("List", mock.Anything, product.ListOptions{Page: 1, Limit: 10}).
			Return(&product.ListResult{
				Products:    []*product.Product{{ID: 1, Name: "Wireless Headphones"}},
				CurrentPage: 1,
				TotalPages:  1,
				TotalCount:  1,
			}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "products")
		assert.Contains(t, body, "currentPage")
		assert.Contains(t, body, "totalPages")
		assert.Contains(t, body, "totalCount")
	})

	t.Run("FiltersForwarded", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc)

		svc.On("List", mock.Anything, product.ListOptions{
			Category: "Electronics", Search: "head", Page: 2, Limit: 5,
		}).Return(&product.ListResult{Products: []*product.Product{}}, nil)

		req := httptest.NewRequest(http.MethodGet,
			"/api/products?category=Electronics&search=head&page=2&limit=5", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("BadPagination", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc)

		for _, q := range []string{"?page=0", "?limit=-1", "?page=abc"} {
			req := httptest.NewRequest(http.MethodGet, "/api/products"+q, nil)
			rec := httptest.NewRecorder()
			h.List(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_Get(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc)

		svc.On("GetByID", mock.Anything, int64(99)).Return(nil, product.ErrProductNotFound)

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/products/99", nil),
			map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Found", func(t *testing.T) {
		svc := new(MockProductService)
		h := NewProductHandler(svc)

		svc.On("GetByID", mock.Anything, int64(1)).
			Return(&product.Product{ID: 1, Name: "Wireless Headphones"}, nil)

		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/products/1", nil),
			map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var p product.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, "Wireless Headphones", p.Name)
	})
}

func TestProductHandler_Featured(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandler(svc)

	svc.On("Featured", mock.Anything).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.Featured(rec, httptest.NewRequest(http.MethodGet, "/api/products/featured", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Empty result is [], not null.
	assert.JSONEq(t, `{"products":[]}`, rec.Body.String())
}

func TestProductHandler_Related(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandler(svc)

	svc.On("Related", mock.Anything, "Electronics", int64(5)).
		Return([]*product.Product{{ID: 8}}, nil)

	req := mux.SetURLVars(
		httptest.NewRequest(http.MethodGet, "/api/products/related/Electronics?exclude=5", nil),
		map[string]string{"category": "Electronics"})
	rec := httptest.NewRecorder()
	h.Related(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
