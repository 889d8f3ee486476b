package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/smartbill/backend/internal/application/catalog"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupProductRouter(repo *MockProductRepository) *gin.Engine {
	service := catalogapp.NewProductService(repo, zap.NewNop())
	h := NewProductHandler(service)

	engine := gin.New()
	engine.GET("/products", h.List)
	engine.GET("/products/:id", h.Get)
	engine.POST("/products", h.Create)
	engine.PUT("/products/:id", h.Update)
	engine.DELETE("/products/:id", h.Delete)
	engine.GET("/products/low-stock", h.LowStock)
	return engine
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("returns 201 with the created product", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
		engine := setupProductRouter(repo)

		body := `{"name":"Galaxy M14","category":"Mobiles","brand":"Samsung","price":"13999","gstRate":"18","quantity":10,"minThreshold":3}`
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "Galaxy M14", data["name"])
		assert.Equal(t, false, data["lowStock"])
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		engine := setupProductRouter(new(MockProductRepository))

		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 400 on invalid GST rate", func(t *testing.T) {
		engine := setupProductRouter(new(MockProductRepository))

		body := `{"name":"Galaxy M14","category":"Mobiles","price":"13999","gstRate":"150","quantity":10}`
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "INVALID_GST_RATE", resp.Error.Code)
	})
}

func TestProductHandler_Get(t *testing.T) {
	t.Run("returns the product", func(t *testing.T) {
		product := sampleProduct(t)
		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		engine := setupProductRouter(repo)

		req := httptest.NewRequest(http.MethodGet, "/products/"+product.ID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("returns 404 for a missing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		missing := uuid.New()
		repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
		engine := setupProductRouter(repo)

		req := httptest.NewRequest(http.MethodGet, "/products/"+missing.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for a malformed id", func(t *testing.T) {
		engine := setupProductRouter(new(MockProductRepository))

		req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_List(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "galaxy"
	})).Return([]*catalog.Product{sampleProduct(t)}, nil)
	engine := setupProductRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/products?search=galaxy", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestProductHandler_Delete(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		repo := new(MockProductRepository)
		id := uuid.New()
		repo.On("Delete", mock.Anything, id).Return(nil)
		engine := setupProductRouter(repo)

		req := httptest.NewRequest(http.MethodDelete, "/products/"+id.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("returns 404 for a missing product", func(t *testing.T) {
		repo := new(MockProductRepository)
		id := uuid.New()
		repo.On("Delete", mock.Anything, id).Return(shared.ErrNotFound)
		engine := setupProductRouter(repo)

		req := httptest.NewRequest(http.MethodDelete, "/products/"+id.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
