package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productJSON(id int, name, category, brand string) string {
	return fmt.Sprintf(`{"id":"8f14e45f-ea0a-4b6f-9f5f-%012d","name":%q,"category":%q,"brand":%q,"price":"13999","gstRate":"18","quantity":10,"minThreshold":3}`,
		id, name, category, brand)
}

func TestGetProductsSendsFilters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/shop/products", r.URL.Path)
		assert.Equal(t, "galaxy", r.URL.Query().Get("search"))
		assert.Equal(t, "Mobiles", r.URL.Query().Get("category"))
		assert.Equal(t, "true", r.URL.Query().Get("in_stock"))
		fmt.Fprintf(w, `{"success":true,"data":[%s]}`, productJSON(1, "Galaxy M14", "Mobiles", "Samsung"))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	inStock := true
	products, err := c.Products.GetProducts(context.Background(), ListOptions{
		Search:   "galaxy",
		Category: "Mobiles",
		InStock:  &inStock,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Galaxy M14", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(13999)))
}

func TestDeleteProductSplicesLocalListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprintf(w, `{"success":true,"data":[%s,%s,%s]}`,
				productJSON(5, "Galaxy M14", "Mobiles", "Samsung"),
				productJSON(7, "Redmi 13C", "Mobiles", "Xiaomi"),
				productJSON(9, "Boat Airdopes", "Audio", "Boat"))
		case http.MethodDelete:
			assert.Equal(t, "/api/v1/admin/products/8f14e45f-ea0a-4b6f-9f5f-000000000007", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Products.GetAdminProducts(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, c.Products.Items(), 3)

	err = c.Products.DeleteProduct(context.Background(), mustUUID(t, "8f14e45f-ea0a-4b6f-9f5f-000000000007"))
	require.NoError(t, err)

	remaining := c.Products.Items()
	require.Len(t, remaining, 2)
	assert.Equal(t, "Galaxy M14", remaining[0].Name)
	assert.Equal(t, "Boat Airdopes", remaining[1].Name)
}

func TestDeleteProductFailureKeepsListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprintf(w, `{"success":true,"data":[%s]}`, productJSON(7, "Redmi 13C", "Mobiles", "Xiaomi"))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Product not found"}}`))
		}
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Products.GetAdminProducts(context.Background(), ListOptions{})
	require.NoError(t, err)

	err = c.Products.DeleteProduct(context.Background(), mustUUID(t, "8f14e45f-ea0a-4b6f-9f5f-000000000007"))
	require.Error(t, err)
	assert.Len(t, c.Products.Items(), 1)
}

func TestCreateProductSendsInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/admin/products", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Galaxy M14", body["name"])
		assert.Equal(t, "13999", body["price"])
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"success":true,"data":%s}`, productJSON(1, "Galaxy M14", "Mobiles", "Samsung"))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	created, err := c.Products.CreateProduct(context.Background(), ProductInput{
		Name:     "Galaxy M14",
		Category: "Mobiles",
		Brand:    "Samsung",
		Price:    decimal.NewFromInt(13999),
		GSTRate:  decimal.NewFromInt(18),
		Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Galaxy M14", created.Name)
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, Product{Quantity: 3, MinThreshold: 3}.IsLowStock())
	assert.False(t, Product{Quantity: 4, MinThreshold: 3}.IsLowStock())

	// Default threshold of 5 applies when none is configured
	assert.True(t, Product{Quantity: 5}.IsLowStock())
	assert.False(t, Product{Quantity: 6}.IsLowStock())
}

func TestFilterProducts(t *testing.T) {
	products := []Product{
		{Name: "Galaxy M14", Category: "Mobiles", Brand: "Samsung"},
		{Name: "Redmi 13C", Category: "Mobiles", Brand: "Xiaomi"},
		{Name: "Boat Airdopes", Category: "Audio", Brand: "Boat"},
	}

	assert.Len(t, FilterProducts(products, "galaxy"), 1)
	assert.Len(t, FilterProducts(products, "MOBILES"), 2)
	assert.Len(t, FilterProducts(products, "boat"), 1)
	assert.Len(t, FilterProducts(products, ""), 3)
	assert.Empty(t, FilterProducts(products, "laptop"))
}
