package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMinThreshold is the low-stock threshold applied when a product
// has none configured.
const DefaultMinThreshold = 5

// Product is a catalog entry as returned by the backend.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Price        decimal.Decimal `json:"price"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	Quantity     int             `json:"quantity"`
	MinThreshold int             `json:"minThreshold"`
	LowStock     bool            `json:"lowStock"`
	Description  string          `json:"description"`
}

// IsLowStock reports whether the product's quantity has reached its
// threshold, falling back to DefaultMinThreshold when unset.
func (p Product) IsLowStock() bool {
	threshold := p.MinThreshold
	if threshold <= 0 {
		threshold = DefaultMinThreshold
	}
	return p.Quantity <= threshold
}

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Price        decimal.Decimal `json:"price"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	Quantity     int             `json:"quantity"`
	MinThreshold int             `json:"minThreshold"`
	Description  string          `json:"description"`
}

// ListOptions narrows a product listing server-side.
type ListOptions struct {
	Search   string
	Category string
	Brand    string
	InStock  *bool
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Category != "" {
		q.Set("category", o.Category)
	}
	if o.Brand != "" {
		q.Set("brand", o.Brand)
	}
	if o.InStock != nil {
		q.Set("in_stock", strconv.FormatBool(*o.InStock))
	}
	return q
}

// ProductStore handles the catalog endpoints and keeps the last fetched
// listing for local filtering and splicing.
type ProductStore struct {
	client *Client
	async  asyncState

	mu    sync.Mutex
	items []Product
}

// State returns the status and last error of the most recent request.
func (s *ProductStore) State() (Status, error) {
	return s.async.state()
}

// Items returns a snapshot of the last fetched listing.
func (s *ProductStore) Items() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product(nil), s.items...)
}

// GetProducts fetches the shop-facing catalog listing.
func (s *ProductStore) GetProducts(ctx context.Context, opts ListOptions) ([]Product, error) {
	return s.fetch(ctx, "/shop/products", opts)
}

// GetAdminProducts fetches the admin catalog listing.
func (s *ProductStore) GetAdminProducts(ctx context.Context, opts ListOptions) ([]Product, error) {
	return s.fetch(ctx, "/admin/products", opts)
}

// GetLowStock fetches the products at or below their stock threshold.
func (s *ProductStore) GetLowStock(ctx context.Context) ([]Product, error) {
	return s.fetch(ctx, "/admin/products/low-stock", ListOptions{})
}

func (s *ProductStore) fetch(ctx context.Context, path string, opts ListOptions) ([]Product, error) {
	var items []Product
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodGet, path, opts.query(), nil, &items)
	})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return append([]Product(nil), items...), nil
}

// CreateProduct adds a product to the catalog. The local listing is not
// updated; callers re-fetch.
func (s *ProductStore) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var created Product
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodPost, "/admin/products", nil, input, &created)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates a product. The local listing is not updated;
// callers re-fetch.
func (s *ProductStore) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*Product, error) {
	var updated Product
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodPut, "/admin/products/"+id.String(), nil, input, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a product and splices it out of the local
// listing by id.
func (s *ProductStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodDelete, "/admin/products/"+id.String(), nil, nil, nil)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.items = kept
	s.mu.Unlock()
	return nil
}

// FilterProducts returns the products whose name, category, or brand
// contains the query, case-insensitively. An empty query matches all.
func FilterProducts(products []Product, query string) []Product {
	if query == "" {
		return products
	}
	needle := strings.ToLower(query)
	var matched []Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}
