package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/freshmart/inventory-api/internal/models"
)

// ProductFilters narrows a Fetch, matching the query params of GET /products.
type ProductFilters struct {
	Search        string
	CategoryID    *int64
	Uncategorized bool
}

// ProductForm is the multipart payload for Add and Update. Empty fields are
// omitted, which on update means "leave unchanged". ImagePath, when set,
// attaches the local file as the product image.
type ProductForm struct {
	Name          string
	Barcode       string
	Description   string
	CategoryID    string
	Price         string
	StockQuantity string
	MinimumStock  string
	ImagePath     string
}

// ProductStore caches the current product list and keeps it in sync with the
// API, mirroring the frontend product store.
type ProductStore struct {
	c        *Client
	products []models.Product
}

func NewProductStore(c *Client) *ProductStore {
	return &ProductStore{c: c}
}

// Products returns the cached list from the last Fetch.
func (s *ProductStore) Products() []models.Product { return s.products }

// Fetch loads the product shelf, optionally filtered, and replaces the cache.
func (s *ProductStore) Fetch(filters ProductFilters) ([]models.Product, error) {
	params := url.Values{}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	if filters.Uncategorized {
		params.Set("category_id", "none")
	} else if filters.CategoryID != nil {
		params.Set("category_id", fmt.Sprintf("%d", *filters.CategoryID))
	}

	path := "/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var products []models.Product
	if err := s.c.do(http.MethodGet, path, nil, "", &products); err != nil {
		return nil, err
	}
	s.products = products
	return products, nil
}

// Add creates a product and prepends it to the cache (newest first).
func (s *ProductStore) Add(form ProductForm) (*models.Product, error) {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return nil, err
	}

	var created models.Product
	if err := s.c.do(http.MethodPost, "/products", body, contentType, &created); err != nil {
		return nil, err
	}

	s.products = append([]models.Product{created}, s.products...)
	return &created, nil
}

// Update applies a partial update and refreshes the cached entry.
func (s *ProductStore) Update(id int64, form ProductForm) (*models.Product, error) {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return nil, err
	}

	var updated models.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := s.c.do(http.MethodPut, path, body, contentType, &updated); err != nil {
		return nil, err
	}

	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = updated
			break
		}
	}
	return &updated, nil
}

// Delete removes a product and drops it from the cache.
func (s *ProductStore) Delete(id int64) error {
	path := fmt.Sprintf("/products/%d", id)
	if err := s.c.do(http.MethodDelete, path, nil, "", nil); err != nil {
		return err
	}

	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	return nil
}

func encodeProductForm(form ProductForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":           form.Name,
		"barcode":        form.Barcode,
		"description":    form.Description,
		"category_id":    form.CategoryID,
		"price":          form.Price,
		"stock_quantity": form.StockQuantity,
		"minimum_stock":  form.MinimumStock,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}

	if form.ImagePath != "" {
		file, err := os.Open(form.ImagePath)
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		part, err := w.CreateFormFile("image", filepath.Base(form.ImagePath))
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
