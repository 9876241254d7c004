package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freshmart/inventory-api/internal/models"
)

func TestAuthStoreLogin(t *testing.T) {
	var receivedAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			var creds map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			if creds["password"] != "password" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-123",
				"token_type":   "Bearer",
				"user":         map[string]any{"id": 1, "username": "admin", "email": creds["email"]},
			})
		case "/user":
			receivedAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "admin", "email": "test@example.com"})
		case "/logout":
			receivedAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	auth := NewAuthStore(c)

	user, err := auth.Login("test@example.com", "password")
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, auth.IsAuthenticated())
	assert.Equal(t, "tok-123", c.Token())

	// Subsequent requests carry the bearer header.
	_, err = auth.CheckAuth()
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", receivedAuth)

	assert.NoError(t, auth.Logout())
	assert.False(t, auth.IsAuthenticated())
	assert.Empty(t, c.Token())
}

func TestAuthStoreLoginFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer server.Close()

	auth := NewAuthStore(New(server.URL))

	_, err := auth.Login("test@example.com", "wrong")
	var apiErr *APIError
	if assert.True(t, errors.As(err, &apiErr)) {
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
	}
	assert.False(t, auth.IsAuthenticated())
}

func TestProductStoreFetchAndCache(t *testing.T) {
	var lastQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/products":
			lastQuery = r.URL.RawQuery
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 2, "name": "Whole Milk", "price": "1.80", "stock_quantity": 80},
				{"id": 1, "name": "Fresh Red Apple", "price": "1.20", "stock_quantity": 100},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/products":
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Sourdough Bread", r.FormValue("name"))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"id": 3, "name": "Sourdough Bread", "price": "2.50", "stock_quantity": 30,
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/products/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	products := NewProductStore(New(server.URL))

	cid := int64(4)
	list, err := products.Fetch(ProductFilters{Search: "lait", CategoryID: &cid})
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Contains(t, lastQuery, "search=lait")
	assert.Contains(t, lastQuery, "category_id=4")

	created, err := products.Add(ProductForm{Name: "Sourdough Bread", Price: "2.50", StockQuantity: "30"})
	assert.NoError(t, err)
	// Newest first: the created product lands at the head of the cache.
	assert.Equal(t, created.ID, products.Products()[0].ID)
	assert.Len(t, products.Products(), 3)

	assert.NoError(t, products.Delete(1))
	for _, p := range products.Products() {
		assert.NotEqual(t, int64(1), p.ID)
	}
}

func TestProductStoreUncategorizedFilter(t *testing.T) {
	var lastQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	defer server.Close()

	products := NewProductStore(New(server.URL))

	_, err := products.Fetch(ProductFilters{Uncategorized: true})
	assert.NoError(t, err)
	assert.Equal(t, "category_id=none", lastQuery)
}

func TestAPIErrorCarriesFieldErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"name": {"The name field is required."}},
		})
	}))
	defer server.Close()

	products := NewProductStore(New(server.URL))

	_, err := products.Add(ProductForm{})
	var apiErr *APIError
	if assert.True(t, errors.As(err, &apiErr)) {
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Contains(t, apiErr.Errors["name"][0], "required")
	}
}
