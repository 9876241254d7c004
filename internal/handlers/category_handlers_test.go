package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/freshmart/inventory-api/internal/models"
)

func categoryRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.GET("/categories", h.GetAllCategories)
	r.GET("/categories/:id", h.GetCategory)
	r.POST("/categories", h.CreateCategory)
	r.DELETE("/categories/:id", h.DeleteCategory)
	return r
}

func TestGetAllCategories(t *testing.T) {
	testCases := []struct {
		name               string
		setup              func(categories *MockCategoryStore)
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with multiple categories",
			setup: func(categories *MockCategoryStore) {
				categories.Categories = []models.Category{
					{ID: 1, Name: "Warzywa", Slug: "warzywa"},
					{ID: 2, Name: "Owoce", Slug: "owoce"},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []models.Category
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp, 2)
				assert.Equal(t, "warzywa", resp[0].Slug)
				assert.Equal(t, "Owoce", resp[1].Name)
			},
		},
		{
			name:               "Success with empty list",
			setup:              func(categories *MockCategoryStore) { categories.Categories = []models.Category{} },
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
			},
		},
		{
			name:               "Store error",
			setup:              func(categories *MockCategoryStore) { categories.ListErr = errors.New("db down") },
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, categories, _ := newTestHandlers(t)
			tc.setup(categories)

			rec := performRequest(categoryRouter(h), "GET", "/categories", nil, "")

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestGetCategory(t *testing.T) {
	h, categories, _ := newTestHandlers(t)
	categories.Categories = []models.Category{{ID: 5, Name: "Napoje", Slug: "napoje"}}
	r := categoryRouter(h)

	rec := performRequest(r, "GET", "/categories/5", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var cat models.Category
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&cat))
	assert.Equal(t, int64(5), cat.ID)
	assert.Equal(t, "Napoje", cat.Name)

	rec = performRequest(r, "GET", "/categories/99", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = performRequest(r, "GET", "/categories/not-a-number", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCategory(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		setup              func(categories *MockCategoryStore)
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder, categories *MockCategoryStore)
	}{
		{
			name:               "Success derives slug",
			body:               `{"name":"Mięso Wędliny"}`,
			setup:              func(categories *MockCategoryStore) {},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, categories *MockCategoryStore) {
				var cat models.Category
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&cat))
				assert.NotZero(t, cat.ID)
				assert.Equal(t, "Mięso Wędliny", cat.Name)
				assert.Equal(t, "mieso-wedliny", cat.Slug)
				assert.Equal(t, "mieso-wedliny", categories.CreatedSlug)
			},
		},
		{
			name:               "Missing name",
			body:               `{}`,
			setup:              func(categories *MockCategoryStore) {},
			expectedStatusCode: http.StatusUnprocessableEntity,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, categories *MockCategoryStore) {
				assert.Contains(t, rec.Body.String(), `"name"`)
			},
		},
		{
			name:               "Name too long",
			body:               `{"name":"` + strings.Repeat("a", 51) + `"}`,
			setup:              func(categories *MockCategoryStore) {},
			expectedStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Duplicate name",
			body: `{"name":"Owoce"}`,
			setup: func(categories *MockCategoryStore) {
				categories.Categories = []models.Category{{ID: 1, Name: "Owoce", Slug: "owoce"}}
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder, categories *MockCategoryStore) {
				assert.Contains(t, rec.Body.String(), "already been taken")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, categories, _ := newTestHandlers(t)
			tc.setup(categories)

			rec := performRequest(categoryRouter(h), "POST", "/categories",
				bytes.NewBufferString(tc.body), "application/json")

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec, categories)
			}
		})
	}
}

func TestDeleteCategory(t *testing.T) {
	h, categories, _ := newTestHandlers(t)
	categories.Categories = []models.Category{{ID: 3, Name: "Nabiał", Slug: "nabial"}}
	r := categoryRouter(h)

	rec := performRequest(r, "DELETE", "/categories/3", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(3), categories.DeletedID)

	// Deleting again is a 404: the category is gone.
	rec = performRequest(r, "DELETE", "/categories/3", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
