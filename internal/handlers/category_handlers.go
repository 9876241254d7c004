package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/freshmart/inventory-api/internal/models"
	"github.com/freshmart/inventory-api/internal/store"
)

// GetAllCategories is the handler for GET /categories (public).
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Categories.List()
	if err != nil {
		serverError(c, err, "Database error")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory is the handler for GET /categories/:id (public).
func (h *Handlers) GetCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c, "Category not found")
		return
	}

	category, err := h.Categories.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Category not found")
			return
		}
		serverError(c, err, "Database error")
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory is the handler for POST /categories.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationFailed(c, bindingErrors(err))
		return
	}

	taken, err := h.Categories.NameInUse(input.Name)
	if err != nil {
		serverError(c, err, "Database error")
		return
	}
	if taken {
		fe := fieldErrors{}
		fe.add("name", "The name has already been taken.")
		validationFailed(c, fe)
		return
	}

	category, err := h.Categories.Create(input.Name, slug.Make(input.Name))
	if err != nil {
		// A concurrent create can slip past the NameInUse check.
		if errors.Is(err, store.ErrDuplicate) {
			fe := fieldErrors{}
			fe.add("name", "The name has already been taken.")
			validationFailed(c, fe)
			return
		}
		serverError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory is the handler for DELETE /categories/:id. The store detaches
// the category's products (category_id -> NULL) before removing the row.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c, "Category not found")
		return
	}

	if err := h.Categories.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Category not found")
			return
		}
		serverError(c, err, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}
