package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/freshmart/inventory-api/internal/models"
	"github.com/freshmart/inventory-api/internal/store"
)

// UpdateProductInput is the JSON payload for PUT/PATCH /products/:id.
// Pointers distinguish "not supplied" from a zero value (partial update).
type UpdateProductInput struct {
	Name          *string          `json:"name"`
	Barcode       *string          `json:"barcode"`
	Description   *string          `json:"description"`
	CategoryID    *int64           `json:"category_id"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
	MinimumStock  *int             `json:"minimum_stock"`
}

// productPatch is the normalized form of a create or update request, whether
// it arrived as multipart form data or JSON. The Clear flags mark nullable
// fields that were supplied empty, meaning "set to NULL".
type productPatch struct {
	Name             *string
	Barcode          *string
	ClearBarcode     bool
	Description      *string
	ClearDescription bool
	CategoryID       *int64
	ClearCategory    bool
	Price            *decimal.Decimal
	StockQuantity    *int
	MinimumStock     *int
}

// bindProductForm reads the supplied form fields. Parse failures on numeric
// fields are recorded as field errors rather than aborting, so one response
// can report every failing field.
func bindProductForm(c *gin.Context, fe fieldErrors) *productPatch {
	var patch productPatch

	if v, ok := c.GetPostForm("name"); ok {
		patch.Name = &v
	}
	if v, ok := c.GetPostForm("barcode"); ok {
		if v == "" {
			patch.ClearBarcode = true
		} else {
			patch.Barcode = &v
		}
	}
	if v, ok := c.GetPostForm("description"); ok {
		if v == "" {
			patch.ClearDescription = true
		} else {
			patch.Description = &v
		}
	}
	if v, ok := c.GetPostForm("category_id"); ok {
		if v == "" || v == "null" || v == "none" {
			patch.ClearCategory = true
		} else if id, err := strconv.ParseInt(v, 10, 64); err != nil {
			fe.add("category_id", "The selected category_id is invalid.")
		} else {
			patch.CategoryID = &id
		}
	}
	if v, ok := c.GetPostForm("price"); ok {
		if d, err := decimal.NewFromString(v); err != nil {
			fe.add("price", "The price must be a number.")
		} else {
			patch.Price = &d
		}
	}
	if v, ok := c.GetPostForm("stock_quantity"); ok {
		if n, err := strconv.Atoi(v); err != nil {
			fe.add("stock_quantity", "The stock_quantity must be an integer.")
		} else {
			patch.StockQuantity = &n
		}
	}
	if v, ok := c.GetPostForm("minimum_stock"); ok {
		if n, err := strconv.Atoi(v); err != nil {
			fe.add("minimum_stock", "The minimum_stock must be an integer.")
		} else {
			patch.MinimumStock = &n
		}
	}

	return &patch
}

// validateProductPatch applies the validation rules to the supplied fields
// only. With required set, missing mandatory fields are reported too (create
// semantics). It returns the referenced category, if any, so the handler can
// attach it to the response without a second lookup.
func (h *Handlers) validateProductPatch(patch *productPatch, required bool, excludeID int64, fe fieldErrors) (*models.Category, error) {
	if required {
		if patch.Name == nil {
			fe.add("name", "The name field is required.")
		}
		if _, seen := fe["price"]; patch.Price == nil && !seen {
			fe.add("price", "The price field is required.")
		}
		if _, seen := fe["stock_quantity"]; patch.StockQuantity == nil && !seen {
			fe.add("stock_quantity", "The stock_quantity field is required.")
		}
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			fe.add("name", "The name field is required.")
		} else if len(*patch.Name) > 255 {
			fe.add("name", "The name must not be greater than 255 characters.")
		}
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		fe.add("price", "The price must be at least 0.")
	}
	if patch.StockQuantity != nil && *patch.StockQuantity < 0 {
		fe.add("stock_quantity", "The stock_quantity must be at least 0.")
	}
	if patch.MinimumStock != nil && *patch.MinimumStock < 0 {
		fe.add("minimum_stock", "The minimum_stock must be at least 0.")
	}

	if patch.Barcode != nil {
		taken, err := h.Products.BarcodeInUse(*patch.Barcode, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			fe.add("barcode", "The barcode has already been taken.")
		}
	}

	if patch.CategoryID != nil {
		category, err := h.Categories.Get(*patch.CategoryID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				fe.add("category_id", "The selected category_id is invalid.")
				return nil, nil
			}
			return nil, err
		}
		return category, nil
	}
	return nil, nil
}

// ListProducts is the handler for GET /products (public).
// Query params: category_id (numeric, or "none" for uncategorized), search.
func (h *Handlers) ListProducts(c *gin.Context) {
	filters := store.ProductFilters{Search: c.Query("search")}

	if v := c.Query("category_id"); v != "" {
		if v == "none" || v == "null" {
			filters.Uncategorized = true
		} else if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CategoryID = &id
		}
	}

	products, err := h.Products.List(filters)
	if err != nil {
		serverError(c, err, "Database error")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct is the handler for GET /products/:id (public).
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c, "Product not found")
		return
	}

	product, err := h.Products.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Product not found")
			return
		}
		serverError(c, err, "Database error")
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct is the handler for POST /products (multipart form).
func (h *Handlers) CreateProduct(c *gin.Context) {
	fe := fieldErrors{}
	patch := bindProductForm(c, fe)

	category, err := h.validateProductPatch(patch, true, 0, fe)
	if err != nil {
		serverError(c, err, "Database error")
		return
	}
	if len(fe) > 0 {
		validationFailed(c, fe)
		return
	}

	product := &models.Product{
		Name:          *patch.Name,
		Barcode:       patch.Barcode,
		Description:   patch.Description,
		CategoryID:    patch.CategoryID,
		Price:         *patch.Price,
		StockQuantity: *patch.StockQuantity,
	}
	if patch.MinimumStock != nil {
		product.MinimumStock = *patch.MinimumStock
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := h.saveProductImage(c, file)
		if err != nil {
			serverError(c, err, "Failed to store image")
			return
		}
		product.Image = &path
	}

	if err := h.Products.Create(product); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fe.add("barcode", "The barcode has already been taken.")
			validationFailed(c, fe)
			return
		}
		serverError(c, err, "Failed to create product")
		return
	}

	product.Category = category
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct is the handler for PUT/PATCH /products/:id. Only supplied
// fields are validated and applied; a new image replaces the stored one.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c, "Product not found")
		return
	}

	product, err := h.Products.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Product not found")
			return
		}
		serverError(c, err, "Database error")
		return
	}

	fe := fieldErrors{}
	var patch *productPatch
	if c.ContentType() == "application/json" {
		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, bindingErrors(err))
			return
		}
		patch = &productPatch{
			Name:          input.Name,
			Barcode:       input.Barcode,
			Description:   input.Description,
			CategoryID:    input.CategoryID,
			Price:         input.Price,
			StockQuantity: input.StockQuantity,
			MinimumStock:  input.MinimumStock,
		}
	} else {
		patch = bindProductForm(c, fe)
	}

	category, err := h.validateProductPatch(patch, false, id, fe)
	if err != nil {
		serverError(c, err, "Database error")
		return
	}
	if len(fe) > 0 {
		validationFailed(c, fe)
		return
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	switch {
	case patch.Barcode != nil:
		product.Barcode = patch.Barcode
	case patch.ClearBarcode:
		product.Barcode = nil
	}
	switch {
	case patch.Description != nil:
		product.Description = patch.Description
	case patch.ClearDescription:
		product.Description = nil
	}
	switch {
	case patch.CategoryID != nil:
		product.CategoryID = patch.CategoryID
		product.Category = category
	case patch.ClearCategory:
		product.CategoryID = nil
		product.Category = nil
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.StockQuantity != nil {
		product.StockQuantity = *patch.StockQuantity
	}
	if patch.MinimumStock != nil {
		product.MinimumStock = *patch.MinimumStock
	}

	var replacedImage *string
	if file, err := c.FormFile("image"); err == nil {
		path, err := h.saveProductImage(c, file)
		if err != nil {
			serverError(c, err, "Failed to store image")
			return
		}
		replacedImage = product.Image
		product.Image = &path
	}

	if err := h.Products.Update(product); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fe.add("barcode", "The barcode has already been taken.")
			validationFailed(c, fe)
			return
		}
		// Validation already passed; treat this as an unexpected persistence
		// failure. Details stay in the server log.
		serverError(c, err, "Something went wrong while updating the product.")
		return
	}

	if replacedImage != nil {
		h.removeProductImage(*replacedImage)
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct is the handler for DELETE /products/:id.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c, "Product not found")
		return
	}

	product, err := h.Products.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Product not found")
			return
		}
		serverError(c, err, "Database error")
		return
	}

	if err := h.Products.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(c, "Product not found")
			return
		}
		serverError(c, err, "Failed to delete product")
		return
	}

	if product.Image != nil {
		h.removeProductImage(*product.Image)
	}

	c.Status(http.StatusNoContent)
}
