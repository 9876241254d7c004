package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveProductImage stores an uploaded image under <storage>/products with a
// generated name and returns the public URL path it is served from.
func (h *Handlers) saveProductImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(h.StorageDir, "products")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, newFilename)); err != nil {
		return "", err
	}

	return "/storage/products/" + newFilename, nil
}

// removeProductImage deletes a previously stored image, best-effort. Paths
// outside the storage tree are ignored.
func (h *Handlers) removeProductImage(publicPath string) {
	rel, ok := strings.CutPrefix(publicPath, "/storage/")
	if !ok {
		return
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return
	}
	_ = os.Remove(filepath.Join(h.StorageDir, rel))
}
