package handlers

import (
	"time"

	"github.com/freshmart/inventory-api/internal/models"
	"github.com/freshmart/inventory-api/internal/store"
)

// CategoryStore is the persistence surface the category handlers need.
type CategoryStore interface {
	List() ([]models.Category, error)
	Get(id int64) (*models.Category, error)
	NameInUse(name string) (bool, error)
	Create(name, slug string) (*models.Category, error)
	Delete(id int64) error
}

// ProductStore is the persistence surface the product handlers need.
type ProductStore interface {
	List(filters store.ProductFilters) ([]models.Product, error)
	Get(id int64) (*models.Product, error)
	BarcodeInUse(barcode string, excludeID int64) (bool, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id int64) error
}

// AdminStore looks up admin accounts.
type AdminStore interface {
	GetByEmail(email string) (*models.Admin, error)
	GetByID(id int64) (*models.Admin, error)
}

// TokenStore tracks issued bearer tokens so logout can revoke them.
type TokenStore interface {
	Create(id string, adminID int64, expiresAt time.Time) error
	Lookup(id string) (int64, error)
	Delete(id string) error
}

// Handlers holds all dependencies for the HTTP handlers.
type Handlers struct {
	Categories CategoryStore
	Products   ProductStore
	Admins     AdminStore
	Tokens     TokenStore

	JWTSecret  []byte
	TokenTTL   time.Duration
	StorageDir string
}
