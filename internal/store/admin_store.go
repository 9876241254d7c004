package store

import (
	"database/sql"
	"errors"

	"github.com/freshmart/inventory-api/internal/models"
)

// AdminStore looks up admin accounts for authentication.
type AdminStore struct {
	DB *sql.DB
}

func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{DB: db}
}

func (s *AdminStore) GetByEmail(email string) (*models.Admin, error) {
	return s.get("SELECT id, username, email, password_hash, created_at, updated_at FROM admins WHERE email = ?", email)
}

func (s *AdminStore) GetByID(id int64) (*models.Admin, error) {
	return s.get("SELECT id, username, email, password_hash, created_at, updated_at FROM admins WHERE id = ?", id)
}

func (s *AdminStore) get(query string, arg interface{}) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.QueryRow(query, arg).Scan(
		&admin.ID, &admin.Username, &admin.Email, &admin.PasswordHash,
		&admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
