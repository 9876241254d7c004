package store

import (
	"database/sql"
	"errors"
	"time"
)

// TokenStore keeps the issued bearer tokens. A token is valid only while its
// row exists and has not expired; logout simply deletes the row.
type TokenStore struct {
	DB *sql.DB
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{DB: db}
}

func (s *TokenStore) Create(id string, adminID int64, expiresAt time.Time) error {
	_, err := s.DB.Exec(
		"INSERT INTO tokens (id, admin_id, expires_at) VALUES (?, ?, ?)",
		id, adminID, expiresAt,
	)
	return err
}

// Lookup returns the owning admin ID for a live token, or ErrNotFound when the
// token is unknown or expired (a revoked token looks exactly like an unknown one).
func (s *TokenStore) Lookup(id string) (int64, error) {
	var adminID int64
	err := s.DB.QueryRow(
		"SELECT admin_id FROM tokens WHERE id = ? AND expires_at > ?",
		id, time.Now(),
	).Scan(&adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return adminID, nil
}

func (s *TokenStore) Delete(id string) error {
	_, err := s.DB.Exec("DELETE FROM tokens WHERE id = ?", id)
	return err
}
