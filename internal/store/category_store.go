package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/freshmart/inventory-api/internal/models"
)

// CategoryStore runs the category queries against MySQL.
type CategoryStore struct {
	DB *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{DB: db}
}

func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.DB.Query("SELECT id, name, slug, created_at, updated_at FROM categories")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) Get(id int64) (*models.Category, error) {
	var cat models.Category
	err := s.DB.QueryRow(
		"SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = ?", id,
	).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// NameInUse reports whether a category with the given name already exists.
func (s *CategoryStore) NameInUse(name string) (bool, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM categories WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *CategoryStore) Create(name, slug string) (*models.Category, error) {
	now := time.Now()
	res, err := s.DB.Exec(
		"INSERT INTO categories (name, slug, created_at, updated_at) VALUES (?, ?, ?, ?)",
		name, slug, now, now,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Category{
		ID:        id,
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Delete removes a category after detaching its products. Both statements run
// in one transaction so no product ever references a deleted category.
func (s *CategoryStore) Delete(id int64) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE products SET category_id = NULL WHERE category_id = ?", id); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
