package models

import "time"

// Category defines the struct for the 'categories' table.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCategoryInput is the payload accepted by POST /categories.
type CreateCategoryInput struct {
	Name string `json:"name" binding:"required,max=50"`
}
