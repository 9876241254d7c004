package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/freshmart/inventory-api/internal/models"
)

// ProductStore runs the product queries against MySQL.
type ProductStore struct {
	DB *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{DB: db}
}

const productColumns = `
	p.id, p.name, p.barcode, p.description, p.category_id, p.price,
	p.stock_quantity, p.minimum_stock, p.image, p.created_at, p.updated_at,
	c.id, c.name, c.slug, c.created_at, c.updated_at`

// scanProduct reads one joined row. The category columns come from a LEFT
// JOIN, so they are all nullable even though the table columns are not.
func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	var catID sql.NullInt64
	var catName, catSlug sql.NullString
	var catCreated, catUpdated sql.NullTime

	err := row.Scan(
		&p.ID, &p.Name, &p.Barcode, &p.Description, &p.CategoryID, &p.Price,
		&p.StockQuantity, &p.MinimumStock, &p.Image, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catSlug, &catCreated, &catUpdated,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		p.Category = &models.Category{
			ID:        catID.Int64,
			Name:      catName.String,
			Slug:      catSlug.String,
			CreatedAt: catCreated.Time,
			UpdatedAt: catUpdated.Time,
		}
	}
	return &p, nil
}

func (s *ProductStore) List(filters ProductFilters) ([]models.Product, error) {
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT" + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id`)

	var conditions []string
	if filters.Uncategorized {
		conditions = append(conditions, "p.category_id IS NULL")
	} else if filters.CategoryID != nil {
		conditions = append(conditions, "p.category_id = ?")
		args = append(args, *filters.CategoryID)
	}
	if filters.Search != "" {
		conditions = append(conditions, "LOWER(p.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY p.created_at DESC, p.id DESC")

	rows, err := s.DB.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *ProductStore) Get(id int64) (*models.Product, error) {
	row := s.DB.QueryRow("SELECT"+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = ?`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// BarcodeInUse reports whether another product already carries the barcode.
// excludeID lets an update reuse the record's own barcode.
func (s *ProductStore) BarcodeInUse(barcode string, excludeID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(
		"SELECT COUNT(*) FROM products WHERE barcode = ? AND id <> ?",
		barcode, excludeID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the product and fills in its generated ID and timestamps.
func (s *ProductStore) Create(p *models.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := s.DB.Exec(`
		INSERT INTO products
		(name, barcode, description, category_id, price, stock_quantity, minimum_stock, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Barcode, p.Description, p.CategoryID, p.Price,
		p.StockQuantity, p.MinimumStock, p.Image, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicate
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Update writes the full row back. The caller is expected to have loaded the
// product first (partial-update merging happens in the handler), so a missing
// row surfaces there as ErrNotFound rather than here.
func (s *ProductStore) Update(p *models.Product) error {
	p.UpdatedAt = time.Now()

	_, err := s.DB.Exec(`
		UPDATE products SET
		name = ?, barcode = ?, description = ?, category_id = ?, price = ?,
		stock_quantity = ?, minimum_stock = ?, image = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Barcode, p.Description, p.CategoryID, p.Price,
		p.StockQuantity, p.MinimumStock, p.Image, p.UpdatedAt, p.ID,
	)
	if isDuplicateEntry(err) {
		return ErrDuplicate
	}
	return err
}

func (s *ProductStore) Delete(id int64) error {
	res, err := s.DB.Exec("DELETE FROM products WHERE id = ?", id)
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
	return nil
}
