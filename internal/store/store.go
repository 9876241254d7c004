package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors shared by all stores. Handlers map these onto HTTP status
// codes; anything else is treated as a server error.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// isDuplicateEntry reports a MySQL unique-key violation (error 1062). The
// handlers pre-check uniqueness, but a concurrent insert can still trip the
// constraint.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// ProductFilters narrows the product listing. CategoryID filters on an exact
// category; Uncategorized selects products whose category_id is NULL; Search
// is a case-insensitive substring match on the product name.
type ProductFilters struct {
	CategoryID    *int64
	Uncategorized bool
	Search        string
}
