package main

import (
	"database/sql"
	"log"

	"github.com/joho/godotenv"

	"github.com/freshmart/inventory-api/internal/config"
	"github.com/freshmart/inventory-api/internal/database"
)

// One-off data migration: older deployments stored a denormalized category
// name on each product. This maps those names onto categories.id, fills
// products.category_id and leaves the legacy column empty. It is not part of
// the server's runtime; run it once, by hand, after upgrading the schema.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := config.Load()

	db, err := database.OpenDB(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	hasLegacy, err := legacyColumnExists(db)
	if err != nil {
		log.Fatalf("Failed to inspect schema: %v", err)
	}
	if !hasLegacy {
		log.Println("No legacy 'category' column on products; nothing to backfill")
		return
	}

	updated, err := backfill(db)
	if err != nil {
		log.Fatalf("Backfill failed: %v", err)
	}
	log.Printf("Backfilled category_id on %d products", updated)
}

func legacyColumnExists(db *sql.DB) (bool, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = 'products' AND column_name = 'category'`,
	).Scan(&count)
	return count > 0, err
}

// backfill resolves each legacy name against categories.name. Names with no
// matching category leave the product uncategorized, mirroring what the FK
// would have allowed.
func backfill(db *sql.DB) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE products p
		LEFT JOIN categories c ON c.name = p.category
		SET p.category_id = c.id, p.category = NULL
		WHERE p.category IS NOT NULL AND p.category_id IS NULL`)
	if err != nil {
		return 0, err
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return updated, tx.Commit()
}
