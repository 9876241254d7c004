package main

import (
	"database/sql"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/freshmart/inventory-api/internal/config"
	"github.com/freshmart/inventory-api/internal/database"
	"github.com/freshmart/inventory-api/internal/models"
	"github.com/freshmart/inventory-api/internal/store"
)

// Seeds the default admin account, the shelf categories and a handful of
// sample products. Safe to run repeatedly: categories are keyed by slug and
// products are only inserted into an empty table.
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if err := seedCategories(db); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	if err := seedProducts(db); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Println("Seeding complete")
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admins WHERE email = ?", "test@example.com").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var password models.Password
	if err := password.Set("password"); err != nil {
		return err
	}

	_, err := db.Exec(
		"INSERT INTO admins (username, email, password_hash) VALUES (?, ?, ?)",
		"admin", "test@example.com", password.Hash,
	)
	if err == nil {
		log.Println("Created admin account test@example.com")
	}
	return err
}

func seedCategories(db *sql.DB) error {
	categories := []struct {
		name string
		slug string
	}{
		{"Warzywa", "warzywa"},
		{"Owoce", "owoce"},
		{"Mięso", "mieso"},
		{"Nabiał", "nabial"},
		{"Pieczywo", "pieczywo"},
		{"Napoje", "napoje"},
	}

	for _, cat := range categories {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE slug = ?", cat.slug).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := db.Exec("INSERT INTO categories (name, slug) VALUES (?, ?)", cat.name, cat.slug); err != nil {
			return err
		}
	}
	return nil
}

func seedProducts(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := store.NewProductStore(db)
	categories := store.NewCategoryStore(db)

	// Map slugs to IDs so the samples land in their categories.
	catIDs := map[string]*int64{}
	all, err := categories.List()
	if err != nil {
		return err
	}
	for i := range all {
		catIDs[all[i].Slug] = &all[i].ID
	}

	samples := []struct {
		name        string
		description string
		slug        string
		price       string
		stock       int
		image       string
	}{
		{"Fresh Red Apple", "Crisp and sweet red apple, locally sourced.", "owoce", "1.20", 100, "/images/products/apple.png"},
		{"Swiss Cheese", "Aged Swiss cheese with distinct holes and bold flavor.", "nabial", "5.50", 50, "/images/products/cheese.png"},
		{"Premium Lager Beer", "Refreshing lager beer, perfect for any occasion.", "napoje", "3.00", 200, "/images/products/beer.png"},
		{"Sourdough Bread", "Artisan sourdough bread with a crispy crust.", "pieczywo", "2.50", 30, "/images/products/bread.png"},
		{"Whole Milk", "Fresh whole milk from happy cows.", "nabial", "1.80", 80, "/images/products/milk.png"},
	}

	for _, s := range samples {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			return err
		}
		desc := s.description
		img := s.image
		p := &models.Product{
			Name:          s.name,
			Description:   &desc,
			CategoryID:    catIDs[s.slug],
			Price:         price,
			StockQuantity: s.stock,
			Image:         &img,
		}
		if err := products.Create(p); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d sample products", len(samples))
	return nil
}
