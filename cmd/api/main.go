package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/freshmart/inventory-api/internal/config"
	"github.com/freshmart/inventory-api/internal/database"
	"github.com/freshmart/inventory-api/internal/handlers"
	"github.com/freshmart/inventory-api/internal/routes"
	"github.com/freshmart/inventory-api/internal/store"
)

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

	app := &handlers.Handlers{
		Categories: store.NewCategoryStore(db),
		Products:   store.NewProductStore(db),
		Admins:     store.NewAdminStore(db),
		Tokens:     store.NewTokenStore(db),
		JWTSecret:  []byte(cfg.JWTSecret),
		TokenTTL:   cfg.TokenTTL,
		StorageDir: cfg.StorageDir,
	}

	router := routes.SetupRouter(app, cfg.CORSOrigin)

	log.Printf("Starting inventory API server on %s...", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
