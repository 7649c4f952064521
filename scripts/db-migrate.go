//go:build ignore

package main

import (
	"log"

	"github.com/gigmarket/api/config"
	"github.com/gigmarket/api/database"
)

// Standalone schema migration entrypoint for deploy pipelines that migrate
// before rolling the server. Run with: go run scripts/db-migrate.go
func main() {
	log.Println("Starting database migration...")

	cfg := config.Load()
	if _, err := database.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database migration completed successfully")
}
