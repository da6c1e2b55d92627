package main

import (
	"context"
	"log"
	"os"

	"github.com/receptorium/backend/config"
	"github.com/receptorium/backend/internal/database"
	"github.com/receptorium/backend/internal/service"
)

// Bulk-loads the ingredient reference table from a CSV file of
// (name, measurement_unit) rows. Safe to run more than once.
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Usage: %s <ingredients.csv>", os.Args[0])
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open %s: %v", os.Args[1], err)
	}
	defer f.Close()

	created, err := service.NewIngredientService(db).ImportCSV(context.Background(), f)
	if err != nil {
		log.Fatalf("Import failed after %d rows: %v", created, err)
	}
	log.Printf("Imported %d new ingredients", created)
}
