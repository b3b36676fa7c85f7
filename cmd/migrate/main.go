package main

import (
	"fmt"
	"log"
	"os"

	"wastetrack-backend/internal/database"

	"github.com/joho/godotenv"
)

// Standalone migrate-and-seed runner for fresh deployments
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "wastetrack.db"
	}

	db, err := database.Connect(dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := database.SeedUsers(db); err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if err := database.SeedFacilities(db); err != nil {
		log.Fatalf("Facility seeding failed: %v", err)
	}
	if err := database.SeedVehicles(db); err != nil {
		log.Fatalf("Vehicle seeding failed: %v", err)
	}

	var result struct {
		Users      int `db:"users"`
		Facilities int `db:"facilities"`
		Vehicles   int `db:"vehicles"`
	}
	err = db.Get(&result, `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM facilities) AS facilities,
			(SELECT COUNT(*) FROM vehicles) AS vehicles
	`)
	if err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Users:      %d\n", result.Users)
	fmt.Printf("Facilities: %d\n", result.Facilities)
	fmt.Printf("Vehicles:   %d\n", result.Vehicles)
	fmt.Println("============================================================")
}
