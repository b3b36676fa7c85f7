package database

import (
	"fmt"
	"log"
	"time"

	"wastetrack-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *sqlx.DB) error {
	// Check if users already exist
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding test users...")

	now := time.Now().Unix()
	year := time.Now().Year()

	type seedUser struct {
		username string
		email    string
		password string
		fullName string
		phone    string
		address  string
		role     string
		ward     string
		wasteID  string
		points   int
	}

	users := []seedUser{
		{
			username: "admin",
			email:    "admin@wastetrack.local",
			password: "admin123",
			fullName: "System Administrator",
			phone:    "9999999999",
			address:  "Admin Office",
			role:     "admin",
			ward:     "ADMIN",
			wasteID:  "ADMIN001",
			points:   1000,
		},
		{
			username: "worker1",
			email:    "worker1@wastetrack.local",
			password: "worker123",
			fullName: "Collection Worker",
			phone:    "9888888888",
			address:  "Depot 1",
			role:     "worker",
			ward:     "Ward 1",
			wasteID:  fmt.Sprintf("WG%dWORKER01", year),
			points:   0,
		},
	}

	// Ten sample citizens spread across five wards
	for i := 1; i <= 10; i++ {
		users = append(users, seedUser{
			username: fmt.Sprintf("user%d", i),
			email:    fmt.Sprintf("user%d@example.com", i),
			password: fmt.Sprintf("user%d123", i),
			fullName: fmt.Sprintf("User %d", i),
			phone:    fmt.Sprintf("98765%05d", i),
			address:  fmt.Sprintf("Address %d", i),
			role:     "citizen",
			ward:     fmt.Sprintf("Ward %d", i%5+1),
			wasteID:  fmt.Sprintf("WG%d%04d", year, i),
			points:   50,
		})
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		userID := uuid.New().String()
		_, err = db.Exec(`
			INSERT INTO users (id, username, email, password, full_name, phone, address, role, ward, waste_id, points, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, userID, u.username, u.email, string(hashed), u.fullName, u.phone, u.address, u.role, u.ward, u.wasteID, u.points, now, now)
		if err != nil {
			return err
		}

		// Citizens start with the same welcome bonus registration grants,
		// so the ledger folds to the seeded balance.
		if u.role == "citizen" {
			_, err = db.Exec(`
				INSERT INTO rewards (user_id, reward_type, points, description, earned_at)
				VALUES (?, ?, ?, ?, ?)
			`, userID, models.RewardWelcomeBonus, 50, "Welcome bonus", now)
			if err != nil {
				return err
			}
		}

		log.Printf("  ✓ Created user: %s (%s)", u.username, u.role)
	}

	log.Println("✓ Successfully seeded test users")
	log.Println("  📧 Admin:   admin / admin123")
	log.Println("  📧 Worker:  worker1 / worker123")
	log.Println("  📧 Citizen: user1 / user1123")
	return nil
}

func SeedFacilities(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM facilities"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Facilities already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding facilities...")

	facilities := []models.Facility{
		{Name: "Green Recycling Center", FacilityType: "recycling_center", Address: "Sector 21, Delhi", Latitude: 28.6139, Longitude: 77.2090, CapacityTpd: 50.0, ContactNumber: "011-12345678", OperationalHours: "9 AM - 6 PM"},
		{Name: "Compost Processing Plant", FacilityType: "composting", Address: "Sector 15, Delhi", Latitude: 28.6239, Longitude: 77.2190, CapacityTpd: 30.0, ContactNumber: "011-87654321", OperationalHours: "24/7"},
		{Name: "E-Waste Collection Point", FacilityType: "e_waste", Address: "Sector 18, Delhi", Latitude: 28.6039, Longitude: 77.1990, CapacityTpd: 10.0, ContactNumber: "011-11223344", OperationalHours: "10 AM - 5 PM"},
	}

	for _, f := range facilities {
		f.ID = uuid.New().String()
		_, err := db.NamedExec(`
			INSERT INTO facilities (id, name, facility_type, address, latitude, longitude, capacity_tpd, contact_number, operational_hours)
			VALUES (:id, :name, :facility_type, :address, :latitude, :longitude, :capacity_tpd, :contact_number, :operational_hours)
		`, f)
		if err != nil {
			return err
		}
	}

	log.Printf("✓ Successfully seeded %d facilities", len(facilities))
	return nil
}

func SeedVehicles(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM vehicles"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Vehicles already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding vehicles...")

	now := time.Now().Unix()
	vehicles := []models.Vehicle{
		{VehicleNumber: "DL01AB1234", VehicleType: "garbage_truck", CapacityTons: 5.0, Latitude: 28.6139, Longitude: 77.2090, DriverName: "Driver A", DriverPhone: "9876543210", Status: models.VehicleCollecting},
		{VehicleNumber: "DL01CD5678", VehicleType: "garbage_truck", CapacityTons: 7.0, Latitude: 28.6239, Longitude: 77.2190, DriverName: "Driver B", DriverPhone: "9876543211", Status: models.VehicleIdle},
		{VehicleNumber: "DL01EF9012", VehicleType: "recycling_truck", CapacityTons: 3.0, Latitude: 28.6339, Longitude: 77.2290, DriverName: "Driver C", DriverPhone: "9876543212", Status: models.VehicleCollecting},
	}

	for _, v := range vehicles {
		v.ID = uuid.New().String()
		v.LastUpdated = now
		_, err := db.NamedExec(`
			INSERT INTO vehicles (id, vehicle_number, vehicle_type, capacity_tons, latitude, longitude, driver_name, driver_phone, status, last_updated)
			VALUES (:id, :vehicle_number, :vehicle_type, :capacity_tons, :latitude, :longitude, :driver_name, :driver_phone, :status, :last_updated)
		`, v)
		if err != nil {
			return err
		}
	}

	log.Printf("✓ Successfully seeded %d vehicles", len(vehicles))
	return nil
}
