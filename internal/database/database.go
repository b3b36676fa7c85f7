package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the SQLite file and verifies it is reachable.
//
// The whole service shares one connection: SQLite allows a single writer,
// and funneling every statement through one *sql.Conn avoids the
// "database is locked" errors a pool of writers would produce.
func Connect(path string) (*sqlx.DB, error) {
	log.Printf("🔌 Opening SQLite database at %s", path)

	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connection established")
	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL CHECK(role IN ('citizen', 'worker', 'admin')),
			ward TEXT NOT NULL DEFAULT '',
			waste_id TEXT NOT NULL UNIQUE,
			training_completed INT NOT NULL DEFAULT 0,
			points INT NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,

		// Create collections table
		`CREATE TABLE IF NOT EXISTS collections (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			collection_date BIGINT NOT NULL,
			waste_type TEXT NOT NULL CHECK(waste_type IN ('wet', 'dry', 'hazardous', 'e_waste')),
			weight_kg DOUBLE PRECISION NOT NULL,
			segregated INT NOT NULL DEFAULT 0,
			collected_by TEXT,
			vehicle_number TEXT,
			status TEXT NOT NULL DEFAULT 'scheduled' CHECK(status IN ('scheduled', 'collected', 'processed')),
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create complaints table
		`CREATE TABLE IF NOT EXISTS complaints (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			complaint_type TEXT NOT NULL,
			description TEXT NOT NULL,
			location TEXT NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			photo_url TEXT,
			status TEXT NOT NULL DEFAULT 'open' CHECK(status IN ('open', 'resolved')),
			created_at BIGINT NOT NULL,
			resolved_at BIGINT,
			resolved_by TEXT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (resolved_by) REFERENCES users(id) ON DELETE SET NULL
		)`,

		// Create facilities table
		`CREATE TABLE IF NOT EXISTS facilities (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			facility_type TEXT NOT NULL CHECK(facility_type IN ('recycling_center', 'composting', 'e_waste', 'wte_plant')),
			address TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			capacity_tpd DOUBLE PRECISION NOT NULL,
			contact_number TEXT NOT NULL DEFAULT '',
			operational_hours TEXT NOT NULL DEFAULT ''
		)`,

		// Create vehicles table
		`CREATE TABLE IF NOT EXISTS vehicles (
			id TEXT PRIMARY KEY,
			vehicle_number TEXT NOT NULL UNIQUE,
			vehicle_type TEXT NOT NULL,
			capacity_tons DOUBLE PRECISION NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			driver_name TEXT NOT NULL DEFAULT '',
			driver_phone TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'idle' CHECK(status IN ('idle', 'collecting', 'in_transit', 'maintenance')),
			last_updated BIGINT NOT NULL
		)`,

		// Create rewards ledger table (append-only)
		`CREATE TABLE IF NOT EXISTS rewards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			reward_type TEXT NOT NULL CHECK(reward_type IN ('welcome_bonus', 'collection', 'complaint', 'training', 'redemption')),
			points INT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			earned_at BIGINT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
		`CREATE INDEX IF NOT EXISTS idx_users_ward ON users(ward)`,
		`CREATE INDEX IF NOT EXISTS idx_collections_user_id ON collections(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_collections_status ON collections(status)`,
		`CREATE INDEX IF NOT EXISTS idx_collections_date ON collections(collection_date)`,
		`CREATE INDEX IF NOT EXISTS idx_complaints_user_id ON complaints(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints(status)`,
		`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles(status)`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_user_id ON rewards(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_earned_at ON rewards(earned_at)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("✓ Database migrations completed")
	return nil
}
