package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection
func NewDB() (*DB, error) {
	// Get connection string from environment variable
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		// Try to build from individual components
		host := getEnvOrDefault("DB_HOST", "localhost")
		port := getEnvOrDefault("DB_PORT", "5432")
		user := getEnvOrDefault("DB_USER", "bnb_search")
		password := getEnvOrDefault("DB_PASSWORD", "")
		dbname := getEnvOrDefault("DB_NAME", "bnb_search")
		sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=bnb_search",
			host, port, user, password, dbname, sslmode)
	}

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn}

	// Initialize schema
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables if they don't exist
func (db *DB) initSchema() error {
	// Try to create schema if it doesn't exist (but don't fail if we don't
	// have permission)
	_, err := db.conn.Exec(`CREATE SCHEMA IF NOT EXISTS bnb_search`)
	if err != nil {
		log.Printf("Warning: Failed to create schema (may already exist): %v\n", err)
	}

	_, err = db.conn.Exec(`SET search_path TO bnb_search`)
	if err != nil {
		return fmt.Errorf("failed to set search path: %w", err)
	}

	// Create user_configs table: the persisted per-user filter selection
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_configs (
			user_id BIGINT PRIMARY KEY,
			min_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			max_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			place_type VARCHAR(20) NOT NULL DEFAULT 'any',
			bedrooms INTEGER NOT NULL DEFAULT -1,
			beds INTEGER NOT NULL DEFAULT -1,
			bathrooms INTEGER NOT NULL DEFAULT -1,
			amenities TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create user_configs table: %w", err)
	}

	// Create requests table: queued search requests
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS requests (
			id SERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			telegram_message_id INTEGER NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			check_in DATE,
			check_out DATE,
			adults INTEGER NOT NULL DEFAULT 0,
			children INTEGER NOT NULL DEFAULT 0,
			infants INTEGER NOT NULL DEFAULT 0,
			pets INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'created',
			results_count INTEGER DEFAULT 0,
			sheet_name VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT valid_status CHECK (status IN ('created', 'in_progress', 'done', 'failed'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create requests table: %w", err)
	}

	// Create listings table: the catalogue snapshot. The full record is kept
	// as JSON; the extracted columns exist for inspection and indexing only.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			payload JSONB NOT NULL,
			refreshed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create listings table: %w", err)
	}

	// Create bookings table
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			listing_id TEXT NOT NULL,
			guest_id BIGINT NOT NULL,
			check_in DATE NOT NULL,
			check_out DATE NOT NULL,
			adults INTEGER NOT NULL DEFAULT 1,
			children INTEGER NOT NULL DEFAULT 0,
			infants INTEGER NOT NULL DEFAULT 0,
			pets INTEGER NOT NULL DEFAULT 0,
			total_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT valid_booking_status CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}

	// Create indexes
	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status)`)
	if err != nil {
		log.Printf("Warning: Failed to create index on requests.status: %v\n", err)
	}

	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_requests_user_id ON requests(user_id)`)
	if err != nil {
		log.Printf("Warning: Failed to create index on requests.user_id: %v\n", err)
	}

	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_listings_city ON listings(city)`)
	if err != nil {
		log.Printf("Warning: Failed to create index on listings.city: %v\n", err)
	}

	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_bookings_listing_id ON bookings(listing_id)`)
	if err != nil {
		log.Printf("Warning: Failed to create index on bookings.listing_id: %v\n", err)
	}

	_, err = db.conn.Exec(`CREATE INDEX IF NOT EXISTS idx_bookings_dates ON bookings(listing_id, check_in, check_out)`)
	if err != nil {
		log.Printf("Warning: Failed to create index on bookings dates: %v\n", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}

// GetConn returns the underlying database connection
func (db *DB) GetConn() *sql.DB {
	return db.conn
}
