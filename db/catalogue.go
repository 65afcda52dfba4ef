package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"bnb-search/models"
)

// ReplaceCatalogue swaps the stored catalogue snapshot for a fresh one
// inside a single transaction
func (db *DB) ReplaceCatalogue(listings []models.Listing) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin catalogue transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM listings`); err != nil {
		return fmt.Errorf("failed to clear catalogue: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO listings (id, title, city, state, country, price, rating, payload, refreshed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare catalogue insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range listings {
		payload, err := json.Marshal(l)
		if err != nil {
			log.Printf("Warning: Failed to encode listing %s, skipping: %v\n", l.ID, err)
			continue
		}
		if _, err := stmt.Exec(l.ID, l.Title, l.City, l.State, l.Country, l.Price, l.Rating, payload); err != nil {
			return fmt.Errorf("failed to insert listing %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalogue: %w", err)
	}

	log.Printf("Catalogue refreshed with %d listings\n", len(listings))
	return nil
}

// GetListings returns the full stored catalogue in insertion order
func (db *DB) GetListings() ([]models.Listing, error) {
	rows, err := db.conn.Query(`
		SELECT payload FROM listings ORDER BY refreshed_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var l models.Listing
		if err := json.Unmarshal(payload, &l); err != nil {
			log.Printf("Warning: Failed to decode stored listing, skipping: %v\n", err)
			continue
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// GetListing returns one listing by ID, or nil when it does not exist
func (db *DB) GetListing(id string) (*models.Listing, error) {
	var payload []byte
	err := db.conn.QueryRow(`SELECT payload FROM listings WHERE id = $1`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var l models.Listing
	if err := json.Unmarshal(payload, &l); err != nil {
		return nil, fmt.Errorf("failed to decode listing %s: %w", id, err)
	}
	return &l, nil
}

// CountListings returns the catalogue size
func (db *DB) CountListings() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM listings`).Scan(&count)
	return count, err
}
