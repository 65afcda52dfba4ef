package db

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"bnb-search/models"
)

// UserConfig represents a user's persisted filter selection
type UserConfig struct {
	UserID    int64
	MinPrice  float64
	MaxPrice  float64
	PlaceType string
	Bedrooms  int
	Beds      int
	Bathrooms int
	Amenities []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FilterState converts the stored config into the matcher's selection value
func (c *UserConfig) FilterState() models.FilterState {
	state := models.DefaultFilterState()
	if c.MinPrice > 0 {
		state.PriceMin = c.MinPrice
	}
	if c.MaxPrice > 0 {
		state.PriceMax = c.MaxPrice
	}
	if c.PlaceType != "" {
		state.PlaceType = models.PlaceType(c.PlaceType)
	}
	state.Bedrooms = c.Bedrooms
	state.Beds = c.Beds
	state.Bathrooms = c.Bathrooms
	state.Amenities = c.Amenities
	return state
}

// Request represents a queued search request
type Request struct {
	ID                int
	UserID            int64
	TelegramMessageID int
	Location          string
	CheckIn           sql.NullTime
	CheckOut          sql.NullTime
	Adults            int
	Children          int
	Infants           int
	Pets              int
	Status            string // "created", "in_progress", "done", "failed"
	ResultsCount      int
	SheetName         sql.NullString
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SearchFilters converts the stored request into the engine's search intent
func (r *Request) SearchFilters() models.SearchFilters {
	filters := models.SearchFilters{
		Location: r.Location,
		Adults:   r.Adults,
		Children: r.Children,
		Infants:  r.Infants,
		Pets:     r.Pets,
	}
	if r.CheckIn.Valid {
		checkIn := r.CheckIn.Time
		filters.CheckIn = &checkIn
	}
	if r.CheckOut.Valid {
		checkOut := r.CheckOut.Time
		filters.CheckOut = &checkOut
	}
	return filters
}

// GetUserConfig retrieves user configuration, creating default if not exists
func (db *DB) GetUserConfig(userID int64) (*UserConfig, error) {
	var cfg UserConfig
	var amenitiesJSON string
	err := db.conn.QueryRow(`
		SELECT user_id, min_price, max_price, place_type, bedrooms, beds, bathrooms, amenities, created_at, updated_at
		FROM user_configs
		WHERE user_id = $1
	`, userID).Scan(
		&cfg.UserID, &cfg.MinPrice, &cfg.MaxPrice, &cfg.PlaceType,
		&cfg.Bedrooms, &cfg.Beds, &cfg.Bathrooms, &amenitiesJSON,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		// Create default config
		cfg = UserConfig{
			UserID:    userID,
			PlaceType: string(models.PlaceAny),
			Bedrooms:  models.CountAny,
			Beds:      models.CountAny,
			Bathrooms: models.CountAny,
		}
		_, err = db.conn.Exec(`
			INSERT INTO user_configs (user_id, min_price, max_price, place_type, bedrooms, beds, bathrooms, amenities)
			VALUES ($1, $2, $3, $4, $5, $6, $7, '[]')
		`, cfg.UserID, cfg.MinPrice, cfg.MaxPrice, cfg.PlaceType, cfg.Bedrooms, cfg.Beds, cfg.Bathrooms)
		if err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(amenitiesJSON), &cfg.Amenities); err != nil {
		log.Printf("Warning: Failed to decode amenities for user %d: %v\n", userID, err)
		cfg.Amenities = nil
	}

	return &cfg, nil
}

// UpdateUserConfig updates the given fields of a user's config; nil fields
// are left untouched
func (db *DB) UpdateUserConfig(userID int64, minPrice, maxPrice *float64, placeType *string, bedrooms, beds, bathrooms *int) error {
	// Make sure the row exists first
	if _, err := db.GetUserConfig(userID); err != nil {
		return err
	}

	_, err := db.conn.Exec(`
		UPDATE user_configs
		SET min_price = COALESCE($1, min_price),
		    max_price = COALESCE($2, max_price),
		    place_type = COALESCE($3, place_type),
		    bedrooms = COALESCE($4, bedrooms),
		    beds = COALESCE($5, beds),
		    bathrooms = COALESCE($6, bathrooms),
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $7
	`, minPrice, maxPrice, placeType, bedrooms, beds, bathrooms, userID)
	return err
}

// UpdateUserAmenities replaces a user's amenity selection
func (db *DB) UpdateUserAmenities(userID int64, amenities []string) error {
	if amenities == nil {
		amenities = []string{}
	}
	encoded, err := json.Marshal(amenities)
	if err != nil {
		return err
	}

	_, err = db.conn.Exec(`
		UPDATE user_configs
		SET amenities = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2
	`, string(encoded), userID)
	return err
}

// CreateRequest queues a new search request
func (db *DB) CreateRequest(userID int64, telegramMessageID int, filters models.SearchFilters) (*Request, error) {
	var req Request
	var checkIn, checkOut interface{}
	if filters.CheckIn != nil {
		checkIn = *filters.CheckIn
	}
	if filters.CheckOut != nil {
		checkOut = *filters.CheckOut
	}

	err := db.conn.QueryRow(`
		INSERT INTO requests (user_id, telegram_message_id, location, check_in, check_out, adults, children, infants, pets, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'created')
		RETURNING id, user_id, telegram_message_id, location, check_in, check_out, adults, children, infants, pets, status, results_count, sheet_name, created_at, updated_at
	`, userID, telegramMessageID, filters.Location, checkIn, checkOut,
		filters.Adults, filters.Children, filters.Infants, filters.Pets,
	).Scan(
		&req.ID, &req.UserID, &req.TelegramMessageID, &req.Location,
		&req.CheckIn, &req.CheckOut, &req.Adults, &req.Children, &req.Infants, &req.Pets,
		&req.Status, &req.ResultsCount, &req.SheetName, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetNextCreatedRequest gets the next request with status 'created'
func (db *DB) GetNextCreatedRequest() (*Request, error) {
	var req Request
	err := db.conn.QueryRow(`
		SELECT id, user_id, telegram_message_id, location, check_in, check_out, adults, children, infants, pets, status, results_count, sheet_name, created_at, updated_at
		FROM requests
		WHERE status = 'created'
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`).Scan(
		&req.ID, &req.UserID, &req.TelegramMessageID, &req.Location,
		&req.CheckIn, &req.CheckOut, &req.Adults, &req.Children, &req.Infants, &req.Pets,
		&req.Status, &req.ResultsCount, &req.SheetName, &req.CreatedAt, &req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &req, nil
}

// UpdateRequestStatus updates the status of a request
func (db *DB) UpdateRequestStatus(requestID int, status string) error {
	_, err := db.conn.Exec(`
		UPDATE requests
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, status, requestID)
	return err
}

// UpdateRequestResults records how many listings a finished request matched
func (db *DB) UpdateRequestResults(requestID int, resultsCount int) error {
	_, err := db.conn.Exec(`
		UPDATE requests
		SET results_count = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, resultsCount, requestID)
	return err
}

// UpdateRequestSheetName updates the sheet name for a request
func (db *DB) UpdateRequestSheetName(requestID int, sheetName string) error {
	_, err := db.conn.Exec(`
		UPDATE requests
		SET sheet_name = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, sheetName, requestID)
	return err
}
