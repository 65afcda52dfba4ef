package db

import (
	"context"
	"database/sql"
	"time"

	"bnb-search/booking"
	"bnb-search/models"
)

// CreateBooking stores a new booking
func (db *DB) CreateBooking(b models.Booking) error {
	_, err := db.conn.Exec(`
		INSERT INTO bookings (id, listing_id, guest_id, check_in, check_out, adults, children, infants, pets, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, b.ID, b.ListingID, b.GuestID, b.CheckIn, b.CheckOut,
		b.Adults, b.Children, b.Infants, b.Pets, b.TotalPrice, b.Status)
	return err
}

// GetBooking returns one booking by confirmation code, or nil when it does
// not exist
func (db *DB) GetBooking(id string) (*models.Booking, error) {
	var b models.Booking
	err := db.conn.QueryRow(`
		SELECT id, listing_id, guest_id, check_in, check_out, adults, children, infants, pets, total_price, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`, id).Scan(
		&b.ID, &b.ListingID, &b.GuestID, &b.CheckIn, &b.CheckOut,
		&b.Adults, &b.Children, &b.Infants, &b.Pets,
		&b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBookingStatus updates the status of a booking
func (db *DB) UpdateBookingStatus(id, status string) error {
	_, err := db.conn.Exec(`
		UPDATE bookings
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, status, id)
	return err
}

// GetUserBookings returns a guest's bookings, newest first, optionally
// narrowed to one status
func (db *DB) GetUserBookings(guestID int64, status string) ([]models.Booking, error) {
	query := `
		SELECT id, listing_id, guest_id, check_in, check_out, adults, children, infants, pets, total_price, status, created_at, updated_at
		FROM bookings
		WHERE guest_id = $1`
	args := []interface{}{guestID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.ListingID, &b.GuestID, &b.CheckIn, &b.CheckOut,
			&b.Adults, &b.Children, &b.Infants, &b.Pets,
			&b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// Oracle answers availability questions from the bookings table: a range is
// available when no pending or confirmed booking overlaps it
type Oracle struct {
	db *DB
}

// NewOracle creates an availability oracle backed by this database
func (db *DB) NewOracle() *Oracle {
	return &Oracle{db: db}
}

// CheckAvailability reports whether the date range is free of overlapping
// active bookings for the listing
func (o *Oracle) CheckAvailability(ctx context.Context, start, end time.Time, listingID string) (booking.AvailabilityResult, error) {
	var overlapping int
	err := o.db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM bookings
		WHERE listing_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND check_in < $3
		  AND check_out > $2
	`, listingID, start, end).Scan(&overlapping)
	if err != nil {
		return booking.AvailabilityResult{}, err
	}

	if overlapping > 0 {
		return booking.AvailabilityResult{
			Available: false,
			Message:   "This place is already booked for part of the selected dates",
		}, nil
	}

	return booking.AvailabilityResult{Available: true}, nil
}
