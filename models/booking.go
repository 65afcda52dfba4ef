package models

import "time"

// Default constraint values applied when a listing payload omits a field
const (
	DefaultMaxGuests         = 4
	DefaultMinStay           = 1   // nights
	DefaultMaxStay           = 30  // nights
	DefaultMaxAdvanceBooking = 365 // days
)

// BookingConstraints is the normalized set of per-listing limits the
// validator checks a candidate stay against.
type BookingConstraints struct {
	MaxGuests         int
	MinStay           int // nights
	MaxStay           int // nights
	AllowsPets        bool
	BlockedDates      []time.Time // calendar days
	MaxAdvanceBooking int         // days before check-in a booking may be made
}

// ValidationResult is the structured outcome of validating a candidate stay.
// Valid is true iff Errors is empty; Warnings never affect Valid.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Booking statuses
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking is a stored reservation for a listing
type Booking struct {
	ID        string // confirmation code
	ListingID string
	GuestID   int64

	CheckIn  time.Time
	CheckOut time.Time

	Adults   int
	Children int
	Infants  int
	Pets     int

	TotalPrice float64
	Status     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nights returns the stay length in whole calendar days
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
