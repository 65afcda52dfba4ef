package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bnb-search/models"
)

// Store is the persistence the booking lifecycle needs
type Store interface {
	GetListing(id string) (*models.Listing, error)
	CreateBooking(b models.Booking) error
	GetBooking(id string) (*models.Booking, error)
	UpdateBookingStatus(id, status string) error
}

// Service runs the booking lifecycle: validate, price, persist, confirm,
// cancel
type Service struct {
	store  Store
	oracle AvailabilityOracle
}

// NewService creates a new booking Service
func NewService(store Store, oracle AvailabilityOracle) *Service {
	return &Service{store: store, oracle: oracle}
}

// CreateRequest is a request to book a listing for a guest
type CreateRequest struct {
	ListingID string
	GuestID   int64

	CheckIn  time.Time
	CheckOut time.Time

	Adults   int
	Children int
	Infants  int
	Pets     int
}

// Create validates the candidate stay, checks availability through the
// oracle, prices it and persists a pending booking. Validation problems come
// back in the ValidationResult with a nil booking; the error return is for
// storage failures only.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Booking, models.ValidationResult, error) {
	listing, err := s.store.GetListing(req.ListingID)
	if err != nil {
		return nil, models.ValidationResult{}, fmt.Errorf("failed to load listing %s: %w", req.ListingID, err)
	}
	if listing == nil {
		return nil, models.ValidationResult{
			Errors: []string{fmt.Sprintf("Listing %s not found", req.ListingID)},
		}, nil
	}

	constraints := ConstraintsFor(*listing)
	result := ValidateBooking(Input{
		CheckIn:     &req.CheckIn,
		CheckOut:    &req.CheckOut,
		Adults:      req.Adults,
		Children:    req.Children,
		Infants:     req.Infants,
		Pets:        req.Pets,
		Constraints: constraints,
	})
	if !result.Valid {
		return nil, result, nil
	}

	availability := CheckAvailability(ctx, s.oracle, req.CheckIn, req.CheckOut, req.ListingID)
	if !availability.Available {
		msg := availability.Message
		if msg == "" {
			msg = "This place is not available for the selected dates"
		}
		result.Errors = append(result.Errors, msg)
		result.Valid = false
		return nil, result, nil
	}

	nights := daysBetween(toDay(req.CheckIn), toDay(req.CheckOut))
	b := models.Booking{
		ID:         uuid.NewString(),
		ListingID:  req.ListingID,
		GuestID:    req.GuestID,
		CheckIn:    toDay(req.CheckIn),
		CheckOut:   toDay(req.CheckOut),
		Adults:     req.Adults,
		Children:   req.Children,
		Infants:    req.Infants,
		Pets:       req.Pets,
		TotalPrice: TotalPrice(nights, listing.Price),
		Status:     models.BookingPending,
	}

	if err := s.store.CreateBooking(b); err != nil {
		return nil, result, fmt.Errorf("failed to save booking: %w", err)
	}

	return &b, result, nil
}

// Confirm moves a pending booking to confirmed
func (s *Service) Confirm(id string) (*models.Booking, error) {
	b, err := s.store.GetBooking(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	if b.Status != models.BookingPending {
		return nil, fmt.Errorf("only pending bookings can be confirmed, booking %s is %s", id, b.Status)
	}

	if err := s.store.UpdateBookingStatus(id, models.BookingConfirmed); err != nil {
		return nil, err
	}
	b.Status = models.BookingConfirmed
	return b, nil
}

// Cancel cancels a booking unless it is already cancelled or completed
func (s *Service) Cancel(id string) (*models.Booking, error) {
	b, err := s.store.GetBooking(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	if b.Status == models.BookingCancelled || b.Status == models.BookingCompleted {
		return nil, fmt.Errorf("booking %s can no longer be cancelled", id)
	}

	if err := s.store.UpdateBookingStatus(id, models.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = models.BookingCancelled
	return b, nil
}

// ConstraintsFor derives the validator's constraints from an already-decoded
// listing, applying the same defaults the raw-payload normalizer uses.
func ConstraintsFor(l models.Listing) models.BookingConstraints {
	c := models.BookingConstraints{
		MaxGuests:         models.DefaultMaxGuests,
		MinStay:           models.DefaultMinStay,
		MaxStay:           models.DefaultMaxStay,
		MaxAdvanceBooking: models.DefaultMaxAdvanceBooking,
	}

	if l.Capacity != nil && l.Capacity.Adults > 0 {
		c.MaxGuests = l.Capacity.Adults + l.Capacity.Children
	} else if l.MaxGuests != nil && *l.MaxGuests >= 1 {
		c.MaxGuests = *l.MaxGuests
	}

	if l.Availability != nil {
		if l.Availability.MinimumStay > 0 {
			c.MinStay = l.Availability.MinimumStay
		}
		if l.Availability.MaximumStay > 0 {
			c.MaxStay = l.Availability.MaximumStay
		}
	}
	if c.MaxStay < c.MinStay {
		c.MaxStay = c.MinStay
	}

	c.AllowsPets = allowsPetsListing(l)

	return c
}

func allowsPetsListing(l models.Listing) bool {
	if l.Options != nil {
		return l.Options.AllowsPets
	}
	if l.Capacity != nil && l.Capacity.Pets > 0 {
		return true
	}
	return l.AllowsPets
}
