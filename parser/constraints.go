package parser

import (
	"time"

	"bnb-search/models"
)

// RawListingPayload is the loosely-typed slice of a listing payload the
// constraint normalizer consumes. Fields mirror the upstream JSON shape and
// may all be absent.
type RawListingPayload struct {
	ID string `json:"id"`

	MaxGuests *int                  `json:"maxGuests"`
	Capacity  *models.GuestCapacity `json:"guestCapacity"`

	MinStay *int `json:"minStay"`
	MaxStay *int `json:"maxStay"`

	Availability *models.AvailabilitySettings `json:"availability"`
	Options      *models.BookingOptions       `json:"bookingOptions"`

	AllowsPets *bool `json:"allowsPets"`

	BlockedDates []string `json:"blockedDates"`

	MaxAdvanceBooking *int `json:"maxAdvanceBooking"`
}

// NormalizeConstraints derives canonical BookingConstraints from a raw
// listing payload. It is total: a nil payload yields pure defaults
// (4 guests, 1-30 night stays, 365 day advance window). Guest capacity is
// read from the structured capacity sub-record when present, the flat
// maxGuests field otherwise.
func NormalizeConstraints(payload *RawListingPayload) models.BookingConstraints {
	c := models.BookingConstraints{
		MaxGuests:         models.DefaultMaxGuests,
		MinStay:           models.DefaultMinStay,
		MaxStay:           models.DefaultMaxStay,
		MaxAdvanceBooking: models.DefaultMaxAdvanceBooking,
	}

	if payload == nil {
		return c
	}

	// Structured capacity wins over the flat field when both exist.
	// Infants never count toward the capacity sum.
	if payload.Capacity != nil && payload.Capacity.Adults > 0 {
		c.MaxGuests = payload.Capacity.Adults + payload.Capacity.Children
	} else if payload.MaxGuests != nil && *payload.MaxGuests >= 1 {
		c.MaxGuests = *payload.MaxGuests
	}

	if payload.Availability != nil {
		if payload.Availability.MinimumStay > 0 {
			c.MinStay = payload.Availability.MinimumStay
		}
		if payload.Availability.MaximumStay > 0 {
			c.MaxStay = payload.Availability.MaximumStay
		}
	}
	if payload.MinStay != nil && *payload.MinStay > 0 {
		c.MinStay = *payload.MinStay
	}
	if payload.MaxStay != nil && *payload.MaxStay > 0 {
		c.MaxStay = *payload.MaxStay
	}
	if c.MaxStay < c.MinStay {
		c.MaxStay = c.MinStay
	}

	switch {
	case payload.Options != nil:
		c.AllowsPets = payload.Options.AllowsPets
	case payload.AllowsPets != nil:
		c.AllowsPets = *payload.AllowsPets
	case payload.Capacity != nil:
		c.AllowsPets = payload.Capacity.Pets > 0
	}

	for _, raw := range payload.BlockedDates {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			// Malformed entries are dropped rather than failing the whole
			// normalization
			continue
		}
		c.BlockedDates = append(c.BlockedDates, day)
	}

	if payload.MaxAdvanceBooking != nil && *payload.MaxAdvanceBooking > 0 {
		c.MaxAdvanceBooking = *payload.MaxAdvanceBooking
	}

	return c
}
