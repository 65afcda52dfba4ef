package parser

import (
	"testing"
	"time"

	"bnb-search/models"
)

func intp(i int) *int    { return &i }
func boolp(b bool) *bool { return &b }

func TestNormalizeConstraintsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		payload *RawListingPayload
	}{
		{"nil payload", nil},
		{"empty payload", &RawListingPayload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NormalizeConstraints(tt.payload)

			if c.MaxGuests != models.DefaultMaxGuests {
				t.Errorf("MaxGuests = %d, want %d", c.MaxGuests, models.DefaultMaxGuests)
			}
			if c.MinStay != models.DefaultMinStay {
				t.Errorf("MinStay = %d, want %d", c.MinStay, models.DefaultMinStay)
			}
			if c.MaxStay != models.DefaultMaxStay {
				t.Errorf("MaxStay = %d, want %d", c.MaxStay, models.DefaultMaxStay)
			}
			if c.MaxAdvanceBooking != models.DefaultMaxAdvanceBooking {
				t.Errorf("MaxAdvanceBooking = %d, want %d", c.MaxAdvanceBooking, models.DefaultMaxAdvanceBooking)
			}
			if c.AllowsPets {
				t.Error("AllowsPets should default to false")
			}
			if len(c.BlockedDates) != 0 {
				t.Errorf("BlockedDates = %v, want empty", c.BlockedDates)
			}
		})
	}
}

func TestNormalizeConstraintsGuestCapacity(t *testing.T) {
	tests := []struct {
		name    string
		payload RawListingPayload
		want    int
	}{
		{
			"structured capacity wins over flat",
			RawListingPayload{
				Capacity:  &models.GuestCapacity{Adults: 4, Children: 2, Infants: 3},
				MaxGuests: intp(10),
			},
			6, // infants excluded
		},
		{
			"flat max guests",
			RawListingPayload{MaxGuests: intp(8)},
			8,
		},
		{
			"zero-adult capacity falls through to flat",
			RawListingPayload{
				Capacity:  &models.GuestCapacity{Children: 2},
				MaxGuests: intp(5),
			},
			5,
		},
		{
			"flat below one is ignored",
			RawListingPayload{MaxGuests: intp(0)},
			models.DefaultMaxGuests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NormalizeConstraints(&tt.payload)
			if c.MaxGuests != tt.want {
				t.Errorf("MaxGuests = %d, want %d", c.MaxGuests, tt.want)
			}
		})
	}
}

func TestNormalizeConstraintsStayBounds(t *testing.T) {
	tests := []struct {
		name    string
		payload RawListingPayload
		wantMin int
		wantMax int
	}{
		{
			"availability sub-record",
			RawListingPayload{Availability: &models.AvailabilitySettings{MinimumStay: 2, MaximumStay: 14}},
			2, 14,
		},
		{
			"flat fields override availability",
			RawListingPayload{
				Availability: &models.AvailabilitySettings{MinimumStay: 2, MaximumStay: 14},
				MinStay:      intp(3),
				MaxStay:      intp(10),
			},
			3, 10,
		},
		{
			"max clamped up to min",
			RawListingPayload{MinStay: intp(7), MaxStay: intp(3)},
			7, 7,
		},
		{
			"non-positive values ignored",
			RawListingPayload{MinStay: intp(0), MaxStay: intp(-5)},
			models.DefaultMinStay, models.DefaultMaxStay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NormalizeConstraints(&tt.payload)
			if c.MinStay != tt.wantMin || c.MaxStay != tt.wantMax {
				t.Errorf("stay bounds = %d..%d, want %d..%d", c.MinStay, c.MaxStay, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestNormalizeConstraintsPets(t *testing.T) {
	tests := []struct {
		name    string
		payload RawListingPayload
		want    bool
	}{
		{"options sub-record wins", RawListingPayload{
			Options:    &models.BookingOptions{AllowsPets: false},
			AllowsPets: boolp(true),
		}, false},
		{"flat flag", RawListingPayload{AllowsPets: boolp(true)}, true},
		{"capacity pet slots imply allowed", RawListingPayload{
			Capacity: &models.GuestCapacity{Adults: 2, Pets: 1},
		}, true},
		{"capacity without pet slots", RawListingPayload{
			Capacity: &models.GuestCapacity{Adults: 2},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NormalizeConstraints(&tt.payload)
			if c.AllowsPets != tt.want {
				t.Errorf("AllowsPets = %v, want %v", c.AllowsPets, tt.want)
			}
		})
	}
}

func TestNormalizeConstraintsBlockedDates(t *testing.T) {
	c := NormalizeConstraints(&RawListingPayload{
		BlockedDates: []string{"2026-12-24", "not-a-date", "2026-12-25", ""},
	})

	if len(c.BlockedDates) != 2 {
		t.Fatalf("BlockedDates length = %d, want 2 (malformed entries dropped)", len(c.BlockedDates))
	}
	want := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	if !c.BlockedDates[0].Equal(want) {
		t.Errorf("BlockedDates[0] = %v, want %v", c.BlockedDates[0], want)
	}
}
