package models

// Listing represents a bookable property record exposed to the matching and
// validation engine. Fields a catalogue payload may omit are pointers or zero
// values; the engine treats every absence as permissive, never as an error.
type Listing struct {
	ID          string
	Title       string
	Description string

	// Location
	City      string
	State     string
	Country   string
	Address   string
	Latitude  *float64
	Longitude *float64

	// Price per night, currency-agnostic
	Price float64

	// Raw classification strings, e.g. "Villa", "Entire home"
	PropertyType string
	RoomType     string

	// Capacity breakdown (nil = unknown)
	Bedrooms  *float64
	Bathrooms *float64
	Beds      *float64
	Capacity  *GuestCapacity
	MaxGuests *int // flat fallback when no Capacity sub-record exists

	Amenities []string

	Availability *AvailabilitySettings
	Options      *BookingOptions

	// Flattened option flags for payloads that never nested them.
	// The matcher prefers Options when present.
	InstantBook bool
	SelfCheckIn bool
	AllowsPets  bool
	FreeParking bool
	HasTV       bool

	Host *Host

	Rating          float64
	IsGuestFavorite bool

	AccessibilityFeatures []string
}

// GuestCapacity is the per-category guest capacity of a listing
type GuestCapacity struct {
	Adults                int
	Children              int
	Infants               int
	Pets                  int
	ServiceAnimalsAllowed bool
}

// AvailabilitySettings holds stay bounds and check-in/out policy
type AvailabilitySettings struct {
	MinimumStay  int // nights
	MaximumStay  int // nights
	CheckInTime  string
	CheckOutTime string
	InstantBook  bool
}

// BookingOptions is the nested booking-options sub-record
type BookingOptions struct {
	InstantBook    bool
	SelfCheckIn    bool
	AllowsPets     bool
	SmokingAllowed bool
	EventsAllowed  bool
}

// Host describes the listing's host
type Host struct {
	Languages   []string
	IsSuperhost bool
}
