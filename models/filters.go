package models

import "time"

// PlaceType narrows listings by the kind of place being booked
type PlaceType string

const (
	PlaceAny        PlaceType = "any"
	PlaceRoom       PlaceType = "room"
	PlaceEntireHome PlaceType = "entire-home"
)

// CountAny is the sentinel for "any number" in room count filters.
// Zero is a real threshold, so the sentinel must be negative.
const CountAny = -1

// FilterState is the full set of category selections a user has made to
// narrow the catalogue. An empty/default category is inactive and auto-passes
// during matching. The owning store keeps PriceMin <= PriceMax; the matcher
// tolerates an inverted range without panicking.
type FilterState struct {
	PriceMin float64
	PriceMax float64

	PlaceType PlaceType

	// CountAny or a non-negative "at least N" threshold
	Bedrooms  int
	Beds      int
	Bathrooms int

	Amenities     []string
	Recommended   []string
	BookingOpts   []string
	PropertyTypes []string
	Accessibility []string
	HostLanguages []string
	StandoutStays []string

	// Display-only; never participates in matching
	TotalBeforeTaxes bool
}

// DefaultFilterState returns the all-inactive selection that matches every
// listing.
func DefaultFilterState() FilterState {
	return FilterState{
		PriceMin:  0,
		PriceMax:  defaultPriceCeiling,
		PlaceType: PlaceAny,
		Bedrooms:  CountAny,
		Beds:      CountAny,
		Bathrooms: CountAny,
	}
}

// defaultPriceCeiling keeps a fresh FilterState from excluding anything
const defaultPriceCeiling = 1000000000

// FlexibleDates carries flexible-search parameters when the user picked
// months or an approximate window instead of exact dates.
type FlexibleDates struct {
	Months       []string // candidate month names
	StayDuration string   // "weekend", "week", "month"
	Flexibility  string   // "exact" or a +/- day count
}

// SearchFilters is the normalized location/date/guest search intent derived
// from raw UI state. It is recomputed on every relevant change and never
// persisted.
type SearchFilters struct {
	Location string

	CheckIn  *time.Time
	CheckOut *time.Time

	Adults   int
	Children int
	Infants  int
	Pets     int

	Flexible *FlexibleDates
}

// TotalGuests is the guest count used in summaries (infants and pets are
// phrased separately).
func (s SearchFilters) TotalGuests() int {
	return s.Adults + s.Children
}
