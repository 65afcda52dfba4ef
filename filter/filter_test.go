package filter

import (
	"testing"
	"time"

	"bnb-search/models"
)

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }

func sampleListings() []models.Listing {
	return []models.Listing{
		{
			ID:           "austin-house",
			Title:        "Sunny family house",
			City:         "Austin",
			State:        "TX",
			Country:      "United States",
			Price:        180,
			PropertyType: "House",
			RoomType:     "Entire home",
			Bedrooms:     fptr(3),
			Beds:         fptr(4),
			Bathrooms:    fptr(2),
			MaxGuests:    iptr(6),
			Amenities:    []string{"Wifi", "Air conditioning", "Free parking on premises", "Kitchen"},
			Rating:       4.95,
			FreeParking:  true,
		},
		{
			ID:           "paris-room",
			Title:        "Cozy room near the Louvre",
			City:         "Paris",
			Country:      "France",
			Price:        85,
			PropertyType: "Apartment",
			RoomType:     "Private room",
			Bedrooms:     fptr(1),
			Beds:         fptr(1),
			MaxGuests:    iptr(2),
			Amenities:    []string{"Wifi", "Heating"},
			Host:         &models.Host{Languages: []string{"French", "English"}},
			Rating:       4.7,
		},
		{
			ID:              "miami-luxe",
			Title:           "Beachfront villa with pool",
			City:            "Miami",
			State:           "FL",
			Country:         "United States",
			Price:           650,
			PropertyType:    "Villa",
			RoomType:        "Entire home",
			Bedrooms:        fptr(5),
			Beds:            fptr(6),
			Bathrooms:       fptr(4),
			MaxGuests:       iptr(10),
			Amenities:       []string{"Pool", "Hot tub", "Wifi", "TV", "Gym"},
			Rating:          4.9,
			IsGuestFavorite: true,
			HasTV:           true,
		},
	}
}

func idsOf(listings []models.Listing) []string {
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	return ids
}

func sameIDs(got []models.Listing, want ...string) bool {
	ids := idsOf(got)
	if len(ids) != len(want) {
		return false
	}
	for i := range ids {
		if ids[i] != want[i] {
			return false
		}
	}
	return true
}

func TestMatchDefaultStatePassesAll(t *testing.T) {
	listings := sampleListings()
	matcher := NewMatcher()

	matched := matcher.Match(listings, models.DefaultFilterState(), models.SearchFilters{})

	if !sameIDs(matched, "austin-house", "paris-room", "miami-luxe") {
		t.Errorf("default state should match all listings in order, got %v", idsOf(matched))
	}
}

func TestMatchIsIdempotent(t *testing.T) {
	matcher := NewMatcher()
	state := models.DefaultFilterState()
	state.PriceMax = 200

	once := matcher.Match(sampleListings(), state, models.SearchFilters{})
	twice := matcher.Match(once, state, models.SearchFilters{})

	if len(once) != len(twice) {
		t.Errorf("matching a matched set changed it: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("listing %d changed: %s -> %s", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestMatchesLocation(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		listing models.Listing
		want    bool
	}{
		{"empty query passes", "", models.Listing{City: "Austin"}, true},
		{"city substring", "austin", models.Listing{City: "Austin"}, true},
		{"query with state suffix", "austin, tx", models.Listing{City: "Austin", State: "TX"}, true},
		{"state full name vs abbreviation", "houses in texas", models.Listing{City: "Austin", State: "TX"}, true},
		{"country match", "france", models.Listing{City: "Paris", Country: "France"}, true},
		{"title match", "louvre", models.Listing{Title: "Cozy room near the Louvre"}, true},
		{"no field matches", "berlin", models.Listing{City: "Paris", Country: "France"}, false},
		{"listing with no location fields", "berlin", models.Listing{}, false},
		{"case insensitive", "PARIS", models.Listing{City: "paris"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesLocation(tt.listing, tt.query); got != tt.want {
				t.Errorf("matchesLocation(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestMatchesPriceBoundsInclusive(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		min   float64
		max   float64
		want  bool
	}{
		{"inside range", 100, 50, 150, true},
		{"exactly min", 50, 50, 150, true},
		{"exactly max", 150, 50, 150, true},
		{"below min", 49.99, 50, 150, false},
		{"above max", 150.01, 50, 150, false},
		{"min only", 100, 50, 0, true},
		{"max only", 100, 0, 150, true},
		{"both inactive", 100, 0, 0, true},
		{"inverted range matches nothing", 100, 150, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := models.FilterState{PriceMin: tt.min, PriceMax: tt.max, Bedrooms: models.CountAny, Beds: models.CountAny, Bathrooms: models.CountAny}
			got := matchesPrice(models.Listing{Price: tt.price}, state)
			if got != tt.want {
				t.Errorf("matchesPrice(price=%v, min=%v, max=%v) = %v, want %v", tt.price, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestMatchesPlaceType(t *testing.T) {
	tests := []struct {
		name     string
		roomType string
		place    models.PlaceType
		want     bool
	}{
		{"any passes everything", "Private room", models.PlaceAny, true},
		{"empty room type passes", "", models.PlaceRoom, true},
		{"entire home", "Entire home", models.PlaceEntireHome, true},
		{"entire rejects room", "Private room", models.PlaceEntireHome, false},
		{"room matches private", "Private room", models.PlaceRoom, true},
		{"room rejects entire home", "Entire home", models.PlaceRoom, false},
		{"apartment counts as entire", "Entire apartment", models.PlaceEntireHome, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesPlaceType(models.Listing{RoomType: tt.roomType}, tt.place)
			if got != tt.want {
				t.Errorf("matchesPlaceType(%q, %q) = %v, want %v", tt.roomType, tt.place, got, tt.want)
			}
		})
	}
}

func TestMatchesRoomCounts(t *testing.T) {
	tests := []struct {
		name    string
		listing models.Listing
		state   models.FilterState
		want    bool
	}{
		{
			"all any passes",
			models.Listing{},
			models.FilterState{Bedrooms: models.CountAny, Beds: models.CountAny, Bathrooms: models.CountAny},
			true,
		},
		{
			"at least semantics",
			models.Listing{Bedrooms: fptr(3), Beds: fptr(3), Bathrooms: fptr(2)},
			models.FilterState{Bedrooms: 2, Beds: models.CountAny, Bathrooms: models.CountAny},
			true,
		},
		{
			"too few bedrooms",
			models.Listing{Bedrooms: fptr(1)},
			models.FilterState{Bedrooms: 2, Beds: models.CountAny, Bathrooms: models.CountAny},
			false,
		},
		{
			"nil bedrooms passes",
			models.Listing{},
			models.FilterState{Bedrooms: 2, Beds: models.CountAny, Bathrooms: models.CountAny},
			true,
		},
		{
			"beds fall back to bedrooms",
			models.Listing{Bedrooms: fptr(3)},
			models.FilterState{Bedrooms: models.CountAny, Beds: 3, Bathrooms: models.CountAny},
			true,
		},
		{
			"beds fallback fails threshold",
			models.Listing{Bedrooms: fptr(2)},
			models.FilterState{Bedrooms: models.CountAny, Beds: 3, Bathrooms: models.CountAny},
			false,
		},
		{
			"bathrooms default to one",
			models.Listing{},
			models.FilterState{Bedrooms: models.CountAny, Beds: models.CountAny, Bathrooms: 1},
			true,
		},
		{
			"bathrooms default fails two",
			models.Listing{},
			models.FilterState{Bedrooms: models.CountAny, Beds: models.CountAny, Bathrooms: 2},
			false,
		},
		{
			"half bathrooms compare as floats",
			models.Listing{Bathrooms: fptr(1.5)},
			models.FilterState{Bedrooms: models.CountAny, Beds: models.CountAny, Bathrooms: 1},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesRoomCounts(tt.listing, tt.state); got != tt.want {
				t.Errorf("matchesRoomCounts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAmenitiesRequireAll(t *testing.T) {
	listing := models.Listing{Amenities: []string{"Wifi", "Air conditioning", "Kitchen"}}

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"none selected", nil, true},
		{"single present", []string{"wifi"}, true},
		{"all present", []string{"wifi", "kitchen"}, true},
		{"one missing fails", []string{"wifi", "pool"}, false},
		{"synonym ac matches air conditioning", []string{"ac"}, true},
		{"canonical matches synonym direction", []string{"air conditioning"}, true},
		{"blank entries ignored", []string{"", "wifi"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesEveryFeature(listing.Amenities, tt.selected); got != tt.want {
				t.Errorf("matchesEveryFeature(%v) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestPropertyTypeBucketsAreOr(t *testing.T) {
	matcher := NewMatcher()
	state := models.DefaultFilterState()
	state.PropertyTypes = []string{BucketHouse, BucketApartment}

	matched := matcher.Match(sampleListings(), state, models.SearchFilters{})

	// House and apartment both pass; the villa classifies into the house bucket
	if !sameIDs(matched, "austin-house", "paris-room", "miami-luxe") {
		t.Errorf("OR buckets should keep all three, got %v", idsOf(matched))
	}
}

func TestMatchesPropertyTypeEmptyRawPasses(t *testing.T) {
	if !matchesPropertyType(models.Listing{}, []string{BucketHotel}) {
		t.Error("listing without a property type should pass any bucket selection")
	}
}

func TestMatchesGuests(t *testing.T) {
	tests := []struct {
		name    string
		listing models.Listing
		search  models.SearchFilters
		want    bool
	}{
		{"no guests requested", models.Listing{MaxGuests: iptr(2)}, models.SearchFilters{}, true},
		{"within flat capacity", models.Listing{MaxGuests: iptr(4)}, models.SearchFilters{Adults: 2, Children: 2}, true},
		{"over flat capacity", models.Listing{MaxGuests: iptr(4)}, models.SearchFilters{Adults: 3, Children: 2}, false},
		{"infants count toward flat total", models.Listing{MaxGuests: iptr(4)}, models.SearchFilters{Adults: 2, Children: 2, Infants: 1}, false},
		{"pets never count toward total", models.Listing{MaxGuests: iptr(2)}, models.SearchFilters{Adults: 2, Pets: 3}, true},
		{"missing capacity passes", models.Listing{}, models.SearchFilters{Adults: 10}, true},
		{
			"structured capacity per category",
			models.Listing{Capacity: &models.GuestCapacity{Adults: 4, Children: 2, Infants: 1, Pets: 1}},
			models.SearchFilters{Adults: 3, Children: 2, Infants: 1, Pets: 1},
			true,
		},
		{
			"structured capacity rejects per category",
			models.Listing{Capacity: &models.GuestCapacity{Adults: 4, Children: 1}},
			models.SearchFilters{Adults: 2, Children: 2},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesGuests(tt.listing, tt.search); got != tt.want {
				t.Errorf("matchesGuests() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesDates(t *testing.T) {
	day := func(d int) *time.Time {
		t := time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name    string
		listing models.Listing
		search  models.SearchFilters
		want    bool
	}{
		{"no dates passes", models.Listing{}, models.SearchFilters{}, true},
		{"only check-in passes", models.Listing{}, models.SearchFilters{CheckIn: day(1)}, true},
		{
			"within default bounds",
			models.Listing{},
			models.SearchFilters{CheckIn: day(1), CheckOut: day(5)},
			true,
		},
		{
			"below minimum stay",
			models.Listing{Availability: &models.AvailabilitySettings{MinimumStay: 5}},
			models.SearchFilters{CheckIn: day(1), CheckOut: day(4)},
			false,
		},
		{
			"exactly minimum stay",
			models.Listing{Availability: &models.AvailabilitySettings{MinimumStay: 3}},
			models.SearchFilters{CheckIn: day(1), CheckOut: day(4)},
			true,
		},
		{
			"above maximum stay",
			models.Listing{Availability: &models.AvailabilitySettings{MaximumStay: 3}},
			models.SearchFilters{CheckIn: day(1), CheckOut: day(10)},
			false,
		},
		{
			"inverted range passes as unevaluable",
			models.Listing{Availability: &models.AvailabilitySettings{MinimumStay: 5}},
			models.SearchFilters{CheckIn: day(10), CheckOut: day(1)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesDates(tt.listing, tt.search); got != tt.want {
				t.Errorf("matchesDates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesBookingOptions(t *testing.T) {
	tests := []struct {
		name     string
		listing  models.Listing
		selected []string
		want     bool
	}{
		{"none selected", models.Listing{}, nil, true},
		{"nested options win", models.Listing{Options: &models.BookingOptions{InstantBook: true}, InstantBook: false}, []string{OptionInstantBook}, true},
		{"nested options win negative", models.Listing{Options: &models.BookingOptions{InstantBook: false}, InstantBook: true}, []string{OptionInstantBook}, false},
		{"flat fallback", models.Listing{SelfCheckIn: true}, []string{OptionSelfCheckIn}, true},
		{"pets via capacity", models.Listing{Capacity: &models.GuestCapacity{Pets: 2}}, []string{OptionAllowsPets}, true},
		{"all selected must hold", models.Listing{InstantBook: true}, []string{OptionInstantBook, OptionAllowsPets}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesBookingOptions(tt.listing, tt.selected); got != tt.want {
				t.Errorf("matchesBookingOptions(%v) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestMatchesStandout(t *testing.T) {
	tests := []struct {
		name     string
		listing  models.Listing
		selected []string
		want     bool
	}{
		{"guest favorite flag", models.Listing{IsGuestFavorite: true}, []string{StandoutGuestFavorite}, true},
		{"guest favorite by rating", models.Listing{Rating: 4.95}, []string{StandoutGuestFavorite}, true},
		{"not a guest favorite", models.Listing{Rating: 4.5}, []string{StandoutGuestFavorite}, false},
		{"luxe needs price and rating", models.Listing{Price: 650, Rating: 4.9}, []string{StandoutLuxe}, true},
		{"cheap highly rated is not luxe", models.Listing{Price: 120, Rating: 5.0}, []string{StandoutLuxe}, false},
		{"expensive low rated is not luxe", models.Listing{Price: 650, Rating: 4.2}, []string{StandoutLuxe}, false},
		{"both badges AND", models.Listing{Price: 650, Rating: 4.9, IsGuestFavorite: true}, []string{StandoutGuestFavorite, StandoutLuxe}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesStandout(tt.listing, tt.selected); got != tt.want {
				t.Errorf("matchesStandout(%v) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestMatchesHostLanguages(t *testing.T) {
	tests := []struct {
		name     string
		listing  models.Listing
		selected []string
		want     bool
	}{
		{"none selected", models.Listing{}, nil, true},
		{"nil host passes", models.Listing{}, []string{"french"}, true},
		{"any selected language passes", models.Listing{Host: &models.Host{Languages: []string{"French"}}}, []string{"german", "french"}, true},
		{"no overlap fails", models.Listing{Host: &models.Host{Languages: []string{"French"}}}, []string{"german"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesHostLanguages(tt.listing, tt.selected); got != tt.want {
				t.Errorf("matchesHostLanguages(%v) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestMatchDoesNotMutateInput(t *testing.T) {
	listings := sampleListings()
	before := idsOf(listings)

	state := models.DefaultFilterState()
	state.PriceMax = 100
	NewMatcher().Match(listings, state, models.SearchFilters{})

	after := idsOf(listings)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input slice mutated at %d: %s -> %s", i, before[i], after[i])
		}
	}
}
