package filter

import (
	"strings"

	"bnb-search/models"
)

// Matcher applies the full set of category predicates to a listing
// collection. Matching is pure and deterministic: the input is never
// mutated, matching listings keep their input order, and a predicate that
// cannot be evaluated for a listing (missing field) resolves to the most
// permissive interpretation instead of excluding the listing.
type Matcher struct{}

// NewMatcher creates a new Matcher instance
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match returns the subset of listings satisfying every active category
// predicate. A category whose selection is empty or default is inactive and
// auto-passes.
func (m *Matcher) Match(listings []models.Listing, state models.FilterState, search models.SearchFilters) []models.Listing {
	matched := make([]models.Listing, 0, len(listings))

	for _, listing := range listings {
		if m.matches(listing, state, search) {
			matched = append(matched, listing)
		}
	}

	return matched
}

func (m *Matcher) matches(l models.Listing, state models.FilterState, search models.SearchFilters) bool {
	return matchesLocation(l, search.Location) &&
		matchesDates(l, search) &&
		matchesGuests(l, search) &&
		matchesPrice(l, state) &&
		matchesPlaceType(l, state.PlaceType) &&
		matchesRoomCounts(l, state) &&
		matchesEveryFeature(l.Amenities, state.Amenities) &&
		matchesRecommended(l, state.Recommended) &&
		matchesBookingOptions(l, state.BookingOpts) &&
		matchesPropertyType(l, state.PropertyTypes) &&
		matchesEveryFeature(l.AccessibilityFeatures, state.Accessibility) &&
		matchesHostLanguages(l, state.HostLanguages) &&
		matchesStandout(l, state.StandoutStays)
}

// matchesLocation does a case-insensitive substring match of the query
// against the listing's city, state, country, address and title, plus the
// reverse containment (listing city inside the query) and the US
// state-abbreviation table. Any single hit passes.
func matchesLocation(l models.Listing, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	for _, field := range []string{l.City, l.State, l.Country, l.Address, l.Title} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}

	// Reverse containment: "Austin, TX" query should still find an Austin
	// listing
	if city := strings.ToLower(l.City); city != "" && strings.Contains(q, city) {
		return true
	}

	// "Texas" in the query matches a listing whose state field is "TX"
	if code := strings.ToLower(strings.TrimSpace(l.State)); len(code) == 2 {
		if full, ok := usStateNames[code]; ok && strings.Contains(q, full) {
			return true
		}
	}

	return false
}

// matchesDates checks that the requested stay length fits this listing's
// stay bounds. Inactive unless both dates are set; a non-positive stay
// length cannot be evaluated and passes.
func matchesDates(l models.Listing, search models.SearchFilters) bool {
	if search.CheckIn == nil || search.CheckOut == nil {
		return true
	}

	nights := int(search.CheckOut.Sub(*search.CheckIn).Hours() / 24)
	if nights <= 0 {
		return true
	}

	minStay, maxStay := 1, 365
	if l.Availability != nil {
		if l.Availability.MinimumStay > 0 {
			minStay = l.Availability.MinimumStay
		}
		if l.Availability.MaximumStay > 0 {
			maxStay = l.Availability.MaximumStay
		}
	}

	return nights >= minStay && nights <= maxStay
}

// matchesGuests checks the requested guest mix against the listing's
// capacity. With a structured capacity sub-record each category is checked
// on its own; otherwise adults+children+infants are compared against the
// flat max-guest count (pets never count toward the total).
func matchesGuests(l models.Listing, search models.SearchFilters) bool {
	if search.Adults == 0 && search.Children == 0 && search.Infants == 0 && search.Pets == 0 {
		return true
	}

	if c := l.Capacity; c != nil {
		return search.Adults <= c.Adults &&
			search.Children <= c.Children &&
			search.Infants <= c.Infants &&
			search.Pets <= c.Pets
	}

	if l.MaxGuests == nil {
		return true
	}
	total := search.Adults + search.Children + search.Infants
	return total <= *l.MaxGuests
}

// matchesPrice applies the inclusive bounds. Each bound is inactive at or
// below zero; an inverted active range matches nothing but never panics.
func matchesPrice(l models.Listing, state models.FilterState) bool {
	if state.PriceMin > 0 && l.Price < state.PriceMin {
		return false
	}
	if state.PriceMax > 0 && l.Price > state.PriceMax {
		return false
	}
	return true
}

func matchesPlaceType(l models.Listing, place models.PlaceType) bool {
	if place == "" || place == models.PlaceAny {
		return true
	}
	roomType := strings.ToLower(l.RoomType)
	if roomType == "" {
		return true
	}

	switch place {
	case models.PlaceEntireHome:
		return strings.Contains(roomType, "entire") ||
			strings.Contains(roomType, "home") ||
			strings.Contains(roomType, "apartment")
	case models.PlaceRoom:
		return strings.Contains(roomType, "room") ||
			strings.Contains(roomType, "private")
	}
	return true
}

// matchesRoomCounts applies the "at least N" thresholds. Beds fall back to
// the bedroom count, bathrooms default to 1, a listing with neither field
// passes.
func matchesRoomCounts(l models.Listing, state models.FilterState) bool {
	if state.Bedrooms != models.CountAny {
		if l.Bedrooms != nil && *l.Bedrooms < float64(state.Bedrooms) {
			return false
		}
	}

	if state.Beds != models.CountAny {
		beds := l.Beds
		if beds == nil {
			beds = l.Bedrooms
		}
		if beds != nil && *beds < float64(state.Beds) {
			return false
		}
	}

	if state.Bathrooms != models.CountAny {
		bathrooms := 1.0
		if l.Bathrooms != nil {
			bathrooms = *l.Bathrooms
		}
		if bathrooms < float64(state.Bathrooms) {
			return false
		}
	}

	return true
}

// matchesEveryFeature requires every selected item to be present (AND).
// Used for both amenities and accessibility features.
func matchesEveryFeature(features []string, selected []string) bool {
	for _, want := range selected {
		if want = strings.TrimSpace(want); want == "" {
			continue
		}
		if !hasFeature(features, want) {
			return false
		}
	}
	return true
}

// hasFeature does case-insensitive substring containment of the wanted item
// (expanded through the synonym table) against the listing's raw feature
// list.
func hasFeature(features []string, want string) bool {
	aliases := featureAliases(want)
	for _, feature := range features {
		f := strings.ToLower(strings.TrimSpace(feature))
		if f == "" {
			continue
		}
		for _, alias := range aliases {
			if strings.Contains(f, alias) || strings.Contains(alias, f) {
				return true
			}
		}
	}
	return false
}

// featureAliases expands a selected item through amenitySynonyms in both
// directions: a canonical key pulls in its synonyms, a synonym pulls in its
// key and siblings.
func featureAliases(want string) []string {
	w := strings.ToLower(strings.TrimSpace(want))
	aliases := []string{w}

	if synonyms, ok := amenitySynonyms[w]; ok {
		aliases = append(aliases, synonyms...)
	}
	for key, synonyms := range amenitySynonyms {
		if key == w {
			continue
		}
		for _, s := range synonyms {
			if s == w {
				aliases = append(aliases, key)
				aliases = append(aliases, synonyms...)
				break
			}
		}
	}

	return aliases
}

// matchesRecommended requires every selected quick-filter flag to hold (AND),
// reading flattened booleans first and amenity text as backup.
func matchesRecommended(l models.Listing, selected []string) bool {
	for _, item := range selected {
		switch strings.ToLower(strings.TrimSpace(item)) {
		case "":
			continue
		case RecommendedParking:
			if !l.FreeParking && !hasFeature(l.Amenities, "parking") {
				return false
			}
		case RecommendedPets:
			if !allowsPets(l) {
				return false
			}
		case RecommendedSelfCheckIn:
			if !selfCheckIn(l) {
				return false
			}
		case RecommendedTV:
			if !l.HasTV && !hasFeature(l.Amenities, "tv") {
				return false
			}
		}
	}
	return true
}

// matchesBookingOptions requires every selected option to be true (AND),
// read from the nested booking-options sub-record when present and the
// flattened fields otherwise.
func matchesBookingOptions(l models.Listing, selected []string) bool {
	for _, item := range selected {
		switch strings.ToLower(strings.TrimSpace(item)) {
		case "":
			continue
		case OptionInstantBook:
			if !instantBook(l) {
				return false
			}
		case OptionSelfCheckIn:
			if !selfCheckIn(l) {
				return false
			}
		case OptionAllowsPets:
			if !allowsPets(l) {
				return false
			}
		}
	}
	return true
}

func instantBook(l models.Listing) bool {
	if l.Options != nil {
		return l.Options.InstantBook
	}
	if l.Availability != nil && l.Availability.InstantBook {
		return true
	}
	return l.InstantBook
}

func selfCheckIn(l models.Listing) bool {
	if l.Options != nil {
		return l.Options.SelfCheckIn
	}
	return l.SelfCheckIn
}

func allowsPets(l models.Listing) bool {
	if l.Options != nil {
		return l.Options.AllowsPets
	}
	if l.Capacity != nil && l.Capacity.Pets > 0 {
		return true
	}
	return l.AllowsPets
}

// matchesPropertyType passes when the listing classifies into any selected
// bucket (OR) -- the one category with OR semantics besides host languages.
func matchesPropertyType(l models.Listing, selected []string) bool {
	if len(selected) == 0 {
		return true
	}

	raw := strings.ToLower(l.PropertyType)
	if raw == "" {
		raw = strings.ToLower(l.RoomType)
	}
	if raw == "" {
		return true
	}

	for _, bucket := range selected {
		bucket = strings.ToLower(strings.TrimSpace(bucket))
		for _, fragment := range propertyTypeBuckets[bucket] {
			if strings.Contains(raw, fragment) {
				return true
			}
		}
	}
	return false
}

// matchesHostLanguages passes when the host speaks any selected language (OR)
func matchesHostLanguages(l models.Listing, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if l.Host == nil || len(l.Host.Languages) == 0 {
		return true
	}

	for _, want := range selected {
		w := strings.ToLower(strings.TrimSpace(want))
		if w == "" {
			continue
		}
		for _, spoken := range l.Host.Languages {
			if strings.Contains(strings.ToLower(spoken), w) {
				return true
			}
		}
	}
	return false
}

// matchesStandout requires every selected badge to hold (AND)
func matchesStandout(l models.Listing, selected []string) bool {
	for _, tag := range selected {
		switch strings.ToLower(strings.TrimSpace(tag)) {
		case "":
			continue
		case StandoutGuestFavorite:
			if !l.IsGuestFavorite && l.Rating < guestFavoriteMinRating {
				return false
			}
		case StandoutLuxe:
			if l.Price < luxeMinPrice || l.Rating < luxeMinRating {
				return false
			}
		}
	}
	return true
}
