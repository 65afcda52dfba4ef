package filter

// Heuristic lookup tables for the fuzzy match paths. These are intentionally
// approximate and not locale-aware; widening or tightening them changes
// observable filtering behavior, so any change needs product sign-off.

// usStateNames maps two-letter US state codes to full state names. A query
// containing the full name matches a listing whose state field carries the
// abbreviation.
var usStateNames = map[string]string{
	"al": "alabama",
	"ak": "alaska",
	"az": "arizona",
	"ar": "arkansas",
	"ca": "california",
	"co": "colorado",
	"ct": "connecticut",
	"de": "delaware",
	"fl": "florida",
	"ga": "georgia",
	"hi": "hawaii",
	"id": "idaho",
	"il": "illinois",
	"in": "indiana",
	"ia": "iowa",
	"ks": "kansas",
	"ky": "kentucky",
	"la": "louisiana",
	"me": "maine",
	"md": "maryland",
	"ma": "massachusetts",
	"mi": "michigan",
	"mn": "minnesota",
	"ms": "mississippi",
	"mo": "missouri",
	"mt": "montana",
	"ne": "nebraska",
	"nv": "nevada",
	"nh": "new hampshire",
	"nj": "new jersey",
	"nm": "new mexico",
	"ny": "new york",
	"nc": "north carolina",
	"nd": "north dakota",
	"oh": "ohio",
	"ok": "oklahoma",
	"or": "oregon",
	"pa": "pennsylvania",
	"ri": "rhode island",
	"sc": "south carolina",
	"sd": "south dakota",
	"tn": "tennessee",
	"tx": "texas",
	"ut": "utah",
	"vt": "vermont",
	"va": "virginia",
	"wa": "washington",
	"wv": "west virginia",
	"wi": "wisconsin",
	"wy": "wyoming",
}

// amenitySynonyms maps a canonical amenity to the spellings listings use for
// it. Matching is substring containment in both directions, so "ac" finds
// "Air conditioning" and vice versa.
var amenitySynonyms = map[string][]string{
	"air conditioning": {"ac", "a/c", "aircon", "central air"},
	"wifi":             {"wi-fi", "wireless internet", "internet"},
	"tv":               {"television", "cable tv", "smart tv"},
	"washer":           {"washing machine", "laundry"},
	"parking":          {"free parking", "parking on premises", "garage"},
	"pool":             {"swimming pool", "outdoor pool", "indoor pool"},
	"hot tub":          {"jacuzzi", "whirlpool"},
	"kitchen":          {"kitchenette", "full kitchen"},
	"gym":              {"fitness", "exercise equipment", "workout"},
	"heating":          {"central heating", "radiant heating"},
	"dryer":            {"tumble dryer"},
	"crib":             {"cot", "pack n play"},
}

// Canonical property-type buckets resolved from the raw property-type string
const (
	BucketHouse      = "house"
	BucketApartment  = "apartment"
	BucketGuesthouse = "guesthouse"
	BucketHotel      = "hotel"
)

// propertyTypeBuckets maps each bucket to the raw-string fragments that
// classify into it
var propertyTypeBuckets = map[string][]string{
	BucketHouse:      {"house", "villa", "cottage", "cabin", "bungalow", "townhouse", "chalet", "farm stay", "barn"},
	BucketApartment:  {"apartment", "flat", "condo", "loft", "studio", "unit"},
	BucketGuesthouse: {"guesthouse", "guest house", "guest suite", "tiny home", "in-law"},
	BucketHotel:      {"hotel", "boutique", "aparthotel", "resort", "hostel", "serviced"},
}

// Fixed vocabularies for the quick-filter and booking-option categories
const (
	RecommendedParking     = "parking"
	RecommendedPets        = "pets"
	RecommendedSelfCheckIn = "self-check-in"
	RecommendedTV          = "tv"

	OptionInstantBook = "instant-book"
	OptionSelfCheckIn = "self-check-in"
	OptionAllowsPets  = "allows-pets"
)

// Standout-stay tags
const (
	StandoutGuestFavorite = "guest-favorite"
	StandoutLuxe          = "luxe"
)

// Thresholds behind the standout-stay badges
const (
	guestFavoriteMinRating = 4.9
	luxeMinRating          = 4.8
	luxeMinPrice           = 300
)
