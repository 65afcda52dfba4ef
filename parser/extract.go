package parser

import (
	"time"

	"bnb-search/models"
)

// Date selection modes carried in the raw form state
const (
	DateOptionDates    = "dates"
	DateOptionMonth    = "month"
	DateOptionFlexible = "flexible"
)

// RawSearchState is the loosely-typed selection state handed over by the UI
// layer. Every field may be absent.
type RawSearchState struct {
	Location *string

	DateOption string

	StartDate *time.Time
	EndDate   *time.Time

	// Month mode: a start-of-range date plus a duration on a circular dial
	StartOfRange   *time.Time
	DurationMonths *int

	Adults   *int
	Children *int
	Infants  *int
	Pets     *int

	FlexibleMonths  []string
	StayDuration    *string
	DateFlexibility *string
}

// ExtractSearchFilters normalizes raw, possibly-partial UI selection state
// into canonical SearchFilters. It never fails: a nil or malformed state
// yields the all-defaults value (empty location, nil dates, zero guests).
func ExtractSearchFilters(raw *RawSearchState) models.SearchFilters {
	var filters models.SearchFilters

	if raw == nil {
		return filters
	}

	if raw.Location != nil {
		filters.Location = *raw.Location
	}

	filters.CheckIn, filters.CheckOut = resolveDates(raw)

	filters.Adults = intOrZero(raw.Adults)
	filters.Children = intOrZero(raw.Children)
	filters.Infants = intOrZero(raw.Infants)
	filters.Pets = intOrZero(raw.Pets)

	if len(raw.FlexibleMonths) > 0 || raw.StayDuration != nil || raw.DateFlexibility != nil || raw.DateOption == DateOptionFlexible {
		flex := &models.FlexibleDates{
			Months:      raw.FlexibleMonths,
			Flexibility: "exact",
		}
		if flex.Months == nil {
			flex.Months = []string{}
		}
		if raw.StayDuration != nil {
			flex.StayDuration = *raw.StayDuration
		}
		if raw.DateFlexibility != nil && *raw.DateFlexibility != "" {
			flex.Flexibility = *raw.DateFlexibility
		}
		filters.Flexible = flex
	}

	return filters
}

// resolveDates applies the dateOption rules. In month mode an explicit
// start/end pair wins; otherwise the end date is derived from the start of
// the range plus the dial duration. A dial duration of 0 means the dial
// wrapped all the way around, i.e. 12 months, not zero.
func resolveDates(raw *RawSearchState) (*time.Time, *time.Time) {
	if raw.DateOption == DateOptionMonth {
		if raw.StartDate != nil && raw.EndDate != nil {
			return raw.StartDate, raw.EndDate
		}
		if raw.StartOfRange != nil && raw.DurationMonths != nil {
			months := *raw.DurationMonths
			if months == 0 {
				months = 12 // full wrap on the circular dial
			}
			end := raw.StartOfRange.AddDate(0, months, 0)
			return raw.StartOfRange, &end
		}
		return nil, nil
	}

	// Every other mode uses the explicit pair verbatim, either side nullable
	return raw.StartDate, raw.EndDate
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
