// Package format renders counts and active search criteria as user-facing
// strings.
package format

import (
	"fmt"
	"strings"

	"bnb-search/models"
)

// Counts at or above this are rounded down to the nearest hundred and shown
// with a trailing plus
const roundingThreshold = 1000

// FormatCount renders a result count as a call-to-action label
func FormatCount(n int) string {
	switch {
	case n <= 0:
		return "No places found"
	case n == 1:
		return "Show 1 place"
	case n >= roundingThreshold:
		return fmt.Sprintf("Show %d+ places", n/100*100)
	default:
		return fmt.Sprintf("Show %d places", n)
	}
}

// Summarize joins the present search criteria (location, date range, guest
// phrase, pet phrase) with a bullet separator. With nothing selected it
// falls back to "All properties".
func Summarize(search models.SearchFilters) string {
	var parts []string

	if loc := strings.TrimSpace(search.Location); loc != "" {
		parts = append(parts, loc)
	}

	if search.CheckIn != nil && search.CheckOut != nil {
		parts = append(parts, fmt.Sprintf("%s – %s",
			search.CheckIn.Format("Jan 2"), search.CheckOut.Format("Jan 2")))
	}

	if guests := search.TotalGuests(); guests > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", guests, plural(guests, "guest")))
	}

	if search.Pets > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", search.Pets, plural(search.Pets, "pet")))
	}

	if len(parts) == 0 {
		return "All properties"
	}

	return strings.Join(parts, " • ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
