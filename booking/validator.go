package booking

import (
	"fmt"
	"time"

	"bnb-search/models"
)

// Hard per-category guest ceilings that apply regardless of the listing
const (
	MaxAdults   = 16
	MaxChildren = 5
	MaxInfants  = 5
	MaxPets     = 5
)

// Stays at or beyond this many nights trigger a host-approval warning
const longStayNights = 14

// Input is a candidate stay to validate against a listing's constraints
type Input struct {
	CheckIn  *time.Time
	CheckOut *time.Time

	Adults   int
	Children int
	Infants  int
	Pets     int

	Constraints models.BookingConstraints
}

// ValidateBooking runs the date and guest validators and concatenates their
// error and warning lists. Violations are reported as data, never as errors,
// so a caller can render every problem at once.
func ValidateBooking(in Input) models.ValidationResult {
	dates := ValidateDates(in.CheckIn, in.CheckOut, in.Constraints)
	guests := ValidateGuests(in.Adults, in.Children, in.Infants, in.Pets, in.Constraints)

	result := models.ValidationResult{
		Errors:   append(dates.Errors, guests.Errors...),
		Warnings: append(dates.Warnings, guests.Warnings...),
	}
	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateDates checks a candidate date range against the listing's stay
// bounds, advance-booking window and blocked dates. Every independent
// violation is reported; a missing date short-circuits the remaining checks.
func ValidateDates(start, end *time.Time, c models.BookingConstraints) models.ValidationResult {
	var result models.ValidationResult

	if start == nil {
		result.Errors = append(result.Errors, "Please select a check-in date")
	}
	if end == nil {
		result.Errors = append(result.Errors, "Please select a check-out date")
	}
	if start == nil || end == nil {
		return finish(result)
	}

	today := toDay(time.Now())
	checkIn := toDay(*start)
	checkOut := toDay(*end)

	if checkIn.Before(today) {
		result.Errors = append(result.Errors, "Check-in date cannot be in the past")
	}

	if !checkOut.After(checkIn) {
		result.Errors = append(result.Errors, "Check-out date must be after the check-in date")
	}

	nights := daysBetween(checkIn, checkOut)
	if nights > 0 {
		if nights < c.MinStay {
			result.Errors = append(result.Errors, fmt.Sprintf("Minimum stay is %d %s", c.MinStay, nightWord(c.MinStay)))
		}
		if c.MaxStay > 0 && nights > c.MaxStay {
			result.Errors = append(result.Errors, fmt.Sprintf("Maximum stay is %d %s", c.MaxStay, nightWord(c.MaxStay)))
		}
	}

	if c.MaxAdvanceBooking > 0 && daysBetween(today, checkIn) > c.MaxAdvanceBooking {
		result.Errors = append(result.Errors, fmt.Sprintf("Bookings can be made at most %d days in advance", c.MaxAdvanceBooking))
	}

	// One generic error covers every blocked day; stop at the first hit.
	// Boundaries compare by calendar day, the interior by ordering.
	inDay, outDay := checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02")
	for _, blocked := range c.BlockedDates {
		day := toDay(blocked)
		ds := day.Format("2006-01-02")
		if ds == inDay || ds == outDay || (day.After(checkIn) && day.Before(checkOut)) {
			result.Errors = append(result.Errors, "Selected dates include unavailable periods")
			break
		}
	}

	if nights >= longStayNights {
		result.Warnings = append(result.Warnings, "Stays of two weeks or longer may require special host approval")
	}

	return finish(result)
}

// ValidateGuests checks a guest mix against the listing's capacity and pet
// policy plus the hard per-category ceilings. Infants are excluded from the
// capacity sum.
func ValidateGuests(adults, children, infants, pets int, c models.BookingConstraints) models.ValidationResult {
	var result models.ValidationResult

	if adults < 1 {
		result.Errors = append(result.Errors, "Booking requires at least one adult")
	}

	total := adults + children
	if c.MaxGuests > 0 && total > c.MaxGuests {
		result.Errors = append(result.Errors, fmt.Sprintf("This place accommodates a maximum of %d %s", c.MaxGuests, guestWord(c.MaxGuests)))
	}

	if pets > 0 && !c.AllowsPets {
		result.Errors = append(result.Errors, "Pets are not allowed at this place")
	}

	if adults > MaxAdults {
		result.Errors = append(result.Errors, fmt.Sprintf("Maximum %d adults per booking", MaxAdults))
	}
	if children > MaxChildren {
		result.Errors = append(result.Errors, fmt.Sprintf("Maximum %d children per booking", MaxChildren))
	}
	if infants > MaxInfants {
		result.Errors = append(result.Errors, fmt.Sprintf("Maximum %d infants per booking", MaxInfants))
	}
	if pets > MaxPets {
		result.Errors = append(result.Errors, fmt.Sprintf("Maximum %d pets per booking", MaxPets))
	}

	if c.MaxGuests > 0 && total == c.MaxGuests {
		result.Warnings = append(result.Warnings, "You are booking at full capacity")
		if infants > 0 {
			result.Warnings = append(result.Warnings, "Infants may need their own sleeping arrangements at full capacity")
		}
	}

	return finish(result)
}

func finish(r models.ValidationResult) models.ValidationResult {
	r.Valid = len(r.Errors) == 0
	return r
}

// toDay truncates a timestamp to its calendar day in local time
func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func nightWord(n int) string {
	if n == 1 {
		return "night"
	}
	return "nights"
}

func guestWord(n int) string {
	if n == 1 {
		return "guest"
	}
	return "guests"
}
