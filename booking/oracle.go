package booking

import (
	"context"
	"log"
	"time"
)

// AvailabilityResult is the answer an Availability Oracle gives for a date
// range
type AvailabilityResult struct {
	Available bool
	Message   string
}

// AvailabilityOracle answers whether a specific date range is bookable for a
// listing. Implementations are remote services and treated as untrusted and
// unreliable; callers own debouncing and timeouts around the call.
type AvailabilityOracle interface {
	CheckAvailability(ctx context.Context, start, end time.Time, listingID string) (AvailabilityResult, error)
}

const unavailableMessage = "Unable to check availability"

// CheckAvailability consults the oracle and fails closed: any error, panic
// or cancellation becomes a terminal not-available result instead of
// propagating. Pass a cancellable ctx to discard stale in-flight checks when
// the user keeps changing dates.
func CheckAvailability(ctx context.Context, oracle AvailabilityOracle, start, end time.Time, listingID string) (result AvailabilityResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: Availability oracle panicked for listing %s: %v\n", listingID, r)
			result = AvailabilityResult{Available: false, Message: unavailableMessage}
		}
	}()

	if oracle == nil {
		return AvailabilityResult{Available: false, Message: unavailableMessage}
	}

	res, err := oracle.CheckAvailability(ctx, start, end, listingID)
	if err != nil {
		log.Printf("Warning: Availability check failed for listing %s: %v\n", listingID, err)
		return AvailabilityResult{Available: false, Message: unavailableMessage}
	}

	return res
}
