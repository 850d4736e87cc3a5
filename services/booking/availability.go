package booking

import (
	"context"
	"time"

	"spacehive/models"
	"spacehive/utils"
)

// CheckAvailability reports whether [start, end) is free on the space.
// It is a read-only probe; the authoritative check happens again under
// the space lock when a booking is inserted.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, spaceID string, start, end time.Time, excludeBookingID string) (*models.AvailabilityResult, error) {
	if spaceID == "" {
		return nil, utils.InvalidInput("spaceId is required")
	}
	if !start.Before(end) {
		return nil, utils.InvalidInput("Start date and time must be before end date and time")
	}

	conflicts, err := s.bookings.FindConflicting(ctx, spaceID, start, end, excludeBookingID)
	if err != nil {
		return nil, err
	}
	return &models.AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
