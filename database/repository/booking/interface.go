package bookingRepo

import (
	"context"
	"time"

	"spacehive/models"
)

// BookingRepository defines the data access surface for bookings.
type BookingRepository interface {
	// CreateIfAvailable inserts the booking only if no non-cancelled
	// booking overlaps its interval on the same space. The overlap
	// check and the insert run under a per-space advisory lock inside
	// a single transaction, so two concurrent creations can never both
	// commit for overlapping slots. On a conflict the overlapping
	// bookings are returned.
	CreateIfAvailable(ctx context.Context, booking *models.Booking) ([]models.Booking, error)

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error

	// FindConflicting returns all bookings for the space whose
	// [start, end) interval overlaps the requested one, excluding
	// cancelled bookings and, when excludeID is non-empty, the booking
	// with that id.
	FindConflicting(ctx context.Context, spaceID string, start, end time.Time, excludeID string) ([]models.Booking, error)

	List(ctx context.Context, query models.BookingQuery) ([]models.Booking, int64, error)
	Latest(ctx context.Context, limit int64) ([]models.Booking, error)
}
