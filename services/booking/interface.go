package booking

import (
	"context"
	"time"

	"spacehive/models"
)

// CreateBookingInput carries everything needed to reserve a space.
type CreateBookingInput struct {
	UserID        string    `json:"userId"`
	SpaceID       string    `json:"spaceId" binding:"required"`
	StartDateTime time.Time `json:"startDateTime" binding:"required"`
	EndDateTime   time.Time `json:"endDateTime" binding:"required"`
	GuestCount    int       `json:"guestCount"`
	Notes         string    `json:"notes"`
	CouponCode    string    `json:"couponCode"`
}

// BookingService is the lifecycle manager for reservations. All state
// transitions of a booking flow through it or through the payment
// reactors.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	CheckAvailability(ctx context.Context, spaceID string, start, end time.Time, excludeBookingID string) (*models.AvailabilityResult, error)

	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, query models.BookingQuery) ([]models.Booking, int64, error)
	// ListPartnerBookings lists the bookings on the acting user's
	// partner account. Users without a partner account are rejected.
	ListPartnerBookings(ctx context.Context, actor models.Actor, query models.BookingQuery) ([]models.Booking, int64, error)
	LatestBookings(ctx context.Context, limit int64) ([]models.Booking, error)

	UpdateBooking(ctx context.Context, id string, patch models.BookingUpdate, actor models.Actor) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, id string, actor models.Actor) (*models.Booking, error)
	CancelBooking(ctx context.Context, id, reason string, actor models.Actor) (*models.Booking, error)
	CompleteBooking(ctx context.Context, id string, actor models.Actor) (*models.Booking, error)
	CanCancelBooking(ctx context.Context, id string, actor models.Actor) (bool, error)

	KycStatus(ctx context.Context, id string, actor models.Actor) (*models.BookingKycStatus, error)
	RequireKyc(ctx context.Context, id string, actor models.Actor) (*models.Booking, error)
}
