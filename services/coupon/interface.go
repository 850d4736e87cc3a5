package coupon

import (
	"context"

	"spacehive/models"
)

// Redemption is the result of a successful atomic coupon application.
type Redemption struct {
	Coupon         *models.Coupon
	DiscountAmount float64
	RedemptionID   string
}

// CouponService validates and atomically redeems coupons.
type CouponService interface {
	// Validate runs the read-only eligibility checks and computes the
	// discount. It never mutates state; an ineligible coupon yields
	// Valid=false with a message, not an error.
	Validate(ctx context.Context, code string, orderAmount float64, userID, partnerID string) (*models.CouponValidation, error)

	// Redeem is the atomic redemption path. It re-validates and
	// increments usage under mutual exclusion so concurrent calls can
	// never collectively exceed the coupon's limits. Any validation
	// failure leaves usageCount unchanged.
	Redeem(ctx context.Context, code, userID string, orderAmount float64, partnerID string) (*Redemption, error)

	// AttachBooking links a completed redemption to the booking it
	// paid for, once the booking id exists.
	AttachBooking(ctx context.Context, redemptionID, bookingID string) error

	Stats(ctx context.Context, couponID string) (*models.CouponStats, error)
	Activate(ctx context.Context, couponID string) error
	Deactivate(ctx context.Context, couponID string) error
}
