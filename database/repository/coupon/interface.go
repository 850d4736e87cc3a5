package couponRepo

import (
	"context"

	"spacehive/models"
)

// CouponRepository defines the data access surface for coupons and
// their redemption records.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByID(ctx context.Context, id string) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	SetStatus(ctx context.Context, id, status string) error

	// TryRedeem is the compare-and-swap primitive behind atomic
	// redemption. In a single transaction it increments usage_count,
	// conditioned on the stored count still equalling observedCount,
	// and records the redemption. A false return means another
	// redemption won the race: nothing was written and the caller must
	// re-validate against fresh state. Because the increment and the
	// record commit together, a reader that observes the new count
	// also observes the redemption record behind it.
	TryRedeem(ctx context.Context, redemption *models.CouponRedemption, observedCount int) (bool, error)

	AttachBooking(ctx context.Context, redemptionID, bookingID string) error
	CountUserRedemptions(ctx context.Context, couponID, userID string) (int, error)
	ListRedemptions(ctx context.Context, couponID string) ([]models.CouponRedemption, error)
}
