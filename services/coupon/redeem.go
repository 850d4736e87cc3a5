package coupon

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spacehive/models"
	"spacehive/utils"
)

// redeemMaxAttempts bounds the compare-and-swap retry loop. Losing a
// round means another redemption committed first, so each retry sees a
// fresh usage count.
const redeemMaxAttempts = 8

// Redeem applies a coupon with optimistic concurrency control. Every
// attempt re-reads the coupon, re-runs the full eligibility check
// against the freshly observed state, and then increments usage_count
// only if the count is still what was observed. A lost swap restarts
// the attempt, so concurrent redemptions of the same code serialize on
// the counter and can never collectively exceed usageLimit or a user's
// userUsageLimit.
func (s *DefaultCouponService) Redeem(ctx context.Context, code, userID string, orderAmount float64, partnerID string) (*Redemption, error) {
	for attempt := 1; attempt <= redeemMaxAttempts; attempt++ {
		coupon, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			if utils.IsCode(err, utils.CodeNotFound) {
				return nil, utils.InvalidInput("Invalid coupon code")
			}
			return nil, err
		}

		message, err := s.checkEligibility(ctx, coupon, orderAmount, userID, partnerID)
		if err != nil {
			return nil, err
		}
		if message != "" {
			return nil, eligibilityError(message)
		}

		discount := discountFor(coupon, orderAmount)
		redemption := &models.CouponRedemption{
			ID:             uuid.NewString(),
			CouponID:       coupon.ID,
			Code:           coupon.Code,
			UserID:         userID,
			OrderAmount:    orderAmount,
			DiscountAmount: discount,
		}

		swapped, err := s.repo.TryRedeem(ctx, redemption, coupon.UsageCount)
		if err != nil {
			return nil, err
		}
		if !swapped {
			s.logger.Debug("Coupon usage swap lost, retrying",
				zap.String("code", code),
				zap.Int("attempt", attempt))
			continue
		}
		coupon.UsageCount++

		s.logger.Info("Coupon redeemed",
			zap.String("code", code),
			zap.String("userId", userID),
			zap.Float64("discount", discount),
			zap.Int("usageCount", coupon.UsageCount))

		return &Redemption{
			Coupon:         coupon,
			DiscountAmount: discount,
			RedemptionID:   redemption.ID,
		}, nil
	}

	return nil, utils.Conflict("Coupon is being redeemed by too many requests, please retry")
}

// eligibilityError maps a validation message to the error kind the
// redemption path reports for it. Input-shaped failures are invalid
// input; everything else is an illegal coupon state.
func eligibilityError(message string) *utils.AppError {
	if strings.HasPrefix(message, "Minimum order value") || message == "Invalid coupon code" {
		return utils.InvalidInput(message)
	}
	return utils.InvalidStatus(message)
}
