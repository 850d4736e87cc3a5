package coupon

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	couponRepo "spacehive/database/repository/coupon"
	"spacehive/models"
	"spacehive/utils"
)

type DefaultCouponService struct {
	repo   couponRepo.CouponRepository
	logger *zap.Logger
}

func NewDefaultCouponService(repo couponRepo.CouponRepository) *DefaultCouponService {
	return &DefaultCouponService{
		repo:   repo,
		logger: utils.GetLogger().Named("coupon"),
	}
}

// checkEligibility runs the ordered eligibility checks against an
// already-loaded coupon. The first failing check wins. It returns the
// failure message, or "" when the coupon is redeemable.
func (s *DefaultCouponService) checkEligibility(ctx context.Context, coupon *models.Coupon, orderAmount float64, userID, partnerID string) (string, error) {
	if coupon.Status != models.CouponStatusActive {
		return "Coupon is not active", nil
	}

	now := time.Now()
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidTo) {
		return "Coupon has expired or is not yet valid", nil
	}

	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return "Coupon usage limit exceeded", nil
	}

	if coupon.MinOrderValue > 0 && orderAmount < coupon.MinOrderValue {
		return fmt.Sprintf("Minimum order value of %v required", coupon.MinOrderValue), nil
	}

	if coupon.Scope == models.CouponScopePartnerSpecific && coupon.PartnerID != partnerID {
		return "Coupon is not valid for this partner", nil
	}

	if userID != "" && coupon.UserUsageLimit > 0 {
		used, err := s.repo.CountUserRedemptions(ctx, coupon.ID, userID)
		if err != nil {
			return "", err
		}
		if used >= coupon.UserUsageLimit {
			return "User usage limit exceeded for this coupon", nil
		}
	}

	return "", nil
}

// discountFor computes the discount a coupon grants on orderAmount.
// The result never exceeds the order amount itself.
func discountFor(coupon *models.Coupon, orderAmount float64) float64 {
	var discount float64
	if coupon.Type == models.CouponTypePercentage {
		discount = orderAmount * coupon.Value / 100
		if coupon.MaxDiscountAmount > 0 && discount > coupon.MaxDiscountAmount {
			discount = coupon.MaxDiscountAmount
		}
	} else {
		discount = coupon.Value
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	return discount
}

func (s *DefaultCouponService) Validate(ctx context.Context, code string, orderAmount float64, userID, partnerID string) (*models.CouponValidation, error) {
	coupon, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			return &models.CouponValidation{Valid: false, Message: "Invalid coupon code"}, nil
		}
		return nil, err
	}

	message, err := s.checkEligibility(ctx, coupon, orderAmount, userID, partnerID)
	if err != nil {
		return nil, err
	}
	if message != "" {
		return &models.CouponValidation{Valid: false, Message: message}, nil
	}

	return &models.CouponValidation{
		Valid:          true,
		DiscountAmount: discountFor(coupon, orderAmount),
		Coupon:         coupon,
	}, nil
}

func (s *DefaultCouponService) AttachBooking(ctx context.Context, redemptionID, bookingID string) error {
	return s.repo.AttachBooking(ctx, redemptionID, bookingID)
}

func (s *DefaultCouponService) Stats(ctx context.Context, couponID string) (*models.CouponStats, error) {
	coupon, err := s.repo.GetByID(ctx, couponID)
	if err != nil {
		return nil, err
	}

	redemptions, err := s.repo.ListRedemptions(ctx, couponID)
	if err != nil {
		return nil, err
	}

	stats := &models.CouponStats{
		TotalUsage: coupon.UsageCount,
		UserUsage:  make(map[string]int),
	}
	if coupon.UsageLimit > 0 {
		stats.RemainingUsage = coupon.UsageLimit - coupon.UsageCount
		if stats.RemainingUsage < 0 {
			stats.RemainingUsage = 0
		}
	}
	for _, r := range redemptions {
		stats.UserUsage[r.UserID]++
		stats.RevenueImpact += r.DiscountAmount
	}
	return stats, nil
}

func (s *DefaultCouponService) Activate(ctx context.Context, couponID string) error {
	s.logger.Info("Activating coupon", zap.String("couponId", couponID))
	return s.repo.SetStatus(ctx, couponID, models.CouponStatusActive)
}

func (s *DefaultCouponService) Deactivate(ctx context.Context, couponID string) error {
	s.logger.Info("Deactivating coupon", zap.String("couponId", couponID))
	return s.repo.SetStatus(ctx, couponID, models.CouponStatusInactive)
}
