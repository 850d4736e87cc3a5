package booking

import (
	"context"

	"go.uber.org/zap"

	"spacehive/models"
	"spacehive/utils"
)

// KycStatus returns the KYC probe for a booking, visible to its owner
// and the owning partner.
func (s *DefaultBookingService) KycStatus(ctx context.Context, id string, actor models.Actor) (*models.BookingKycStatus, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnerOrPartner(ctx, booking, actor); err != nil {
		return nil, err
	}

	kycStatus := booking.KycStatus
	if kycStatus == "" {
		kycStatus = models.KycStatusNotRequired
	}

	return &models.BookingKycStatus{
		BookingID:      booking.ID,
		KycStatus:      kycStatus,
		KycRequired:    booking.TotalAmount >= s.policy.KycAmountThreshold,
		KycRequiredAt:  booking.KycRequiredAt,
		KycCompletedAt: booking.KycCompletedAt,
	}, nil
}

// RequireKyc lets the owning partner demand KYC verification on a
// non-terminal booking.
func (s *DefaultBookingService) RequireKyc(ctx context.Context, id string, actor models.Actor) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.isOwningPartner(ctx, booking, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.Forbidden("Only partner can require KYC for bookings")
	}

	if booking.IsTerminal() {
		return nil, utils.InvalidStatus("Cannot require KYC for cancelled or completed bookings")
	}

	now := s.now()
	booking.KycStatus = models.KycStatusPending
	booking.KycRequiredAt = &now
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("KYC required for booking", zap.String("bookingId", booking.ID))
	return booking, nil
}
