package booking

import (
	"context"

	"go.uber.org/zap"

	"spacehive/models"
	"spacehive/utils"
)

// DefaultCancellationReason is recorded when a cancel request carries
// no explicit reason.
const DefaultCancellationReason = "User cancelled"

// isOwner reports whether the actor is the booking's end-user.
func isOwner(booking *models.Booking, actor models.Actor) bool {
	return booking.UserID == actor.UserID
}

// isOwningPartner reports whether the actor owns the partner account
// behind the booking's space.
func (s *DefaultBookingService) isOwningPartner(ctx context.Context, booking *models.Booking, actor models.Actor) (bool, error) {
	partner, err := s.spaces.PartnerForUser(ctx, actor.UserID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return partner.ID == booking.PartnerID, nil
}

func (s *DefaultBookingService) requireOwnerOrPartner(ctx context.Context, booking *models.Booking, actor models.Actor) error {
	if isOwner(booking, actor) {
		return nil
	}
	ok, err := s.isOwningPartner(ctx, booking, actor)
	if err != nil {
		return err
	}
	if !ok {
		return utils.Forbidden("Access denied")
	}
	return nil
}

// ConfirmBooking transitions a pending booking to confirmed. Only the
// owning partner may confirm.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, id string, actor models.Actor) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.isOwningPartner(ctx, booking, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.Forbidden("Only partner can confirm bookings")
	}

	if booking.Status != models.BookingStatusPending {
		return nil, utils.InvalidStatus("Only pending bookings can be confirmed")
	}

	now := s.now()
	booking.Status = models.BookingStatusConfirmed
	booking.ConfirmedAt = &now
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("Booking confirmed", zap.String("bookingId", booking.ID))
	s.bus.Publish(models.BookingEvent{
		Topic:         models.TopicBookingConfirmed,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		SpaceID:       booking.SpaceID,
		PartnerID:     booking.PartnerID,
		TotalAmount:   booking.TotalAmount,
		StartDateTime: booking.StartDateTime,
		EndDateTime:   booking.EndDateTime,
		OccurredAt:    now,
	})
	return booking, nil
}

// CancelBooking moves any non-terminal booking to cancelled. The
// 24-hour window is advisory only; owners and partners may still force
// a cancellation inside it, with refund policy deciding what is owed.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, id, reason string, actor models.Actor) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnerOrPartner(ctx, booking, actor); err != nil {
		return nil, err
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, utils.InvalidStatus("Booking is already cancelled")
	}
	if booking.Status == models.BookingStatusCompleted {
		return nil, utils.InvalidStatus("Cannot cancel completed booking")
	}

	if reason == "" {
		reason = DefaultCancellationReason
	}

	now := s.now()
	booking.Status = models.BookingStatusCancelled
	booking.CancellationReason = reason
	booking.CancelledAt = &now
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("Booking cancelled",
		zap.String("bookingId", booking.ID),
		zap.String("reason", reason))
	s.bus.Publish(models.BookingEvent{
		Topic:         models.TopicBookingCancelled,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		SpaceID:       booking.SpaceID,
		PartnerID:     booking.PartnerID,
		TotalAmount:   booking.TotalAmount,
		StartDateTime: booking.StartDateTime,
		EndDateTime:   booking.EndDateTime,
		Reason:        reason,
		CancelledAt:   &now,
		OccurredAt:    now,
	})
	return booking, nil
}

// CompleteBooking transitions a confirmed booking to completed and
// stamps checkout.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, id string, actor models.Actor) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnerOrPartner(ctx, booking, actor); err != nil {
		return nil, err
	}

	if booking.Status != models.BookingStatusConfirmed {
		return nil, utils.InvalidStatus("Only confirmed bookings can be completed")
	}

	now := s.now()
	booking.Status = models.BookingStatusCompleted
	booking.CheckedOutAt = &now
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("Booking completed", zap.String("bookingId", booking.ID))
	s.bus.Publish(models.BookingEvent{
		Topic:         models.TopicBookingCompleted,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		SpaceID:       booking.SpaceID,
		PartnerID:     booking.PartnerID,
		TotalAmount:   booking.TotalAmount,
		StartDateTime: booking.StartDateTime,
		EndDateTime:   booking.EndDateTime,
		CompletedAt:   &now,
		OccurredAt:    now,
	})
	return booking, nil
}

// CanCancelBooking is the policy probe behind the cancel button: the
// actor must have permission, the booking must be non-terminal, and
// the start time must be more than the cancellation window away.
func (s *DefaultBookingService) CanCancelBooking(ctx context.Context, id string, actor models.Actor) (bool, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	if !isOwner(booking, actor) {
		ok, err := s.isOwningPartner(ctx, booking, actor)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	if booking.IsTerminal() {
		return false, nil
	}

	return booking.StartDateTime.Sub(s.now()) > s.policy.CancellationWindow, nil
}
