package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"spacehive/models"
)

// OnPaymentCompleted auto-confirms a booking once its payment settles.
// Idempotent: a booking that already moved on is left untouched.
func (r *Reactors) OnPaymentCompleted(ctx context.Context, event models.BookingEvent) error {
	booking, err := r.bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		return err
	}

	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusPendingKyc {
		r.logger.Debug("Payment completed for non-pending booking, ignoring",
			zap.String("bookingId", booking.ID),
			zap.String("status", booking.Status))
		return nil
	}

	now := time.Now()
	booking.Status = models.BookingStatusConfirmed
	booking.ConfirmedAt = &now
	if err := r.bookings.Update(ctx, booking); err != nil {
		return err
	}

	r.logger.Info("Booking auto-confirmed after payment",
		zap.String("bookingId", booking.ID),
		zap.String("paymentId", event.PaymentID))

	r.pushStatus(ctx, event, models.BookingStatusConfirmed)
	return r.notifier.SendUserPush(ctx, booking.UserID, "Payment received",
		"Your payment was received and the booking is confirmed",
		map[string]string{
			"bookingId": booking.ID,
			"type":      "payment_completed",
		})
}

// OnPaymentKycCompleted records a finished identity check. A booking
// waiting on KYC is confirmed; any other booking only has its KYC
// status brought up to date.
func (r *Reactors) OnPaymentKycCompleted(ctx context.Context, event models.BookingEvent) error {
	booking, err := r.bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		return err
	}

	now := time.Now()
	booking.KycStatus = models.KycStatusCompleted
	booking.KycCompletedAt = &now

	confirmed := false
	if booking.Status == models.BookingStatusPendingKyc {
		booking.Status = models.BookingStatusConfirmed
		booking.ConfirmedAt = &now
		confirmed = true
	}

	if err := r.bookings.Update(ctx, booking); err != nil {
		return err
	}

	r.logger.Info("KYC completed for booking",
		zap.String("bookingId", booking.ID),
		zap.Bool("confirmed", confirmed))

	if !confirmed {
		return nil
	}

	r.pushStatus(ctx, event, models.BookingStatusConfirmed)
	return r.notifier.SendUserPush(ctx, booking.UserID, "Verification complete",
		"Your identity was verified and the booking is confirmed",
		map[string]string{
			"bookingId": booking.ID,
			"type":      "kyc_completed",
		})
}
