package events

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	bookingRepo "spacehive/database/repository/booking"
	spaceRepo "spacehive/database/repository/space"
	"spacehive/models"
	"spacehive/services/notification"
	"spacehive/services/refund"
	"spacehive/services/tasks"
	"spacehive/services/wallet"
	"spacehive/utils"
)

// Reactors holds the side-effect handlers driven by booking events.
// Every handler follows log-and-continue: a failure here never touches
// the booking state that triggered it.
type Reactors struct {
	bookings bookingRepo.BookingRepository
	spaces   spaceRepo.SpaceRepository
	notifier notification.Gateway
	realtime notification.RealtimeGateway
	refunds  refund.PolicyEngine
	ledger   wallet.Ledger
	queue    tasks.JobQueue
	logger   *zap.Logger
}

func NewReactors(
	bookings bookingRepo.BookingRepository,
	spaces spaceRepo.SpaceRepository,
	notifier notification.Gateway,
	realtime notification.RealtimeGateway,
	refunds refund.PolicyEngine,
	ledger wallet.Ledger,
	queue tasks.JobQueue,
) *Reactors {
	return &Reactors{
		bookings: bookings,
		spaces:   spaces,
		notifier: notifier,
		realtime: realtime,
		refunds:  refunds,
		ledger:   ledger,
		queue:    queue,
		logger:   utils.GetLogger().Named("reactors"),
	}
}

// Register wires every reactor onto the bus.
func (r *Reactors) Register(bus *Bus) {
	bus.Subscribe(models.TopicBookingCreated, r.OnBookingCreated)
	bus.Subscribe(models.TopicBookingConfirmed, r.OnBookingConfirmed)
	bus.Subscribe(models.TopicBookingCompleted, r.OnBookingCompleted)
	bus.Subscribe(models.TopicBookingCancelled, r.OnBookingCancelled)
	bus.Subscribe(models.TopicBookingModified, r.OnBookingModified)
	bus.Subscribe(models.TopicPaymentCompleted, r.OnPaymentCompleted)
	bus.Subscribe(models.TopicPaymentKycCompleted, r.OnPaymentKycCompleted)
}

func (r *Reactors) pushStatus(ctx context.Context, event models.BookingEvent, status string) {
	payload := map[string]any{
		"bookingId": event.BookingID,
		"status":    status,
		"topic":     event.Topic,
	}
	if err := r.realtime.Push(ctx, event.UserID, payload); err != nil {
		r.logger.Warn("Realtime push failed",
			zap.String("bookingId", event.BookingID),
			zap.Error(err))
	}
}

// OnBookingCreated confirms the reservation to the user and alerts the
// partner of new demand.
func (r *Reactors) OnBookingCreated(ctx context.Context, event models.BookingEvent) error {
	body := fmt.Sprintf("Your booking for %s is received. Total: %.2f",
		event.StartDateTime.Format("Jan 2, 15:04"), event.TotalAmount)
	if event.KycRequired {
		body += ". Identity verification is required before confirmation."
	}
	if err := r.notifier.SendUserPush(ctx, event.UserID, "Booking received", body, map[string]string{
		"bookingId": event.BookingID,
		"type":      "booking_created",
	}); err != nil {
		r.logger.Warn("User notification failed", zap.String("bookingId", event.BookingID), zap.Error(err))
	}

	r.pushStatus(ctx, event, models.BookingStatusPending)

	if err := r.notifier.SendPartnerPush(ctx, event.PartnerID, "New booking request",
		fmt.Sprintf("New booking for %s, %d guests", event.StartDateTime.Format("Jan 2, 15:04"), event.GuestCount),
		map[string]string{
			"bookingId": event.BookingID,
			"type":      "booking_created",
		}); err != nil {
		r.logger.Warn("Partner notification failed", zap.String("bookingId", event.BookingID), zap.Error(err))
	}
	return nil
}

func (r *Reactors) OnBookingConfirmed(ctx context.Context, event models.BookingEvent) error {
	r.pushStatus(ctx, event, models.BookingStatusConfirmed)
	return r.notifier.SendUserPush(ctx, event.UserID, "Booking confirmed",
		fmt.Sprintf("Your booking for %s is confirmed", event.StartDateTime.Format("Jan 2, 15:04")),
		map[string]string{
			"bookingId": event.BookingID,
			"type":      "booking_confirmed",
		})
}

// OnBookingCompleted queues the commission split and thanks the user.
func (r *Reactors) OnBookingCompleted(ctx context.Context, event models.BookingEvent) error {
	completedAt := event.OccurredAt
	if event.CompletedAt != nil {
		completedAt = *event.CompletedAt
	}
	if err := r.queue.EnqueueCommission(ctx, models.CommissionJobPayload{
		BookingID:   event.BookingID,
		UserID:      event.UserID,
		PartnerID:   event.PartnerID,
		TotalAmount: event.TotalAmount,
		CompletedAt: completedAt,
	}); err != nil {
		r.logger.Error("Failed to enqueue commission job",
			zap.String("bookingId", event.BookingID),
			zap.Error(err))
	}

	r.pushStatus(ctx, event, models.BookingStatusCompleted)
	return r.notifier.SendUserPush(ctx, event.UserID, "Booking completed",
		"Thanks for your visit. We hope to see you again!",
		map[string]string{
			"bookingId": event.BookingID,
			"type":      "booking_completed",
		})
}

// isEmergencyCancellation keys off the recorded reason; operational
// tooling uses an "emergency" prefix when cancelling on a user's
// behalf.
func isEmergencyCancellation(reason string) bool {
	return strings.Contains(strings.ToLower(reason), "emergency")
}

// OnBookingCancelled settles the refund per policy and informs the
// user. The wallet nets out to the refundable amount: the full booking
// amount is credited and any cancellation fee is debited back.
func (r *Reactors) OnBookingCancelled(ctx context.Context, event models.BookingEvent) error {
	booking, err := r.bookings.GetByID(ctx, event.BookingID)
	if err != nil {
		return err
	}

	cancelledAt := event.OccurredAt
	if event.CancelledAt != nil {
		cancelledAt = *event.CancelledAt
	}

	spaceType := ""
	if space, err := r.spaces.GetByID(ctx, booking.SpaceID); err == nil {
		spaceType = space.SpaceType
	}

	calc, err := r.refunds.CalculateRefund(ctx, booking.TotalAmount, booking.StartDateTime, cancelledAt,
		booking.PartnerID, spaceType, isEmergencyCancellation(event.Reason))
	if err != nil {
		return err
	}

	if calc.IsRefundable {
		if err := r.ledger.Credit(ctx, booking.UserID, booking.TotalAmount, "Booking refund", booking.ID, "booking"); err != nil {
			r.logger.Error("Refund credit failed", zap.String("bookingId", booking.ID), zap.Error(err))
		} else if calc.CancellationFee > 0 {
			if err := r.ledger.Debit(ctx, booking.UserID, calc.CancellationFee, "Cancellation fee", booking.ID, "booking"); err != nil {
				r.logger.Error("Cancellation fee debit failed", zap.String("bookingId", booking.ID), zap.Error(err))
			}
		}
	}

	r.pushStatus(ctx, event, models.BookingStatusCancelled)

	body := calc.Reason
	if calc.IsRefundable {
		body = fmt.Sprintf("Your booking was cancelled. Refund: %.2f", calc.RefundAmount)
		if calc.CancellationFee > 0 {
			body += fmt.Sprintf(" (cancellation fee: %.2f)", calc.CancellationFee)
		}
	}
	return r.notifier.SendUserPush(ctx, event.UserID, "Booking cancelled", body, map[string]string{
		"bookingId": event.BookingID,
		"type":      "booking_cancelled",
	})
}

func (r *Reactors) OnBookingModified(ctx context.Context, event models.BookingEvent) error {
	r.pushStatus(ctx, event, "")
	return r.notifier.SendUserPush(ctx, event.UserID, "Booking updated",
		fmt.Sprintf("Your booking was updated (%s)", strings.Join(event.Changes, ", ")),
		map[string]string{
			"bookingId": event.BookingID,
			"type":      "booking_modified",
		})
}
