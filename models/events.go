package models

import "time"

// Event topics published on the booking event bus.
const (
	TopicBookingCreated      = "booking.created"
	TopicBookingConfirmed    = "booking.confirmed"
	TopicBookingCompleted    = "booking.completed"
	TopicBookingCancelled    = "booking.cancelled"
	TopicBookingModified     = "booking.modified"
	TopicPaymentCompleted    = "payment.completed"
	TopicPaymentKycCompleted = "payment.kyc_completed"
)

// BookingEvent is the payload carried by every booking-lifecycle topic.
// Events for the same BookingID are delivered to reactors in the order
// they were published; ordering across bookings is not guaranteed.
type BookingEvent struct {
	Topic         string     `json:"topic"`
	BookingID     string     `json:"bookingId"`
	UserID        string     `json:"userId"`
	SpaceID       string     `json:"spaceId,omitempty"`
	PartnerID     string     `json:"partnerId,omitempty"`
	TotalAmount   float64    `json:"totalAmount"`
	StartDateTime time.Time  `json:"startDateTime,omitempty"`
	EndDateTime   time.Time  `json:"endDateTime,omitempty"`
	GuestCount    int        `json:"guestCount,omitempty"`
	KycRequired   bool       `json:"kycRequired,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	PaymentID     string     `json:"paymentId,omitempty"`
	Changes       []string   `json:"changes,omitempty"`
	OccurredAt    time.Time  `json:"occurredAt"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// CommissionJobPayload is the asynq task payload for the asynchronous
// commission split after a booking completes.
type CommissionJobPayload struct {
	BookingID   string    `json:"bookingId"`
	UserID      string    `json:"userId"`
	PartnerID   string    `json:"partnerId"`
	TotalAmount float64   `json:"totalAmount"`
	CompletedAt time.Time `json:"completedAt"`
}
