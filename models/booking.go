package models

import "time"

// Booking lifecycle states.
const (
	BookingStatusPending    = "PENDING"
	BookingStatusPendingKyc = "PENDING_KYC"
	BookingStatusConfirmed  = "CONFIRMED"
	BookingStatusCompleted  = "COMPLETED"
	BookingStatusCancelled  = "CANCELLED"
)

// KYC verification states for a booking.
const (
	KycStatusNotRequired = "NOT_REQUIRED"
	KycStatusPending     = "PENDING"
	KycStatusInProgress  = "IN_PROGRESS"
	KycStatusCompleted   = "COMPLETED"
	KycStatusFailed      = "FAILED"
)

// Booking represents a reservation of a space for a half-open time
// interval [StartDateTime, EndDateTime). For a given space, no two
// bookings whose status is not CANCELLED may overlap.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	BookingNumber string    `bson:"booking_number" json:"bookingNumber"`
	UserID        string    `bson:"user_id" json:"userId"`
	SpaceID       string    `bson:"space_id" json:"spaceId"`
	PartnerID     string    `bson:"partner_id" json:"partnerId"`
	StartDateTime time.Time `bson:"start_date_time" json:"startDateTime"`
	EndDateTime   time.Time `bson:"end_date_time" json:"endDateTime"`
	GuestCount    int       `bson:"guest_count" json:"guestCount"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`

	BaseAmount     float64 `bson:"base_amount" json:"baseAmount"`
	DiscountAmount float64 `bson:"discount_amount" json:"discountAmount"`
	TaxAmount      float64 `bson:"tax_amount" json:"taxAmount"`
	TotalAmount    float64 `bson:"total_amount" json:"totalAmount"`
	Currency       string  `bson:"currency" json:"currency"`

	Status             string `bson:"status" json:"status"`
	CancellationReason string `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`

	CouponID   string `bson:"coupon_id,omitempty" json:"couponId,omitempty"`
	CouponCode string `bson:"coupon_code,omitempty" json:"couponCode,omitempty"`

	KycStatus      string     `bson:"kyc_status" json:"kycStatus"`
	KycRequiredAt  *time.Time `bson:"kyc_required_at,omitempty" json:"kycRequiredAt,omitempty"`
	KycCompletedAt *time.Time `bson:"kyc_completed_at,omitempty" json:"kycCompletedAt,omitempty"`

	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updatedAt"`
	ConfirmedAt  *time.Time `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	CancelledAt  *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CheckedInAt  *time.Time `bson:"checked_in_at,omitempty" json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `bson:"checked_out_at,omitempty" json:"checkedOutAt,omitempty"`
}

// IsTerminal reports whether the booking can no longer transition.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// BookingUpdate carries the mutable fields of a booking patch. Nil
// fields are left untouched.
type BookingUpdate struct {
	StartDateTime *time.Time `json:"startDateTime,omitempty"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty"`
	GuestCount    *int       `json:"guestCount,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// BookingQuery holds the optional filters for booking listings.
type BookingQuery struct {
	UserID    string
	SpaceID   string
	PartnerID string
	Status    string
	Limit     int64
	Offset    int64
}

// AvailabilityResult is the outcome of a conflict-detector probe.
// Conflicts carries the actual overlapping bookings so a caller can
// offer alternatives.
type AvailabilityResult struct {
	Available bool      `json:"available"`
	Conflicts []Booking `json:"conflicts,omitempty"`
}

// BookingKycStatus is the KYC probe response for a single booking.
type BookingKycStatus struct {
	BookingID      string     `json:"bookingId"`
	KycStatus      string     `json:"kycStatus"`
	KycRequired    bool       `json:"kycRequired"`
	KycRequiredAt  *time.Time `json:"kycRequiredAt,omitempty"`
	KycCompletedAt *time.Time `json:"kycCompletedAt,omitempty"`
}
