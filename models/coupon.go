package models

import "time"

// Coupon discount types.
const (
	CouponTypePercentage = "PERCENTAGE"
	CouponTypeFixed      = "FIXED"
)

// Coupon scopes.
const (
	CouponScopeGlobal          = "GLOBAL"
	CouponScopePartnerSpecific = "PARTNER_SPECIFIC"
)

// Coupon statuses.
const (
	CouponStatusActive   = "ACTIVE"
	CouponStatusInactive = "INACTIVE"
)

// Coupon is a discount instrument redeemable against a booking's order
// amount. A zero UsageLimit, UserUsageLimit, MinOrderValue or
// MaxDiscountAmount means the corresponding constraint is not set.
// UsageCount only ever increases and is mutated exclusively by the
// redemption engine.
type Coupon struct {
	ID                string    `bson:"id" json:"id"`
	Code              string    `bson:"code" json:"code"`
	Type              string    `bson:"type" json:"type"`
	Value             float64   `bson:"value" json:"value"`
	MinOrderValue     float64   `bson:"min_order_value,omitempty" json:"minOrderValue,omitempty"`
	MaxDiscountAmount float64   `bson:"max_discount_amount,omitempty" json:"maxDiscountAmount,omitempty"`
	UsageLimit        int       `bson:"usage_limit,omitempty" json:"usageLimit,omitempty"`
	UsageCount        int       `bson:"usage_count" json:"usageCount"`
	UserUsageLimit    int       `bson:"user_usage_limit,omitempty" json:"userUsageLimit,omitempty"`
	Scope             string    `bson:"scope" json:"scope"`
	PartnerID         string    `bson:"partner_id,omitempty" json:"partnerId,omitempty"`
	Status            string    `bson:"status" json:"status"`
	ValidFrom         time.Time `bson:"valid_from" json:"validFrom"`
	ValidTo           time.Time `bson:"valid_to" json:"validTo"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updatedAt"`
}

// CouponRedemption records a single successful redemption. Per-user
// usage limits are enforced by counting these records.
type CouponRedemption struct {
	ID             string    `bson:"id" json:"id"`
	CouponID       string    `bson:"coupon_id" json:"couponId"`
	Code           string    `bson:"code" json:"code"`
	UserID         string    `bson:"user_id" json:"userId"`
	BookingID      string    `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	OrderAmount    float64   `bson:"order_amount" json:"orderAmount"`
	DiscountAmount float64   `bson:"discount_amount" json:"discountAmount"`
	RedeemedAt     time.Time `bson:"redeemed_at" json:"redeemedAt"`
}

// CouponValidation is the outcome of a read-only coupon check.
type CouponValidation struct {
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discountAmount,omitempty"`
	Message        string  `json:"message,omitempty"`
	Coupon         *Coupon `json:"coupon,omitempty"`
}

// CouponStats summarizes a coupon's redemption history.
type CouponStats struct {
	TotalUsage     int            `json:"totalUsage"`
	RemainingUsage int            `json:"remainingUsage"`
	UserUsage      map[string]int `json:"userUsageBreakdown"`
	RevenueImpact  float64        `json:"revenueImpact"`
}
