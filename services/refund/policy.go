package refund

import (
	"context"
	"time"

	"spacehive/models"
)

// PolicyEngine decides what a cancellation refunds.
type PolicyEngine interface {
	CalculateRefund(ctx context.Context, amount float64, startTime, cancelTime time.Time, partnerID, spaceType string, isEmergency bool) (*models.RefundCalculation, error)
}

// Refund tiers by notice given before the booking start.
const (
	fullRefundNotice    = 24 * time.Hour
	partialRefundNotice = 12 * time.Hour

	standardRefundPercentage = 80
	partialRefundPercentage  = 50
)

// DefaultPolicyEngine applies the platform-wide tiers: emergencies
// refund in full; more than 24 hours notice refunds 80% with a 20%
// fee; 12 to 24 hours refunds half; less notice refunds nothing.
// Partner or space-type specific policies can replace this engine
// behind the same interface.
type DefaultPolicyEngine struct{}

func NewDefaultPolicyEngine() *DefaultPolicyEngine {
	return &DefaultPolicyEngine{}
}

func (e *DefaultPolicyEngine) CalculateRefund(_ context.Context, amount float64, startTime, cancelTime time.Time, _, _ string, isEmergency bool) (*models.RefundCalculation, error) {
	if isEmergency {
		return &models.RefundCalculation{
			IsRefundable:     true,
			RefundAmount:     amount,
			CancellationFee:  0,
			RefundPercentage: 100,
			Reason:           "Emergency cancellation, full refund",
		}, nil
	}

	notice := startTime.Sub(cancelTime)
	switch {
	case notice > fullRefundNotice:
		refund := amount * standardRefundPercentage / 100
		return &models.RefundCalculation{
			IsRefundable:     true,
			RefundAmount:     refund,
			CancellationFee:  amount - refund,
			RefundPercentage: standardRefundPercentage,
			Reason:           "Cancelled more than 24 hours before start",
		}, nil
	case notice > partialRefundNotice:
		refund := amount * partialRefundPercentage / 100
		return &models.RefundCalculation{
			IsRefundable:     true,
			RefundAmount:     refund,
			CancellationFee:  amount - refund,
			RefundPercentage: partialRefundPercentage,
			Reason:           "Cancelled between 12 and 24 hours before start",
		}, nil
	default:
		return &models.RefundCalculation{
			IsRefundable:    false,
			CancellationFee: amount,
			Reason:          "Cancelled less than 12 hours before start",
		}, nil
	}
}
