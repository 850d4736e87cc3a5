package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"spacehive/config"
	"spacehive/models"
	"spacehive/services/booking"
	"spacehive/utils"
)

// PaymentHandler turns verified payment-provider webhooks into booking
// events. The reactors downstream own the resulting state transitions.
type PaymentHandler struct {
	bus    booking.Publisher
	logger *zap.Logger
}

func NewPaymentHandler(bus booking.Publisher) *PaymentHandler {
	return &PaymentHandler{
		bus:    bus,
		logger: utils.GetLogger().Named("payments"),
	}
}

// StripeWebhook handles POST /webhooks/stripe.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Error reading webhook body", zap.Error(err))
		c.Status(http.StatusServiceUnavailable)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		h.logger.Warn("Webhook signature verification failed", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	h.logger.Info("Stripe event received", zap.String("type", string(event.Type)))

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.logger.Error("Error parsing PaymentIntent", zap.Error(err))
			break
		}
		bookingID := intent.Metadata["bookingId"]
		if bookingID == "" {
			h.logger.Warn("PaymentIntent without bookingId metadata", zap.String("paymentIntent", intent.ID))
			break
		}
		h.bus.Publish(models.BookingEvent{
			Topic:       models.TopicPaymentCompleted,
			BookingID:   bookingID,
			UserID:      intent.Metadata["userId"],
			TotalAmount: float64(intent.Amount) / 100,
			PaymentID:   intent.ID,
			OccurredAt:  time.Now(),
		})

	case "identity.verification_session.verified":
		var session stripe.IdentityVerificationSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.logger.Error("Error parsing verification session", zap.Error(err))
			break
		}
		bookingID := session.Metadata["bookingId"]
		if bookingID == "" {
			h.logger.Warn("Verification session without bookingId metadata", zap.String("session", session.ID))
			break
		}
		h.bus.Publish(models.BookingEvent{
			Topic:      models.TopicPaymentKycCompleted,
			BookingID:  bookingID,
			UserID:     session.Metadata["userId"],
			PaymentID:  session.ID,
			OccurredAt: time.Now(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
