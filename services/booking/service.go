package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spacehive/config"
	bookingRepo "spacehive/database/repository/booking"
	"spacehive/models"
	"spacehive/services/coupon"
	"spacehive/utils"
)

// Policy holds the business thresholds the lifecycle manager applies.
type Policy struct {
	KycAmountThreshold float64
	CancellationWindow time.Duration
	DefaultCurrency    string
}

// PolicyFromConfig reads the booking policy from the loaded app config.
func PolicyFromConfig() Policy {
	return Policy{
		KycAmountThreshold: config.AppConfig.KycAmountThreshold,
		CancellationWindow: time.Duration(config.AppConfig.CancellationWindowHours) * time.Hour,
		DefaultCurrency:    config.AppConfig.DefaultCurrency,
	}
}

type DefaultBookingService struct {
	bookings bookingRepo.BookingRepository
	users    UserDirectory
	spaces   SpaceCatalog
	pricing  PricingEngine
	coupons  coupon.CouponService
	bus      Publisher
	policy   Policy
	logger   *zap.Logger

	// now is swappable for deterministic time in tests.
	now func() time.Time
}

func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	users UserDirectory,
	spaces SpaceCatalog,
	pricing PricingEngine,
	coupons coupon.CouponService,
	bus Publisher,
	policy Policy,
) *DefaultBookingService {
	return &DefaultBookingService{
		bookings: bookings,
		users:    users,
		spaces:   spaces,
		pricing:  pricing,
		coupons:  coupons,
		bus:      bus,
		policy:   policy,
		logger:   utils.GetLogger().Named("booking"),
		now:      time.Now,
	}
}

// CreateBooking reserves a space. Validation and pricing happen before
// any write; the coupon, if given, is redeemed atomically before the
// insert; the insert itself re-checks the slot under a space lock so a
// snapshot taken here can never admit a double booking.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	user, err := s.users.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	space, err := s.spaces.Get(ctx, input.SpaceID)
	if err != nil {
		return nil, err
	}
	if space.Status != models.SpaceStatusActive {
		return nil, utils.InvalidStatus("Space is not available for booking")
	}

	partnerID, err := s.spaces.ResolvePartnerID(ctx, input.SpaceID)
	if err != nil {
		return nil, err
	}

	if !input.StartDateTime.Before(input.EndDateTime) {
		return nil, utils.InvalidInput("Start date and time must be before end date and time")
	}
	if space.Capacity > 0 && input.GuestCount > space.Capacity {
		return nil, utils.InvalidInput(fmt.Sprintf("Guest count exceeds space capacity of %d", space.Capacity))
	}

	availability, err := s.CheckAvailability(ctx, input.SpaceID, input.StartDateTime, input.EndDateTime, "")
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		return nil, utils.Conflict("Space is not available for the requested time slot").
			WithDetails(map[string]any{"conflicts": availability.Conflicts})
	}

	durationHours := input.EndDateTime.Sub(input.StartDateTime).Hours()
	baseAmount, err := s.pricing.Calculate(ctx, input.SpaceID, input.StartDateTime, input.EndDateTime, space.HourlyRate, durationHours)
	if err != nil {
		return nil, err
	}

	var redemption *coupon.Redemption
	var discountAmount float64
	if input.CouponCode != "" {
		redemption, err = s.coupons.Redeem(ctx, input.CouponCode, input.UserID, baseAmount, partnerID)
		if err != nil {
			return nil, err
		}
		discountAmount = redemption.DiscountAmount
	}

	totalAmount := baseAmount - discountAmount
	if totalAmount < 0 {
		totalAmount = 0
	}

	currency := space.Currency
	if currency == "" {
		currency = s.policy.DefaultCurrency
	}

	now := s.now()
	booking := &models.Booking{
		ID:             uuid.NewString(),
		BookingNumber:  fmt.Sprintf("BK%d", now.UnixMilli()),
		UserID:         user.ID,
		SpaceID:        space.ID,
		PartnerID:      partnerID,
		StartDateTime:  input.StartDateTime,
		EndDateTime:    input.EndDateTime,
		GuestCount:     input.GuestCount,
		Notes:          input.Notes,
		BaseAmount:     baseAmount,
		DiscountAmount: discountAmount,
		TotalAmount:    totalAmount,
		Currency:       currency,
		Status:         models.BookingStatusPending,
		KycStatus:      models.KycStatusNotRequired,
	}
	if redemption != nil {
		booking.CouponID = redemption.Coupon.ID
		booking.CouponCode = redemption.Coupon.Code
	}

	kycRequired := totalAmount >= s.policy.KycAmountThreshold
	if kycRequired {
		booking.Status = models.BookingStatusPendingKyc
		booking.KycStatus = models.KycStatusPending
		booking.KycRequiredAt = &now
	}

	conflicts, err := s.bookings.CreateIfAvailable(ctx, booking)
	if err != nil {
		if utils.IsCode(err, utils.CodeConflict) && len(conflicts) > 0 {
			return nil, utils.Conflict("Space is not available for the requested time slot").
				WithDetails(map[string]any{"conflicts": conflicts})
		}
		return nil, err
	}

	if redemption != nil {
		if err := s.coupons.AttachBooking(ctx, redemption.RedemptionID, booking.ID); err != nil {
			s.logger.Warn("Failed to attach booking to coupon redemption",
				zap.String("bookingId", booking.ID),
				zap.String("redemptionId", redemption.RedemptionID),
				zap.Error(err))
		}
	}

	s.logger.Info("Booking created",
		zap.String("bookingId", booking.ID),
		zap.String("bookingNumber", booking.BookingNumber),
		zap.String("spaceId", booking.SpaceID),
		zap.Float64("totalAmount", booking.TotalAmount),
		zap.Bool("kycRequired", kycRequired))

	s.bus.Publish(models.BookingEvent{
		Topic:         models.TopicBookingCreated,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		SpaceID:       booking.SpaceID,
		PartnerID:     booking.PartnerID,
		TotalAmount:   booking.TotalAmount,
		StartDateTime: booking.StartDateTime,
		EndDateTime:   booking.EndDateTime,
		GuestCount:    booking.GuestCount,
		KycRequired:   kycRequired,
		OccurredAt:    now,
	})

	return booking, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, query models.BookingQuery) ([]models.Booking, int64, error) {
	return s.bookings.List(ctx, query)
}

func (s *DefaultBookingService) ListPartnerBookings(ctx context.Context, actor models.Actor, query models.BookingQuery) ([]models.Booking, int64, error) {
	partner, err := s.spaces.PartnerForUser(ctx, actor.UserID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			return nil, 0, utils.Forbidden("Access denied")
		}
		return nil, 0, err
	}
	query.PartnerID = partner.ID
	return s.bookings.List(ctx, query)
}

func (s *DefaultBookingService) LatestBookings(ctx context.Context, limit int64) ([]models.Booking, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.bookings.Latest(ctx, limit)
}

// UpdateBooking applies a patch to a booking. A time change re-runs
// conflict detection excluding the booking itself and reprices the
// reservation.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, id string, patch models.BookingUpdate, actor models.Actor) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnerOrPartner(ctx, booking, actor); err != nil {
		return nil, err
	}
	if booking.IsTerminal() {
		return nil, utils.InvalidStatus("Cannot update a cancelled or completed booking")
	}

	changes := make([]string, 0, 4)
	timeChanged := false

	start := booking.StartDateTime
	end := booking.EndDateTime
	if patch.StartDateTime != nil {
		start = *patch.StartDateTime
		timeChanged = true
		changes = append(changes, "startDateTime")
	}
	if patch.EndDateTime != nil {
		end = *patch.EndDateTime
		timeChanged = true
		changes = append(changes, "endDateTime")
	}

	if timeChanged {
		if !start.Before(end) {
			return nil, utils.InvalidInput("Start date and time must be before end date and time")
		}
		availability, err := s.CheckAvailability(ctx, booking.SpaceID, start, end, booking.ID)
		if err != nil {
			return nil, err
		}
		if !availability.Available {
			return nil, utils.Conflict("Space is not available for the requested time slot").
				WithDetails(map[string]any{"conflicts": availability.Conflicts})
		}

		space, err := s.spaces.Get(ctx, booking.SpaceID)
		if err != nil {
			return nil, err
		}
		durationHours := end.Sub(start).Hours()
		baseAmount, err := s.pricing.Calculate(ctx, booking.SpaceID, start, end, space.HourlyRate, durationHours)
		if err != nil {
			return nil, err
		}

		booking.StartDateTime = start
		booking.EndDateTime = end
		booking.BaseAmount = baseAmount
		total := baseAmount - booking.DiscountAmount
		if total < 0 {
			total = 0
		}
		booking.TotalAmount = total
	}

	if patch.GuestCount != nil {
		booking.GuestCount = *patch.GuestCount
		changes = append(changes, "guestCount")
	}
	if patch.Notes != nil {
		booking.Notes = *patch.Notes
		changes = append(changes, "notes")
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.bus.Publish(models.BookingEvent{
		Topic:         models.TopicBookingModified,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		SpaceID:       booking.SpaceID,
		PartnerID:     booking.PartnerID,
		TotalAmount:   booking.TotalAmount,
		StartDateTime: booking.StartDateTime,
		EndDateTime:   booking.EndDateTime,
		Changes:       changes,
		OccurredAt:    s.now(),
	})

	return booking, nil
}
