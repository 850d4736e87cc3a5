package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacehive/models"
	"spacehive/services/coupon"
	"spacehive/utils"
)

// fakeBookingRepo mirrors the Mongo repository's semantics in memory,
// including the atomic overlap-check-and-insert.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) overlapping(spaceID string, start, end time.Time, excludeID string) []models.Booking {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.SpaceID != spaceID || b.Status == models.BookingStatusCancelled || b.ID == excludeID {
			continue
		}
		if b.StartDateTime.Before(end) && b.EndDateTime.After(start) {
			out = append(out, *b)
		}
	}
	return out
}

func (r *fakeBookingRepo) CreateIfAvailable(_ context.Context, booking *models.Booking) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conflicts := r.overlapping(booking.SpaceID, booking.StartDateTime, booking.EndDateTime, "")
	if len(conflicts) > 0 {
		return conflicts, utils.Conflict("Space is not available for the requested time slot")
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, utils.NotFound("booking", id)
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return utils.NotFound("booking", booking.ID)
	}
	booking.UpdatedAt = time.Now()
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindConflicting(_ context.Context, spaceID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlapping(spaceID, start, end, excludeID), nil
}

func (r *fakeBookingRepo) List(_ context.Context, query models.BookingQuery) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if query.UserID != "" && b.UserID != query.UserID {
			continue
		}
		if query.SpaceID != "" && b.SpaceID != query.SpaceID {
			continue
		}
		if query.PartnerID != "" && b.PartnerID != query.PartnerID {
			continue
		}
		if query.Status != "" && b.Status != query.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) Latest(_ context.Context, limit int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

type fakeUserDirectory struct {
	users map[string]*models.User
}

func (d *fakeUserDirectory) Get(_ context.Context, userID string) (*models.User, error) {
	u, ok := d.users[userID]
	if !ok {
		return nil, utils.NotFound("user", userID)
	}
	return u, nil
}

type fakeSpaceCatalog struct {
	spaces   map[string]*models.Space
	partners map[string]*models.Partner // keyed by owning user id
}

func (c *fakeSpaceCatalog) Get(_ context.Context, spaceID string) (*models.Space, error) {
	s, ok := c.spaces[spaceID]
	if !ok {
		return nil, utils.NotFound("space", spaceID)
	}
	return s, nil
}

func (c *fakeSpaceCatalog) ResolvePartnerID(ctx context.Context, spaceID string) (string, error) {
	s, err := c.Get(ctx, spaceID)
	if err != nil {
		return "", err
	}
	if s.PartnerID == "" {
		return "", utils.Internal("space has no owning partner", nil)
	}
	return s.PartnerID, nil
}

func (c *fakeSpaceCatalog) PartnerForUser(_ context.Context, userID string) (*models.Partner, error) {
	p, ok := c.partners[userID]
	if !ok {
		return nil, utils.NotFound("partner account for user", userID)
	}
	return p, nil
}

type flatPricing struct{ rateOverride float64 }

func (p flatPricing) Calculate(_ context.Context, _ string, _, _ time.Time, basePrice, durationHours float64) (float64, error) {
	if p.rateOverride > 0 {
		basePrice = p.rateOverride
	}
	return basePrice * durationHours, nil
}

// fakeCouponService redeems a fixed discount for one known code.
type fakeCouponService struct {
	code     string
	discount float64
	redeemed int
	attached []string
}

func (s *fakeCouponService) Validate(_ context.Context, code string, orderAmount float64, _, _ string) (*models.CouponValidation, error) {
	if code != s.code {
		return &models.CouponValidation{Valid: false, Message: "Invalid coupon code"}, nil
	}
	return &models.CouponValidation{Valid: true, DiscountAmount: s.discount}, nil
}

func (s *fakeCouponService) Redeem(_ context.Context, code, _ string, _ float64, _ string) (*coupon.Redemption, error) {
	if code != s.code {
		return nil, utils.InvalidInput("Invalid coupon code")
	}
	s.redeemed++
	return &coupon.Redemption{
		Coupon:         &models.Coupon{ID: "coupon-1", Code: code},
		DiscountAmount: s.discount,
		RedemptionID:   "redemption-1",
	}, nil
}

func (s *fakeCouponService) AttachBooking(_ context.Context, redemptionID, bookingID string) error {
	s.attached = append(s.attached, bookingID)
	return nil
}

func (s *fakeCouponService) Stats(_ context.Context, _ string) (*models.CouponStats, error) {
	return &models.CouponStats{}, nil
}

func (s *fakeCouponService) Activate(_ context.Context, _ string) error   { return nil }
func (s *fakeCouponService) Deactivate(_ context.Context, _ string) error { return nil }

// captureBus records published events synchronously.
type captureBus struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (b *captureBus) Publish(event models.BookingEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *captureBus) topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.Topic
	}
	return out
}

func testPolicy() Policy {
	return Policy{
		KycAmountThreshold: 1000,
		CancellationWindow: 24 * time.Hour,
		DefaultCurrency:    "INR",
	}
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeCouponService, *captureBus) {
	repo := newFakeBookingRepo()
	coupons := &fakeCouponService{code: "SAVE20", discount: 200}
	bus := &captureBus{}

	users := &fakeUserDirectory{users: map[string]*models.User{
		"user-1": {ID: "user-1", Email: "u1@example.com"},
		"user-2": {ID: "user-2", Email: "u2@example.com"},
	}}
	spaces := &fakeSpaceCatalog{
		spaces: map[string]*models.Space{
			"space-1": {
				ID:         "space-1",
				PartnerID:  "partner-1",
				Status:     models.SpaceStatusActive,
				Capacity:   10,
				HourlyRate: 100,
				Currency:   "INR",
			},
			"space-closed": {
				ID:        "space-closed",
				PartnerID: "partner-1",
				Status:    models.SpaceStatusInactive,
			},
		},
		partners: map[string]*models.Partner{
			"partner-user": {ID: "partner-1", UserID: "partner-user"},
		},
	}

	svc := NewDefaultBookingService(repo, users, spaces, flatPricing{}, coupons, bus, testPolicy())
	return svc, repo, coupons, bus
}

func window(hoursFromNow, durationHours int) (time.Time, time.Time) {
	start := time.Now().Add(time.Duration(hoursFromNow) * time.Hour).Truncate(time.Minute)
	return start, start.Add(time.Duration(durationHours) * time.Hour)
}

func TestCreateBooking(t *testing.T) {
	svc, repo, _, bus := newTestService()
	start, end := window(48, 5)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
		GuestCount:    4,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(b.BookingNumber, "BK"))
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.KycStatusNotRequired, b.KycStatus)
	assert.Equal(t, "partner-1", b.PartnerID)
	assert.Equal(t, 500.0, b.BaseAmount)
	assert.Equal(t, 500.0, b.TotalAmount)
	assert.Equal(t, "INR", b.Currency)

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, stored.ID)

	require.Equal(t, []string{models.TopicBookingCreated}, bus.topics())
	assert.Equal(t, b.ID, bus.events[0].BookingID)
}

func TestCreateBookingUnknownUser(t *testing.T) {
	svc, _, _, bus := newTestService()
	start, end := window(48, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "ghost",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.Empty(t, bus.topics())
}

func TestCreateBookingInactiveSpace(t *testing.T) {
	svc, _, _, _ := newTestService()
	start, end := window(48, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-closed",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidStatus))
}

func TestCreateBookingInvertedInterval(t *testing.T) {
	svc, _, _, _ := newTestService()
	start, end := window(48, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: end,
		EndDateTime:   start,
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidInput))
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	svc, _, _, _ := newTestService()
	start, end := window(48, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
		GuestCount:    11,
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidInput))
}

func TestCreateBookingWithCoupon(t *testing.T) {
	svc, _, coupons, _ := newTestService()
	start, end := window(48, 5)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
		CouponCode:    "SAVE20",
	})
	require.NoError(t, err)

	assert.Equal(t, 500.0, b.BaseAmount)
	assert.Equal(t, 200.0, b.DiscountAmount)
	assert.Equal(t, 300.0, b.TotalAmount)
	assert.Equal(t, "SAVE20", b.CouponCode)
	assert.Equal(t, 1, coupons.redeemed)
	assert.Equal(t, []string{b.ID}, coupons.attached)
}

func TestCreateBookingBadCouponCreatesNothing(t *testing.T) {
	svc, repo, _, bus := newTestService()
	start, end := window(48, 5)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
		CouponCode:    "BOGUS",
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidInput))
	assert.Empty(t, repo.bookings)
	assert.Empty(t, bus.topics())
}

func TestCreateBookingKycGating(t *testing.T) {
	svc, _, _, bus := newTestService()
	start, end := window(48, 15) // 15h * 100 = 1500, over the 1000 threshold

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, b.TotalAmount)
	assert.Equal(t, models.BookingStatusPendingKyc, b.Status)
	assert.Equal(t, models.KycStatusPending, b.KycStatus)
	require.NotNil(t, b.KycRequiredAt)
	assert.True(t, bus.events[0].KycRequired)
}

func TestCreateBookingConflict(t *testing.T) {
	svc, repo, _, bus := newTestService()
	start, end := window(48, 2)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.NoError(t, err)

	// Overlapping request for the same space.
	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-2",
		SpaceID:       "space-1",
		StartDateTime: start.Add(time.Hour),
		EndDateTime:   end.Add(time.Hour),
	})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
	assert.Len(t, repo.bookings, 1)
	assert.Equal(t, []string{models.TopicBookingCreated}, bus.topics())
}

func TestCreateBookingConcurrentSameSlot(t *testing.T) {
	svc, repo, _, _ := newTestService()
	start, end := window(48, 2)

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := "user-1"
			if n%2 == 0 {
				user = "user-2"
			}
			_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
				UserID:        user,
				SpaceID:       "space-1",
				StartDateTime: start,
				EndDateTime:   end,
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Len(t, repo.bookings, 1)
}

func TestCheckAvailabilityReturnsConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()
	start, end := window(48, 2) // e.g. 10:00 to 12:00

	created, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.NoError(t, err)

	// 11:00 to 13:00 overlaps the existing booking.
	result, err := svc.CheckAvailability(context.Background(), "space-1", start.Add(time.Hour), end.Add(time.Hour), "")
	require.NoError(t, err)
	assert.False(t, result.Available)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, created.ID, result.Conflicts[0].ID)

	// Adjacent half-open interval does not conflict.
	result, err = svc.CheckAvailability(context.Background(), "space-1", end, end.Add(time.Hour), "")
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Conflicts)
}

func TestUpdateBookingTimeChangeExcludesSelf(t *testing.T) {
	svc, _, _, bus := newTestService()
	start, end := window(48, 2)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.NoError(t, err)

	// Shift by 30 minutes; the only overlap is the booking itself.
	newStart := start.Add(30 * time.Minute)
	newEnd := end.Add(30 * time.Minute)
	updated, err := svc.UpdateBooking(context.Background(), b.ID, models.BookingUpdate{
		StartDateTime: &newStart,
		EndDateTime:   &newEnd,
	}, models.Actor{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, newStart, updated.StartDateTime)
	assert.Equal(t, 200.0, updated.BaseAmount)
	topics := bus.topics()
	assert.Equal(t, models.TopicBookingModified, topics[len(topics)-1])
}

func TestUpdateBookingForbiddenForStranger(t *testing.T) {
	svc, _, _, _ := newTestService()
	start, end := window(48, 2)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.NoError(t, err)

	notes := "mine now"
	_, err = svc.UpdateBooking(context.Background(), b.ID, models.BookingUpdate{Notes: &notes}, models.Actor{UserID: "user-2"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func mustCreate(t *testing.T, svc *DefaultBookingService, userID string, hoursFromNow int) *models.Booking {
	t.Helper()
	start, end := window(hoursFromNow, 2)
	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        userID,
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.NoError(t, err)
	return b
}

func TestConfirmBookingPartnerOnly(t *testing.T) {
	svc, _, _, bus := newTestService()
	b := mustCreate(t, svc, "user-1", 48)

	_, err := svc.ConfirmBooking(context.Background(), b.ID, models.Actor{UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	confirmed, err := svc.ConfirmBooking(context.Background(), b.ID, models.Actor{UserID: "partner-user"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	topics := bus.topics()
	assert.Equal(t, models.TopicBookingConfirmed, topics[len(topics)-1])

	// Confirming again is an invalid transition.
	_, err = svc.ConfirmBooking(context.Background(), b.ID, models.Actor{UserID: "partner-user"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidStatus))
}

func TestCancelBooking(t *testing.T) {
	svc, _, _, bus := newTestService()
	b := mustCreate(t, svc, "user-1", 48)

	cancelled, err := svc.CancelBooking(context.Background(), b.ID, "", models.Actor{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, DefaultCancellationReason, cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)

	events := bus.events
	last := events[len(events)-1]
	assert.Equal(t, models.TopicBookingCancelled, last.Topic)
	assert.Equal(t, DefaultCancellationReason, last.Reason)

	// Cancelling a cancelled booking fails without another event.
	before := len(bus.topics())
	_, err = svc.CancelBooking(context.Background(), b.ID, "", models.Actor{UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidStatus))
	assert.Len(t, bus.topics(), before)
}

func TestCancelCompletedBookingRejected(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(t, svc, "user-1", 48)

	_, err := svc.ConfirmBooking(context.Background(), b.ID, models.Actor{UserID: "partner-user"})
	require.NoError(t, err)
	_, err = svc.CompleteBooking(context.Background(), b.ID, models.Actor{UserID: "user-1"})
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), b.ID, "", models.Actor{UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidStatus))
}

func TestCompleteBookingRequiresConfirmed(t *testing.T) {
	svc, _, _, bus := newTestService()
	b := mustCreate(t, svc, "user-1", 48)

	_, err := svc.CompleteBooking(context.Background(), b.ID, models.Actor{UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidStatus))

	_, err = svc.ConfirmBooking(context.Background(), b.ID, models.Actor{UserID: "partner-user"})
	require.NoError(t, err)

	completed, err := svc.CompleteBooking(context.Background(), b.ID, models.Actor{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)
	require.NotNil(t, completed.CheckedOutAt)

	topics := bus.topics()
	assert.Equal(t, models.TopicBookingCompleted, topics[len(topics)-1])
}

// The 24-hour window blocks the probe but not a forced cancellation.
func TestCanCancelWindowPolicy(t *testing.T) {
	svc, _, _, _ := newTestService()

	far := mustCreate(t, svc, "user-1", 72)
	near := mustCreate(t, svc, "user-1", 6)

	ok, err := svc.CanCancelBooking(context.Background(), far.ID, models.Actor{UserID: "user-1"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanCancelBooking(context.Background(), near.ID, models.Actor{UserID: "user-1"})
	require.NoError(t, err)
	assert.False(t, ok)

	// A stranger never can.
	ok, err = svc.CanCancelBooking(context.Background(), far.ID, models.Actor{UserID: "user-2"})
	require.NoError(t, err)
	assert.False(t, ok)

	// Forced cancel inside the window still succeeds.
	cancelled, err := svc.CancelBooking(context.Background(), near.ID, "emergency closure", models.Actor{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
}

func TestKycStatusProbe(t *testing.T) {
	svc, _, _, _ := newTestService()
	start, end := window(48, 15)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:        "user-1",
		SpaceID:       "space-1",
		StartDateTime: start,
		EndDateTime:   end,
	})
	require.NoError(t, err)

	status, err := svc.KycStatus(context.Background(), b.ID, models.Actor{UserID: "user-1"})
	require.NoError(t, err)
	assert.True(t, status.KycRequired)
	assert.Equal(t, models.KycStatusPending, status.KycStatus)
	assert.NotNil(t, status.KycRequiredAt)

	_, err = svc.KycStatus(context.Background(), b.ID, models.Actor{UserID: "user-2"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}

func TestRequireKycPartnerOnly(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(t, svc, "user-1", 48)

	_, err := svc.RequireKyc(context.Background(), b.ID, models.Actor{UserID: "user-1"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	updated, err := svc.RequireKyc(context.Background(), b.ID, models.Actor{UserID: "partner-user"})
	require.NoError(t, err)
	assert.Equal(t, models.KycStatusPending, updated.KycStatus)
	require.NotNil(t, updated.KycRequiredAt)
}

func TestListBookingsFilters(t *testing.T) {
	svc, _, _, _ := newTestService()
	b1 := mustCreate(t, svc, "user-1", 48)
	_ = mustCreate(t, svc, "user-2", 72)

	bookings, total, err := svc.ListBookings(context.Background(), models.BookingQuery{UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, b1.ID, bookings[0].ID)
}

func TestListPartnerBookingsScopedToOwnPartner(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(t, svc, "user-1", 48)

	bookings, total, err := svc.ListPartnerBookings(context.Background(), models.Actor{UserID: "partner-user"}, models.BookingQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, b.ID, bookings[0].ID)

	_, _, err = svc.ListPartnerBookings(context.Background(), models.Actor{UserID: "user-1"}, models.BookingQuery{})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
}
