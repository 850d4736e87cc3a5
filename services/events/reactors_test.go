package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacehive/models"
	"spacehive/services/refund"
	"spacehive/utils"
)

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	updates  int
}

func newFakeBookingStore(bookings ...*models.Booking) *fakeBookingStore {
	s := &fakeBookingStore{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		cp := *b
		s.bookings[b.ID] = &cp
	}
	return s
}

func (s *fakeBookingStore) CreateIfAvailable(_ context.Context, booking *models.Booking) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *booking
	s.bookings[booking.ID] = &cp
	return nil, nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, utils.NotFound("booking", id)
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) Update(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *booking
	s.bookings[booking.ID] = &cp
	s.updates++
	return nil
}

func (s *fakeBookingStore) FindConflicting(context.Context, string, time.Time, time.Time, string) ([]models.Booking, error) {
	return nil, nil
}

func (s *fakeBookingStore) List(context.Context, models.BookingQuery) ([]models.Booking, int64, error) {
	return nil, 0, nil
}

func (s *fakeBookingStore) Latest(context.Context, int64) ([]models.Booking, error) {
	return nil, nil
}

type fakeSpaceStore struct {
	spaces map[string]*models.Space
}

func (s *fakeSpaceStore) GetByID(_ context.Context, id string) (*models.Space, error) {
	sp, ok := s.spaces[id]
	if !ok {
		return nil, utils.NotFound("space", id)
	}
	return sp, nil
}

func (s *fakeSpaceStore) ListByPartner(context.Context, string) ([]models.Space, error) {
	return nil, nil
}

func (s *fakeSpaceStore) GetPartner(_ context.Context, id string) (*models.Partner, error) {
	return nil, utils.NotFound("partner", id)
}

func (s *fakeSpaceStore) GetPartnerByUser(_ context.Context, userID string) (*models.Partner, error) {
	return nil, utils.NotFound("partner account for user", userID)
}

type push struct {
	target string
	title  string
	body   string
	data   map[string]string
}

type fakeNotifier struct {
	mu      sync.Mutex
	user    []push
	partner []push
}

func (n *fakeNotifier) SendUserPush(_ context.Context, userID, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.user = append(n.user, push{target: userID, title: title, body: body, data: data})
	return nil
}

func (n *fakeNotifier) SendPartnerPush(_ context.Context, partnerID, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.partner = append(n.partner, push{target: partnerID, title: title, body: body, data: data})
	return nil
}

type fakeRealtime struct {
	mu      sync.Mutex
	pushes  int
	targets []string
}

func (r *fakeRealtime) Push(_ context.Context, targetID string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushes++
	r.targets = append(r.targets, targetID)
	return nil
}

type ledgerEntry struct {
	account string
	amount  float64
	kind    string
	reason  string
}

type fakeLedger struct {
	mu      sync.Mutex
	entries []ledgerEntry
}

func (l *fakeLedger) Credit(_ context.Context, accountID string, amount float64, reason, _, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, ledgerEntry{account: accountID, amount: amount, kind: "credit", reason: reason})
	return nil
}

func (l *fakeLedger) Debit(_ context.Context, accountID string, amount float64, reason, _, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, ledgerEntry{account: accountID, amount: amount, kind: "debit", reason: reason})
	return nil
}

func (l *fakeLedger) Balance(_ context.Context, accountID string) (*models.Wallet, error) {
	return &models.Wallet{AccountID: accountID}, nil
}

func (l *fakeLedger) History(context.Context, string, int) ([]models.WalletTransaction, error) {
	return nil, nil
}

type fakeQueue struct {
	mu       sync.Mutex
	payloads []models.CommissionJobPayload
}

func (q *fakeQueue) EnqueueCommission(_ context.Context, payload models.CommissionJobPayload) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.payloads = append(q.payloads, payload)
	return nil
}

type reactorFixture struct {
	reactors *Reactors
	bookings *fakeBookingStore
	notifier *fakeNotifier
	realtime *fakeRealtime
	ledger   *fakeLedger
	queue    *fakeQueue
}

func newReactorFixture(bookings ...*models.Booking) *reactorFixture {
	store := newFakeBookingStore(bookings...)
	spaces := &fakeSpaceStore{spaces: map[string]*models.Space{
		"space-1": {ID: "space-1", PartnerID: "partner-1", SpaceType: "meeting_room"},
	}}
	notifier := &fakeNotifier{}
	realtime := &fakeRealtime{}
	ledger := &fakeLedger{}
	queue := &fakeQueue{}
	return &reactorFixture{
		reactors: NewReactors(store, spaces, notifier, realtime, refund.NewDefaultPolicyEngine(), ledger, queue),
		bookings: store,
		notifier: notifier,
		realtime: realtime,
		ledger:   ledger,
		queue:    queue,
	}
}

func pendingBooking(status string) *models.Booking {
	start := time.Now().Add(48 * time.Hour)
	return &models.Booking{
		ID:            "b-1",
		UserID:        "user-1",
		SpaceID:       "space-1",
		PartnerID:     "partner-1",
		StartDateTime: start,
		EndDateTime:   start.Add(2 * time.Hour),
		TotalAmount:   1000,
		Status:        status,
	}
}

func TestOnPaymentCompletedConfirmsPending(t *testing.T) {
	f := newReactorFixture(pendingBooking(models.BookingStatusPending))

	err := f.reactors.OnPaymentCompleted(context.Background(), models.BookingEvent{
		Topic:     models.TopicPaymentCompleted,
		BookingID: "b-1",
		UserID:    "user-1",
		PaymentID: "pi_123",
	})
	require.NoError(t, err)

	b, err := f.bookings.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	require.NotNil(t, b.ConfirmedAt)

	require.Len(t, f.notifier.user, 1)
	assert.Equal(t, "Payment received", f.notifier.user[0].title)
	assert.Equal(t, 1, f.realtime.pushes)
}

func TestOnPaymentCompletedConfirmsPendingKyc(t *testing.T) {
	f := newReactorFixture(pendingBooking(models.BookingStatusPendingKyc))

	err := f.reactors.OnPaymentCompleted(context.Background(), models.BookingEvent{
		Topic:     models.TopicPaymentCompleted,
		BookingID: "b-1",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	b, _ := f.bookings.GetByID(context.Background(), "b-1")
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
}

func TestOnPaymentCompletedIgnoresSettledBooking(t *testing.T) {
	confirmed := pendingBooking(models.BookingStatusConfirmed)
	at := time.Now().Add(-time.Hour)
	confirmed.ConfirmedAt = &at
	f := newReactorFixture(confirmed)

	err := f.reactors.OnPaymentCompleted(context.Background(), models.BookingEvent{
		Topic:     models.TopicPaymentCompleted,
		BookingID: "b-1",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	b, _ := f.bookings.GetByID(context.Background(), "b-1")
	assert.Equal(t, at.Unix(), b.ConfirmedAt.Unix())
	assert.Equal(t, 0, f.bookings.updates)
	assert.Empty(t, f.notifier.user)
}

func TestOnPaymentKycCompletedConfirms(t *testing.T) {
	b := pendingBooking(models.BookingStatusPendingKyc)
	b.KycStatus = models.KycStatusPending
	f := newReactorFixture(b)

	err := f.reactors.OnPaymentKycCompleted(context.Background(), models.BookingEvent{
		Topic:     models.TopicPaymentKycCompleted,
		BookingID: "b-1",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	got, _ := f.bookings.GetByID(context.Background(), "b-1")
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	assert.Equal(t, models.KycStatusCompleted, got.KycStatus)
	require.NotNil(t, got.KycCompletedAt)
	require.Len(t, f.notifier.user, 1)
	assert.Equal(t, "Verification complete", f.notifier.user[0].title)
}

func TestOnPaymentKycCompletedOnlyRecordsWhenNotWaiting(t *testing.T) {
	b := pendingBooking(models.BookingStatusConfirmed)
	b.KycStatus = models.KycStatusPending
	f := newReactorFixture(b)

	err := f.reactors.OnPaymentKycCompleted(context.Background(), models.BookingEvent{
		Topic:     models.TopicPaymentKycCompleted,
		BookingID: "b-1",
	})
	require.NoError(t, err)

	got, _ := f.bookings.GetByID(context.Background(), "b-1")
	assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	assert.Equal(t, models.KycStatusCompleted, got.KycStatus)
	assert.Empty(t, f.notifier.user)
}

func TestOnBookingCreatedNotifiesBothParties(t *testing.T) {
	f := newReactorFixture()

	err := f.reactors.OnBookingCreated(context.Background(), models.BookingEvent{
		Topic:         models.TopicBookingCreated,
		BookingID:     "b-1",
		UserID:        "user-1",
		PartnerID:     "partner-1",
		StartDateTime: time.Now().Add(48 * time.Hour),
		TotalAmount:   500,
		GuestCount:    4,
		KycRequired:   true,
	})
	require.NoError(t, err)

	require.Len(t, f.notifier.user, 1)
	assert.Contains(t, f.notifier.user[0].body, "Identity verification is required")
	require.Len(t, f.notifier.partner, 1)
	assert.Equal(t, "partner-1", f.notifier.partner[0].target)
	assert.Equal(t, []string{"user-1"}, f.realtime.targets)
}

func TestOnBookingCompletedEnqueuesCommission(t *testing.T) {
	f := newReactorFixture()
	completedAt := time.Now().Add(-time.Hour)

	err := f.reactors.OnBookingCompleted(context.Background(), models.BookingEvent{
		Topic:       models.TopicBookingCompleted,
		BookingID:   "b-1",
		UserID:      "user-1",
		PartnerID:   "partner-1",
		TotalAmount: 1000,
		CompletedAt: &completedAt,
	})
	require.NoError(t, err)

	require.Len(t, f.queue.payloads, 1)
	payload := f.queue.payloads[0]
	assert.Equal(t, "b-1", payload.BookingID)
	assert.Equal(t, "partner-1", payload.PartnerID)
	assert.Equal(t, 1000.0, payload.TotalAmount)
	assert.Equal(t, completedAt.Unix(), payload.CompletedAt.Unix())
	require.Len(t, f.notifier.user, 1)
}

func TestOnBookingCancelledRefundsWithFee(t *testing.T) {
	b := pendingBooking(models.BookingStatusCancelled)
	f := newReactorFixture(b)
	cancelledAt := time.Now()

	err := f.reactors.OnBookingCancelled(context.Background(), models.BookingEvent{
		Topic:       models.TopicBookingCancelled,
		BookingID:   "b-1",
		UserID:      "user-1",
		Reason:      "Change of plans",
		CancelledAt: &cancelledAt,
	})
	require.NoError(t, err)

	// 48h notice hits the 80% tier: credit the full amount, debit the fee.
	require.Len(t, f.ledger.entries, 2)
	assert.Equal(t, ledgerEntry{account: "user-1", amount: 1000, kind: "credit", reason: "Booking refund"}, f.ledger.entries[0])
	assert.Equal(t, ledgerEntry{account: "user-1", amount: 200, kind: "debit", reason: "Cancellation fee"}, f.ledger.entries[1])

	require.Len(t, f.notifier.user, 1)
	assert.Contains(t, f.notifier.user[0].body, "800.00")
}

func TestOnBookingCancelledEmergencyFullRefund(t *testing.T) {
	start := time.Now().Add(2 * time.Hour) // inside every notice tier
	b := pendingBooking(models.BookingStatusCancelled)
	b.StartDateTime = start
	b.EndDateTime = start.Add(2 * time.Hour)
	f := newReactorFixture(b)

	err := f.reactors.OnBookingCancelled(context.Background(), models.BookingEvent{
		Topic:     models.TopicBookingCancelled,
		BookingID: "b-1",
		UserID:    "user-1",
		Reason:    "Emergency hospitalization",
	})
	require.NoError(t, err)

	require.Len(t, f.ledger.entries, 1)
	assert.Equal(t, ledgerEntry{account: "user-1", amount: 1000, kind: "credit", reason: "Booking refund"}, f.ledger.entries[0])
}

func TestOnBookingCancelledTooLateNoRefund(t *testing.T) {
	start := time.Now().Add(2 * time.Hour)
	b := pendingBooking(models.BookingStatusCancelled)
	b.StartDateTime = start
	b.EndDateTime = start.Add(2 * time.Hour)
	f := newReactorFixture(b)

	err := f.reactors.OnBookingCancelled(context.Background(), models.BookingEvent{
		Topic:     models.TopicBookingCancelled,
		BookingID: "b-1",
		UserID:    "user-1",
		Reason:    "Change of plans",
	})
	require.NoError(t, err)

	assert.Empty(t, f.ledger.entries)
	require.Len(t, f.notifier.user, 1)
	assert.Contains(t, f.notifier.user[0].body, "less than 12 hours")
}
