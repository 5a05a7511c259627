package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	draftRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/draft"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/gcalendar"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/payment"
	"github.com/m04kA/SMC-DetailingService/internal/service/bookings"
	"github.com/m04kA/SMC-DetailingService/internal/service/holds"
	"github.com/m04kA/SMC-DetailingService/internal/service/notifications"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
	"github.com/m04kA/SMC-DetailingService/pkg/ptr"
)

type fakeBusinesses struct {
	business *domain.Business
	service  *domain.Service
}

func (f *fakeBusinesses) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if f.business.ID != id {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeBusinesses) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	if f.service.ID != serviceID {
		return nil, businessRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type memoryDrafts struct {
	mu     sync.Mutex
	drafts map[string]*domain.CheckoutDraft
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: make(map[string]*domain.CheckoutDraft)}
}

func (m *memoryDrafts) Save(_ context.Context, d *domain.CheckoutDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.drafts[d.SessionID] = &cp
	return nil
}

func (m *memoryDrafts) AttachPaymentSession(_ context.Context, sessionID, paymentSessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[sessionID]
	if !ok {
		return draftRepo.ErrDraftNotFound
	}
	d.PaymentSessionID = &paymentSessionID
	return nil
}

func (m *memoryDrafts) Get(_ context.Context, sessionID string) (*domain.CheckoutDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[sessionID]
	if !ok {
		return nil, draftRepo.ErrDraftNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memoryDrafts) Take(ctx context.Context, sessionID string) (*domain.CheckoutDraft, error) {
	d, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return d, m.Delete(ctx, sessionID)
}

func (m *memoryDrafts) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, sessionID)
	return nil
}

type fakeCustomers struct{}

func (fakeCustomers) GetOrCreateByEmail(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	cp := *c
	cp.ID = 7
	return &cp, nil
}

type memoryLedger struct {
	bookings  []*domain.Booking
	duration  time.Duration
	createErr error
}

func (m *memoryLedger) Create(_ context.Context, d domain.BookingDraft) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	b := &domain.Booking{
		ID:         int64(len(m.bookings) + 1),
		BusinessID: d.BusinessID,
		ServiceID:  d.ServiceID,
		CustomerID: d.CustomerID,
		StartTime:  d.Start,
		EndTime:    d.Start.Add(m.duration),
		Status:     d.Status,
		Location:   d.Location,
		Notes:      d.Notes,
	}
	m.bookings = append(m.bookings, b)
	return b, nil
}

func (m *memoryLedger) ListActive(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return m.bookings, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPayment struct{ mock.Mock }

func (m *mockPayment) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*payment.Session)
	return s, args.Error(1)
}

func (m *mockPayment) GetSession(ctx context.Context, id string) (*payment.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*payment.Session)
	return s, args.Error(1)
}

type mockCalendar struct{ mock.Mock }

func (m *mockCalendar) CreateBookingEvent(ctx context.Context, calendarID string, ev gcalendar.Event) (string, error) {
	args := m.Called(ctx, calendarID, ev)
	return args.String(0), args.Error(1)
}

func (m *mockCalendar) CreateTravelBlock(ctx context.Context, calendarID string, ev gcalendar.Event) (string, error) {
	args := m.Called(ctx, calendarID, ev)
	return args.String(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendConfirmation(ctx context.Context, c notifications.Confirmation) error {
	return m.Called(ctx, c).Error(0)
}

type fixedTravel struct{ minutes int }

func (f fixedTravel) Lookup(_ context.Context, _, _ string, _ time.Time) (*domain.TravelEstimate, error) {
	return &domain.TravelEstimate{DurationText: "20 mins", Minutes: f.minutes}, nil
}

type fixture struct {
	uc       *UseCase
	drafts   *memoryDrafts
	ledger   *memoryLedger
	payment  *mockPayment
	calendar *mockCalendar
	notifier *mockNotifier
	holds    *holds.Registry
	loc      *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	f := &fixture{
		drafts:   newMemoryDrafts(),
		ledger:   &memoryLedger{duration: time.Hour},
		payment:  &mockPayment{},
		calendar: &mockCalendar{},
		notifier: &mockNotifier{},
		holds:    holds.NewRegistry(5*time.Minute, nil, logger.NewDiscard()),
		loc:      loc,
	}
	biz := &fakeBusinesses{
		business: &domain.Business{ID: 1, Name: "Silent Wash", Timezone: "America/New_York", CalendarID: ptr.Ptr("cal-1")},
		service:  &domain.Service{ID: 10, Name: "Essential Clean", DurationMinutes: 60, PriceCents: 15000, Active: true},
	}

	f.uc = NewUseCase(Deps{
		Businesses: biz,
		Drafts:     f.drafts,
		Customers:  fakeCustomers{},
		Ledger:     f.ledger,
		TxManager:  passthroughTx{},
		Payment:    f.payment,
		Holds:      f.holds,
		Calendar:   f.calendar,
		Travel:     fixedTravel{minutes: 20},
		Notifier:   f.notifier,
	}, Config{PublicURL: "https://smc.test", CancelURL: "https://smc.test/cancelled"}, logger.NewDiscard())
	f.uc.newID = func() string { return "sess-1" }

	return f
}

func validRequest() *Request {
	return &Request{
		BusinessID: 1,
		ServiceID:  10,
		Date:       "2030-03-04",
		Time:       "10:00 AM",
		Name:       "Jane Doe",
		Email:      " Jane@Example.com ",
		Phone:      "555-0101",
		Address:    "1 Main St",
		Unit:       ptr.Ptr("Apt 2"),
		Vehicle:    ptr.Ptr("2019 Honda Civic"),
	}
}

func TestCheckout_ValidationListsMissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Checkout(context.Background(), &Request{BusinessID: 1})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "service, date, time, name, email, phone, address")
}

func TestCheckout_InvalidEmail(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Email = "not-an-email"

	_, err := f.uc.Checkout(context.Background(), req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "email")
}

func TestCheckout_CreatesDraftAndSession(t *testing.T) {
	f := newFixture(t)
	f.payment.On("CreateSession", mock.Anything, mock.MatchedBy(func(r payment.SessionRequest) bool {
		return r.SuccessURL == "https://smc.test/api/v1/checkout/sess-1/finalize" &&
			r.CancelURL == "https://smc.test/cancelled" &&
			r.AmountCents == 15000 &&
			r.ClientReferenceID == "sess-1" &&
			r.CustomerEmail == "jane@example.com"
	})).Return(&payment.Session{ID: "cs_1", URL: "https://pay.test/cs_1"}, nil).Once()

	resp, err := f.uc.Checkout(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, "https://pay.test/cs_1", resp.SessionURL)

	draft, err := f.drafts.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "10:00", draft.Time.String())
	assert.Equal(t, "cs_1", *draft.PaymentSessionID)
	assert.Equal(t, "1 Main St, Apt 2", draft.FullAddress())
	f.payment.AssertExpectations(t)
}

func TestCheckout_ProviderFailureDeletesDraft(t *testing.T) {
	f := newFixture(t)
	f.payment.On("CreateSession", mock.Anything, mock.Anything).Return(nil, payment.ErrProvider)

	_, err := f.uc.Checkout(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = f.drafts.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, draftRepo.ErrDraftNotFound)
}

func TestCheckout_UnknownService(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.ServiceID = 99

	_, err := f.uc.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

// paidDraft сохраняет черновик с оплаченной сессией и удержанием слота
func paidDraft(t *testing.T, f *fixture) {
	t.Helper()
	require.NoError(t, f.drafts.Save(context.Background(), &domain.CheckoutDraft{
		SessionID:        "sess-1",
		BusinessID:       1,
		ServiceID:        10,
		Date:             "2030-03-04",
		Time:             "10:00",
		Name:             "Jane Doe",
		Email:            "jane@example.com",
		Phone:            "555-0101",
		Address:          "1 Main St",
		Vehicle:          ptr.Ptr("2019 Honda Civic"),
		PaymentSessionID: ptr.Ptr("cs_1"),
	}))
	require.NoError(t, f.holds.Hold(domain.HoldKey{BusinessID: 1, Date: "2030-03-04", Time: "10:00"}, time.Hour))
	f.payment.On("GetSession", mock.Anything, "cs_1").Return(&payment.Session{ID: "cs_1", Paid: true}, nil)
}

func TestFinalize_ConfirmsOnce(t *testing.T) {
	f := newFixture(t)
	paidDraft(t, f)
	f.calendar.On("CreateBookingEvent", mock.Anything, "cal-1", mock.MatchedBy(func(ev gcalendar.Event) bool {
		return ev.Summary == "Car Detail - Essential Clean" && ev.Location == "1 Main St"
	})).Return("evt-1", nil).Once()
	f.notifier.On("SendConfirmation", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := f.uc.Finalize(context.Background(), "sess-1")
	require.NoError(t, err)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, int64(7), res.Booking.CustomerID)
	assert.Equal(t, domain.StatusConfirmed, res.Booking.Status)
	assert.Equal(t, time.Date(2030, 3, 4, 10, 0, 0, 0, f.loc), res.Booking.StartTime)
	assert.False(t, f.holds.IsHeld(domain.HoldKey{BusinessID: 1, Date: "2030-03-04", Time: "10:00"}))

	_, err = f.uc.Finalize(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Len(t, f.ledger.bookings, 1)

	f.calendar.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestFinalize_Unpaid(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.drafts.Save(context.Background(), &domain.CheckoutDraft{
		SessionID: "sess-1", BusinessID: 1, ServiceID: 10, Date: "2030-03-04", Time: "10:00",
		PaymentSessionID: ptr.Ptr("cs_1"),
	}))
	f.payment.On("GetSession", mock.Anything, "cs_1").Return(&payment.Session{ID: "cs_1", Paid: false}, nil)

	_, err := f.uc.Finalize(context.Background(), "sess-1")
	require.ErrorIs(t, err, ErrPaymentNotCompleted)

	_, err = f.drafts.Get(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.Empty(t, f.ledger.bookings)
}

func TestFinalize_UnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Finalize(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFinalize_SlotTaken(t *testing.T) {
	f := newFixture(t)
	paidDraft(t, f)
	f.ledger.createErr = bookings.ErrOverlapConflict

	_, err := f.uc.Finalize(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestFinalize_SerializationFailuresExhaustedMeanSlotTaken(t *testing.T) {
	f := newFixture(t)
	paidDraft(t, f)
	f.ledger.createErr = fmt.Errorf("%w: insert: %w", bookings.ErrInternal, &pq.Error{Code: "40001"})

	_, err := f.uc.Finalize(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestFinalize_SideEffectFailuresBecomeWarnings(t *testing.T) {
	f := newFixture(t)
	paidDraft(t, f)
	f.calendar.On("CreateBookingEvent", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("calendar down"))
	f.notifier.On("SendConfirmation", mock.Anything, mock.Anything).Return(notifications.ErrSend)

	res, err := f.uc.Finalize(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.NotNil(t, res.Booking)
	assert.Equal(t, []string{"calendar event could not be created", "confirmation email could not be sent"}, res.Warnings)
}

func TestFinalize_TravelBlocksAroundAdjacentBookings(t *testing.T) {
	f := newFixture(t)
	paidDraft(t, f)
	f.ledger.bookings = []*domain.Booking{
		{ID: 100, BusinessID: 1, StartTime: time.Date(2030, 3, 4, 8, 0, 0, 0, f.loc), EndTime: time.Date(2030, 3, 4, 9, 0, 0, 0, f.loc), Location: "A St"},
		{ID: 101, BusinessID: 1, StartTime: time.Date(2030, 3, 4, 13, 0, 0, 0, f.loc), EndTime: time.Date(2030, 3, 4, 14, 0, 0, 0, f.loc), Location: "C St"},
		{ID: 102, BusinessID: 1, StartTime: time.Date(2030, 3, 4, 15, 0, 0, 0, f.loc), EndTime: time.Date(2030, 3, 4, 16, 0, 0, 0, f.loc)},
	}
	f.calendar.On("CreateBookingEvent", mock.Anything, mock.Anything, mock.Anything).Return("evt-1", nil)
	f.calendar.On("CreateTravelBlock", mock.Anything, "cal-1", mock.MatchedBy(func(ev gcalendar.Event) bool {
		return ev.Start.Equal(time.Date(2030, 3, 4, 9, 25, 0, 0, f.loc)) && ev.End.Equal(time.Date(2030, 3, 4, 10, 0, 0, 0, f.loc))
	})).Return("travel-1", nil).Once()
	f.calendar.On("CreateTravelBlock", mock.Anything, "cal-1", mock.MatchedBy(func(ev gcalendar.Event) bool {
		return ev.Start.Equal(time.Date(2030, 3, 4, 11, 0, 0, 0, f.loc)) && ev.End.Equal(time.Date(2030, 3, 4, 11, 35, 0, 0, f.loc))
	})).Return("travel-2", nil).Once()
	f.notifier.On("SendConfirmation", mock.Anything, mock.Anything).Return(nil)

	res, err := f.uc.Finalize(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	f.calendar.AssertExpectations(t)
}
