package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	"github.com/m04kA/SMC-DetailingService/internal/service/holds"
	"github.com/m04kA/SMC-DetailingService/internal/service/slots"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
	"github.com/m04kA/SMC-DetailingService/pkg/ptr"
)

type fakeBusinesses struct {
	business *domain.Business
	service  *domain.Service
	hours    map[time.Weekday]*domain.BusinessHours
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

func (f *fakeBusinesses) GetHours(_ context.Context, _ int64, day time.Weekday) (*domain.BusinessHours, error) {
	h, ok := f.hours[day]
	if !ok {
		return nil, businessRepo.ErrHoursNotFound
	}
	return h, nil
}

type fakeLedger struct {
	bookings []*domain.Booking
	filter   domain.BusinessBookingsFilter
}

func (f *fakeLedger) ListActive(_ context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, nil
}

type mockCalendar struct {
	mock.Mock
}

func (m *mockCalendar) ListBusy(ctx context.Context, calendarID string, from, to time.Time, loc *time.Location) ([]domain.BusyInterval, error) {
	args := m.Called(ctx, calendarID, from, to, loc)
	busy, _ := args.Get(0).([]domain.BusyInterval)
	return busy, args.Error(1)
}

type countingMetrics struct {
	observed []int
}

func (m *countingMetrics) ObserveSlotsReturned(_ bool, count int) {
	m.observed = append(m.observed, count)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc       *UseCase
	ledger   *fakeLedger
	holds    *holds.Registry
	calendar *mockCalendar
	metrics  *countingMetrics
	loc      *time.Location
	biz      *fakeBusinesses
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	biz := &fakeBusinesses{
		business: &domain.Business{ID: 1, Name: "Silent Wash", Timezone: "America/New_York", CalendarID: ptr.Ptr("cal-1")},
		service:  &domain.Service{ID: 10, Name: "Wash", DurationMinutes: 60, Active: true},
		hours: map[time.Weekday]*domain.BusinessHours{
			time.Monday: {BusinessID: 1, DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "17:00"},
		},
	}
	ledger := &fakeLedger{bookings: []*domain.Booking{{
		ID:        100,
		StartTime: time.Date(2030, 3, 4, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2030, 3, 4, 11, 0, 0, 0, loc),
		Status:    domain.StatusConfirmed,
	}}}
	registry := holds.NewRegistry(5*time.Minute, nil, logger.NewDiscard())
	calendar := &mockCalendar{}
	metrics := &countingMetrics{}
	engine := slots.NewEngine(domain.ScheduleRules{}, nil, logger.NewDiscard())

	uc := NewUseCase(biz, ledger, calendar, engine, registry, metrics, false, logger.NewDiscard()).
		WithTimeProvider(fixedClock{now: time.Date(2030, 3, 1, 12, 0, 0, 0, loc)})

	return &fixture{uc: uc, ledger: ledger, holds: registry, calendar: calendar, metrics: metrics, loc: loc, biz: biz}
}

func request() *Request {
	return &Request{BusinessID: 1, ServiceID: 10, Date: "2030-03-04"}
}

func TestExecute_Scenario(t *testing.T) {
	f := newFixture(t)
	f.calendar.On("ListBusy", mock.Anything, "cal-1", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.BusyInterval{}, nil)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 29)
	assert.Equal(t, "11:15 AM", resp.Slots[0].Start)
	assert.Equal(t, "12:15 PM", resp.Slots[0].End)
	assert.Equal(t, "2030-03-04T11:15:00-05:00", resp.Slots[0].StartsAt)
	assert.Equal(t, "3:55 PM", resp.Slots[28].Start)
	assert.Equal(t, []int{29}, f.metrics.observed)

	// Бронирования запрашиваются за весь день бизнеса
	assert.Equal(t, time.Date(2030, 3, 4, 0, 0, 0, 0, f.loc), *f.ledger.filter.From)
	assert.Equal(t, time.Date(2030, 3, 5, 0, 0, 0, 0, f.loc), *f.ledger.filter.To)
}

func TestExecute_HeldSlotHidden(t *testing.T) {
	f := newFixture(t)
	f.calendar.On("ListBusy", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.BusyInterval{}, nil)

	require.NoError(t, f.holds.Hold(domain.HoldKey{BusinessID: 1, Date: "2030-03-04", Time: "11:25"}, time.Hour))

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 28)
	assert.Equal(t, "11:15 AM", resp.Slots[0].Start)
	assert.Equal(t, "11:35 AM", resp.Slots[1].Start)
}

func TestExecute_CalendarEventsBlock(t *testing.T) {
	f := newFixture(t)
	f.calendar.On("ListBusy", mock.Anything, "cal-1", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.BusyInterval{{
			Start: time.Date(2030, 3, 4, 13, 0, 0, 0, f.loc),
			End:   time.Date(2030, 3, 4, 17, 0, 0, 0, f.loc),
		}}, nil)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	starts := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"11:15 AM", "11:25 AM", "11:35 AM", "11:45 AM"}, starts)
}

func TestExecute_CalendarFailureDegrades(t *testing.T) {
	f := newFixture(t)
	f.calendar.On("ListBusy", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("calendar down"))

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 29)
}

func TestExecute_NoCalendarConfigured(t *testing.T) {
	f := newFixture(t)
	f.biz.business.CalendarID = nil

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 29)
	f.calendar.AssertNotCalled(t, "ListBusy", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture(t)

	req := request()
	req.Date = "2030-03-03" // воскресенье, часов нет
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, []int{0}, f.metrics.observed)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *fixture, r *Request)
		wantErr error
	}{
		{
			name:    "bad date",
			mutate:  func(_ *fixture, r *Request) { r.Date = "03/04/2030" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			mutate:  func(_ *fixture, r *Request) { r.Date = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing service",
			mutate:  func(_ *fixture, r *Request) { r.ServiceID = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown business",
			mutate:  func(_ *fixture, r *Request) { r.BusinessID = 2 },
			wantErr: ErrBusinessNotFound,
		},
		{
			name:    "unknown service",
			mutate:  func(_ *fixture, r *Request) { r.ServiceID = 11 },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "inactive service",
			mutate:  func(f *fixture, _ *Request) { f.biz.service.Active = false },
			wantErr: ErrServiceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := request()
			tt.mutate(f, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDestination(t *testing.T) {
	assert.Equal(t, "", destination(&Request{Address: "  "}))
	assert.Equal(t, "1 Main St", destination(&Request{Address: "1 Main St"}))
	assert.Equal(t, "1 Main St, Apt 2", destination(&Request{Address: "1 Main St ", Unit: ptr.Ptr(" Apt 2")}))
}
