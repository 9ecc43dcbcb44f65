package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	barberRepo "trimly/database/repository/barber"
	reservationRepo "trimly/database/repository/reservation"
	serviceRepo "trimly/database/repository/service"
	"trimly/models"
	"trimly/services/schedule"
	"trimly/services/tenant"
)

const (
	testTenantID  = "tn-1"
	testBarberID  = "bb-1"
	testServiceID = "sv-1"
)

// testDate is a Monday.
const testDate = "2026-09-14"

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubBarberRepo struct{ barber *models.Barber }

func (s *stubBarberRepo) GetByID(_ context.Context, _, barberID string) (*models.Barber, error) {
	if s.barber == nil || s.barber.ID != barberID {
		return nil, barberRepo.ErrNotFound
	}
	return s.barber, nil
}

func (s *stubBarberRepo) GetSchedule(ctx context.Context, tenantID, barberID string) ([]models.DaySchedule, error) {
	b, err := s.GetByID(ctx, tenantID, barberID)
	if err != nil {
		return nil, err
	}
	return b.Schedule, nil
}

func (s *stubBarberRepo) UpsertSchedule(_ context.Context, _, _ string, schedule []models.DaySchedule) error {
	s.barber.Schedule = schedule
	return nil
}

type stubServiceRepo struct{ service *models.Service }

func (s *stubServiceRepo) GetByID(_ context.Context, _, serviceID string) (*models.Service, error) {
	if s.service == nil || s.service.ID != serviceID {
		return nil, serviceRepo.ErrNotFound
	}
	return s.service, nil
}

// memReservationRepo mimics the mongo repository's concurrency contract: a
// mutex plus a uniqueness check on (tenant, barber, date, start) over
// occupying statuses, so racing inserts resolve to exactly one winner.
type memReservationRepo struct {
	mu           sync.Mutex
	reservations []models.Reservation
	insertErr    error
}

func (m *memReservationRepo) FindActiveByBarberDate(_ context.Context, tenantID, barberID, date string) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.TenantID == tenantID && r.BarberID == barberID && r.Date == date && r.Occupies() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservationRepo) Insert(_ context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, existing := range m.reservations {
		if existing.TenantID == r.TenantID && existing.BarberID == r.BarberID &&
			existing.Date == r.Date && existing.Start == r.Start && existing.Occupies() {
			return reservationRepo.ErrDuplicateSlot
		}
	}
	m.reservations = append(m.reservations, *r)
	return nil
}

func (m *memReservationRepo) FindByID(_ context.Context, tenantID, id string) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reservations {
		if m.reservations[i].TenantID == tenantID && m.reservations[i].ID == id {
			r := m.reservations[i]
			return &r, nil
		}
	}
	return nil, reservationRepo.ErrNotFound
}

func (m *memReservationRepo) ListByDate(_ context.Context, tenantID, date string) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.TenantID == tenantID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservationRepo) TransitionStatus(_ context.Context, tenantID, id string, from, to models.ReservationStatus, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reservations {
		r := &m.reservations[i]
		if r.TenantID == tenantID && r.ID == id && r.Status == from {
			r.Status = to
			switch to {
			case models.StatusCancelled:
				r.CancelledAt = &at
			case models.StatusCompleted:
				r.CompletedAt = &at
			}
			return nil
		}
	}
	return reservationRepo.ErrNotFound
}

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (e *recordingEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func activeTenant() *models.Tenant {
	return &models.Tenant{ID: testTenantID, Slug: "fadecity", Name: "Fade City", Active: true}
}

func newTestService(t *testing.T) (*DefaultBookingService, *memReservationRepo, *recordingEnqueuer) {
	t.Helper()
	reservations := &memReservationRepo{}
	enqueuer := &recordingEnqueuer{}
	barbers := &stubBarberRepo{barber: &models.Barber{
		ID: testBarberID, TenantID: testTenantID, Active: true,
		Schedule: []models.DaySchedule{{
			Day: time.Monday, Active: true,
			Blocks: []models.WorkingBlock{{Start: 540, End: 1020}}, // 09:00-17:00
		}},
	}}
	services := &stubServiceRepo{service: &models.Service{
		ID: testServiceID, TenantID: testTenantID, Name: "Classic Cut", DurationMinutes: 60, Active: true,
	}}
	clock := fixedClock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}

	svc := &DefaultBookingService{
		Reservations: reservations,
		Services:     services,
		Allocator: &schedule.Allocator{
			Barbers:      barbers,
			Services:     services,
			Reservations: reservations,
			Clock:        clock,
			HorizonDays:  365,
		},
		Resolver: &tenant.Resolver{},
		Tasks:    enqueuer,
		Clock:    clock,
	}
	return svc, reservations, enqueuer
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		BarberID:    testBarberID,
		ServiceID:   testServiceID,
		Date:        testDate,
		StartTime:   "10:00",
		ClientName:  "Jamie Otieno",
		ClientEmail: "jamie@example.com",
	}
}

func TestCreateReservation(t *testing.T) {
	svc, reservations, enqueuer := newTestService(t)

	result, err := svc.CreateReservation(context.Background(), activeTenant(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.ReservationID)
	assert.NotEmpty(t, result.CancelToken)

	stored, err := reservations.FindByID(context.Background(), testTenantID, result.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReserved, stored.Status)
	assert.Equal(t, 600, stored.Start)
	assert.Equal(t, 60, stored.DurationMinutes)
	assert.Equal(t, result.CancelToken, stored.CancelToken)
	assert.Len(t, enqueuer.tasks, 1)
}

func TestCreateReservationDoubleBooking(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateReservation(context.Background(), activeTenant(), validRequest())
	require.NoError(t, err)

	_, err = svc.CreateReservation(context.Background(), activeTenant(), validRequest())
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))
}

func TestCreateReservationConcurrentSameSlot(t *testing.T) {
	// Many goroutines race for one slot: exactly one insert wins, every
	// other request resolves to a conflict.
	svc, reservations, _ := newTestService(t)

	const attempts = 16
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateReservation(context.Background(), activeTenant(), validRequest())
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case CodeOf(err) == CodeConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)

	stored, err := reservations.ListByDate(context.Background(), testTenantID, testDate)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateReservationSuspendedTenant(t *testing.T) {
	svc, _, _ := newTestService(t)
	suspended := activeTenant()
	suspended.Suspended = true

	_, err := svc.CreateReservation(context.Background(), suspended, validRequest())
	require.Error(t, err)
	assert.Equal(t, CodeForbidden, CodeOf(err))
}

func TestCreateReservationValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{"blank name", func(r *models.BookingRequest) { r.ClientName = "   " }},
		{"bad email", func(r *models.BookingRequest) { r.ClientEmail = "not-an-email" }},
		{"bad start time", func(r *models.BookingRequest) { r.StartTime = "10am" }},
		{"missing barber", func(r *models.BookingRequest) { r.BarberID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.CreateReservation(context.Background(), activeTenant(), req)
			require.Error(t, err)
			assert.Equal(t, CodeValidation, CodeOf(err))
		})
	}
}

func TestCreateReservationUnknownService(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validRequest()
	req.ServiceID = "nope"

	_, err := svc.CreateReservation(context.Background(), activeTenant(), req)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestCreateReservationOffGridStart(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validRequest()
	req.StartTime = "10:15"

	_, err := svc.CreateReservation(context.Background(), activeTenant(), req)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, CodeOf(err))
}

func TestCreateReservationEnqueueFailureDoesNotFailBooking(t *testing.T) {
	svc, _, enqueuer := newTestService(t)
	enqueuer.err = errors.New("redis down")

	result, err := svc.CreateReservation(context.Background(), activeTenant(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.ReservationID)
}

func TestCreateReservationNormalizesClientFields(t *testing.T) {
	svc, reservations, _ := newTestService(t)
	req := validRequest()
	req.ClientName = "  Jamie Otieno  "
	req.ClientEmail = "  Jamie@Example.COM "

	result, err := svc.CreateReservation(context.Background(), activeTenant(), req)
	require.NoError(t, err)

	stored, err := reservations.FindByID(context.Background(), testTenantID, result.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, "Jamie Otieno", stored.ClientName)
	assert.Equal(t, "jamie@example.com", stored.ClientEmail)
}

func TestCancelledSlotIsBookableAgain(t *testing.T) {
	svc, _, _ := newTestService(t)

	first, err := svc.CreateReservation(context.Background(), activeTenant(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.CancelByToken(context.Background(), activeTenant(), first.ReservationID, first.CancelToken))

	second, err := svc.CreateReservation(context.Background(), activeTenant(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ReservationID, second.ReservationID)
}
