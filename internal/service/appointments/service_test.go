package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/SFD-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SFD-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SFD-SchedulingService/pkg/inflight"
	"github.com/m04kA/SFD-SchedulingService/pkg/ptr"
)

type fakeRepo struct {
	appts map[int64]*domain.Appointment

	cancelled map[int64]string
	updated   map[int64]domain.AppointmentStatus
	deleted   []int64

	lastFilter domain.StaffAppointmentsFilter
}

func newFakeRepo(appts ...*domain.Appointment) *fakeRepo {
	r := &fakeRepo{
		appts:     map[int64]*domain.Appointment{},
		cancelled: map[int64]string{},
		updated:   map[int64]domain.AppointmentStatus{},
	}
	for _, a := range appts {
		r.appts[a.ID] = a
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.appts[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (r *fakeRepo) GetByStaffWithFilter(_ context.Context, filter domain.StaffAppointmentsFilter) ([]*domain.Appointment, error) {
	r.lastFilter = filter
	var out []*domain.Appointment
	for _, a := range r.appts {
		if a.StaffID == filter.StaffID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := r.appts[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	r.updated[id] = status
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := r.appts[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	r.cancelled[id] = reason
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.appts[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	delete(r.appts, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func adminSession() *domain.Session {
	return &domain.Session{StaffID: 1, Role: domain.RoleAdmin}
}

func providerSession(staffID int64) *domain.Session {
	return &domain.Session{StaffID: staffID, Role: domain.RoleProvider}
}

func frontdeskSession(perms ...string) *domain.Session {
	return &domain.Session{StaffID: 99, Role: domain.RoleFrontdesk, Permissions: perms}
}

func bookedAppt(id, staffID int64, start, end time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		StaffID:     staffID,
		ClientID:    500,
		ClientName:  "Dana Reeve",
		ServiceID:   3,
		ServiceType: "Haircut",
		StartAt:     start,
		EndAt:       end,
		Status:      domain.StatusBooked,
	}
}

func TestService_GetByID(t *testing.T) {
	start := time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	repo := newFakeRepo(bookedAppt(10, 7, start, end))

	t.Run("owner provider sees own appointment", func(t *testing.T) {
		svc := NewService(repo, fixedClock{now: start.Add(-time.Hour)}, inflight.NewGuard(), nopLogger{})

		resp, err := svc.GetByID(context.Background(), 10, providerSession(7))
		require.NoError(t, err)
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, "2025-10-14", resp.Date)
		assert.Equal(t, "2:00 PM - 3:00 PM", resp.TimeRange)
		assert.Equal(t, "booked", resp.Status)
	})

	t.Run("ongoing status derived from clock", func(t *testing.T) {
		svc := NewService(repo, fixedClock{now: start.Add(30 * time.Minute)}, inflight.NewGuard(), nopLogger{})

		resp, err := svc.GetByID(context.Background(), 10, adminSession())
		require.NoError(t, err)
		assert.Equal(t, "ongoing", resp.Status)
	})

	t.Run("other provider denied", func(t *testing.T) {
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		_, err := svc.GetByID(context.Background(), 10, providerSession(8))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		_, err := svc.GetByID(context.Background(), 404, adminSession())
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_ListByStaff(t *testing.T) {
	start := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	repo := newFakeRepo(
		bookedAppt(1, 7, start, start.Add(time.Hour)),
		bookedAppt(2, 7, start.Add(2*time.Hour), start.Add(3*time.Hour)),
		bookedAppt(3, 8, start, start.Add(time.Hour)),
	)
	svc := NewService(repo, fixedClock{now: start.Add(-24 * time.Hour)}, inflight.NewGuard(), nopLogger{})

	t.Run("frontdesk with view permission", func(t *testing.T) {
		resp, err := svc.ListByStaff(context.Background(),
			&models.ListStaffAppointmentsRequest{StaffID: 7},
			frontdeskSession(domain.PermViewAppointments))
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 2)
	})

	t.Run("frontdesk without permissions denied", func(t *testing.T) {
		_, err := svc.ListByStaff(context.Background(),
			&models.ListStaffAppointmentsRequest{StaffID: 7},
			frontdeskSession())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("status filter passed to repository", func(t *testing.T) {
		_, err := svc.ListByStaff(context.Background(),
			&models.ListStaffAppointmentsRequest{StaffID: 7, Status: ptr.Ptr("completed")},
			adminSession())
		require.NoError(t, err)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusCompleted, *repo.lastFilter.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.ListByStaff(context.Background(),
			&models.ListStaffAppointmentsRequest{StaffID: 7, Status: ptr.Ptr("ongoing")},
			adminSession())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	start := time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC)

	t.Run("completed goes through UpdateStatus", func(t *testing.T) {
		repo := newFakeRepo(bookedAppt(10, 7, start, start.Add(time.Hour)))
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "completed"}, adminSession())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, repo.updated[10])
	})

	t.Run("cancelled goes through Cancel with reason", func(t *testing.T) {
		repo := newFakeRepo(bookedAppt(10, 7, start, start.Add(time.Hour)))
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{
				Status:             "cancelled",
				CancellationReason: ptr.Ptr("client called to cancel"),
			},
			frontdeskSession(domain.PermManageAppointments))
		require.NoError(t, err)
		assert.Equal(t, "client called to cancel", repo.cancelled[10])
		assert.Empty(t, repo.updated)
	})

	t.Run("cancelling a completed appointment rejected", func(t *testing.T) {
		appt := bookedAppt(10, 7, start, start.Add(time.Hour))
		appt.Status = domain.StatusCompleted
		repo := newFakeRepo(appt)
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "cancelled"}, adminSession())
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("derived ongoing not storable", func(t *testing.T) {
		repo := newFakeRepo(bookedAppt(10, 7, start, start.Add(time.Hour)))
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "ongoing"}, adminSession())
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("provider cannot mutate another staff member", func(t *testing.T) {
		repo := newFakeRepo(bookedAppt(10, 7, start, start.Add(time.Hour)))
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		err := svc.UpdateStatus(context.Background(), 10,
			&models.UpdateStatusRequest{Status: "completed"}, providerSession(8))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_Delete(t *testing.T) {
	start := time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC)

	t.Run("manager deletes appointment", func(t *testing.T) {
		repo := newFakeRepo(bookedAppt(10, 7, start, start.Add(time.Hour)))
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		err := svc.Delete(context.Background(), 10, frontdeskSession(domain.PermManageAppointments))
		require.NoError(t, err)
		assert.Equal(t, []int64{10}, repo.deleted)
	})

	t.Run("view-only frontdesk denied", func(t *testing.T) {
		repo := newFakeRepo(bookedAppt(10, 7, start, start.Add(time.Hour)))
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		err := svc.Delete(context.Background(), 10, frontdeskSession(domain.PermViewAppointments))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing appointment", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

		err := svc.Delete(context.Background(), 404, adminSession())
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

// blockingRepo задерживает Delete, пока тест не откроет release.
// Нужен для проверки, что guard держится на всё время операции.
type blockingRepo struct {
	*fakeRepo

	entered chan struct{}
	release chan struct{}
}

func (r *blockingRepo) Delete(ctx context.Context, id int64) error {
	close(r.entered)
	<-r.release
	return r.fakeRepo.Delete(ctx, id)
}

func TestDelete_ConcurrentOperationRejected(t *testing.T) {
	start := time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC)
	repo := &blockingRepo{
		fakeRepo: newFakeRepo(bookedAppt(42, 7, start, start.Add(time.Hour))),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.Delete(context.Background(), 42, adminSession())
	}()
	<-repo.entered

	// Второй вызов по той же записи, пока первый ещё в репозитории
	err := svc.Delete(context.Background(), 42, adminSession())
	assert.ErrorIs(t, err, ErrBusy)

	close(repo.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, []int64{42}, repo.deleted)
}

func TestUpdateStatus_ConcurrentOperationRejected(t *testing.T) {
	start := time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC)
	repo := newFakeRepo(bookedAppt(42, 7, start, start.Add(time.Hour)))
	guard := inflight.NewGuard()
	svc := NewService(repo, fixedClock{now: start}, guard, nopLogger{})

	// Другая операция по этой записи уже держит guard
	require.True(t, guard.Acquire(42))
	defer guard.Release(42)

	err := svc.UpdateStatus(context.Background(), 42,
		&models.UpdateStatusRequest{Status: "cancelled", CancellationReason: ptr.Ptr("клиент перенёс визит")},
		adminSession())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, repo.cancelled)
}

func TestDelete_GuardReleasedAfterCompletion(t *testing.T) {
	start := time.Date(2025, 10, 14, 14, 0, 0, 0, time.UTC)
	repo := newFakeRepo(
		bookedAppt(42, 7, start, start.Add(time.Hour)),
		bookedAppt(43, 7, start.Add(2*time.Hour), start.Add(3*time.Hour)),
	)
	svc := NewService(repo, fixedClock{now: start}, inflight.NewGuard(), nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), 42, adminSession()))

	// Guard отпущен - последующие операции проходят
	require.NoError(t, svc.Delete(context.Background(), 43, adminSession()))
	err := svc.UpdateStatus(context.Background(), 43,
		&models.UpdateStatusRequest{Status: "completed"}, adminSession())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
