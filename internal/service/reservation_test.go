package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/repository"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) Create(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	args := m.Called(ctx, reservation)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) FindBlockingForSpaceDate(ctx context.Context, spaceID uint, date time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, spaceID, date)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) Update(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	args := m.Called(ctx, reservation)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus) (domain.Reservation, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.Reservation), args.Error(1)
}

type mockSpaceFinder struct {
	mock.Mock
}

func (m *mockSpaceFinder) FindByID(ctx context.Context, id uint) (domain.Space, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Space), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) ReservationCreated(ctx context.Context, reservation domain.Reservation) {
	m.Called(ctx, reservation)
}

func (m *mockPublisher) ReservationCancelled(ctx context.Context, reservation domain.Reservation) {
	m.Called(ctx, reservation)
}

func newTestReservationService(repo *mockReservationRepo, spaces *mockSpaceFinder, publisher EventPublisher) *ReservationService {
	svc := NewReservationService(repo, spaces, publisher)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateReservation(t *testing.T) {
	proposed := domain.Reservation{
		UserID:    5,
		SpaceID:   1,
		Date:      friday,
		StartTime: "14:00",
		EndTime:   "15:00",
	}

	t.Run("free slot creates a pending reservation and publishes", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		publisher := new(mockPublisher)
		svc := newTestReservationService(repo, spaces, publisher)

		spaces.On("FindByID", mock.Anything, uint(1)).Return(testSpace(), nil)
		repo.On("FindBlockingForSpaceDate", mock.Anything, uint(1), friday).Return([]domain.Reservation{}, nil)

		stored := proposed
		stored.ID = 42
		stored.Status = domain.StatusPending
		repo.On("Create", mock.Anything, mock.MatchedBy(func(r domain.Reservation) bool {
			return r.Status == domain.StatusPending
		})).Return(stored, nil)
		publisher.On("ReservationCreated", mock.Anything, stored).Return()

		created, err := svc.CreateReservation(context.Background(), proposed)

		require.NoError(t, err)
		assert.Equal(t, uint(42), created.ID)
		assert.Equal(t, domain.StatusPending, created.Status)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("overlap with a blocking reservation is rejected", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		spaces.On("FindByID", mock.Anything, uint(1)).Return(testSpace(), nil)
		repo.On("FindBlockingForSpaceDate", mock.Anything, uint(1), friday).Return([]domain.Reservation{
			{ID: 9, StartTime: "14:30", EndTime: "15:30", Status: domain.StatusPending},
		}, nil)

		_, err := svc.CreateReservation(context.Background(), proposed)

		assert.ErrorIs(t, err, ErrReservationOverlap)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown space maps to unavailable", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		spaces.On("FindByID", mock.Anything, uint(1)).Return(domain.Space{}, repository.ErrSpaceNotFound)

		_, err := svc.CreateReservation(context.Background(), proposed)

		assert.ErrorIs(t, err, ErrSpaceUnavailable)
	})

	t.Run("inactive space is unavailable", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		inactive := testSpace()
		inactive.Active = false
		spaces.On("FindByID", mock.Anything, uint(1)).Return(inactive, nil)

		_, err := svc.CreateReservation(context.Background(), proposed)

		assert.ErrorIs(t, err, ErrSpaceUnavailable)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		spaces.On("FindByID", mock.Anything, uint(1)).Return(testSpace(), nil)

		past := proposed
		past.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		_, err := svc.CreateReservation(context.Background(), past)

		assert.ErrorIs(t, err, ErrDateInPast)
	})

	t.Run("same day is allowed", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		sameDay := proposed
		sameDay.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		spaces.On("FindByID", mock.Anything, uint(1)).Return(testSpace(), nil)
		repo.On("FindBlockingForSpaceDate", mock.Anything, uint(1), sameDay.Date).Return([]domain.Reservation{}, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(sameDay, nil)

		_, err := svc.CreateReservation(context.Background(), sameDay)

		assert.NoError(t, err)
	})
}

func TestUpdateReservation(t *testing.T) {
	owner := domain.User{ID: 5, Role: domain.RoleRegular}
	admin := domain.User{ID: 99, Role: domain.RoleAdmin}
	stored := domain.Reservation{
		ID:        42,
		UserID:    5,
		SpaceID:   1,
		Date:      friday,
		StartTime: "14:00:00",
		EndTime:   "15:00:00",
		Status:    domain.StatusPending,
	}

	t.Run("changing the slot re-runs the check excluding itself", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		repo.On("FindByID", mock.Anything, uint(42)).Return(stored, nil)
		spaces.On("FindByID", mock.Anything, uint(1)).Return(testSpace(), nil)
		// The stored reservation itself comes back from the blocking query
		// and must not conflict with its own move.
		repo.On("FindBlockingForSpaceDate", mock.Anything, uint(1), friday).Return([]domain.Reservation{stored}, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(r domain.Reservation) bool {
			return r.StartTime == "14:30" && r.EndTime == "15:30"
		})).Return(stored, nil)

		_, err := svc.UpdateReservation(context.Background(), 42, owner, domain.Reservation{
			StartTime: "14:30",
			EndTime:   "15:30",
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("moving onto another reservation is rejected", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		repo.On("FindByID", mock.Anything, uint(42)).Return(stored, nil)
		spaces.On("FindByID", mock.Anything, uint(1)).Return(testSpace(), nil)
		repo.On("FindBlockingForSpaceDate", mock.Anything, uint(1), friday).Return([]domain.Reservation{
			stored,
			{ID: 50, StartTime: "16:00:00", EndTime: "17:00:00", Status: domain.StatusConfirmed},
		}, nil)

		_, err := svc.UpdateReservation(context.Background(), 42, owner, domain.Reservation{
			StartTime: "16:30",
			EndTime:   "17:30",
		})

		assert.ErrorIs(t, err, ErrReservationOverlap)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("notes-only update skips the availability check", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		repo.On("FindByID", mock.Anything, uint(42)).Return(stored, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(r domain.Reservation) bool {
			return r.Notes == "proyector" && r.StartTime == stored.StartTime
		})).Return(stored, nil)

		_, err := svc.UpdateReservation(context.Background(), 42, owner, domain.Reservation{Notes: "proyector"})

		require.NoError(t, err)
		spaces.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("another user's reservation is off limits", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		repo.On("FindByID", mock.Anything, uint(42)).Return(stored, nil)

		stranger := domain.User{ID: 6, Role: domain.RoleRegular}
		_, err := svc.UpdateReservation(context.Background(), 42, stranger, domain.Reservation{Notes: "x"})

		assert.ErrorIs(t, err, ErrNotReservationOwner)
	})

	t.Run("admin can update anyone's reservation", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		repo.On("FindByID", mock.Anything, uint(42)).Return(stored, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(stored, nil)

		_, err := svc.UpdateReservation(context.Background(), 42, admin, domain.Reservation{Notes: "x"})

		assert.NoError(t, err)
	})

	t.Run("cancelled reservation cannot be updated", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		cancelled := stored
		cancelled.Status = domain.StatusCancelled
		repo.On("FindByID", mock.Anything, uint(42)).Return(cancelled, nil)

		_, err := svc.UpdateReservation(context.Background(), 42, owner, domain.Reservation{Notes: "x"})

		assert.ErrorIs(t, err, ErrReservationCancelled)
	})
}

func TestCancelReservation(t *testing.T) {
	owner := domain.User{ID: 5, Role: domain.RoleRegular}
	stored := domain.Reservation{ID: 42, UserID: 5, SpaceID: 1, Status: domain.StatusConfirmed}

	t.Run("owner cancels and the event is published", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		publisher := new(mockPublisher)
		svc := newTestReservationService(repo, spaces, publisher)

		cancelled := stored
		cancelled.Status = domain.StatusCancelled
		repo.On("FindByID", mock.Anything, uint(42)).Return(stored, nil)
		repo.On("UpdateStatus", mock.Anything, uint(42), domain.StatusCancelled).Return(cancelled, nil)
		publisher.On("ReservationCancelled", mock.Anything, cancelled).Return()

		got, err := svc.CancelReservation(context.Background(), 42, owner)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
		publisher.AssertExpectations(t)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		cancelled := stored
		cancelled.Status = domain.StatusCancelled
		repo.On("FindByID", mock.Anything, uint(42)).Return(cancelled, nil)

		_, err := svc.CancelReservation(context.Background(), 42, owner)

		assert.ErrorIs(t, err, ErrReservationCancelled)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		repo := new(mockReservationRepo)
		spaces := new(mockSpaceFinder)
		svc := newTestReservationService(repo, spaces, nil)

		repo.On("FindByID", mock.Anything, uint(42)).Return(stored, nil)

		stranger := domain.User{ID: 6, Role: domain.RoleRegular}
		_, err := svc.CancelReservation(context.Background(), 42, stranger)

		assert.ErrorIs(t, err, ErrNotReservationOwner)
	})
}

func TestGetAvailability(t *testing.T) {
	repo := new(mockReservationRepo)
	spaces := new(mockSpaceFinder)
	svc := newTestReservationService(repo, spaces, nil)

	spaces.On("FindByID", mock.Anything, uint(1)).Return(testSpace(), nil)
	repo.On("FindBlockingForSpaceDate", mock.Anything, uint(1), friday).Return([]domain.Reservation{
		{ID: 7, StartTime: "10:00:00", EndTime: "11:00:00", Status: domain.StatusConfirmed},
		{ID: 8, StartTime: "12:00:00", EndTime: "13:30:00", Status: domain.StatusPending},
	}, nil)

	day, err := svc.GetAvailability(context.Background(), 1, friday)

	require.NoError(t, err)
	assert.Equal(t, "08:00", day.OpeningTime)
	assert.Equal(t, "18:00", day.ClosingWeekday)
	assert.Equal(t, "14:00", day.ClosingSaturday)
	require.Len(t, day.Reserved, 2)
	assert.Equal(t, domain.TimeSlot{StartTime: "10:00:00", EndTime: "11:00:00"}, day.Reserved[0])
}
