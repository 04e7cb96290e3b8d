package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/repository"
)

type mockSpaceRepo struct {
	mock.Mock
}

func (m *mockSpaceRepo) Create(ctx context.Context, space domain.Space) (domain.Space, error) {
	args := m.Called(ctx, space)
	return args.Get(0).(domain.Space), args.Error(1)
}

func (m *mockSpaceRepo) FindActive(ctx context.Context) ([]domain.Space, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Space), args.Error(1)
}

func (m *mockSpaceRepo) FindByID(ctx context.Context, id uint) (domain.Space, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Space), args.Error(1)
}

func (m *mockSpaceRepo) Update(ctx context.Context, space domain.Space) (domain.Space, error) {
	args := m.Called(ctx, space)
	return args.Get(0).(domain.Space), args.Error(1)
}

func (m *mockSpaceRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSpaceRepo) FindTypes(ctx context.Context) ([]domain.SpaceType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SpaceType), args.Error(1)
}

func (m *mockSpaceRepo) FindTypeByID(ctx context.Context, id uint) (domain.SpaceType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.SpaceType), args.Error(1)
}

func (m *mockSpaceRepo) CreateType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error) {
	args := m.Called(ctx, spaceType)
	return args.Get(0).(domain.SpaceType), args.Error(1)
}

func (m *mockSpaceRepo) UpdateType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error) {
	args := m.Called(ctx, spaceType)
	return args.Get(0).(domain.SpaceType), args.Error(1)
}

type mockSpaceReservationCounter struct {
	mock.Mock
}

func (m *mockSpaceReservationCounter) CountBlockingBySpace(ctx context.Context, spaceID uint) (int64, error) {
	args := m.Called(ctx, spaceID)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreateSpace(t *testing.T) {
	proposed := domain.Space{
		Name:            "Sala Norte",
		TypeID:          2,
		Capacity:        12,
		OpeningTime:     "08:00",
		ClosingWeekday:  "18:00",
		ClosingSaturday: "14:00",
	}

	t.Run("valid space is created active", func(t *testing.T) {
		repo := new(mockSpaceRepo)
		svc := NewSpaceService(repo, new(mockSpaceReservationCounter))

		repo.On("FindTypeByID", mock.Anything, uint(2)).Return(domain.SpaceType{ID: 2}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(s domain.Space) bool {
			return s.Active
		})).Return(proposed, nil)

		_, err := svc.CreateSpace(context.Background(), proposed)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		repo := new(mockSpaceRepo)
		svc := NewSpaceService(repo, new(mockSpaceReservationCounter))

		repo.On("FindTypeByID", mock.Anything, uint(2)).Return(domain.SpaceType{}, repository.ErrSpaceTypeNotFound)

		_, err := svc.CreateSpace(context.Background(), proposed)

		assert.ErrorIs(t, err, ErrSpaceTypeNotFound)
	})

	t.Run("closing before opening is rejected", func(t *testing.T) {
		repo := new(mockSpaceRepo)
		svc := NewSpaceService(repo, new(mockSpaceReservationCounter))

		repo.On("FindTypeByID", mock.Anything, uint(2)).Return(domain.SpaceType{ID: 2}, nil)

		bad := proposed
		bad.ClosingSaturday = "07:00"

		_, err := svc.CreateSpace(context.Background(), bad)

		assert.ErrorIs(t, err, ErrInvalidOperatingHours)
	})

	t.Run("malformed hours are rejected", func(t *testing.T) {
		repo := new(mockSpaceRepo)
		svc := NewSpaceService(repo, new(mockSpaceReservationCounter))

		repo.On("FindTypeByID", mock.Anything, uint(2)).Return(domain.SpaceType{ID: 2}, nil)

		bad := proposed
		bad.OpeningTime = "8am"

		_, err := svc.CreateSpace(context.Background(), bad)

		assert.ErrorIs(t, err, ErrInvalidClockValue)
	})
}

func TestDeleteSpace(t *testing.T) {
	t.Run("blocked while reservations exist", func(t *testing.T) {
		repo := new(mockSpaceRepo)
		counter := new(mockSpaceReservationCounter)
		svc := NewSpaceService(repo, counter)

		counter.On("CountBlockingBySpace", mock.Anything, uint(1)).Return(int64(3), nil)

		err := svc.DeleteSpace(context.Background(), 1)

		assert.ErrorIs(t, err, ErrSpaceHasReservations)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes when only cancelled reservations remain", func(t *testing.T) {
		repo := new(mockSpaceRepo)
		counter := new(mockSpaceReservationCounter)
		svc := NewSpaceService(repo, counter)

		counter.On("CountBlockingBySpace", mock.Anything, uint(1)).Return(int64(0), nil)
		repo.On("Delete", mock.Anything, uint(1)).Return(nil)

		err := svc.DeleteSpace(context.Background(), 1)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
