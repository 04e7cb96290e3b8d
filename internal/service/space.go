package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/repository"
)

var (
	ErrSpaceNotFound         = repository.ErrSpaceNotFound
	ErrSpaceTypeNotFound     = repository.ErrSpaceTypeNotFound
	ErrSpaceHasReservations  = errors.New("space has active reservations")
	ErrInvalidOperatingHours = errors.New("closing times must be after the opening time")
)

type SpaceRepository interface {
	Create(ctx context.Context, space domain.Space) (domain.Space, error)
	FindActive(ctx context.Context) ([]domain.Space, error)
	FindByID(ctx context.Context, id uint) (domain.Space, error)
	Update(ctx context.Context, space domain.Space) (domain.Space, error)
	Delete(ctx context.Context, id uint) error
	FindTypes(ctx context.Context) ([]domain.SpaceType, error)
	FindTypeByID(ctx context.Context, id uint) (domain.SpaceType, error)
	CreateType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error)
	UpdateType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error)
}

type SpaceReservationCounter interface {
	CountBlockingBySpace(ctx context.Context, spaceID uint) (int64, error)
}

type SpaceService struct {
	repo         SpaceRepository
	reservations SpaceReservationCounter
}

func NewSpaceService(repo SpaceRepository, reservations SpaceReservationCounter) *SpaceService {
	return &SpaceService{
		repo:         repo,
		reservations: reservations,
	}
}

func (s *SpaceService) GetSpaces(ctx context.Context) ([]domain.Space, error) {
	spaces, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindActive -> %w", err)
	}

	return spaces, nil
}

func (s *SpaceService) GetSpace(ctx context.Context, id uint) (domain.Space, error) {
	space, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Space{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return space, nil
}

func (s *SpaceService) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	if err := s.validateSpace(ctx, space); err != nil {
		return domain.Space{}, err
	}

	space.Active = true

	created, err := s.repo.Create(ctx, space)
	if err != nil {
		return domain.Space{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SpaceService) UpdateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	if err := s.validateSpace(ctx, space); err != nil {
		return domain.Space{}, err
	}

	updated, err := s.repo.Update(ctx, space)
	if err != nil {
		return domain.Space{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteSpace removes a space from the catalog. Blocked while any pending or
// confirmed reservation still references it.
func (s *SpaceService) DeleteSpace(ctx context.Context, id uint) error {
	count, err := s.reservations.CountBlockingBySpace(ctx, id)
	if err != nil {
		return fmt.Errorf("s.reservations.CountBlockingBySpace -> %w", err)
	}
	if count > 0 {
		return ErrSpaceHasReservations
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *SpaceService) GetSpaceTypes(ctx context.Context) ([]domain.SpaceType, error) {
	types, err := s.repo.FindTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTypes -> %w", err)
	}

	return types, nil
}

func (s *SpaceService) CreateSpaceType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error) {
	created, err := s.repo.CreateType(ctx, spaceType)
	if err != nil {
		return domain.SpaceType{}, fmt.Errorf("s.repo.CreateType -> %w", err)
	}

	return created, nil
}

func (s *SpaceService) UpdateSpaceType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error) {
	updated, err := s.repo.UpdateType(ctx, spaceType)
	if err != nil {
		return domain.SpaceType{}, fmt.Errorf("s.repo.UpdateType -> %w", err)
	}

	return updated, nil
}

func (s *SpaceService) validateSpace(ctx context.Context, space domain.Space) error {
	if _, err := s.repo.FindTypeByID(ctx, space.TypeID); err != nil {
		if errors.Is(err, repository.ErrSpaceTypeNotFound) {
			return ErrSpaceTypeNotFound
		}

		return fmt.Errorf("s.repo.FindTypeByID -> %w", err)
	}

	opening, err := parseClock(space.OpeningTime)
	if err != nil {
		return err
	}
	weekday, err := parseClock(space.ClosingWeekday)
	if err != nil {
		return err
	}
	saturday, err := parseClock(space.ClosingSaturday)
	if err != nil {
		return err
	}

	if weekday <= opening || saturday <= opening {
		return ErrInvalidOperatingHours
	}

	return nil
}
