package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/repository"
)

var (
	ErrReservationNotFound  = repository.ErrReservationNotFound
	ErrNotReservationOwner  = errors.New("reservation belongs to another user")
	ErrReservationCancelled = errors.New("reservation is cancelled")
	ErrSpaceUnavailable     = errors.New("space not found or not available")
	ErrDateInPast           = errors.New("reservations cannot be made for past dates")
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error)
	FindByID(ctx context.Context, id uint) (domain.Reservation, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Reservation, error)
	FindAll(ctx context.Context) ([]domain.Reservation, error)
	FindBlockingForSpaceDate(ctx context.Context, spaceID uint, date time.Time) ([]domain.Reservation, error)
	Update(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus) (domain.Reservation, error)
}

type ReservationSpaceRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Space, error)
}

// EventPublisher receives reservation lifecycle notifications. Publishing is
// best effort; implementations log failures and never block the request.
type EventPublisher interface {
	ReservationCreated(ctx context.Context, reservation domain.Reservation)
	ReservationCancelled(ctx context.Context, reservation domain.Reservation)
}

type ReservationService struct {
	repo      ReservationRepository
	spaces    ReservationSpaceRepository
	publisher EventPublisher
	now       func() time.Time
}

func NewReservationService(repo ReservationRepository, spaces ReservationSpaceRepository, publisher EventPublisher) *ReservationService {
	return &ReservationService{
		repo:      repo,
		spaces:    spaces,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *ReservationService) GetOwnReservations(ctx context.Context, userID uint) ([]domain.Reservation, error) {
	reservations, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return reservations, nil
}

func (s *ReservationService) GetAllReservations(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return reservations, nil
}

// CreateReservation validates the proposed slot against the space's operating
// hours and existing claims, then inserts it as pending. The check and the
// insert are not atomic; two simultaneous requests for the same slot can both
// pass the check (kept as-is, see DESIGN.md).
func (s *ReservationService) CreateReservation(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	space, err := s.spaces.FindByID(ctx, reservation.SpaceID)
	if err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return domain.Reservation{}, ErrSpaceUnavailable
		}

		return domain.Reservation{}, fmt.Errorf("s.spaces.FindByID -> %w", err)
	}
	if !space.Active {
		return domain.Reservation{}, ErrSpaceUnavailable
	}

	if dateOnly(reservation.Date).Before(dateOnly(s.now())) {
		return domain.Reservation{}, ErrDateInPast
	}

	existing, err := s.repo.FindBlockingForSpaceDate(ctx, reservation.SpaceID, reservation.Date)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindBlockingForSpaceDate -> %w", err)
	}

	if err = checkAvailability(space, reservation.Date, reservation.StartTime, reservation.EndTime, existing); err != nil {
		return domain.Reservation{}, err
	}

	reservation.Status = domain.StatusPending

	created, err := s.repo.Create(ctx, reservation)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if s.publisher != nil {
		s.publisher.ReservationCreated(ctx, created)
	}

	return created, nil
}

// UpdateReservation applies a partial update. Zero values leave the stored
// field unchanged. Any change to date, start or end re-runs the full
// availability check, excluding the reservation itself.
func (s *ReservationService) UpdateReservation(ctx context.Context, id uint, actor domain.User, patch domain.Reservation) (domain.Reservation, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actor.Role != domain.RoleAdmin && current.UserID != actor.ID {
		return domain.Reservation{}, ErrNotReservationOwner
	}
	if current.Status == domain.StatusCancelled {
		return domain.Reservation{}, ErrReservationCancelled
	}

	next := current
	slotChanged := false
	if !patch.Date.IsZero() && !dateOnly(patch.Date).Equal(dateOnly(current.Date)) {
		next.Date = patch.Date
		slotChanged = true
	}
	if patch.StartTime != "" && patch.StartTime != current.StartTime {
		next.StartTime = patch.StartTime
		slotChanged = true
	}
	if patch.EndTime != "" && patch.EndTime != current.EndTime {
		next.EndTime = patch.EndTime
		slotChanged = true
	}
	if patch.Notes != "" {
		next.Notes = patch.Notes
	}

	if slotChanged {
		space, err := s.spaces.FindByID(ctx, current.SpaceID)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("s.spaces.FindByID -> %w", err)
		}

		existing, err := s.repo.FindBlockingForSpaceDate(ctx, current.SpaceID, next.Date)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("s.repo.FindBlockingForSpaceDate -> %w", err)
		}

		others := existing[:0:0]
		for _, res := range existing {
			if res.ID != current.ID {
				others = append(others, res)
			}
		}

		if err = checkAvailability(space, next.Date, next.StartTime, next.EndTime, others); err != nil {
			return domain.Reservation{}, err
		}
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// CancelReservation flips the status to cancelled, releasing the time slot.
// Cancelled is terminal: a second cancel is rejected.
func (s *ReservationService) CancelReservation(ctx context.Context, id uint, actor domain.User) (domain.Reservation, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if actor.Role != domain.RoleAdmin && current.UserID != actor.ID {
		return domain.Reservation{}, ErrNotReservationOwner
	}
	if current.Status == domain.StatusCancelled {
		return domain.Reservation{}, ErrReservationCancelled
	}

	cancelled, err := s.repo.UpdateStatus(ctx, id, domain.StatusCancelled)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	if s.publisher != nil {
		s.publisher.ReservationCancelled(ctx, cancelled)
	}

	return cancelled, nil
}

// GetAvailability returns the space's operating bounds and the blocking
// intervals for one date, for client-side slot rendering.
func (s *ReservationService) GetAvailability(ctx context.Context, spaceID uint, date time.Time) (domain.DayAvailability, error) {
	space, err := s.spaces.FindByID(ctx, spaceID)
	if err != nil {
		return domain.DayAvailability{}, fmt.Errorf("s.spaces.FindByID -> %w", err)
	}

	existing, err := s.repo.FindBlockingForSpaceDate(ctx, spaceID, date)
	if err != nil {
		return domain.DayAvailability{}, fmt.Errorf("s.repo.FindBlockingForSpaceDate -> %w", err)
	}

	slots := make([]domain.TimeSlot, 0, len(existing))
	for _, res := range existing {
		slots = append(slots, domain.TimeSlot{StartTime: res.StartTime, EndTime: res.EndTime})
	}

	return domain.DayAvailability{
		OpeningTime:     space.OpeningTime,
		ClosingWeekday:  space.ClosingWeekday,
		ClosingSaturday: space.ClosingSaturday,
		Reserved:        slots,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
