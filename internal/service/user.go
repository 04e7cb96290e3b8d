package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/espacios-app/reservas-api/internal/domain"
)

var ErrUserHasReservations = errors.New("user has active reservations")

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id uint, name, surname, phone string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hashed string) error
	Delete(ctx context.Context, id uint) error
}

type UserReservationCounter interface {
	CountBlockingByUser(ctx context.Context, userID uint) (int64, error)
}

type UserService struct {
	repo         UserRepository
	reservations UserReservationCounter
}

func NewUserService(repo UserRepository, reservations UserReservationCounter) *UserService {
	return &UserService{
		repo:         repo,
		reservations: reservations,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, name, surname, phone string) (domain.User, error) {
	updated, err := s.repo.UpdateProfile(ctx, id, name, surname, phone)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uint, current, next string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if err = s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// DeleteUser hard-deletes a user record. Blocked while any pending or
// confirmed reservation still references the user; cancelled ones don't count.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	count, err := s.reservations.CountBlockingByUser(ctx, id)
	if err != nil {
		return fmt.Errorf("s.reservations.CountBlockingByUser -> %w", err)
	}
	if count > 0 {
		return ErrUserHasReservations
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
