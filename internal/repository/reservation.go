package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/repository/dao"
)

var ErrReservationNotFound = dao.ErrReservationNotFound

type ReservationDAO interface {
	Insert(ctx context.Context, reservation dao.Reservation) (dao.Reservation, error)
	FindByID(ctx context.Context, id uint) (dao.Reservation, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.ReservationRow, error)
	FindAll(ctx context.Context) ([]dao.ReservationRow, error)
	FindBlockingForSpaceDate(ctx context.Context, spaceID uint, date time.Time) ([]dao.Reservation, error)
	Update(ctx context.Context, reservation dao.Reservation) (dao.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status string) (dao.Reservation, error)
	CountBlockingByUser(ctx context.Context, userID uint) (int64, error)
	CountBlockingBySpace(ctx context.Context, spaceID uint) (int64, error)
}

type ReservationRepository struct {
	dao ReservationDAO
}

func NewReservationRepository(dao ReservationDAO) *ReservationRepository {
	return &ReservationRepository{
		dao: dao,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	created, err := r.dao.Insert(ctx, dao.Reservation{
		UserID:    reservation.UserID,
		SpaceID:   reservation.SpaceID,
		Date:      reservation.Date,
		StartTime: reservation.StartTime,
		EndTime:   reservation.EndTime,
		Notes:     reservation.Notes,
		Status:    string(reservation.Status),
	})
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ReservationRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Reservation, error) {
	rows, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *ReservationRepository) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *ReservationRepository) FindBlockingForSpaceDate(ctx context.Context, spaceID uint, date time.Time) ([]domain.Reservation, error) {
	found, err := r.dao.FindBlockingForSpaceDate(ctx, spaceID, date)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindBlockingForSpaceDate -> %w", err)
	}

	reservations := make([]domain.Reservation, 0, len(found))
	for _, res := range found {
		reservations = append(reservations, r.daoToDomain(res))
	}

	return reservations, nil
}

func (r *ReservationRepository) Update(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	updated, err := r.dao.Update(ctx, dao.Reservation{
		ID:        reservation.ID,
		Date:      reservation.Date,
		StartTime: reservation.StartTime,
		EndTime:   reservation.EndTime,
		Notes:     reservation.Notes,
	})
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus) (domain.Reservation, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status))
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ReservationRepository) CountBlockingByUser(ctx context.Context, userID uint) (int64, error) {
	count, err := r.dao.CountBlockingByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBlockingByUser -> %w", err)
	}

	return count, nil
}

func (r *ReservationRepository) CountBlockingBySpace(ctx context.Context, spaceID uint) (int64, error) {
	count, err := r.dao.CountBlockingBySpace(ctx, spaceID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBlockingBySpace -> %w", err)
	}

	return count, nil
}

func (r *ReservationRepository) daoToDomain(res dao.Reservation) domain.Reservation {
	return domain.Reservation{
		ID:        res.ID,
		UserID:    res.UserID,
		SpaceID:   res.SpaceID,
		Date:      res.Date,
		StartTime: res.StartTime,
		EndTime:   res.EndTime,
		Notes:     res.Notes,
		Status:    domain.ReservationStatus(res.Status),
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

func (r *ReservationRepository) rowsToDomain(rows []dao.ReservationRow) []domain.Reservation {
	reservations := make([]domain.Reservation, 0, len(rows))
	for _, row := range rows {
		res := r.daoToDomain(row.Reservation)
		res.SpaceName = row.SpaceName
		res.SpaceLocation = row.SpaceLocation
		res.SpaceTypeName = row.SpaceTypeName
		res.UserName = row.UserName
		res.UserEmail = row.UserEmail
		reservations = append(reservations, res)
	}

	return reservations
}
