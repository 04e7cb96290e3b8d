package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrReservationNotFound = errors.New("reservation not found")

// blockingStatuses are the statuses that still claim a time slot.
var blockingStatuses = []string{"pending", "confirmed"}

type Reservation struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint `gorm:"not null;index"`
	SpaceID uint `gorm:"not null;index:idx_reservations_space_date"`

	Date      time.Time `gorm:"type:date;not null;index:idx_reservations_space_date"`
	StartTime string    `gorm:"type:time;not null"`
	EndTime   string    `gorm:"type:time;not null"`

	Notes  string
	Status string `gorm:"not null;default:'pending'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ReservationRow is a Reservation joined with display columns for listing.
type ReservationRow struct {
	Reservation
	SpaceName     string
	SpaceLocation string
	SpaceTypeName string
	UserName      string
	UserEmail     string
}

type ReservationDAO struct {
	db *gorm.DB
}

func NewReservationDAO(db *gorm.DB) *ReservationDAO {
	return &ReservationDAO{
		db: db,
	}
}

func (d *ReservationDAO) Insert(ctx context.Context, reservation Reservation) (Reservation, error) {
	result := d.db.WithContext(ctx).Create(&reservation)
	if result.Error != nil {
		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) FindByID(ctx context.Context, id uint) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).First(&reservation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) listQuery(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).
		Table("reservations").
		Select(`reservations.*,
			spaces.name AS space_name,
			spaces.location AS space_location,
			space_types.name AS space_type_name,
			users.name || ' ' || users.surname AS user_name,
			users.email AS user_email`).
		Joins("JOIN spaces ON spaces.id = reservations.space_id").
		Joins("JOIN space_types ON space_types.id = spaces.type_id").
		Joins("JOIN users ON users.id = reservations.user_id").
		Order("reservations.date DESC, reservations.start_time DESC")
}

func (d *ReservationDAO) FindByUser(ctx context.Context, userID uint) ([]ReservationRow, error) {
	var rows []ReservationRow

	result := d.listQuery(ctx).Where("reservations.user_id = ?", userID).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *ReservationDAO) FindAll(ctx context.Context) ([]ReservationRow, error) {
	var rows []ReservationRow

	result := d.listQuery(ctx).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// FindBlockingForSpaceDate returns every pending/confirmed reservation for
// the space on that date, ordered by start time. Cancelled rows never block.
func (d *ReservationDAO) FindBlockingForSpaceDate(ctx context.Context, spaceID uint, date time.Time) ([]Reservation, error) {
	var reservations []Reservation

	result := d.db.WithContext(ctx).
		Where("space_id = ? AND date = ? AND status IN ?", spaceID, date, blockingStatuses).
		Order("start_time").
		Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

func (d *ReservationDAO) Update(ctx context.Context, reservation Reservation) (Reservation, error) {
	result := d.db.WithContext(ctx).Model(&Reservation{}).Where("id = ?", reservation.ID).Updates(map[string]interface{}{
		"date":       reservation.Date,
		"start_time": reservation.StartTime,
		"end_time":   reservation.EndTime,
		"notes":      reservation.Notes,
	})
	if result.Error != nil {
		return Reservation{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Reservation{}, ErrReservationNotFound
	}

	return d.FindByID(ctx, reservation.ID)
}

func (d *ReservationDAO) UpdateStatus(ctx context.Context, id uint, status string) (Reservation, error) {
	result := d.db.WithContext(ctx).Model(&Reservation{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return Reservation{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Reservation{}, ErrReservationNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *ReservationDAO) CountBlockingByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Reservation{}).
		Where("user_id = ? AND status IN ?", userID, blockingStatuses).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *ReservationDAO) CountBlockingBySpace(ctx context.Context, spaceID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Reservation{}).
		Where("space_id = ? AND status IN ?", spaceID, blockingStatuses).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
