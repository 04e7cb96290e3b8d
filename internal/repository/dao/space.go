package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrSpaceNotFound     = errors.New("space not found")
	ErrSpaceTypeNotFound = errors.New("space type not found")
)

type SpaceType struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	Description string
}

type Space struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	TypeID   uint   `gorm:"not null;index"`
	Capacity int    `gorm:"not null"`
	Location string `gorm:"not null"`
	Active   bool   `gorm:"not null;default:true"`

	Description string

	OpeningTime     string `gorm:"type:time;not null;default:'08:00:00'"`
	ClosingWeekday  string `gorm:"type:time;not null;default:'18:00:00'"`
	ClosingSaturday string `gorm:"type:time;not null;default:'14:00:00'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// SpaceRow is a Space joined with its type name for listing.
type SpaceRow struct {
	Space
	TypeName string
}

type SpaceDAO struct {
	db *gorm.DB
}

func NewSpaceDAO(db *gorm.DB) *SpaceDAO {
	return &SpaceDAO{
		db: db,
	}
}

func (d *SpaceDAO) Insert(ctx context.Context, space Space) (Space, error) {
	result := d.db.WithContext(ctx).Create(&space)
	if result.Error != nil {
		return Space{}, result.Error
	}

	return space, nil
}

func (d *SpaceDAO) FindActive(ctx context.Context) ([]SpaceRow, error) {
	var rows []SpaceRow

	result := d.db.WithContext(ctx).
		Table("spaces").
		Select("spaces.*, space_types.name AS type_name").
		Joins("JOIN space_types ON space_types.id = spaces.type_id").
		Where("spaces.active = ?", true).
		Order("spaces.name").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *SpaceDAO) FindByID(ctx context.Context, id uint) (SpaceRow, error) {
	var row SpaceRow

	result := d.db.WithContext(ctx).
		Table("spaces").
		Select("spaces.*, space_types.name AS type_name").
		Joins("JOIN space_types ON space_types.id = spaces.type_id").
		Where("spaces.id = ?", id).
		Scan(&row)
	if result.Error != nil {
		return SpaceRow{}, result.Error
	}
	if row.ID == 0 {
		return SpaceRow{}, ErrSpaceNotFound
	}

	return row, nil
}

func (d *SpaceDAO) Update(ctx context.Context, space Space) (Space, error) {
	result := d.db.WithContext(ctx).Model(&Space{}).Where("id = ?", space.ID).Updates(map[string]interface{}{
		"name":             space.Name,
		"type_id":          space.TypeID,
		"capacity":         space.Capacity,
		"location":         space.Location,
		"active":           space.Active,
		"description":      space.Description,
		"opening_time":     space.OpeningTime,
		"closing_weekday":  space.ClosingWeekday,
		"closing_saturday": space.ClosingSaturday,
	})
	if result.Error != nil {
		return Space{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Space{}, ErrSpaceNotFound
	}

	var updated Space
	if err := d.db.WithContext(ctx).First(&updated, space.ID).Error; err != nil {
		return Space{}, err
	}

	return updated, nil
}

func (d *SpaceDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Space{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSpaceNotFound
	}

	return nil
}

func (d *SpaceDAO) FindTypes(ctx context.Context) ([]SpaceType, error) {
	var types []SpaceType

	result := d.db.WithContext(ctx).Order("name").Find(&types)
	if result.Error != nil {
		return nil, result.Error
	}

	return types, nil
}

func (d *SpaceDAO) FindTypeByID(ctx context.Context, id uint) (SpaceType, error) {
	var spaceType SpaceType

	result := d.db.WithContext(ctx).First(&spaceType, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SpaceType{}, ErrSpaceTypeNotFound
		}

		return SpaceType{}, result.Error
	}

	return spaceType, nil
}

func (d *SpaceDAO) InsertType(ctx context.Context, spaceType SpaceType) (SpaceType, error) {
	result := d.db.WithContext(ctx).Create(&spaceType)
	if result.Error != nil {
		return SpaceType{}, result.Error
	}

	return spaceType, nil
}

func (d *SpaceDAO) UpdateType(ctx context.Context, spaceType SpaceType) (SpaceType, error) {
	result := d.db.WithContext(ctx).Model(&SpaceType{}).Where("id = ?", spaceType.ID).Updates(map[string]interface{}{
		"name":        spaceType.Name,
		"description": spaceType.Description,
	})
	if result.Error != nil {
		return SpaceType{}, result.Error
	}
	if result.RowsAffected == 0 {
		return SpaceType{}, ErrSpaceTypeNotFound
	}

	return d.FindTypeByID(ctx, spaceType.ID)
}
