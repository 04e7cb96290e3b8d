package repository

import (
	"context"
	"fmt"

	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/repository/dao"
)

var (
	ErrSpaceNotFound     = dao.ErrSpaceNotFound
	ErrSpaceTypeNotFound = dao.ErrSpaceTypeNotFound
)

type SpaceDAO interface {
	Insert(ctx context.Context, space dao.Space) (dao.Space, error)
	FindActive(ctx context.Context) ([]dao.SpaceRow, error)
	FindByID(ctx context.Context, id uint) (dao.SpaceRow, error)
	Update(ctx context.Context, space dao.Space) (dao.Space, error)
	Delete(ctx context.Context, id uint) error
	FindTypes(ctx context.Context) ([]dao.SpaceType, error)
	FindTypeByID(ctx context.Context, id uint) (dao.SpaceType, error)
	InsertType(ctx context.Context, spaceType dao.SpaceType) (dao.SpaceType, error)
	UpdateType(ctx context.Context, spaceType dao.SpaceType) (dao.SpaceType, error)
}

type SpaceRepository struct {
	dao SpaceDAO
}

func NewSpaceRepository(dao SpaceDAO) *SpaceRepository {
	return &SpaceRepository{
		dao: dao,
	}
}

func (r *SpaceRepository) Create(ctx context.Context, space domain.Space) (domain.Space, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(space))
	if err != nil {
		return domain.Space{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created, ""), nil
}

func (r *SpaceRepository) FindActive(ctx context.Context) ([]domain.Space, error) {
	rows, err := r.dao.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	spaces := make([]domain.Space, 0, len(rows))
	for _, row := range rows {
		spaces = append(spaces, r.daoToDomain(row.Space, row.TypeName))
	}

	return spaces, nil
}

func (r *SpaceRepository) FindByID(ctx context.Context, id uint) (domain.Space, error) {
	row, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Space{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(row.Space, row.TypeName), nil
}

func (r *SpaceRepository) Update(ctx context.Context, space domain.Space) (domain.Space, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(space))
	if err != nil {
		return domain.Space{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated, ""), nil
}

func (r *SpaceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SpaceRepository) FindTypes(ctx context.Context) ([]domain.SpaceType, error) {
	types, err := r.dao.FindTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTypes -> %w", err)
	}

	out := make([]domain.SpaceType, 0, len(types))
	for _, t := range types {
		out = append(out, domain.SpaceType{ID: t.ID, Name: t.Name, Description: t.Description})
	}

	return out, nil
}

func (r *SpaceRepository) FindTypeByID(ctx context.Context, id uint) (domain.SpaceType, error) {
	found, err := r.dao.FindTypeByID(ctx, id)
	if err != nil {
		return domain.SpaceType{}, fmt.Errorf("r.dao.FindTypeByID -> %w", err)
	}

	return domain.SpaceType{ID: found.ID, Name: found.Name, Description: found.Description}, nil
}

func (r *SpaceRepository) CreateType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error) {
	created, err := r.dao.InsertType(ctx, dao.SpaceType{
		Name:        spaceType.Name,
		Description: spaceType.Description,
	})
	if err != nil {
		return domain.SpaceType{}, fmt.Errorf("r.dao.InsertType -> %w", err)
	}

	return domain.SpaceType{ID: created.ID, Name: created.Name, Description: created.Description}, nil
}

func (r *SpaceRepository) UpdateType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error) {
	updated, err := r.dao.UpdateType(ctx, dao.SpaceType{
		ID:          spaceType.ID,
		Name:        spaceType.Name,
		Description: spaceType.Description,
	})
	if err != nil {
		return domain.SpaceType{}, fmt.Errorf("r.dao.UpdateType -> %w", err)
	}

	return domain.SpaceType{ID: updated.ID, Name: updated.Name, Description: updated.Description}, nil
}

func (r *SpaceRepository) domainToDAO(s domain.Space) dao.Space {
	return dao.Space{
		ID:              s.ID,
		Name:            s.Name,
		TypeID:          s.TypeID,
		Capacity:        s.Capacity,
		Location:        s.Location,
		Active:          s.Active,
		Description:     s.Description,
		OpeningTime:     s.OpeningTime,
		ClosingWeekday:  s.ClosingWeekday,
		ClosingSaturday: s.ClosingSaturday,
	}
}

func (r *SpaceRepository) daoToDomain(s dao.Space, typeName string) domain.Space {
	return domain.Space{
		ID:              s.ID,
		Name:            s.Name,
		TypeID:          s.TypeID,
		TypeName:        typeName,
		Capacity:        s.Capacity,
		Location:        s.Location,
		Active:          s.Active,
		Description:     s.Description,
		OpeningTime:     s.OpeningTime,
		ClosingWeekday:  s.ClosingWeekday,
		ClosingSaturday: s.ClosingSaturday,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
