package persistence

import (
	"context"
	"errors"
	"fmt"

	"dcops-server/internal/infra/sql"
	"dcops-server/internal/workorder/domain"
	"dcops-server/internal/workorder/persistence/internal"
	"dcops-server/internal/workorder/usecases"
)

func NewRoomRepository(orm sql.ORM) (*SimpleRoomRepository, error) {
	err := orm.AutoMigrate(&internal.Room{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleRoomRepository{orm: orm}, nil
}

var _ usecases.RoomRepository = (*SimpleRoomRepository)(nil)

type SimpleRoomRepository struct {
	orm sql.ORM
}

func (r *SimpleRoomRepository) Create(ctx context.Context, room domain.Room) error {
	data := internal.FromRoom(room)
	err := r.orm.
		WithContext(ctx).
		Create(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (r *SimpleRoomRepository) GetByID(ctx context.Context, id string) (domain.Room, error) {
	var entity internal.Room
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id).
		Error()
	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Room{}, usecases.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleRoomRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (domain.Room, error) {
	var entity internal.Room
	err := r.orm.
		WithContext(ctx).
		First(&entity, "abbreviation = ?", abbreviation).
		Error()
	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Room{}, usecases.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}
