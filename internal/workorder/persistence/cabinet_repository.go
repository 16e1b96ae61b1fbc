package persistence

import (
	"context"
	"fmt"

	"dcops-server/internal/infra/sql"
	"dcops-server/internal/workorder/domain"
	"dcops-server/internal/workorder/persistence/internal"
	"dcops-server/internal/workorder/usecases"
)

func NewCabinetRepository(orm sql.ORM) (*SimpleCabinetRepository, error) {
	err := orm.AutoMigrate(&internal.Cabinet{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleCabinetRepository{orm: orm}, nil
}

var _ usecases.CabinetRepository = (*SimpleCabinetRepository)(nil)

type SimpleCabinetRepository struct {
	orm sql.ORM
}

func (r *SimpleCabinetRepository) Create(ctx context.Context, cabinet domain.Cabinet) error {
	data := internal.FromCabinet(cabinet)
	err := r.orm.
		WithContext(ctx).
		Create(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (r *SimpleCabinetRepository) FindByRoom(ctx context.Context, room string) ([]domain.Cabinet, error) {
	var entities []internal.Cabinet
	err := r.orm.
		WithContext(ctx).
		Where("room = ?", room).
		Order("code").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.Cabinet, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, nil
}
