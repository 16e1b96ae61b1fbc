package persistence

import (
	"context"
	"fmt"

	"dcops-server/internal/infra/sql"
	"dcops-server/internal/workorder/domain"
	"dcops-server/internal/workorder/persistence/internal"
	"dcops-server/internal/workorder/usecases"
)

func NewChangeLogRepository(orm sql.ORM) (*SimpleChangeLogRepository, error) {
	err := orm.AutoMigrate(&internal.ChangeLogEntry{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleChangeLogRepository{orm: orm}, nil
}

var _ usecases.ChangeLogRepository = (*SimpleChangeLogRepository)(nil)

type SimpleChangeLogRepository struct {
	orm sql.ORM
}

func (r *SimpleChangeLogRepository) Append(ctx context.Context, entry domain.ChangeLogEntry) error {
	data := internal.FromChangeLogEntry(entry)
	err := r.orm.
		WithContext(ctx).
		Create(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (r *SimpleChangeLogRepository) FindByAsset(ctx context.Context, assetID string) ([]domain.ChangeLogEntry, error) {
	var entities []internal.ChangeLogEntry
	err := r.orm.
		WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.ChangeLogEntry, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, nil
}
