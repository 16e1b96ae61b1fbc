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

func NewAssetRepository(orm sql.ORM) (*SimpleAssetRepository, error) {
	err := orm.AutoMigrate(&internal.Asset{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleAssetRepository{orm: orm}, nil
}

var _ usecases.AssetRepository = (*SimpleAssetRepository)(nil)

type SimpleAssetRepository struct {
	orm sql.ORM
}

func (r *SimpleAssetRepository) Create(ctx context.Context, asset domain.Asset) error {
	data := internal.FromAsset(asset)
	err := r.orm.
		WithContext(ctx).
		Create(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

// Resolve looks the identifier up as a serial number first, then as an asset
// ID, then as an asset tag.
func (r *SimpleAssetRepository) Resolve(ctx context.Context, identifier string) (domain.Asset, error) {
	columns := []string{"serial_number = ?", "id = ?", "asset_tag = ?"}

	for _, column := range columns {
		var entity internal.Asset
		err := r.orm.
			WithContext(ctx).
			Where(column, identifier).
			First(&entity).
			Error()

		if errors.Is(err, sql.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return domain.Asset{}, fmt.Errorf("database query: %w", err)
		}
		return entity.ToDomain(), nil
	}

	return domain.Asset{}, usecases.ErrAssetNotFound
}

func (r *SimpleAssetRepository) GetByID(ctx context.Context, id string) (domain.Asset, error) {
	var entity internal.Asset
	err := r.orm.
		WithContext(ctx).
		First(&entity, "id = ?", id).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Asset{}, usecases.ErrAssetNotFound
	}
	if err != nil {
		return domain.Asset{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleAssetRepository) Update(ctx context.Context, asset domain.Asset) error {
	data := internal.FromAsset(asset)
	err := r.orm.
		WithContext(ctx).
		Save(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database update: %w", err)
	}

	return nil
}

func (r *SimpleAssetRepository) FindByRoom(ctx context.Context, room string) ([]domain.Asset, error) {
	var entities []internal.Asset
	err := r.orm.
		WithContext(ctx).
		Where("room = ?", room).
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.Asset, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, nil
}
