package persistence

import (
	"context"
	"fmt"

	"dcops-server/internal/infra/sql"
	"dcops-server/internal/workorder/domain"
	"dcops-server/internal/workorder/persistence/internal"
	"dcops-server/internal/workorder/usecases"
)

func NewRelationshipRepository(orm sql.ORM) (*SimpleRelationshipRepository, error) {
	err := orm.AutoMigrate(&internal.RelationshipEdge{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleRelationshipRepository{orm: orm}, nil
}

var _ usecases.RelationshipRepository = (*SimpleRelationshipRepository)(nil)

type SimpleRelationshipRepository struct {
	orm sql.ORM
}

func (r *SimpleRelationshipRepository) Append(ctx context.Context, edge domain.RelationshipEdge) error {
	data := internal.FromRelationshipEdge(edge)
	err := r.orm.
		WithContext(ctx).
		Create(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (r *SimpleRelationshipRepository) FindByParent(ctx context.Context, parentID string) ([]domain.RelationshipEdge, error) {
	var entities []internal.RelationshipEdge
	err := r.orm.
		WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at").
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.RelationshipEdge, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, nil
}
