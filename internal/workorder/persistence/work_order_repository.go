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

func NewWorkOrderRepository(orm sql.ORM) (*SimpleWorkOrderRepository, error) {
	err := orm.AutoMigrate(&internal.WorkOrder{}, &internal.WorkOrderItem{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleWorkOrderRepository{orm: orm}, nil
}

var _ usecases.WorkOrderRepository = (*SimpleWorkOrderRepository)(nil)

type SimpleWorkOrderRepository struct {
	orm sql.ORM
}

func (r *SimpleWorkOrderRepository) Create(ctx context.Context, workOrder domain.WorkOrder) error {
	data := internal.FromWorkOrder(workOrder)
	err := r.orm.
		WithContext(ctx).
		Create(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (r *SimpleWorkOrderRepository) Update(ctx context.Context, workOrder domain.WorkOrder) error {
	data := internal.FromWorkOrder(workOrder)
	err := r.orm.
		WithContext(ctx).
		Save(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database update: %w", err)
	}

	return nil
}

func (r *SimpleWorkOrderRepository) UpdateItem(ctx context.Context, item domain.WorkOrderItem) error {
	data := internal.FromWorkOrderItem(item)

	var existing internal.WorkOrderItem
	err := r.orm.
		WithContext(ctx).
		First(&existing, "id = ?", data.ID).
		Error()
	if errors.Is(err, sql.ErrRecordNotFound) {
		return usecases.ErrWorkOrderMissing
	}
	if err != nil {
		return fmt.Errorf("database query: %w", err)
	}

	data.WorkOrderID = existing.WorkOrderID
	err = r.orm.
		WithContext(ctx).
		Save(&data).
		Error()
	if err != nil {
		return fmt.Errorf("database update: %w", err)
	}

	return nil
}

func (r *SimpleWorkOrderRepository) GetByBatchID(ctx context.Context, batchID string) (domain.WorkOrder, error) {
	var entity internal.WorkOrder
	err := r.orm.
		WithContext(ctx).
		Preload("Items").
		Where("batch_id = ?", batchID).
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.WorkOrder{}, usecases.ErrWorkOrderNotFound
	}
	if err != nil {
		return domain.WorkOrder{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleWorkOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (domain.WorkOrder, error) {
	var entity internal.WorkOrder
	err := r.orm.
		WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.WorkOrder{}, usecases.ErrWorkOrderNotFound
	}
	if err != nil {
		return domain.WorkOrder{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleWorkOrderRepository) FindAll(ctx context.Context, pagination usecases.Pagination) ([]domain.WorkOrder, int, error) {
	var total int64
	err := r.orm.
		WithContext(ctx).
		Model(&internal.WorkOrder{}).
		Count(&total).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database count: %w", err)
	}

	var entities []internal.WorkOrder
	err = r.orm.
		WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.WorkOrder, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

func (r *SimpleWorkOrderRepository) FindOpen(ctx context.Context) ([]domain.WorkOrder, error) {
	var entities []internal.WorkOrder
	err := r.orm.
		WithContext(ctx).
		Where("status IN ?", []string{
			domain.StatusPending.String(),
			domain.StatusInProgress.String(),
		}).
		Find(&entities).
		Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.WorkOrder, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, nil
}

func (r *SimpleWorkOrderRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	statuses := []domain.Status{
		domain.StatusPending,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	counts := make(map[domain.Status]int, len(statuses))
	for _, status := range statuses {
		var count int64
		err := r.orm.
			WithContext(ctx).
			Model(&internal.WorkOrder{}).
			Where("status = ?", status.String()).
			Count(&count).
			Error()
		if err != nil {
			return nil, fmt.Errorf("database count: %w", err)
		}
		if count > 0 {
			counts[status] = int(count)
		}
	}

	return counts, nil
}
