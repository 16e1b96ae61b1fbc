package usecases

import (
	"context"
	"errors"

	"dcops-server/internal/workorder/domain"
)

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrWorkOrderMissing = errors.New("work order record missing")
)

type Pagination struct {
	Limit  int
	Offset int
}

type WorkOrderRepository interface {
	Create(context.Context, domain.WorkOrder) error
	Update(context.Context, domain.WorkOrder) error
	UpdateItem(context.Context, domain.WorkOrderItem) error
	GetByBatchID(context.Context, string) (domain.WorkOrder, error)
	GetByOrderNumber(context.Context, string) (domain.WorkOrder, error)
	FindAll(context.Context, Pagination) ([]domain.WorkOrder, int, error)
	FindOpen(context.Context) ([]domain.WorkOrder, error)
	CountByStatus(context.Context) (map[domain.Status]int, error)
}

// AssetRepository resolves and mutates assets. Resolve tries the identifier
// as a serial number first, then as an asset ID, then as an asset tag.
type AssetRepository interface {
	Resolve(context.Context, string) (domain.Asset, error)
	GetByID(context.Context, string) (domain.Asset, error)
	Update(context.Context, domain.Asset) error
	FindByRoom(context.Context, string) ([]domain.Asset, error)
}

type CabinetRepository interface {
	FindByRoom(context.Context, string) ([]domain.Cabinet, error)
}

// RoomRepository looks up registered rooms either by their identifier or by
// the short abbreviation operators use in requests.
type RoomRepository interface {
	GetByID(context.Context, string) (domain.Room, error)
	GetByAbbreviation(context.Context, string) (domain.Room, error)
}

type RelationshipRepository interface {
	Append(context.Context, domain.RelationshipEdge) error
}

type ChangeLogRepository interface {
	Append(context.Context, domain.ChangeLogEntry) error
}

// TxRepos bundles the repositories bound to one open transaction.
type TxRepos struct {
	WorkOrders    WorkOrderRepository
	Assets        AssetRepository
	Relationships RelationshipRepository
	ChangeLogs    ChangeLogRepository
}

// UnitOfWork runs a function with repositories bound to a single database
// transaction. Returning an error rolls every write back.
type UnitOfWork interface {
	Do(context.Context, func(TxRepos) error) error
}
