package domain

import (
	"time"

	"dcops-server/internal/infra/utils"
)

type AssetStatus string

const (
	AssetStatusInStock    AssetStatus = "in_stock"
	AssetStatusReceived   AssetStatus = "received"
	AssetStatusRacked     AssetStatus = "racked"
	AssetStatusInstalled  AssetStatus = "installed"
	AssetStatusConfigured AssetStatus = "configured"
	AssetStatusPoweredOn  AssetStatus = "powered_on"
	AssetStatusPoweredOff AssetStatus = "powered_off"
	AssetStatusRetired    AssetStatus = "retired"
)

type Asset struct {
	ID           string
	SerialNumber string
	AssetTag     string
	Model        string
	Status       AssetStatus
	Room         string
	Cabinet      string
	UPosition    string
	PowerType    string
	CreatedAt    utils.Time
	UpdatedAt    utils.Time
}

func (a *Asset) MoveToRoom(room string) {
	a.Room = room
	a.UpdatedAt = utils.Time{Time: time.Now()}
}

func (a *Asset) PlaceInCabinet(cabinet, uPosition string) {
	a.Cabinet = cabinet
	a.UPosition = uPosition
	a.UpdatedAt = utils.Time{Time: time.Now()}
}

func (a *Asset) SetStatus(status AssetStatus) {
	a.Status = status
	a.UpdatedAt = utils.Time{Time: time.Now()}
}

type Room struct {
	ID           string
	Name         string
	Abbreviation string
	Site         string
}

// Cabinet is a registry entry for a physical cabinet in a room.
type Cabinet struct {
	ID        string
	Code      string
	Room      string
	Capacity  int
	PowerType string
	Status    string
}

// RelationshipKind names the edge types recorded between assets during
// configuration operations.
type RelationshipKind string

const (
	RelationshipDownstream       RelationshipKind = "downstream"
	RelationshipComponent        RelationshipKind = "component"
	RelationshipComponentVirtual RelationshipKind = "component_virtual"
)

type RelationshipEdge struct {
	ID        string
	ParentID  string
	ChildID   string
	Kind      RelationshipKind
	Label     string
	BatchID   string
	CreatedAt utils.Time
}

func NewRelationshipEdge(parentID, childID string, kind RelationshipKind, batchID string) RelationshipEdge {
	return RelationshipEdge{
		ID:        utils.GenerateUUID(),
		ParentID:  parentID,
		ChildID:   childID,
		Kind:      kind,
		BatchID:   batchID,
		CreatedAt: utils.Time{Time: time.Now()},
	}
}

// ChangeLogEntry records a single asset mutation performed by a work order.
type ChangeLogEntry struct {
	ID        string
	AssetID   string
	BatchID   string
	Field     string
	OldValue  string
	NewValue  string
	ChangedBy string
	CreatedAt utils.Time
}

func NewChangeLogEntry(assetID, batchID, field, oldValue, newValue, changedBy string) ChangeLogEntry {
	return ChangeLogEntry{
		ID:        utils.GenerateUUID(),
		AssetID:   assetID,
		BatchID:   batchID,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		ChangedBy: changedBy,
		CreatedAt: utils.Time{Time: time.Now()},
	}
}
