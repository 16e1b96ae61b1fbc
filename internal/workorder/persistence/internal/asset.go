package internal

import (
	"time"

	"dcops-server/internal/infra/utils"
	"dcops-server/internal/workorder/domain"
)

type Asset struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SerialNumber string    `json:"serial_number" gorm:"uniqueIndex;not null"`
	AssetTag     string    `json:"asset_tag" gorm:"index"`
	Model        string    `json:"model"`
	Status       string    `json:"status" gorm:"index"`
	Room         string    `json:"room" gorm:"index"`
	Cabinet      string    `json:"cabinet"`
	UPosition    string    `json:"u_position"`
	PowerType    string    `json:"power_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

func (a Asset) ToDomain() domain.Asset {
	return domain.Asset{
		ID:           a.ID,
		SerialNumber: a.SerialNumber,
		AssetTag:     a.AssetTag,
		Model:        a.Model,
		Status:       domain.AssetStatus(a.Status),
		Room:         a.Room,
		Cabinet:      a.Cabinet,
		UPosition:    a.UPosition,
		PowerType:    a.PowerType,
		CreatedAt:    utils.Time{Time: a.CreatedAt},
		UpdatedAt:    utils.Time{Time: a.UpdatedAt},
	}
}

func FromAsset(value domain.Asset) Asset {
	return Asset{
		ID:           value.ID,
		SerialNumber: value.SerialNumber,
		AssetTag:     value.AssetTag,
		Model:        value.Model,
		Status:       string(value.Status),
		Room:         value.Room,
		Cabinet:      value.Cabinet,
		UPosition:    value.UPosition,
		PowerType:    value.PowerType,
		CreatedAt:    value.CreatedAt.Time,
		UpdatedAt:    value.UpdatedAt.Time,
	}
}

type Cabinet struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Code      string `json:"code" gorm:"index;not null"`
	Room      string `json:"room" gorm:"index;not null"`
	Capacity  int    `json:"capacity"`
	PowerType string `json:"power_type"`
	Status    string `json:"status"`
}

func (Cabinet) TableName() string {
	return "cabinets"
}

func (c Cabinet) ToDomain() domain.Cabinet {
	return domain.Cabinet{
		ID:        c.ID,
		Code:      c.Code,
		Room:      c.Room,
		Capacity:  c.Capacity,
		PowerType: c.PowerType,
		Status:    c.Status,
	}
}

func FromCabinet(value domain.Cabinet) Cabinet {
	return Cabinet{
		ID:        value.ID,
		Code:      value.Code,
		Room:      value.Room,
		Capacity:  value.Capacity,
		PowerType: value.PowerType,
		Status:    value.Status,
	}
}

type Room struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"uniqueIndex;not null"`
	Abbreviation string `json:"abbreviation" gorm:"index"`
	Site         string `json:"site"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r Room) ToDomain() domain.Room {
	return domain.Room{
		ID:           r.ID,
		Name:         r.Name,
		Abbreviation: r.Abbreviation,
		Site:         r.Site,
	}
}

func FromRoom(value domain.Room) Room {
	return Room{
		ID:           value.ID,
		Name:         value.Name,
		Abbreviation: value.Abbreviation,
		Site:         value.Site,
	}
}

type RelationshipEdge struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ParentID  string    `json:"parent_id" gorm:"index;not null"`
	ChildID   string    `json:"child_id" gorm:"index"`
	Kind      string    `json:"kind" gorm:"not null"`
	Label     string    `json:"label"`
	BatchID   string    `json:"batch_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (RelationshipEdge) TableName() string {
	return "asset_relationships"
}

func (e RelationshipEdge) ToDomain() domain.RelationshipEdge {
	return domain.RelationshipEdge{
		ID:        e.ID,
		ParentID:  e.ParentID,
		ChildID:   e.ChildID,
		Kind:      domain.RelationshipKind(e.Kind),
		Label:     e.Label,
		BatchID:   e.BatchID,
		CreatedAt: utils.Time{Time: e.CreatedAt},
	}
}

func FromRelationshipEdge(value domain.RelationshipEdge) RelationshipEdge {
	return RelationshipEdge{
		ID:        value.ID,
		ParentID:  value.ParentID,
		ChildID:   value.ChildID,
		Kind:      string(value.Kind),
		Label:     value.Label,
		BatchID:   value.BatchID,
		CreatedAt: value.CreatedAt.Time,
	}
}

type ChangeLogEntry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	AssetID   string    `json:"asset_id" gorm:"index;not null"`
	BatchID   string    `json:"batch_id" gorm:"index"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChangeLogEntry) TableName() string {
	return "asset_change_logs"
}

func (e ChangeLogEntry) ToDomain() domain.ChangeLogEntry {
	return domain.ChangeLogEntry{
		ID:        e.ID,
		AssetID:   e.AssetID,
		BatchID:   e.BatchID,
		Field:     e.Field,
		OldValue:  e.OldValue,
		NewValue:  e.NewValue,
		ChangedBy: e.ChangedBy,
		CreatedAt: utils.Time{Time: e.CreatedAt},
	}
}

func FromChangeLogEntry(value domain.ChangeLogEntry) ChangeLogEntry {
	return ChangeLogEntry{
		ID:        value.ID,
		AssetID:   value.AssetID,
		BatchID:   value.BatchID,
		Field:     value.Field,
		OldValue:  value.OldValue,
		NewValue:  value.NewValue,
		ChangedBy: value.ChangedBy,
		CreatedAt: value.CreatedAt.Time,
	}
}
