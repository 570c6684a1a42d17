package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionUndo   AuditAction = "undo"
	AuditActionSync   AuditAction = "sync"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	// Who? Website submissions are logged with an empty UserID.
	UserID   string `gorm:"size:64;index" json:"userId"`
	UserName string `gorm:"size:100" json:"userName"`

	// Which record? EntityType is the collection kind, e.g. "menu_item".
	EntityType string `gorm:"size:50;index" json:"entityType"`
	EntityID   string `gorm:"size:64;index" json:"entityId"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// JSON snapshots of the record around the change, "null" when absent.
	BeforeData string `gorm:"type:text" json:"beforeData"`
	AfterData  string `gorm:"type:text" json:"afterData"`

	IsUndone bool       `gorm:"default:false" json:"isUndone"`
	UndoneBy *string    `gorm:"size:64" json:"undoneBy"`
	UndoneAt *time.Time `json:"undoneAt"`
}
