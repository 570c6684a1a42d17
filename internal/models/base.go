package models

import "time"

// Entity is implemented by every record kept in a store collection.
type Entity interface {
	GetID() string
	SetID(id string)
}

// Base carries the identity and timestamps shared by all records.
// IDs are strings: the site generates timestamp ids client side, the server falls back to UUIDs.
type Base struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) GetID() string   { return b.ID }
func (b *Base) SetID(id string) { b.ID = id }
