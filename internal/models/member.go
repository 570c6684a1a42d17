package models

import "time"

type MemberTier string

const (
	TierBronze   MemberTier = "bronze"
	TierSilver   MemberTier = "silver"
	TierGold     MemberTier = "gold"
	TierPlatinum MemberTier = "platinum"
)

type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberInactive MemberStatus = "inactive"
)

type Member struct {
	Base
	Name        string       `gorm:"size:100;not null" json:"name"`
	Email       string       `gorm:"size:150;not null;uniqueIndex" json:"email"`
	Phone       string       `gorm:"size:50" json:"phone"`
	Tier        MemberTier   `gorm:"size:20;not null;index" json:"tier"`
	Points      int          `gorm:"not null;default:0" json:"points"`
	Birthday    string       `gorm:"size:10" json:"birthday"`
	Preferences string       `gorm:"size:500" json:"preferences"`
	Status      MemberStatus `gorm:"size:20;not null;index" json:"status"`
	JoinedAt    time.Time    `json:"joinedAt"`
}
