package models

import "time"

type SocialPostStatus string

const (
	SocialDraft     SocialPostStatus = "draft"
	SocialScheduled SocialPostStatus = "scheduled"
	SocialPublished SocialPostStatus = "published"
)

type SocialPost struct {
	Base
	Platform    string           `gorm:"size:20;not null;index" json:"platform"`
	Content     string           `gorm:"size:2200;not null" json:"content"`
	Image       string           `gorm:"size:500" json:"image"`
	Link        string           `gorm:"size:500" json:"link"`
	ScheduledAt *time.Time       `json:"scheduledAt"`
	Status      SocialPostStatus `gorm:"size:20;not null;index" json:"status"`
	Likes       int              `gorm:"not null;default:0" json:"likes"`
	Comments    int              `gorm:"not null;default:0" json:"comments"`
}
