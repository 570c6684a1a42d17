package models

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Event: a ticketed evening (wine dinner, masterclass...). AvailableSpots is not checked against MaxSpots.
type Event struct {
	Base
	Title          string      `gorm:"size:200;not null" json:"title"`
	Description    string      `gorm:"size:2000" json:"description"`
	Date           string      `gorm:"size:10;not null;index" json:"date"`
	Time           string      `gorm:"size:5;not null" json:"time"`
	EndTime        string      `gorm:"size:5" json:"endTime"`
	Price          float64     `gorm:"not null;default:0" json:"price"`
	MaxSpots       int         `gorm:"not null;default:0" json:"maxSpots"`
	AvailableSpots int         `gorm:"not null;default:0" json:"availableSpots"`
	Image          string      `gorm:"size:500" json:"image"`
	Category       string      `gorm:"size:50;index" json:"category"`
	Location       string      `gorm:"size:200" json:"location"`
	Status         EventStatus `gorm:"size:20;not null;index" json:"status"`
	Featured       bool        `gorm:"not null;default:false" json:"featured"`
}
