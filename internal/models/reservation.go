package models

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation: a table booking. Date is YYYY-MM-DD and Time is HH:MM, restaurant local time.
type Reservation struct {
	Base
	Name            string            `gorm:"size:100;not null" json:"name"`
	Email           string            `gorm:"size:150;not null;index" json:"email"`
	Phone           string            `gorm:"size:50;not null" json:"phone"`
	Date            string            `gorm:"size:10;not null;index" json:"date"`
	Time            string            `gorm:"size:5;not null" json:"time"`
	Guests          int               `gorm:"not null" json:"guests"`
	TableNumber     string            `gorm:"size:20" json:"tableNumber"`
	Occasion        string            `gorm:"size:100" json:"occasion"`
	SpecialRequests string            `gorm:"size:1000" json:"specialRequests"`
	Status          ReservationStatus `gorm:"size:20;not null;index" json:"status"`
}
