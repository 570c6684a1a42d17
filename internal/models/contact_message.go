package models

type ContactMessage struct {
	Base
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:150;not null" json:"email"`
	Subject string `gorm:"size:200" json:"subject"`
	Message string `gorm:"size:5000;not null" json:"message"`
	Read    bool   `gorm:"not null;default:false;index" json:"read"`
}
