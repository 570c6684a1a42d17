package models

type Celebrity struct {
	Base
	Name       string `gorm:"size:100;not null" json:"name"`
	Profession string `gorm:"size:100;not null" json:"profession"`
	VisitDate  string `gorm:"size:10" json:"visitDate"`
	Quote      string `gorm:"size:1000" json:"quote"`
	Image      string `gorm:"size:500;not null" json:"image"`
	Featured   bool   `gorm:"not null;default:false" json:"featured"`
}
