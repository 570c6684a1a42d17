package models

// Supplier: local producers shown on the "our suppliers" pages
type Supplier struct {
	Base
	Name        string `gorm:"size:200;not null" json:"name"`
	Category    string `gorm:"size:100;not null;index" json:"category"`
	Description string `gorm:"size:2000" json:"description"`
	Location    string `gorm:"size:200" json:"location"`
	Website     string `gorm:"size:500" json:"website"`
	Image       string `gorm:"size:500" json:"image"`
	Featured    bool   `gorm:"not null;default:false" json:"featured"`
	Status      string `gorm:"size:20;not null;default:'active';index" json:"status"`
}
