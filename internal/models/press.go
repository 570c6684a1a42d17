package models

type Award struct {
	Base
	Title        string `gorm:"size:200;not null" json:"title"`
	Organization string `gorm:"size:200;not null" json:"organization"`
	Year         int    `gorm:"not null;index" json:"year"`
	Category     string `gorm:"size:100" json:"category"`
	Description  string `gorm:"size:1000" json:"description"`
	Image        string `gorm:"size:500" json:"image"`
}

type PressFeature struct {
	Base
	Publication string `gorm:"size:200;not null" json:"publication"`
	Title       string `gorm:"size:300;not null" json:"title"`
	Date        string `gorm:"size:10;index" json:"date"`
	Excerpt     string `gorm:"size:1000" json:"excerpt"`
	Content     string `gorm:"type:text" json:"content"`
	URL         string `gorm:"size:500" json:"url"`
	Image       string `gorm:"size:500" json:"image"`
	Featured    bool   `gorm:"not null;default:false" json:"featured"`
}
