package models

import "gorm.io/datatypes"

type MenuItem struct {
	Base
	Name        string                      `gorm:"size:150;not null;index" json:"name"`
	Description string                      `gorm:"size:1000" json:"description"`
	Category    string                      `gorm:"size:50;not null;index" json:"category"`
	Price       float64                     `gorm:"not null" json:"price"`
	Image       string                      `gorm:"size:500" json:"image"`
	Available   bool                        `gorm:"not null" json:"available"`
	Featured    bool                        `gorm:"not null;default:false" json:"featured"`
	DietaryTags datatypes.JSONSlice[string] `json:"dietaryTags"`
	SpiceLevel  int                         `json:"spiceLevel"` // 0-3
	Calories    int                         `json:"calories"`
}

// HasDietaryTag reports whether the item carries the tag, ignoring case.
func (m *MenuItem) HasDietaryTag(tag string) bool {
	for _, t := range m.DietaryTags {
		if equalFold(t, tag) {
			return true
		}
	}
	return false
}
