package models

import "gorm.io/datatypes"

type WeatherCondition string

const (
	WeatherSunny  WeatherCondition = "sunny"
	WeatherCloudy WeatherCondition = "cloudy"
	WeatherRainy  WeatherCondition = "rainy"
	WeatherStormy WeatherCondition = "stormy"
	WeatherWindy  WeatherCondition = "windy"
	WeatherCold   WeatherCondition = "cold"
	WeatherHot    WeatherCondition = "hot"
	WeatherSnowy  WeatherCondition = "snowy"
)

// WeatherSuggestion promotes menu items for a weather condition and temperature band.
// A nil bound is open.
type WeatherSuggestion struct {
	Base
	Condition   WeatherCondition            `gorm:"size:20;not null;index" json:"condition"`
	MinTemp     *float64                    `json:"minTemp"`
	MaxTemp     *float64                    `json:"maxTemp"`
	Title       string                      `gorm:"size:200;not null" json:"title"`
	Message     string                      `gorm:"size:1000" json:"message"`
	MenuItemIDs datatypes.JSONSlice[string] `json:"menuItemIds"`
	Active      bool                        `gorm:"not null;index" json:"active"`
	Priority    int                         `gorm:"not null;default:0" json:"priority"`
}

// Matches reports whether the suggestion applies to the condition and temperature.
func (w *WeatherSuggestion) Matches(condition WeatherCondition, temp float64) bool {
	if !equalFold(string(w.Condition), string(condition)) {
		return false
	}
	if w.MinTemp != nil && temp < *w.MinTemp {
		return false
	}
	if w.MaxTemp != nil && temp > *w.MaxTemp {
		return false
	}
	return true
}
