package models

import "gorm.io/datatypes"

// SettingsID is the primary key of the single settings row.
const SettingsID = "default"

type OpeningHours struct {
	Day    string `json:"day"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

type SocialLinks struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	TikTok    string `json:"tiktok"`
}

type Settings struct {
	Base
	RestaurantName         string                            `gorm:"size:200;not null" json:"restaurantName"`
	Tagline                string                            `gorm:"size:300" json:"tagline"`
	Address                string                            `gorm:"size:300" json:"address"`
	Phone                  string                            `gorm:"size:50" json:"phone"`
	Email                  string                            `gorm:"size:150" json:"email"`
	OpeningHours           datatypes.JSONSlice[OpeningHours] `json:"openingHours"`
	SocialLinks            datatypes.JSONType[SocialLinks]   `json:"socialLinks"`
	ReservationSlotMinutes int                               `gorm:"not null;default:30" json:"reservationSlotMinutes"`
	MaxPartySize           int                               `gorm:"not null;default:12" json:"maxPartySize"`
	DeliveryEnabled        bool                              `gorm:"not null" json:"deliveryEnabled"`
	DeliveryFee            float64                           `gorm:"not null;default:0" json:"deliveryFee"`
	NotifyOnReservation    bool                              `gorm:"not null" json:"notifyOnReservation"`
	NotifyOnOrder          bool                              `gorm:"not null" json:"notifyOnOrder"`
}

// DefaultSettings is used until the CMS saves its first settings form.
func DefaultSettings() Settings {
	week := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	hours := make([]OpeningHours, 0, len(week))
	for _, d := range week {
		h := OpeningHours{Day: d, Open: "17:00", Close: "22:30"}
		if d == "Monday" {
			h.Closed = true
		}
		hours = append(hours, h)
	}
	return Settings{
		Base:                   Base{ID: SettingsID},
		RestaurantName:         "Melbourne Bistro",
		Tagline:                "Modern Australian dining in the heart of Melbourne",
		Address:                "123 Collins Street, Melbourne VIC 3000",
		Phone:                  "+61 3 9000 0000",
		Email:                  "hello@melbournebistro.com.au",
		OpeningHours:           hours,
		ReservationSlotMinutes: 30,
		MaxPartySize:           12,
		DeliveryEnabled:        true,
		DeliveryFee:            8,
		NotifyOnReservation:    true,
		NotifyOnOrder:          true,
	}
}
