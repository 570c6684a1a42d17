package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeDineIn   OrderType = "dine-in"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderLine refers to a menu item by id only; the name and price are a snapshot taken at order time.
type OrderLine struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Notes      string  `json:"notes,omitempty"`
}

func (l OrderLine) Total() float64 {
	return l.Price * float64(l.Quantity)
}

type Order struct {
	Base
	CustomerName string                         `gorm:"size:100;not null" json:"customerName"`
	Email        string                         `gorm:"size:150;not null;index" json:"email"`
	Phone        string                         `gorm:"size:50;not null" json:"phone"`
	Type         OrderType                      `gorm:"size:20;not null;index" json:"type"`
	Address      string                         `gorm:"size:255" json:"address"`
	Items        datatypes.JSONSlice[OrderLine] `json:"items"`
	Subtotal     float64                        `gorm:"not null" json:"subtotal"`
	DeliveryFee  float64                        `gorm:"not null;default:0" json:"deliveryFee"`
	Total        float64                        `gorm:"not null" json:"total"`
	Status       OrderStatus                    `gorm:"size:20;not null;index" json:"status"`
	Notes        string                         `gorm:"size:1000" json:"notes"`
	ScheduledFor *time.Time                     `json:"scheduledFor"`
}

// Recalculate derives subtotal and total from the lines and the delivery fee.
func (o *Order) Recalculate() {
	subtotal := 0.0
	for _, l := range o.Items {
		subtotal += l.Total()
	}
	o.Subtotal = roundCents(subtotal)
	o.Total = roundCents(subtotal + o.DeliveryFee)
}
