package models

import "gorm.io/datatypes"

// CartLine has the same shape as an order line; MenuItemID is not a foreign key.
type CartLine = OrderLine

// Cart: a guest shopping cart. The ID doubles as the token handed to the browser.
type Cart struct {
	Base
	Items datatypes.JSONSlice[CartLine] `json:"items"`
}

// ItemCount is the number of units in the cart.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Items {
		n += l.Quantity
	}
	return n
}

// Subtotal sums the line totals using the snapshotted prices.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, l := range c.Items {
		total += l.Total()
	}
	return roundCents(total)
}
