package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// Kind is the audit entity type of orders.
const Kind = "order"

var Orders = store.New[models.Order, *models.Order](store.Options[models.Order]{
	Kind:   Kind,
	Label:  "Order",
	Search: []string{"customer_name", "email", "phone"},
	Title:  Title,
})

// Title describes an order in audit entries.
func Title(o *models.Order) string {
	return fmt.Sprintf("%s, %s, $%.2f", o.CustomerName, o.Type, o.Total)
}

var statuses = []string{
	string(models.OrderPending),
	string(models.OrderPreparing),
	string(models.OrderReady),
	string(models.OrderCompleted),
	string(models.OrderCancelled),
}

type LineForm struct {
	MenuItemID string  `json:"menuItemId" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity" validate:"min=1"`
	Notes      string  `json:"notes" validate:"max=500"`
}

// Form is the CMS order form. Totals are always recomputed from the lines.
type Form struct {
	ID           string     `json:"id" validate:"omitempty,max=64"`
	CustomerName string     `json:"customerName" validate:"required,max=100"`
	Email        string     `json:"email" validate:"required,email,max=150"`
	Phone        string     `json:"phone" validate:"required,max=50"`
	Type         string     `json:"type" validate:"required,oneof=pickup delivery dine-in"`
	Address      string     `json:"address" validate:"required_if=Type delivery,max=255"`
	Items        []LineForm `json:"items" validate:"dive"`
	DeliveryFee  float64    `json:"deliveryFee" validate:"min=0"`
	Status       string     `json:"status" validate:"omitempty,oneof=pending preparing ready completed cancelled"`
	Notes        string     `json:"notes" validate:"max=1000"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

func applyForm(f *Form, o *models.Order) {
	o.ID = f.ID
	o.CustomerName = f.CustomerName
	o.Email = strings.ToLower(f.Email)
	o.Phone = f.Phone
	o.Type = models.OrderType(f.Type)
	o.Address = f.Address
	o.Items = lo.Map(f.Items, func(l LineForm, _ int) models.OrderLine {
		return models.OrderLine{MenuItemID: l.MenuItemID, Name: l.Name, Price: l.Price, Quantity: l.Quantity, Notes: l.Notes}
	})
	o.DeliveryFee = 0
	if o.Type == models.OrderTypeDelivery {
		o.DeliveryFee = f.DeliveryFee
	}
	o.Status = models.OrderStatus(f.Status)
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	o.Notes = f.Notes
	o.ScheduledFor = f.ScheduledFor
	o.Recalculate()
}

// GET /api/orders/:id
// Order tracking for the customer who holds the id.
func TrackHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, err := Orders.Get(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"id":           o.ID,
			"status":       o.Status,
			"type":         o.Type,
			"items":        o.Items,
			"subtotal":     o.Subtotal,
			"deliveryFee":  o.DeliveryFee,
			"total":        o.Total,
			"scheduledFor": o.ScheduledFor,
			"createdAt":    o.CreatedAt,
		})
	}
}

// GET /api/admin/orders?search=&status=&type=
func ListHandler() fiber.Handler {
	return web.ListHandler(Orders, map[string]string{"status": "status", "type": "type"})
}

func GetHandler() fiber.Handler    { return web.GetHandler(Orders) }
func CreateHandler() fiber.Handler { return web.CreateHandler(Orders, applyForm) }
func UpdateHandler() fiber.Handler { return web.UpdateHandler(Orders, applyForm) }
func DeleteHandler() fiber.Handler { return web.DeleteHandler(Orders) }

// PATCH /api/admin/orders/:id/status
func StatusHandler() fiber.Handler {
	return web.StatusHandler(Orders, func(o *models.Order, s string) {
		o.Status = models.OrderStatus(s)
	}, statuses...)
}
