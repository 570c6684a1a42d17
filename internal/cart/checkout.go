package cart

import (
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/audit"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/menu"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/order"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/settings"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CheckoutRequest struct {
	CustomerName string     `json:"customerName" validate:"required,max=100"`
	Email        string     `json:"email" validate:"required,email,max=150"`
	Phone        string     `json:"phone" validate:"required,max=50"`
	Type         string     `json:"type" validate:"required,oneof=pickup delivery dine-in"`
	Address      string     `json:"address" validate:"required_if=Type delivery,max=255"`
	Notes        string     `json:"notes" validate:"max=1000"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

// POST /api/carts/:token/checkout
// Line prices come from the current menu, not the cart snapshot. Lines whose menu item
// was deleted or made unavailable block the checkout.
func CheckoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := loadCart(c.Params("token"))
		if err != nil {
			return err
		}

		var body CheckoutRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		if len(cart.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cart is empty")
		}

		ids := lo.Map(cart.Items, func(l models.CartLine, _ int) string { return l.MenuItemID })
		found, err := menu.Items.GetMany(ids)
		if err != nil {
			return err
		}
		byID := lo.KeyBy(found, func(m models.MenuItem) string { return m.ID })

		missing := lo.Filter(ids, func(id string, _ int) bool { return byID[id].ID == "" })
		if len(missing) > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":          "Some items in the cart are no longer on the menu",
				"missingItemIds": missing,
			})
		}
		unavailable := lo.Filter(ids, func(id string, _ int) bool { return !byID[id].Available })
		if len(unavailable) > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":              "Some items in the cart are not available right now",
				"unavailableItemIds": unavailable,
			})
		}

		cfg, err := settings.Current()
		if err != nil {
			return err
		}

		o := &models.Order{
			Base:         models.Base{ID: uuid.NewString()},
			CustomerName: body.CustomerName,
			Email:        body.Email,
			Phone:        body.Phone,
			Type:         models.OrderType(body.Type),
			Address:      body.Address,
			Status:       models.OrderPending,
			Notes:        body.Notes,
			ScheduledFor: body.ScheduledFor,
			Items: lo.Map(cart.Items, func(l models.CartLine, _ int) models.OrderLine {
				item := byID[l.MenuItemID]
				return models.OrderLine{MenuItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: l.Quantity, Notes: l.Notes}
			}),
		}
		if o.Type == models.OrderTypeDelivery {
			if !cfg.DeliveryEnabled {
				return fiber.NewError(fiber.StatusBadRequest, "Delivery is not available at the moment")
			}
			o.DeliveryFee = cfg.DeliveryFee
		} else {
			o.Address = ""
		}
		o.Recalculate()

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(o).Error; err != nil {
				return err
			}
			if err := tx.Model(cart).Update("items", datatypes.JSONSlice[models.CartLine]{}).Error; err != nil {
				return err
			}
			return audit.WriteLogTx(tx, audit.LogOptions{
				UserName:    models.WebsiteActor.Name,
				EntityType:  order.Kind,
				EntityID:    o.ID,
				Action:      models.AuditActionCreate,
				Description: "Order placed: " + order.Title(o),
				After:       o,
			})
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(o)
	}
}
