package cart

import (
	"errors"
	"slices"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/menu"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// View is the cart as the site renders it.
type View struct {
	models.Cart
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
}

func toView(c *models.Cart) View {
	if c.Items == nil {
		c.Items = []models.CartLine{}
	}
	return View{Cart: *c, ItemCount: c.ItemCount(), Subtotal: c.Subtotal()}
}

type AddItemRequest struct {
	MenuItemID string `json:"menuItemId" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=0"`
	Notes      string `json:"notes" validate:"max=500"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

func loadCart(token string) (*models.Cart, error) {
	var c models.Cart
	if err := database.DB.First(&c, "id = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Cart not found")
		}
		return nil, err
	}
	return &c, nil
}

func lineIndex(c *models.Cart, menuItemID string) int {
	return slices.IndexFunc(c.Items, func(l models.CartLine) bool { return l.MenuItemID == menuItemID })
}

// POST /api/carts
// The returned id is the token the browser keeps for later calls.
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart := models.Cart{
			Base:  models.Base{ID: uuid.NewString()},
			Items: []models.CartLine{},
		}
		if err := database.DB.Create(&cart).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toView(&cart))
	}
}

// GET /api/carts/:token
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := loadCart(c.Params("token"))
		if err != nil {
			return err
		}
		return c.JSON(toView(cart))
	}
}

// POST /api/carts/:token/items
// Adding an item already in the cart increases its quantity. Name and price are copied from the menu.
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := loadCart(c.Params("token"))
		if err != nil {
			return err
		}

		var body AddItemRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}

		item, err := menu.Items.Get(body.MenuItemID)
		if err != nil {
			return err
		}
		if !item.Available {
			return fiber.NewError(fiber.StatusConflict, item.Name+" is not available right now")
		}

		if i := lineIndex(cart, item.ID); i >= 0 {
			cart.Items[i].Quantity += body.Quantity
			cart.Items[i].Name = item.Name
			cart.Items[i].Price = item.Price
			if body.Notes != "" {
				cart.Items[i].Notes = body.Notes
			}
		} else {
			cart.Items = append(cart.Items, models.CartLine{
				MenuItemID: item.ID,
				Name:       item.Name,
				Price:      item.Price,
				Quantity:   body.Quantity,
				Notes:      body.Notes,
			})
		}

		if err := database.DB.Save(cart).Error; err != nil {
			return err
		}
		return c.JSON(toView(cart))
	}
}

// PUT /api/carts/:token/items/:menuItemId {"quantity": 0} removes the line.
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := loadCart(c.Params("token"))
		if err != nil {
			return err
		}

		var body UpdateItemRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		i := lineIndex(cart, c.Params("menuItemId"))
		if i < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Item is not in the cart")
		}

		if body.Quantity == 0 {
			cart.Items = slices.Delete(cart.Items, i, i+1)
		} else {
			cart.Items[i].Quantity = body.Quantity
		}

		if err := database.DB.Save(cart).Error; err != nil {
			return err
		}
		return c.JSON(toView(cart))
	}
}

// DELETE /api/carts/:token/items/:menuItemId
func RemoveItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := loadCart(c.Params("token"))
		if err != nil {
			return err
		}

		i := lineIndex(cart, c.Params("menuItemId"))
		if i < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Item is not in the cart")
		}
		cart.Items = slices.Delete(cart.Items, i, i+1)

		if err := database.DB.Save(cart).Error; err != nil {
			return err
		}
		return c.JSON(toView(cart))
	}
}

// DELETE /api/carts/:token
func ClearHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cart, err := loadCart(c.Params("token"))
		if err != nil {
			return err
		}

		cart.Items = []models.CartLine{}
		if err := database.DB.Save(cart).Error; err != nil {
			return err
		}
		return c.JSON(toView(cart))
	}
}
