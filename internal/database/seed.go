package database

import (
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func float(v float64) *float64 { return &v }

// Seed fills an empty database with the demo content shown on the public site.
// It does nothing when menu items already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	menu := []models.MenuItem{
		{Base: models.Base{ID: "menu-1"}, Name: "Wagyu Beef Tenderloin", Description: "Marble score 9+, pomme purée, red wine jus", Category: "mains", Price: 68, Available: true, Featured: true, DietaryTags: datatypes.JSONSlice[string]{"gluten-free"}, Calories: 820},
		{Base: models.Base{ID: "menu-2"}, Name: "Moreton Bay Bug Linguine", Description: "Chilli, garlic, cherry tomatoes, bisque butter", Category: "mains", Price: 46, Available: true, Featured: true, SpiceLevel: 1, Calories: 710},
		{Base: models.Base{ID: "menu-3"}, Name: "Heirloom Tomato Salad", Description: "Buffalo mozzarella, basil oil, aged balsamic", Category: "starters", Price: 22, Available: true, DietaryTags: datatypes.JSONSlice[string]{"vegetarian", "gluten-free"}, Calories: 340},
		{Base: models.Base{ID: "menu-4"}, Name: "Pan-Seared Barramundi", Description: "Crushed potatoes, samphire, lemon beurre blanc", Category: "mains", Price: 44, Available: true, DietaryTags: datatypes.JSONSlice[string]{"gluten-free"}, Calories: 640},
		{Base: models.Base{ID: "menu-5"}, Name: "Wild Mushroom Risotto", Description: "Porcini, truffle oil, parmesan crisp", Category: "mains", Price: 36, Available: true, DietaryTags: datatypes.JSONSlice[string]{"vegetarian"}, Calories: 690},
		{Base: models.Base{ID: "menu-6"}, Name: "Kangaroo Carpaccio", Description: "Pepperberry, native herbs, saltbush crisps", Category: "starters", Price: 26, Available: false, Calories: 280},
		{Base: models.Base{ID: "menu-7"}, Name: "Pavlova", Description: "Passionfruit curd, fresh berries, Chantilly cream", Category: "desserts", Price: 18, Available: true, Featured: true, DietaryTags: datatypes.JSONSlice[string]{"vegetarian", "gluten-free"}, Calories: 450},
		{Base: models.Base{ID: "menu-8"}, Name: "Sticky Date Pudding", Description: "Butterscotch sauce, vanilla bean ice cream", Category: "desserts", Price: 17, Available: true, DietaryTags: datatypes.JSONSlice[string]{"vegetarian"}, Calories: 580},
		{Base: models.Base{ID: "menu-9"}, Name: "Pumpkin Soup", Description: "Roasted Kent pumpkin, toasted pepitas, sourdough", Category: "starters", Price: 16, Available: true, DietaryTags: datatypes.JSONSlice[string]{"vegan"}, Calories: 260},
		{Base: models.Base{ID: "menu-10"}, Name: "Flat White", Description: "Single origin espresso, steamed milk", Category: "drinks", Price: 5.5, Available: true, DietaryTags: datatypes.JSONSlice[string]{"vegetarian"}, Calories: 120},
	}

	now := time.Now()
	upcoming := now.AddDate(0, 0, 14).Format("2006-01-02")
	events := []models.Event{
		{Base: models.Base{ID: "event-1"}, Title: "Yarra Valley Wine Dinner", Description: "Five courses matched with Yarra Valley pinot noir", Date: upcoming, Time: "18:30", EndTime: "22:30", Price: 145, MaxSpots: 40, AvailableSpots: 12, Category: "wine", Location: "Main dining room", Status: models.EventUpcoming, Featured: true},
		{Base: models.Base{ID: "event-2"}, Title: "Pasta Masterclass", Description: "Hand-rolled pasta with our head chef", Date: now.AddDate(0, 0, 30).Format("2006-01-02"), Time: "11:00", EndTime: "14:00", Price: 95, MaxSpots: 16, AvailableSpots: 16, Category: "class", Location: "Chef's table", Status: models.EventUpcoming},
	}

	reviews := []models.Review{
		{Base: models.Base{ID: "review-1"}, Author: "Sarah M.", Rating: 5, Comment: "The best steak I've had in Melbourne.", Source: "google", Date: now.AddDate(0, 0, -10).Format("2006-01-02"), Status: models.ReviewApproved, Featured: true},
		{Base: models.Base{ID: "review-2"}, Author: "James T.", Rating: 4, Comment: "Lovely atmosphere, the pavlova is a must.", Source: "tripadvisor", Date: now.AddDate(0, 0, -20).Format("2006-01-02"), Status: models.ReviewApproved},
		{Base: models.Base{ID: "review-3"}, Author: "Anonymous", Rating: 2, Comment: "Waited a while for a table.", Source: "website", Date: now.AddDate(0, 0, -2).Format("2006-01-02"), Status: models.ReviewPending},
	}

	celebrities := []models.Celebrity{
		{Base: models.Base{ID: "celebrity-1"}, Name: "Hugh Jackman", Profession: "Actor", VisitDate: "2024-03-12", Quote: "A true taste of Melbourne.", Image: "/media/celebrity-hugh.jpg", Featured: true},
	}

	awards := []models.Award{
		{Base: models.Base{ID: "award-1"}, Title: "One Hat", Organization: "The Age Good Food Guide", Year: 2024, Category: "Fine dining"},
	}

	press := []models.PressFeature{
		{Base: models.Base{ID: "press-1"}, Publication: "Broadsheet", Title: "Melbourne Bistro reinvents the CBD steakhouse", Date: "2024-05-02", Excerpt: "A modern take on classic bistro fare.", URL: "https://www.broadsheet.com.au", Featured: true},
	}

	suppliers := []models.Supplier{
		{Base: models.Base{ID: "supplier-1"}, Name: "Gippsland Grass Fed", Category: "meat", Description: "Pasture raised beef from Gippsland", Location: "Gippsland, VIC", Featured: true, Status: "active"},
		{Base: models.Base{ID: "supplier-2"}, Name: "Mornington Peninsula Greens", Category: "produce", Description: "Organic vegetables and herbs", Location: "Mornington Peninsula, VIC", Status: "active"},
	}

	weather := []models.WeatherSuggestion{
		{Base: models.Base{ID: "weather-1"}, Condition: models.WeatherRainy, MaxTemp: float(18), Title: "Rainy day comfort", Message: "Warm up with our soup and risotto", MenuItemIDs: datatypes.JSONSlice[string]{"menu-9", "menu-5"}, Active: true, Priority: 10},
		{Base: models.Base{ID: "weather-2"}, Condition: models.WeatherSunny, MinTemp: float(25), Title: "Summer on Collins", Message: "Light plates for a hot day", MenuItemIDs: datatypes.JSONSlice[string]{"menu-3", "menu-7"}, Active: true, Priority: 5},
	}

	reservations := []models.Reservation{
		{Base: models.Base{ID: "reservation-1"}, Name: "Olivia Chen", Email: "olivia@example.com", Phone: "0412 000 111", Date: now.AddDate(0, 0, 3).Format("2006-01-02"), Time: "19:00", Guests: 4, Occasion: "Birthday", Status: models.ReservationConfirmed},
		{Base: models.Base{ID: "reservation-2"}, Name: "Liam Walker", Email: "liam@example.com", Phone: "0412 000 222", Date: now.AddDate(0, 0, 5).Format("2006-01-02"), Time: "20:00", Guests: 2, Status: models.ReservationPending},
	}

	members := []models.Member{
		{Base: models.Base{ID: "member-1"}, Name: "Olivia Chen", Email: "olivia@example.com", Tier: models.TierGold, Points: 2400, Status: models.MemberActive, JoinedAt: now.AddDate(-1, 0, 0)},
		{Base: models.Base{ID: "member-2"}, Name: "Liam Walker", Email: "liam@example.com", Tier: models.TierBronze, Points: 120, Status: models.MemberActive, JoinedAt: now.AddDate(0, -1, 0)},
	}

	orders := []models.Order{
		{Base: models.Base{ID: "order-1", CreatedAt: now.AddDate(0, 0, -1)}, CustomerName: "Olivia Chen", Email: "olivia@example.com", Phone: "0412 000 111", Type: models.OrderTypeDelivery, Address: "1 Flinders St, Melbourne", Items: datatypes.JSONSlice[models.OrderLine]{{MenuItemID: "menu-1", Name: "Wagyu Beef Tenderloin", Price: 68, Quantity: 2}}, DeliveryFee: 8, Status: models.OrderCompleted},
		{Base: models.Base{ID: "order-2", CreatedAt: now}, CustomerName: "Liam Walker", Email: "liam@example.com", Phone: "0412 000 222", Type: models.OrderTypePickup, Items: datatypes.JSONSlice[models.OrderLine]{{MenuItemID: "menu-7", Name: "Pavlova", Price: 18, Quantity: 3}}, Status: models.OrderPending},
		{Base: models.Base{ID: "order-3", CreatedAt: now}, CustomerName: "Noah Smith", Email: "noah@example.com", Phone: "0412 000 333", Type: models.OrderTypePickup, Items: datatypes.JSONSlice[models.OrderLine]{{MenuItemID: "menu-5", Name: "Wild Mushroom Risotto", Price: 36, Quantity: 1}}, Status: models.OrderCancelled},
	}
	for i := range orders {
		orders[i].Recalculate()
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, rows := range []any{&menu, &events, &reviews, &celebrities, &awards, &press, &suppliers, &weather, &reservations, &members, &orders} {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}
		settings := models.DefaultSettings()
		return tx.Create(&settings).Error
	})
}
