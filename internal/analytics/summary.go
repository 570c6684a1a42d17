package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/member"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/order"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/reservation"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/review"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const topItemsLimit = 5

type TopItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type Summary struct {
	Revenue              float64        `json:"revenue"`
	OrderCount           int            `json:"orderCount"`
	AverageOrderValue    float64        `json:"averageOrderValue"`
	OrdersByStatus       map[string]int `json:"ordersByStatus"`
	ReservationsByStatus map[string]int `json:"reservationsByStatus"`
	UpcomingReservations int            `json:"upcomingReservations"`
	MembersByTier        map[string]int `json:"membersByTier"`
	ReviewCount          int            `json:"reviewCount"`
	AverageRating        float64        `json:"averageRating"`
	TopMenuItems         []TopItem      `json:"topMenuItems"`
}

// Data is everything the summary is computed from.
type Data struct {
	Orders       []models.Order
	Reservations []models.Reservation
	Members      []models.Member
	Reviews      []models.Review
}

// Load reads the four collections in parallel.
func Load() (Data, error) {
	var (
		d Data
		g errgroup.Group
	)
	g.Go(func() (err error) { d.Orders, err = order.Orders.All(); return })
	g.Go(func() (err error) { d.Reservations, err = reservation.Reservations.All(); return })
	g.Go(func() (err error) { d.Members, err = member.Members.All(); return })
	g.Go(func() (err error) { d.Reviews, err = review.Reviews.All(); return })
	return d, g.Wait()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize computes the dashboard figures. Revenue and top items ignore cancelled orders,
// ratings count approved reviews only.
func Summarize(d Data, today string) Summary {
	counted := lo.Filter(d.Orders, func(o models.Order, _ int) bool { return o.Status != models.OrderCancelled })
	revenue := lo.SumBy(counted, func(o models.Order) float64 { return o.Total })

	s := Summary{
		Revenue:    round2(revenue),
		OrderCount: len(counted),
		OrdersByStatus: lo.CountValuesBy(d.Orders, func(o models.Order) string {
			return string(o.Status)
		}),
		ReservationsByStatus: lo.CountValuesBy(d.Reservations, func(r models.Reservation) string {
			return string(r.Status)
		}),
		UpcomingReservations: lo.CountBy(d.Reservations, func(r models.Reservation) bool {
			return r.Date >= today && (r.Status == models.ReservationPending || r.Status == models.ReservationConfirmed)
		}),
		MembersByTier: lo.CountValuesBy(d.Members, func(m models.Member) string {
			return string(m.Tier)
		}),
	}
	if len(counted) > 0 {
		s.AverageOrderValue = round2(revenue / float64(len(counted)))
	}

	approved := lo.Filter(d.Reviews, func(r models.Review, _ int) bool { return r.Status == models.ReviewApproved })
	s.ReviewCount = len(approved)
	if len(approved) > 0 {
		s.AverageRating = round2(float64(lo.SumBy(approved, func(r models.Review) int { return r.Rating })) / float64(len(approved)))
	}

	s.TopMenuItems = topItems(counted, topItemsLimit)
	return s
}

// topItems ranks by quantity, then revenue, then name.
func topItems(orders []models.Order, limit int) []TopItem {
	lines := lo.FlatMap(orders, func(o models.Order, _ int) []models.OrderLine { return o.Items })

	byItem := map[string]*TopItem{}
	for _, l := range lines {
		t, ok := byItem[l.MenuItemID]
		if !ok {
			t = &TopItem{MenuItemID: l.MenuItemID, Name: l.Name}
			byItem[l.MenuItemID] = t
		}
		t.Quantity += l.Quantity
		t.Revenue = round2(t.Revenue + l.Total())
	}

	items := lo.MapToSlice(byItem, func(_ string, t *TopItem) TopItem { return *t })
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		if items[i].Revenue != items[j].Revenue {
			return items[i].Revenue > items[j].Revenue
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// GET /api/admin/analytics/summary
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := Load()
		if err != nil {
			return err
		}
		return c.JSON(Summarize(d, time.Now().Format("2006-01-02")))
	}
}
