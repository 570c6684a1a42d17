package analytics

import (
	"time"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/database"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

type RevenuePoint struct {
	Label    string  `json:"label"` // first day of the bucket
	Pickup   float64 `json:"pickup"`
	Delivery float64 `json:"delivery"`
	DineIn   float64 `json:"dineIn"`
	Total    float64 `json:"total"`
}

type RevenueTotals struct {
	Pickup   float64 `json:"pickup"`
	Delivery float64 `json:"delivery"`
	DineIn   float64 `json:"dineIn"`
	Total    float64 `json:"total"`
	Orders   int     `json:"orders"`
}

type RevenueChart struct {
	Period      string         `json:"period"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	Points      []RevenuePoint `json:"points"`
	GrandTotals RevenueTotals  `json:"grandTotals"`
}

func defaultCount(period string) int {
	switch period {
	case PeriodWeekly:
		return 8
	case PeriodMonthly:
		return 12
	default:
		return 7
	}
}

// bucketStart truncates t to the start of its day, ISO week (Monday) or month.
func bucketStart(t time.Time, period string) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch period {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

func nextBucket(t time.Time, period string) time.Time {
	switch period {
	case PeriodWeekly:
		return t.AddDate(0, 0, 7)
	case PeriodMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// chartRange returns the start of the first bucket and the exclusive end of the last one.
func chartRange(now time.Time, period string, count int) (time.Time, time.Time) {
	last := bucketStart(now, period)

	var first time.Time
	switch period {
	case PeriodWeekly:
		first = last.AddDate(0, 0, -7*(count-1))
	case PeriodMonthly:
		first = last.AddDate(0, -(count - 1), 0)
	default:
		first = last.AddDate(0, 0, -(count - 1))
	}
	return first, nextBucket(last, period)
}

// BuildRevenueChart buckets the non-cancelled orders into count periods ending with the one containing now.
// Every bucket is present, empty ones with zero totals.
func BuildRevenueChart(orders []models.Order, period string, count int, now time.Time) RevenueChart {
	loc := now.Location()
	first, end := chartRange(now, period, count)

	index := make(map[time.Time]int, count)
	points := make([]RevenuePoint, 0, count)
	for b := first; b.Before(end); b = nextBucket(b, period) {
		index[b] = len(points)
		points = append(points, RevenuePoint{Label: b.Format("2006-01-02")})
	}

	grand := RevenueTotals{}
	for _, o := range orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		created := o.CreatedAt.In(loc)
		if created.Before(first) || !created.Before(end) {
			continue
		}
		i, ok := index[bucketStart(created, period)]
		if !ok {
			continue
		}

		p := &points[i]
		switch o.Type {
		case models.OrderTypePickup:
			p.Pickup += o.Total
			grand.Pickup += o.Total
		case models.OrderTypeDelivery:
			p.Delivery += o.Total
			grand.Delivery += o.Total
		case models.OrderTypeDineIn:
			p.DineIn += o.Total
			grand.DineIn += o.Total
		}
		p.Total += o.Total
		grand.Total += o.Total
		grand.Orders++
	}

	return RevenueChart{
		Period:      period,
		From:        first.Format("2006-01-02"),
		To:          end.AddDate(0, 0, -1).Format("2006-01-02"),
		Points:      points,
		GrandTotals: grand,
	}
}

// GET /api/admin/analytics/revenue?period=daily&count=7
func RevenueHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", PeriodDaily)
		switch period {
		case PeriodDaily, PeriodWeekly, PeriodMonthly:
		default:
			return web.NewValidationError("period", "oneof=daily weekly monthly")
		}

		count, err := web.QueryInt(c, "count", defaultCount(period))
		if err != nil {
			return err
		}
		if count <= 0 || count > 366 {
			return web.NewValidationError("count", "min=1,max=366")
		}

		now := time.Now()
		from, _ := chartRange(now, period, count)

		// One day of slack for stored timezones; BuildRevenueChart does the exact cut.
		var orders []models.Order
		if err := database.DB.Where("created_at >= ? AND status <> ?", from.AddDate(0, 0, -1), models.OrderCancelled).Find(&orders).Error; err != nil {
			return err
		}

		return c.JSON(BuildRevenueChart(orders, period, count, now))
	}
}
