package web

import (
	"strconv"
	"strings"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ParseFilter reads the filters a list screen sends: ?search= and the allowed equality
// parameters. allowed maps a query parameter to its column name; "all" and empty values
// are ignored, "true"/"false" become booleans.
func ParseFilter(c *fiber.Ctx, allowed map[string]string) store.Filter {
	q := store.Filter{
		Search: strings.TrimSpace(c.Query("search")),
		Equals: map[string]any{},
	}
	for param, column := range allowed {
		raw := strings.TrimSpace(c.Query(param))
		if raw == "" || raw == "all" {
			continue
		}
		switch raw {
		case "true":
			q.Equals[column] = true
		case "false":
			q.Equals[column] = false
		default:
			q.Equals[column] = raw
		}
	}
	return q
}

// QueryInt parses an integer query parameter, returning def when absent.
func QueryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be an integer")
	}
	return n, nil
}
