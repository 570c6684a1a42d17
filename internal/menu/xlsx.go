package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/auth"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/models"
	"github.com/Blendilena/Melbourne-Bistro-Restaurant-sub000/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// Workbook columns, shared by export and import.
var sheetColumns = []string{"Name", "Description", "Category", "Price", "Available", "Dietary Tags", "Image"}

const (
	colName = iota
	colDescription
	colCategory
	colPrice
	colAvailable
	colDietaryTags
	colImage
)

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Created int          `json:"created"`
	Updated int          `json:"updated"`
	Skipped []SkippedRow `json:"skipped"`
}

// GET /api/admin/menu-items/export
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := Items.All()
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(items))
		for _, m := range items {
			rows = append(rows, []any{
				m.Name,
				m.Description,
				m.Category,
				m.Price,
				yesNo(m.Available),
				strings.Join(m.DietaryTags, ", "),
				m.Image,
			})
		}

		return web.SendWorkbook(c, "menu-items.xlsx", "Menu", sheetColumns, rows)
	}
}

// POST /api/admin/menu-items/import (multipart "file")
// Rows are matched to existing items by name, ignoring case: a match is updated, anything else created.
func ImportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := web.ReadWorkbook(c)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Workbook is empty")
		}

		start := 0
		if isHeaderRow(rows[0]) {
			start = 1
		}

		existing, err := Items.All()
		if err != nil {
			return err
		}
		byName := make(map[string]string, len(existing))
		for _, m := range existing {
			byName[strings.ToLower(m.Name)] = m.ID
		}

		actor := auth.CurrentActor(c)
		result := ImportResult{Skipped: []SkippedRow{}}

		for i := start; i < len(rows); i++ {
			rowNumber := i + 1
			row := rows[i]
			if lo.EveryBy(row, func(cell string) bool { return strings.TrimSpace(cell) == "" }) {
				continue
			}

			form, err := parseRow(row)
			if err != nil {
				result.Skipped = append(result.Skipped, SkippedRow{Row: rowNumber, Reason: err.Error()})
				continue
			}

			key := strings.ToLower(form.Name)
			if id, ok := byName[key]; ok {
				_, err = Items.Update(actor, id, func(m *models.MenuItem) error {
					m.Description = form.Description
					m.Category = form.Category
					m.Price = form.Price
					m.Available = form.Available
					m.DietaryTags = form.DietaryTags
					if form.Image != "" {
						m.Image = form.Image
					}
					return nil
				})
				if err != nil {
					result.Skipped = append(result.Skipped, SkippedRow{Row: rowNumber, Reason: err.Error()})
					continue
				}
				result.Updated++
				continue
			}

			item := &models.MenuItem{
				Name:        form.Name,
				Description: form.Description,
				Category:    form.Category,
				Price:       form.Price,
				Available:   form.Available,
				DietaryTags: form.DietaryTags,
				Image:       form.Image,
			}
			if err := Items.Create(actor, item); err != nil {
				result.Skipped = append(result.Skipped, SkippedRow{Row: rowNumber, Reason: err.Error()})
				continue
			}
			byName[key] = item.ID
			result.Created++
		}

		return c.JSON(result)
	}
}

type rowForm struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Available   bool
	DietaryTags []string
	Image       string
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseRow(row []string) (rowForm, error) {
	f := rowForm{
		Name:        cell(row, colName),
		Description: cell(row, colDescription),
		Category:    cell(row, colCategory),
		Image:       cell(row, colImage),
		DietaryTags: normalizeTags(strings.Split(cell(row, colDietaryTags), ",")),
	}

	if f.Name == "" {
		return f, fmt.Errorf("name is required")
	}
	if f.Category == "" {
		return f, fmt.Errorf("category is required")
	}

	rawPrice := strings.TrimPrefix(cell(row, colPrice), "$")
	price, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
	if err != nil {
		return f, fmt.Errorf("price %q is not a number", cell(row, colPrice))
	}
	f.Price = price

	available, err := parseAvailable(cell(row, colAvailable))
	if err != nil {
		return f, err
	}
	f.Available = available

	return f, nil
}

// parseAvailable treats an empty cell as available.
func parseAvailable(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "", "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("available %q must be yes or no", v)
}

func isHeaderRow(row []string) bool {
	return strings.EqualFold(cell(row, colName), "name")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
