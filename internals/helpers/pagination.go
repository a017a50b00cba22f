package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SortParams: ?sort_by= & ?order= (alias ?sort=)
type SortParams struct {
	SortBy    string
	SortOrder string // asc|desc
}

func ParseSort(c *fiber.Ctx, defaultSortBy, defaultSortOrder string) SortParams {
	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	order := strings.ToLower(strings.TrimSpace(firstNonEmpty(c.Query("order"), c.Query("sort"))))
	if order != "asc" && order != "desc" {
		order = strings.ToLower(defaultSortOrder)
		if order != "asc" && order != "desc" {
			order = "desc"
		}
	}
	return SortParams{SortBy: sortBy, SortOrder: order}
}

// OrderClause: kolom dari whitelist, dipakai langsung di db.Order(...)
func (p SortParams) OrderClause(allowed map[string]string, defaultKey string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	dir := "DESC"
	if p.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
