package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

const defaultPageSize = 20

type SearchHandler struct {
	Catalog *services.CatalogService
}

// parseQuery turns query-string parameters into a search request. field names
// the offending parameter when ok is false.
func parseQuery(c *fiber.Ctx) (q services.SearchQuery, field string, ok bool) {
	f := &q.Filters
	if raw := c.Query("q"); strings.TrimSpace(raw) != "" {
		if f.Search, ok = validate.Q(raw); !ok {
			return q, "q", false
		}
	}
	if f.Category, ok = validate.Label(c.Query("category")); !ok {
		return q, "category", false
	}
	if f.Brand, ok = validate.Label(c.Query("brand")); !ok {
		return q, "brand", false
	}
	if f.MinPrice, ok = validate.Price(c.Query("minPrice")); !ok {
		return q, "minPrice", false
	}
	if f.MaxPrice, ok = validate.Price(c.Query("maxPrice")); !ok {
		return q, "maxPrice", false
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return q, "maxPrice", false
	}
	if f.InStock, ok = validate.Bool(c.Query("inStock")); !ok {
		return q, "inStock", false
	}
	if f.MinRating, ok = validate.Rating(c.Query("minRating")); !ok {
		return q, "minRating", false
	}
	if f.Tags, ok = validate.Tags(c.Query("tags")); !ok {
		return q, "tags", false
	}
	if q.Sort.Field, ok = validate.SortField(c.Query("sort")); !ok {
		return q, "sort", false
	}
	if q.Sort.Field != "" {
		if q.Sort.Order, ok = validate.SortOrder(c.Query("order")); !ok {
			return q, "order", false
		}
	}
	q.Page = validate.Page(c.Query("page"))
	q.Limit = validate.Limit(c.Query("limit"), defaultPageSize)
	return q, "", true
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q, field, ok := parseQuery(c)
	if !ok {
		return badInput(c, field, "invalid "+field)
	}
	page, err := h.Catalog.Search(c.UserContext(), q)
	if err != nil {
		return failFrom(c, "search", err)
	}
	if q.Filters.Search != "" {
		log.Info(c, "search", map[string]any{"q": q.Filters.Search, "total": page.Pagination.Total})
	}
	return c.JSON(page)
}

// Suggest answers autocomplete. Short or invalid input yields an empty list
// rather than an error so typing never flashes a failure.
func (h *SearchHandler) Suggest(c *fiber.Ctx) error {
	out := []string{}
	q, ok := validate.Q(c.Query("q"))
	if ok {
		s, err := h.Catalog.Suggestions(c.UserContext(), q, validate.Limit(c.Query("limit"), 5))
		if err != nil {
			return failFrom(c, "suggest", err)
		}
		if s != nil {
			out = s
		}
	}
	return c.JSON(fiber.Map{"data": out})
}
