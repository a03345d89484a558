package query

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"shopfront/internal/domain"
)

// Match reports whether p satisfies every present predicate in f.
func Match(p *domain.Product, f domain.Filters) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(p, f.Tags) {
		return false
	}
	if q := strings.ToLower(f.Search); q != "" && !matchesText(p, q) {
		return false
	}
	return true
}

func hasAnyTag(p *domain.Product, tags []string) bool {
	for _, t := range tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}

// matchesText expects q already lower-cased.
func matchesText(p *domain.Product, q string) bool {
	for _, s := range []string{p.Name, p.Description, p.Brand, p.Category} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Search filters, sorts and paginates the catalog. Page numbers below 1 are
// treated as 1; a page past the end yields no data but the full totals.
func (e *Engine) Search(ctx context.Context, f domain.Filters, s domain.Sort, page, limit int) (domain.Page, error) {
	if err := e.delay(ctx); err != nil {
		return domain.Page{}, err
	}
	if limit < 1 {
		return domain.Page{}, ErrInvalidLimit
	}
	if page < 1 {
		page = 1
	}

	matched := e.where(func(p *domain.Product) bool { return Match(p, f) })
	e.sortEntries(matched, s)

	total := len(matched)
	pg := domain.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	start := (page - 1) * limit
	if start >= total {
		return domain.Page{Data: []domain.Product{}, Pagination: pg}, nil
	}
	end := min(start+limit, total)
	return domain.Page{Data: clones(matched[start:end]), Pagination: pg}, nil
}

// sortEntries orders es by s. Equal keys keep catalog order.
func (e *Engine) sortEntries(es []entry, s domain.Sort) {
	if s.Field == "" {
		return
	}
	by := e.comparator(s.Field)
	if by == nil {
		return
	}
	desc := s.Order == domain.Desc
	slices.SortStableFunc(es, func(a, b entry) int {
		c := by(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})
}

func (e *Engine) comparator(field domain.SortField) func(a, b entry) int {
	switch field {
	case domain.SortPrice:
		return func(a, b entry) int { return cmp.Compare(a.p.Price, b.p.Price) }
	case domain.SortRating:
		return func(a, b entry) int { return cmp.Compare(a.p.Rating, b.p.Rating) }
	case domain.SortReviewCount:
		return func(a, b entry) int { return cmp.Compare(a.p.ReviewCount, b.p.ReviewCount) }
	case domain.SortCreatedAt:
		return func(a, b entry) int { return e.created[a.idx].Compare(e.created[b.idx]) }
	case domain.SortName:
		col := e.collator()
		return func(a, b entry) int { return col.CompareString(a.p.Name, b.p.Name) }
	}
	return nil
}

// ValidSortField reports whether f names a sortable field.
func ValidSortField(f domain.SortField) bool {
	switch f {
	case domain.SortPrice, domain.SortRating, domain.SortReviewCount, domain.SortCreatedAt, domain.SortName:
		return true
	}
	return false
}
