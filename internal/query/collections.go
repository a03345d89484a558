package query

import (
	"cmp"
	"context"
	"math"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"shopfront/internal/domain"
)

const relatedPriceWindow = 0.30

// ProductByID returns a copy of the product, or nil when no product has id.
func (e *Engine) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	if i := e.indexOf(id); i >= 0 {
		p := e.products[i].Clone()
		return &p, nil
	}
	return nil, nil
}

func (e *Engine) indexOf(id string) int {
	for i := range e.products {
		if e.products[i].ID == id {
			return i
		}
	}
	return -1
}

// byDesc stable-sorts es descending by key, ties in catalog order.
func byDesc[K cmp.Ordered](es []entry, key func(*domain.Product) K) {
	slices.SortStableFunc(es, func(a, b entry) int {
		if c := cmp.Compare(key(b.p), key(a.p)); c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})
}

func rating(p *domain.Product) float64 { return p.Rating }

// Featured returns featured or bestseller products by rating, topped up with
// the best-rated remaining products when there are fewer than limit.
func (e *Engine) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	isFeatured := func(p *domain.Product) bool { return p.HasTag("featured") || p.HasTag("bestseller") }

	picked := e.where(isFeatured)
	byDesc(picked, rating)
	picked = truncate(picked, limit)

	if len(picked) < limit {
		rest := e.where(func(p *domain.Product) bool { return !isFeatured(p) })
		byDesc(rest, rating)
		picked = append(picked, truncate(rest, limit-len(picked))...)
	}
	return clones(picked), nil
}

// Related returns same-category products by rating, back-filled with products
// priced within 30% of the anchor. Unknown ids yield an empty result.
func (e *Engine) Related(ctx context.Context, id string, limit int) ([]domain.Product, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	ai := e.indexOf(id)
	if ai < 0 || limit < 1 {
		return []domain.Product{}, nil
	}
	anchor := e.products[ai]

	picked := e.where(func(p *domain.Product) bool {
		return p.ID != anchor.ID && strings.EqualFold(p.Category, anchor.Category)
	})
	byDesc(picked, rating)
	picked = truncate(picked, limit)

	if len(picked) < limit {
		taken := make(map[int]bool, len(picked))
		for _, x := range picked {
			taken[x.idx] = true
		}
		window := anchor.Price * relatedPriceWindow
		extra := make([]entry, 0)
		for i := range e.products {
			p := &e.products[i]
			if i == ai || taken[i] || p.ID == anchor.ID {
				continue
			}
			if math.Abs(p.Price-anchor.Price) <= window {
				extra = append(extra, entry{idx: i, p: p})
			}
		}
		byDesc(extra, rating)
		picked = append(picked, truncate(extra, limit-len(picked))...)
	}
	return clones(picked), nil
}

// Bestsellers returns bestseller-tagged or heavily reviewed products, most
// reviewed first.
func (e *Engine) Bestsellers(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	out := e.where(func(p *domain.Product) bool { return p.HasTag("bestseller") || p.ReviewCount > 500 })
	byDesc(out, func(p *domain.Product) int { return p.ReviewCount })
	return clones(truncate(out, limit)), nil
}

// NewArrivals returns new-tagged products, newest first.
func (e *Engine) NewArrivals(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	out := e.where(func(p *domain.Product) bool { return p.HasTag("new") })
	slices.SortStableFunc(out, func(a, b entry) int {
		if c := e.created[b.idx].Compare(e.created[a.idx]); c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})
	return clones(truncate(out, limit)), nil
}

// Sale returns discounted products, deepest discount first.
func (e *Engine) Sale(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	out := e.where(func(p *domain.Product) bool { return p.OnSale() })
	byDesc(out, func(p *domain.Product) float64 { return p.DiscountPercent() })
	return clones(truncate(out, limit)), nil
}

// Suggestions collects product names, brands and categories containing q, in
// the order they are first seen while scanning the catalog. Queries shorter
// than two characters, counted as given, return nothing.
func (e *Engine) Suggestions(ctx context.Context, q string, limit int) ([]string, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	out := []string{}
	if utf8.RuneCountInString(q) < 2 || limit < 1 {
		return out, nil
	}
	q = strings.ToLower(q)
	seen := map[string]bool{}
	for i := range e.products {
		p := &e.products[i]
		for _, s := range []string{p.Name, p.Brand, p.Category} {
			if seen[s] || !strings.Contains(strings.ToLower(s), q) {
				continue
			}
			seen[s] = true
			out = append(out, s)
			if len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func (e *Engine) distinct(field func(*domain.Product) string) []string {
	set := map[string]struct{}{}
	for i := range e.products {
		set[field(&e.products[i])] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Categories returns the distinct category names, sorted.
func (e *Engine) Categories(ctx context.Context) ([]string, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	return e.distinct(func(p *domain.Product) string { return p.Category }), nil
}

// Brands returns the distinct brand names, sorted.
func (e *Engine) Brands(ctx context.Context) ([]string, error) {
	if err := e.delay(ctx); err != nil {
		return nil, err
	}
	return e.distinct(func(p *domain.Product) string { return p.Brand }), nil
}

// PriceRange is the min and max price over the whole catalog; zero when empty.
func (e *Engine) PriceRange(ctx context.Context) (domain.PriceRange, error) {
	if err := e.delay(ctx); err != nil {
		return domain.PriceRange{}, err
	}
	return e.priceRange(), nil
}

func (e *Engine) priceRange() domain.PriceRange {
	if len(e.products) == 0 {
		return domain.PriceRange{}
	}
	r := domain.PriceRange{Min: e.products[0].Price, Max: e.products[0].Price}
	for _, p := range e.products[1:] {
		r.Min = min(r.Min, p.Price)
		r.Max = max(r.Max, p.Price)
	}
	return r
}
