package query_test

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"
	"shopfront/internal/query"
)

func ptr[T any](v T) *T { return &v }

func fixture() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Zen Laptop", Description: "thin", Category: "Laptops", Brand: "Acme", Price: 999.99,
			Rating: 4.5, ReviewCount: 120, InStock: true, StockQuantity: 3, Tags: []string{"featured"},
			CreatedAt: "2026-01-01T00:00:00.000Z"},
		{ID: "p2", Name: "alpha Phone", Description: "bright screen", Category: "Smartphones", Brand: "Bolt", Price: 499.99,
			OriginalPrice: ptr(714.99), Rating: 4.8, ReviewCount: 900, Tags: []string{"new", "sale"},
			CreatedAt: "2026-02-01T00:00:00.000Z"},
		{ID: "p3", Name: "Budget Laptop", Description: "value", Category: "Laptops", Brand: "acme", Price: 499.99,
			OriginalPrice: ptr(554.99), Rating: 3.9, ReviewCount: 40, InStock: true, StockQuantity: 10,
			Tags: []string{"new"}, CreatedAt: "2026-03-01T00:00:00.000Z"},
		{ID: "p4", Name: "Studio Headphones", Description: "wired", Category: "Headphones", Brand: "Sonic", Price: 199.99,
			OriginalPrice: ptr(284.99), Rating: 4.8, ReviewCount: 600, InStock: true, StockQuantity: 1,
			Tags: []string{"bestseller"}, CreatedAt: "2025-12-01T00:00:00.000Z"},
		{ID: "p5", Name: "Gamer Laptop", Description: "rgb", Category: "Laptops", Brand: "Bolt", Price: 1999.99,
			Rating: 4.1, ReviewCount: 10, Tags: []string{"premium"}, CreatedAt: "2025-11-01T00:00:00.000Z"},
	}
}

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestSearch_Filters(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	cases := []struct {
		name string
		f    domain.Filters
		want []string
	}{
		{"none", domain.Filters{}, []string{"p1", "p2", "p3", "p4", "p5"}},
		{"category case-insensitive", domain.Filters{Category: "laptops"}, []string{"p1", "p3", "p5"}},
		{"brand case-insensitive", domain.Filters{Brand: "ACME"}, []string{"p1", "p3"}},
		{"price bounds inclusive", domain.Filters{MinPrice: ptr(499.99), MaxPrice: ptr(999.99)}, []string{"p1", "p2", "p3"}},
		{"in stock", domain.Filters{InStock: ptr(true)}, []string{"p1", "p3", "p4"}},
		{"out of stock", domain.Filters{InStock: ptr(false)}, []string{"p2", "p5"}},
		{"rating floor", domain.Filters{MinRating: ptr(4.5)}, []string{"p1", "p2", "p4"}},
		{"tags are OR", domain.Filters{Tags: []string{"premium", "bestseller"}}, []string{"p4", "p5"}},
		{"search name", domain.Filters{Search: "LAPTOP"}, []string{"p1", "p3", "p5"}},
		{"search description", domain.Filters{Search: "screen"}, []string{"p2"}},
		{"search tag", domain.Filters{Search: "sale"}, []string{"p2"}},
		{"combined", domain.Filters{Category: "Laptops", InStock: ptr(true), MaxPrice: ptr(600.0)}, []string{"p3"}},
		{"nothing", domain.Filters{Search: "xk"}, []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, err := e.Search(ctx, c.f, domain.Sort{}, 1, 50)
			require.NoError(t, err)
			assert.Equal(t, c.want, ids(page.Data))
			assert.Equal(t, len(c.want), page.Pagination.Total)
		})
	}
}

func TestSearch_SortStableTies(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	page, err := e.Search(ctx, domain.Filters{}, domain.Sort{Field: domain.SortPrice, Order: domain.Asc}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p2", "p3", "p1", "p5"}, ids(page.Data))

	page, err = e.Search(ctx, domain.Filters{}, domain.Sort{Field: domain.SortRating, Order: domain.Desc}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p4", "p1", "p5", "p3"}, ids(page.Data))

	page, err = e.Search(ctx, domain.Filters{}, domain.Sort{Field: domain.SortCreatedAt, Order: domain.Desc}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p2", "p1", "p4", "p5"}, ids(page.Data))

	page, err = e.Search(ctx, domain.Filters{}, domain.Sort{Field: domain.SortName, Order: domain.Asc}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3", "p5", "p4", "p1"}, ids(page.Data))
}

func TestSearch_Pagination(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	page, err := e.Search(ctx, domain.Filters{}, domain.Sort{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p4"}, ids(page.Data))
	assert.Equal(t, domain.Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, page.Pagination)

	page, err = e.Search(ctx, domain.Filters{}, domain.Sort{}, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
	assert.Equal(t, 5, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)

	page, err = e.Search(ctx, domain.Filters{}, domain.Sort{}, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, []string{"p1", "p2"}, ids(page.Data))

	_, err = e.Search(ctx, domain.Filters{}, domain.Sort{}, 1, 0)
	require.ErrorIs(t, err, query.ErrInvalidLimit)

	page, err = e.Search(ctx, domain.Filters{Search: "nope-nope"}, domain.Sort{}, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Pagination.Total)
	assert.Equal(t, 0, page.Pagination.TotalPages)
}

func TestSearch_DoesNotExposeCatalog(t *testing.T) {
	src := fixture()
	e := query.New(src)
	src[0].Name = "changed by caller"

	page, err := e.Search(context.Background(), domain.Filters{}, domain.Sort{}, 1, 1)
	require.NoError(t, err)
	require.Equal(t, "Zen Laptop", page.Data[0].Name)
	page.Data[0].Tags[0] = "mutated"

	p, err := e.ProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"featured"}, p.Tags)
}

func TestProductByID(t *testing.T) {
	e := query.New(fixture())
	p, err := e.ProductByID(context.Background(), "p4")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Studio Headphones", p.Name)

	p, err = e.ProductByID(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFeatured_TopsUp(t *testing.T) {
	e := query.New(fixture())
	got, err := e.Featured(context.Background(), 4)
	require.NoError(t, err)
	// p4 (4.8) and p1 (4.5) are tagged; p2 then p5 are the best-rated remaining.
	assert.Equal(t, []string{"p4", "p1", "p2", "p5"}, ids(got))

	got, err = e.Featured(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"p4"}, ids(got))
}

func TestRelated(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	got, err := e.Related(ctx, "p3", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p5"}, ids(got))

	// only two other laptops; p2 is priced within 30% of p3 and fills the gap
	got, err = e.Related(ctx, "p3", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p5", "p2"}, ids(got))

	got, err = e.Related(ctx, "missing", 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBestsellersNewArrivalsSale(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	got, err := e.Bestsellers(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p4"}, ids(got))

	got, err = e.NewArrivals(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p2"}, ids(got))

	// discounts: p2 ~30%, p3 ~10%, p4 ~30% (slightly less than p2)
	got, err = e.Sale(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].DiscountPercent(), got[i].DiscountPercent())
	}
	for _, p := range got {
		assert.Greater(t, *p.OriginalPrice, p.Price)
	}
	assert.Equal(t, "p3", got[2].ID)
}

func TestSale_OrderByDiscount(t *testing.T) {
	ps := []domain.Product{
		{ID: "a", Price: 70, OriginalPrice: ptr(100.0)},
		{ID: "b", Price: 90, OriginalPrice: ptr(100.0)},
		{ID: "c", Price: 75, OriginalPrice: ptr(100.0)},
		{ID: "d", Price: 50},
	}
	got, err := query.New(ps).Sale(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))
}

func TestSuggestions(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	got, err := e.Suggestions(ctx, "lap", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zen Laptop", "Laptops", "Budget Laptop", "Gamer Laptop"}, got)

	got, err = e.Suggestions(ctx, "bo", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bolt"}, got[:1])
	assert.Len(t, got, 1)

	got, err = e.Suggestions(ctx, "l", 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = e.Suggestions(ctx, "xk", 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFacets(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	cats, err := e.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Headphones", "Laptops", "Smartphones"}, cats)

	brands, err := e.Brands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Bolt", "Sonic", "acme"}, brands)

	r, err := e.PriceRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PriceRange{Min: 199.99, Max: 1999.99}, r)

	empty, err := query.New(nil).PriceRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PriceRange{}, empty)
}

func TestLatency_RespectsContext(t *testing.T) {
	e := query.New(fixture(), query.WithLatency(time.Second, 2*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := e.Categories(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLatency_Applied(t *testing.T) {
	e := query.New(fixture(), query.WithLatency(20*time.Millisecond, 30*time.Millisecond))
	start := time.Now()
	_, err := e.Brands(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func generated(t *testing.T, n int) []domain.Product {
	t.Helper()
	return catalog.NewGenerator(2024, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)).Generate(n)
}

func TestSearch_LaptopsByPrice(t *testing.T) {
	e := query.New(generated(t, 1000))
	page, err := e.Search(context.Background(), domain.Filters{Category: "Laptops"},
		domain.Sort{Field: domain.SortPrice, Order: domain.Asc}, 1, 5)
	require.NoError(t, err)
	require.LessOrEqual(t, len(page.Data), 5)
	require.NotEmpty(t, page.Data)
	for i, p := range page.Data {
		assert.Equal(t, "Laptops", p.Category)
		if i > 0 {
			assert.LessOrEqual(t, page.Data[i-1].Price, p.Price)
		}
	}
}

func TestSearch_FilterConjunction(t *testing.T) {
	products := generated(t, 600)
	e := query.New(products)
	f := domain.Filters{
		Brand:     "Apple",
		MinPrice:  ptr(100.0),
		MaxPrice:  ptr(1500.0),
		InStock:   ptr(true),
		MinRating: ptr(3.5),
		Tags:      []string{"new", "featured", "sale"},
	}
	page, err := e.Search(context.Background(), f, domain.Sort{}, 1, 1000)
	require.NoError(t, err)

	want := 0
	for i := range products {
		if query.Match(&products[i], f) {
			want++
		}
	}
	assert.Equal(t, want, page.Pagination.Total)
	for _, p := range page.Data {
		assert.True(t, strings.EqualFold(p.Brand, "apple"))
		assert.True(t, p.InStock)
		assert.GreaterOrEqual(t, p.Rating, 3.5)
		assert.True(t, p.HasTag("new") || p.HasTag("featured") || p.HasTag("sale"))
	}
}

func TestSearch_PaginationCompleteness(t *testing.T) {
	e := query.New(generated(t, 300))
	ctx := context.Background()
	s := domain.Sort{Field: domain.SortRating, Order: domain.Desc}

	full, err := e.Search(ctx, domain.Filters{}, s, 1, 1000)
	require.NoError(t, err)

	for _, limit := range []int{1, 7, 25, 300, 301} {
		var got []string
		first, err := e.Search(ctx, domain.Filters{}, s, 1, limit)
		require.NoError(t, err)
		for page := 1; page <= first.Pagination.TotalPages; page++ {
			pg, err := e.Search(ctx, domain.Filters{}, s, page, limit)
			require.NoError(t, err)
			got = append(got, ids(pg.Data)...)
		}
		assert.Equal(t, ids(full.Data), got, "limit %d", limit)
	}

	for i := 1; i < len(full.Data); i++ {
		assert.GreaterOrEqual(t, full.Data[i-1].Rating, full.Data[i].Rating)
	}
}

func TestSuggestions_LengthCountedAsGiven(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	// a leading space is part of the query, so " l" is two characters
	got, err := e.Suggestions(ctx, " l", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zen Laptop", "Budget Laptop", "Gamer Laptop"}, got)

	got, err = e.Suggestions(ctx, " ", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_TextMatchedAsGiven(t *testing.T) {
	e := query.New(fixture())
	ctx := context.Background()

	page, err := e.Search(ctx, domain.Filters{Search: " laptop"}, domain.Sort{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3", "p5"}, ids(page.Data))

	page, err = e.Search(ctx, domain.Filters{Search: "laptop "}, domain.Sort{}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Pagination.Total)
}

func TestNew_WarnsOnBadCreatedAt(t *testing.T) {
	var buf bytes.Buffer
	oldW, oldFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	})

	ps := fixture()
	ps[1].CreatedAt = "yesterday"
	e := query.New(ps)

	out := buf.String()
	assert.Contains(t, out, `"action":"catalog.created_at.invalid"`)
	assert.Contains(t, out, `"id":"p2"`)
	assert.NotContains(t, out, `"id":"p1"`)

	// the bad timestamp sorts as the oldest
	page, err := e.Search(context.Background(), domain.Filters{},
		domain.Sort{Field: domain.SortCreatedAt, Order: domain.Asc}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "p2", page.Data[0].ID)
}
