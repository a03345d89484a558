package domain

import "strings"

// Product is the catalog record shared by the query engine, the store layer
// and the HTTP surface. Field names follow the storefront's JSON shape.
type Product struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory"`
	Brand          string            `json:"brand"`
	Tags           []string          `json:"tags"`
	Price          float64           `json:"price"`
	OriginalPrice  *float64          `json:"originalPrice,omitempty"`
	InStock        bool              `json:"inStock"`
	StockQuantity  int               `json:"stockQuantity"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"reviewCount"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

// TimeLayout is the ISO-8601 form used for CreatedAt/UpdatedAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// OnSale reports whether the product carries a valid original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// DiscountPercent is (original - price) / original, or 0 when not on sale.
func (p Product) DiscountPercent() float64 {
	if !p.OnSale() {
		return 0
	}
	return (*p.OriginalPrice - p.Price) / *p.OriginalPrice
}

func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate the result freely.
func (p Product) Clone() Product {
	out := p
	out.Tags = append([]string(nil), p.Tags...)
	out.Images = append([]string(nil), p.Images...)
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		out.OriginalPrice = &op
	}
	if p.Specifications != nil {
		out.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			out.Specifications[k] = v
		}
	}
	return out
}

type SpecField struct {
	Name   string
	Values []string
}

type PriceBand struct {
	Min float64
	Max float64
}

// CategoryTemplate is static generator configuration for one category.
type CategoryTemplate struct {
	Key           string
	Name          string
	Subcategories []string
	Brands        []string
	Models        []string
	Variants      []string
	SpecFields    []SpecField
	Band          PriceBand
	ImagePool     []string
	Blurbs        []string
}

// Filters narrows a catalog query. Zero values mean "no constraint".
type Filters struct {
	Category  string
	Brand     string
	MinPrice  *float64
	MaxPrice  *float64
	InStock   *bool
	MinRating *float64
	Tags      []string
	Search    string
}

type SortField string

const (
	SortPrice       SortField = "price"
	SortRating      SortField = "rating"
	SortReviewCount SortField = "reviewCount"
	SortCreatedAt   SortField = "createdAt"
	SortName        SortField = "name"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Sort selects the ordering of search results. An empty Field keeps catalog order.
type Sort struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Page struct {
	Data       []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets is aggregate data derived from the unfiltered catalog.
type Facets struct {
	Categories []string   `json:"categories"`
	Brands     []string   `json:"brands"`
	PriceRange PriceRange `json:"priceRange"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}
