// Package catalog builds the in-memory product dataset the query engine serves.
//
// Generation is driven by an explicit seeded PRNG so a (seed, now) pair always
// reproduces the same catalog. Image selection is the exception: it hashes the
// product id and therefore stays stable even across different seeds.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopfront/internal/domain"
)

var ErrUnknownCategory = errors.New("unknown category")

const (
	specProbability = 0.7
	maxTags         = 4
	outOfStockRate  = 0.1
	maxStock        = 150
	createdWindow   = 365 * 24 * time.Hour
	updatedWindow   = 30 * 24 * time.Hour
)

type Generator struct {
	rng       *rand.Rand
	now       time.Time
	templates []domain.CategoryTemplate
}

func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewSource(seed)),
		now:       now.UTC(),
		templates: Templates(),
	}
}

// Generate returns n products spread over the templates in contiguous blocks:
// position i (1-indexed) lands in template floor((i-1)/ceil(n/k)) mod k.
func (g *Generator) Generate(n int) []domain.Product {
	if n <= 0 || len(g.templates) == 0 {
		return []domain.Product{}
	}
	k := len(g.templates)
	block := int(math.Ceil(float64(n) / float64(k)))
	out := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		t := g.templates[((i-1)/block)%k]
		out = append(out, g.product(t))
	}
	return out
}

// GenerateForCategory returns n products of a single category.
func (g *Generator) GenerateForCategory(n int, key string) ([]domain.Product, error) {
	var tmpl *domain.CategoryTemplate
	for i := range g.templates {
		if strings.EqualFold(g.templates[i].Key, key) || strings.EqualFold(g.templates[i].Name, key) {
			tmpl = &g.templates[i]
			break
		}
	}
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	out := make([]domain.Product, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, g.product(*tmpl))
	}
	return out, nil
}

func (g *Generator) product(t domain.CategoryTemplate) domain.Product {
	id := g.newID()
	brand := pick(g.rng, t.Brands)
	name := g.name(t, brand)
	specs := Specs(g.rng, t)
	price, original := pricing(g.rng, t.Band)

	stock := 0
	if g.rng.Float64() >= outOfStockRate {
		stock = 1 + g.rng.Intn(maxStock)
	}

	return domain.Product{
		ID:             id,
		SKU:            sku(brand, t.Name, id),
		Name:           name,
		Description:    g.description(t, name, specs),
		Category:       t.Name,
		Subcategory:    pick(g.rng, t.Subcategories),
		Brand:          brand,
		Tags:           Tags(g.rng),
		Price:          price,
		OriginalPrice:  original,
		InStock:        stock > 0,
		StockQuantity:  stock,
		Rating:         math.Round((3.0+2.0*g.rng.Float64())*10) / 10,
		ReviewCount:    10 + g.rng.Intn(2001),
		Images:         Images(id, t.Name),
		Specifications: specs,
		CreatedAt:      g.backdate(createdWindow),
		UpdatedAt:      g.backdate(updatedWindow),
	}
}

// newID draws a v4 UUID from the generator's PRNG so ids follow the seed.
func (g *Generator) newID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// *rand.Rand reads never fail.
		panic(err)
	}
	return id.String()
}

func (g *Generator) name(t domain.CategoryTemplate, brand string) string {
	parts := []string{brand, pick(g.rng, t.Models)}
	if len(t.Variants) > 0 && g.rng.Intn(2) == 0 {
		parts = append(parts, pick(g.rng, t.Variants))
	}
	return strings.Join(parts, " ")
}

func (g *Generator) description(t domain.CategoryTemplate, name string, specs map[string]string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(". ")
	b.WriteString(pick(g.rng, t.Blurbs))
	for _, f := range t.SpecFields {
		if v, ok := specs[f.Name]; ok {
			fmt.Fprintf(&b, " %s: %s.", f.Name, v)
			break
		}
	}
	return strings.TrimSpace(b.String())
}

func (g *Generator) backdate(window time.Duration) string {
	d := time.Duration(g.rng.Float64() * float64(window))
	return g.now.Add(-d).Truncate(time.Millisecond).Format(domain.TimeLayout)
}

// Specs includes each of the template's fields with probability 0.7. When the
// coin flips leave the map empty one field is forced in.
func Specs(rng *rand.Rand, t domain.CategoryTemplate) map[string]string {
	out := make(map[string]string, len(t.SpecFields))
	for _, f := range t.SpecFields {
		if rng.Float64() < specProbability {
			out[f.Name] = pick(rng, f.Values)
		}
	}
	if len(out) == 0 && len(t.SpecFields) > 0 {
		f := t.SpecFields[rng.Intn(len(t.SpecFields))]
		out[f.Name] = pick(rng, f.Values)
	}
	return out
}

// Tags draws 1..4 distinct tags from TagVocabulary.
func Tags(rng *rand.Rand) []string {
	n := 1 + rng.Intn(maxTags)
	perm := rng.Perm(len(TagVocabulary))
	out := make([]string, n)
	for i := range out {
		out[i] = TagVocabulary[perm[i]]
	}
	return out
}

func sku(brand, category, id string) string {
	return strings.ToUpper(prefix3(brand) + "-" + prefix3(category) + "-" + strings.ReplaceAll(id, "-", "")[:8])
}

func prefix3(s string) string {
	s = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(s) > 3 {
		return s[:3]
	}
	return s
}

func pick(rng *rand.Rand, xs []string) string {
	if len(xs) == 0 {
		return ""
	}
	return xs[rng.Intn(len(xs))]
}
