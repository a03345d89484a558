package catalog

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

const maxImages = 4

const fallbackImage = "https://images.shopfront.test/placeholder.jpg"

func imagePool(category string) []string {
	if t, ok := Template(category); ok && len(t.ImagePool) > 0 {
		return t.ImagePool
	}
	return []string{fallbackImage}
}

// Images derives a stable image set from (id, category): the same pair always
// yields the same URLs, so nothing has to be persisted per product.
func Images(id, category string) []string {
	p := imagePool(category)
	d := xxhash.New()
	_, _ = d.WriteString(id)
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(category)
	h := d.Sum64()

	n := 1 + int((h>>32)%maxImages)
	if n > len(p) {
		n = len(p)
	}
	start := int(h % uint64(len(p)))
	out := make([]string, n)
	for i := range out {
		out[i] = p[(start+i)%len(p)]
	}
	return out
}

// RandomImages picks images without a stable id. Output is not reproducible
// unless rng is.
func RandomImages(rng *rand.Rand, category string) []string {
	p := imagePool(category)
	n := 1 + rng.Intn(maxImages)
	if n > len(p) {
		n = len(p)
	}
	out := make([]string, n)
	for i, j := range rng.Perm(len(p))[:n] {
		out[i] = p[j]
	}
	return out
}
