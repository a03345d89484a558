// Package query answers catalog queries over an immutable product slice:
// filtering, sorting, pagination, curated collections and facet data.
package query

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
)

// ErrInvalidLimit is returned by Search when limit < 1.
var ErrInvalidLimit = errors.New("limit must be at least 1")

type Engine struct {
	products []domain.Product
	created  []time.Time // parallel to products

	minDelay time.Duration
	maxDelay time.Duration
	lang     language.Tag

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type Option func(*Engine)

// WithLatency makes every call wait a random duration in [min, max] to
// emulate a network round-trip. Zero disables the delay.
func WithLatency(min, max time.Duration) Option {
	return func(e *Engine) {
		if max < min {
			max = min
		}
		e.minDelay, e.maxDelay = min, max
	}
}

// WithCollation sets the language used to compare names.
func WithCollation(tag language.Tag) Option {
	return func(e *Engine) { e.lang = tag }
}

// New copies products; later changes to the caller's slice are not observed.
func New(products []domain.Product, opts ...Option) *Engine {
	e := &Engine{
		products: make([]domain.Product, len(products)),
		created:  make([]time.Time, len(products)),
		lang:     language.English,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for i, p := range products {
		e.products[i] = p.Clone()
		t, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
		if err != nil {
			// zero time: orders first ascending, last in NewArrivals
			applog.Warn("catalog.created_at.invalid", err, map[string]any{"id": p.ID, "value": p.CreatedAt})
		}
		e.created[i] = t
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Len is the catalog size.
func (e *Engine) Len() int { return len(e.products) }

func (e *Engine) delay(ctx context.Context) error {
	d := e.minDelay
	if span := e.maxDelay - e.minDelay; span > 0 {
		e.mu.Lock()
		d += time.Duration(e.rng.Int63n(int64(span) + 1))
		e.mu.Unlock()
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// collator is built per call; collate.Collator is not safe for concurrent use.
func (e *Engine) collator() *collate.Collator {
	return collate.New(e.lang)
}

// entry pairs a catalog index with its product so sorts can break ties on
// catalog position.
type entry struct {
	idx int
	p   *domain.Product
}

func (e *Engine) where(keep func(*domain.Product) bool) []entry {
	var out []entry
	for i := range e.products {
		if keep(&e.products[i]) {
			out = append(out, entry{idx: i, p: &e.products[i]})
		}
	}
	return out
}

func clones(es []entry) []domain.Product {
	out := make([]domain.Product, len(es))
	for i, x := range es {
		out[i] = x.p.Clone()
	}
	return out
}

func truncate(es []entry, limit int) []entry {
	if limit < 0 {
		limit = 0
	}
	if len(es) > limit {
		return es[:limit]
	}
	return es
}
