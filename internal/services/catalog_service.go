package services

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"shopfront/internal/cache"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/query"
)

// ResultCache is the subset of *cache.Cache the store uses.
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type SearchQuery struct {
	Filters domain.Filters `json:"filters"`
	Sort    domain.Sort    `json:"sort"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

// State is what UI collaborators poll: whether anything is in flight and the
// last search that completed.
type State struct {
	Loading    bool         `json:"loading"`
	InFlight   int64        `json:"inFlight"`
	LastQuery  *SearchQuery `json:"lastQuery,omitempty"`
	LastResult *domain.Page `json:"lastResult,omitempty"`
	LastError  string       `json:"lastError,omitempty"`
}

// CatalogService is the thin state layer over the query engine. It holds no
// catalog data of its own.
type CatalogService struct {
	Engine *query.Engine
	Cache  ResultCache // optional

	group    singleflight.Group
	inFlight atomic.Int64

	mu        sync.RWMutex
	lastQuery *SearchQuery
	lastPage  *domain.Page
	lastErr   error
}

func NewCatalogService(engine *query.Engine, c ResultCache) *CatalogService {
	return &CatalogService{Engine: engine, Cache: c}
}

func (s *CatalogService) track() func() {
	s.inFlight.Add(1)
	return func() { s.inFlight.Add(-1) }
}

func (s *CatalogService) State() State {
	n := s.inFlight.Load()
	st := State{Loading: n > 0, InFlight: n}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastQuery != nil {
		q := *s.lastQuery
		st.LastQuery = &q
	}
	if s.lastPage != nil {
		p := *s.lastPage
		st.LastResult = &p
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

func (s *CatalogService) remember(q SearchQuery, p domain.Page, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = &q
	s.lastErr = err
	if err == nil {
		s.lastPage = &p
	}
}

func searchKey(q SearchQuery) string {
	b, _ := json.Marshal(q)
	return cache.Key("search", string(b))
}

// Search runs q through the engine. Identical concurrent searches share one
// engine call; results are read from and written to the cache when one is set.
func (s *CatalogService) Search(ctx context.Context, q SearchQuery) (domain.Page, error) {
	defer s.track()()
	key := searchKey(q)

	if s.Cache != nil {
		var cached domain.Page
		found, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			applog.Warn("cache.get.fail", err, map[string]any{"key": key})
		}
		if found {
			s.remember(q, cached, nil)
			return cached, nil
		}
	}

	// The shared call runs detached so one caller giving up cannot fail the
	// others; each caller still stops waiting at its own deadline.
	ch := s.group.DoChan(key, func() (any, error) {
		return s.Engine.Search(context.WithoutCancel(ctx), q.Filters, q.Sort, q.Page, q.Limit)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return domain.Page{}, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		s.remember(q, domain.Page{}, res.Err)
		return domain.Page{}, res.Err
	}
	page := ownCopy(res.Val.(domain.Page))
	s.remember(q, page, nil)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, page); err != nil {
			applog.Warn("cache.set.fail", err, map[string]any{"key": key})
		}
	}
	return page, nil
}

// ownCopy detaches a shared page so callers joined on one search never see
// each other's edits.
func ownCopy(p domain.Page) domain.Page {
	data := make([]domain.Product, len(p.Data))
	for i := range p.Data {
		data[i] = p.Data[i].Clone()
	}
	p.Data = data
	return p
}

// Product returns nil when id is unknown.
func (s *CatalogService) Product(ctx context.Context, id string) (*domain.Product, error) {
	defer s.track()()
	return s.Engine.ProductByID(ctx, id)
}

func (s *CatalogService) Related(ctx context.Context, id string, limit int) ([]domain.Product, error) {
	defer s.track()()
	return s.Engine.Related(ctx, id, limit)
}

// Collection names accepted by Collection.
const (
	CollectionFeatured    = "featured"
	CollectionBestsellers = "bestsellers"
	CollectionNew         = "new"
	CollectionSale        = "sale"
)

// Collection dispatches to one of the curated lists. ok is false for an
// unknown name.
func (s *CatalogService) Collection(ctx context.Context, name string, limit int) (ps []domain.Product, ok bool, err error) {
	defer s.track()()
	switch name {
	case CollectionFeatured:
		ps, err = s.Engine.Featured(ctx, limit)
	case CollectionBestsellers:
		ps, err = s.Engine.Bestsellers(ctx, limit)
	case CollectionNew:
		ps, err = s.Engine.NewArrivals(ctx, limit)
	case CollectionSale:
		ps, err = s.Engine.Sale(ctx, limit)
	default:
		return nil, false, nil
	}
	return ps, true, err
}

func (s *CatalogService) Suggestions(ctx context.Context, q string, limit int) ([]string, error) {
	defer s.track()()
	return s.Engine.Suggestions(ctx, q, limit)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	defer s.track()()
	return s.Engine.Categories(ctx)
}

func (s *CatalogService) Brands(ctx context.Context) ([]string, error) {
	defer s.track()()
	return s.Engine.Brands(ctx)
}

func (s *CatalogService) PriceRange(ctx context.Context) (domain.PriceRange, error) {
	defer s.track()()
	return s.Engine.PriceRange(ctx)
}

// Facets loads categories, brands and price range concurrently so the page
// pays one simulated round-trip instead of three.
func (s *CatalogService) Facets(ctx context.Context) (domain.Facets, error) {
	defer s.track()()
	var f domain.Facets
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		f.Categories, err = s.Engine.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		f.Brands, err = s.Engine.Brands(gctx)
		return err
	})
	g.Go(func() (err error) {
		f.PriceRange, err = s.Engine.PriceRange(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Facets{}, err
	}
	return f, nil
}
