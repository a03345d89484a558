package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
)

type CatalogSource struct {
	Size  int
	Seed  int64
	Reuse bool
	Now   time.Time
}

// LoadCatalog returns the catalog the engine should serve. With Reuse set, a
// stored snapshot generated from the same seed and size is loaded as is;
// otherwise a fresh catalog is generated and persisted in place of the old one.
func LoadCatalog(repo *repos.ProductRepo, src CatalogSource) ([]domain.Product, error) {
	start := time.Now()
	if src.Reuse {
		products, ok, err := storedSnapshot(repo, src)
		if err != nil {
			return nil, err
		}
		if ok {
			applog.Timed("catalog.load", start, map[string]any{"count": len(products), "seed": src.Seed})
			return products, nil
		}
	}

	now := src.Now
	if now.IsZero() {
		now = time.Now()
	}
	products := catalog.NewGenerator(src.Seed, now).Generate(src.Size)
	if err := repo.ReplaceAll(products); err != nil {
		return nil, fmt.Errorf("persist catalog: %w", err)
	}
	if err := repo.SetMeta("seed", strconv.FormatInt(src.Seed, 10)); err != nil {
		return nil, err
	}
	if err := repo.SetMeta("size", strconv.Itoa(src.Size)); err != nil {
		return nil, err
	}
	applog.Timed("catalog.generate", start, map[string]any{"count": len(products), "seed": src.Seed})
	return products, nil
}

func storedSnapshot(repo *repos.ProductRepo, src CatalogSource) ([]domain.Product, bool, error) {
	seed, err := repo.Meta("seed")
	if errors.Is(err, repos.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	size, err := repo.Meta("size")
	if errors.Is(err, repos.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if seed != strconv.FormatInt(src.Seed, 10) || size != strconv.Itoa(src.Size) {
		applog.Event("catalog.snapshot.stale", map[string]any{"stored_seed": seed, "stored_size": size})
		return nil, false, nil
	}
	// meta can outlive a partially written snapshot
	n, err := repo.Count()
	if err != nil {
		return nil, false, err
	}
	if n != src.Size {
		applog.Event("catalog.snapshot.incomplete", map[string]any{"rows": n, "want": src.Size})
		return nil, false, nil
	}
	products, err := repo.All()
	if err != nil {
		return nil, false, err
	}
	return products, true, nil
}
