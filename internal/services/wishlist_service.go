package services

import (
	"context"

	"shopfront/internal/repos"
)

type WishlistService struct {
	Repo    *repos.WishlistRepo
	Catalog ProductLookup
}

func NewWishlistService(r *repos.WishlistRepo, catalog ProductLookup) *WishlistService {
	return &WishlistService{Repo: r, Catalog: catalog}
}

// Save is idempotent; saving twice keeps one row.
func (s *WishlistService) Save(ctx context.Context, sessionID, productID string) error {
	p, err := resolve(ctx, s.Catalog, productID)
	if err != nil {
		return err
	}
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Add(id, p.ID, p.Name, p.Price)
}

func (s *WishlistService) Unsave(sessionID, productID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Remove(id, productID)
}

func (s *WishlistService) List(sessionID string) ([]repos.WishlistRow, error) {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.List(id)
	if rows == nil && err == nil {
		rows = []repos.WishlistRow{}
	}
	return rows, err
}
