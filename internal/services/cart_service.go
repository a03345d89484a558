package services

import (
	"context"
	"errors"

	"shopfront/internal/domain"
	"shopfront/internal/repos"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrOutOfStock     = errors.New("product out of stock")
)

// ProductLookup resolves a product id against the live catalog. It returns
// nil, nil for an unknown id.
type ProductLookup interface {
	Product(ctx context.Context, id string) (*domain.Product, error)
}

type CartService struct {
	Carts   *repos.CartRepo
	Catalog ProductLookup
}

func NewCartService(carts *repos.CartRepo, catalog ProductLookup) *CartService {
	return &CartService{Carts: carts, Catalog: catalog}
}

func resolve(ctx context.Context, lookup ProductLookup, id string) (*domain.Product, error) {
	p, err := lookup.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrUnknownProduct
	}
	return p, nil
}

// Add puts qty units of productID in the session's cart at the current price.
// Name and price are copied so the line survives a catalog regeneration.
func (s *CartService) Add(ctx context.Context, sessionID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := resolve(ctx, s.Catalog, productID)
	if err != nil {
		return err
	}
	if !p.InStock {
		return ErrOutOfStock
	}
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(cartID, p.ID, p.Name, qty, p.Price)
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Remove(cartID, productID)
}

type CartView struct {
	Items []repos.CartItemRow `json:"items"`
	Total float64             `json:"total"`
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, total, err := s.Carts.View(cartID)
	if err != nil {
		return CartView{}, err
	}
	if items == nil {
		items = []repos.CartItemRow{}
	}
	return CartView{Items: items, Total: total}, nil
}
