package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Ensure(sessionID string) (string, error) {
	var id string
	err := r.db.Get(&id, `SELECT id FROM wishlists WHERE session_id=?`, sessionID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	_, err = r.db.Exec(`INSERT INTO wishlists(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// Add is idempotent: saving the same product twice keeps one line.
func (r *WishlistRepo) Add(wishlistID, productID, name string, price float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist_items(wishlist_id, product_id, name, price, created_at)
	  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(wishlist_id, product_id) DO NOTHING
	`, wishlistID, productID, name, price)
	return err
}

func (r *WishlistRepo) Remove(wishlistID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE wishlist_id=? AND product_id=?`, wishlistID, productID)
	return err
}

type WishlistRow struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
}

func (r *WishlistRepo) List(wishlistID string) ([]WishlistRow, error) {
	out := []WishlistRow{}
	err := r.db.Select(&out, `
	  SELECT product_id, name, price
	  FROM wishlist_items
	  WHERE wishlist_id = ?
	  ORDER BY name, product_id
	`, wishlistID)
	return out, err
}
