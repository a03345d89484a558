package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	ProductID  string  `db:"product_id" json:"productId"`
	Name       string  `db:"name" json:"name"`
	Qty        int     `db:"qty" json:"qty"`
	PriceAtAdd float64 `db:"price_at_add" json:"priceAtAdd"`
	Subtotal   float64 `db:"subtotal" json:"subtotal"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID)
	if err == nil {
		return cartID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	_, err = r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// UpsertItem adds qty to the line, keeping the price captured on first add.
func (r *CartRepo) UpsertItem(cartID, productID, name string, qty int, price float64) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,name,qty,price_at_add,created_at)
		VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, name, qty, price)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE carts SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, cartID)
	return err
}

// View returns the lines and their total. The total is summed in decimal so
// it matches what a receipt would show.
func (r *CartRepo) View(cartID string) ([]CartItemRow, float64, error) {
	rows := []CartItemRow{}
	if err := r.db.Select(&rows, `
	  SELECT product_id, name, qty, price_at_add, (qty*price_at_add) AS subtotal
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY created_at, product_id
	`, cartID); err != nil {
		return nil, 0, err
	}
	total := decimal.Zero
	for i, it := range rows {
		sub := decimal.NewFromFloat(it.PriceAtAdd).Mul(decimal.NewFromInt(int64(it.Qty)))
		rows[i].Subtotal = sub.InexactFloat64()
		total = total.Add(sub)
	}
	return rows, total.InexactFloat64(), nil
}

func (r *CartRepo) Remove(cartID, productID string) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
