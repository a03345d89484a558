package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"shopfront/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID            string          `db:"id"`
	Position      int             `db:"position"`
	SKU           string          `db:"sku"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Category      string          `db:"category"`
	Subcategory   string          `db:"subcategory"`
	Brand         string          `db:"brand"`
	TagsJSON      string          `db:"tags_json"`
	Price         float64         `db:"price"`
	OriginalPrice sql.NullFloat64 `db:"original_price"`
	StockQuantity int             `db:"stock_quantity"`
	Rating        float64         `db:"rating"`
	ReviewCount   int             `db:"review_count"`
	ImagesJSON    string          `db:"images_json"`
	SpecsJSON     string          `db:"specs_json"`
	CreatedAt     string          `db:"created_at"`
	UpdatedAt     string          `db:"updated_at"`
}

const productColumns = `
    id, position, sku, name, COALESCE(description,'') AS description, category,
    COALESCE(subcategory,'') AS subcategory, brand, tags_json, price, original_price,
    stock_quantity, rating, review_count, images_json, specs_json, created_at, updated_at`

func toRow(pos int, p domain.Product) (productRow, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return productRow{}, err
	}
	imgs, err := json.Marshal(p.Images)
	if err != nil {
		return productRow{}, err
	}
	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return productRow{}, err
	}
	r := productRow{
		ID: p.ID, Position: pos, SKU: p.SKU, Name: p.Name, Description: p.Description,
		Category: p.Category, Subcategory: p.Subcategory, Brand: p.Brand, TagsJSON: string(tags),
		Price: p.Price, StockQuantity: p.StockQuantity, Rating: p.Rating, ReviewCount: p.ReviewCount,
		ImagesJSON: string(imgs), SpecsJSON: string(specs), CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	if p.OriginalPrice != nil {
		r.OriginalPrice = sql.NullFloat64{Float64: *p.OriginalPrice, Valid: true}
	}
	return r, nil
}

func (r productRow) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID: r.ID, SKU: r.SKU, Name: r.Name, Description: r.Description, Category: r.Category,
		Subcategory: r.Subcategory, Brand: r.Brand, Price: r.Price, StockQuantity: r.StockQuantity,
		InStock: r.StockQuantity > 0, Rating: r.Rating, ReviewCount: r.ReviewCount,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
	if r.OriginalPrice.Valid {
		op := r.OriginalPrice.Float64
		p.OriginalPrice = &op
	}
	if err := json.Unmarshal([]byte(r.TagsJSON), &p.Tags); err != nil {
		return domain.Product{}, fmt.Errorf("product %s tags: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.ImagesJSON), &p.Images); err != nil {
		return domain.Product{}, fmt.Errorf("product %s images: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.SpecsJSON), &p.Specifications); err != nil {
		return domain.Product{}, fmt.Errorf("product %s specs: %w", r.ID, err)
	}
	return p, nil
}

// ReplaceAll swaps the stored catalog for products in a single transaction.
func (r *ProductRepo) ReplaceAll(products []domain.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}
	for i, p := range products {
		row, err := toRow(i, p)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExec(`
		  INSERT INTO products(
		    id, position, sku, name, description, category, subcategory, brand, tags_json,
		    price, original_price, stock_quantity, rating, review_count, images_json, specs_json,
		    created_at, updated_at)
		  VALUES(
		    :id, :position, :sku, :name, :description, :category, :subcategory, :brand, :tags_json,
		    :price, :original_price, :stock_quantity, :rating, :review_count, :images_json, :specs_json,
		    :created_at, :updated_at)
		`, row); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// All returns the stored catalog in its original order.
func (r *ProductRepo) All() ([]domain.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, `SELECT `+productColumns+` FROM products ORDER BY position`); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain()
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

// SetMeta records a catalog attribute such as the seed it was generated from.
func (r *ProductRepo) SetMeta(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO catalog_meta(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (r *ProductRepo) Meta(key string) (string, error) {
	var v string
	err := r.db.Get(&v, `SELECT value FROM catalog_meta WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return v, err
}
