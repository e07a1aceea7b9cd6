package repository

import (
	"context"
	"database/sql"

	"storefront/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

const productColumns = `id, name, description, price, image_url, category, stock_quantity, featured, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }, p *entity.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.StockQuantity, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	var product entity.Product
	if err := scanProduct(r.db.QueryRowContext(ctx, query, id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListFilter narrows GetProducts; zero values mean no filtering.
type ListFilter struct {
	Category string
	Featured *bool
}

func (r *ProductRepository) GetProducts(ctx context.Context, filter ListFilter) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var (
		conds []string
		args  []interface{}
	)
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, *filter.Featured)
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var product entity.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (name, description, price, image_url, category, stock_quantity, featured) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.Name, product.Description, product.Price, product.ImageURL, product.Category, product.StockQuantity, product.Featured)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	product.ID = int(id)
	return product, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `UPDATE products SET name = ?, description = ?, price = ?, image_url = ?, category = ?, stock_quantity = ?, featured = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, product.Name, product.Description, product.Price, product.ImageURL, product.Category, product.StockQuantity, product.Featured, product.ID)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// CountProducts is the store-wide catalog count used by the analytics
// dashboard, independent of any time window.
func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// AdjustStock adds delta to stock_quantity, which may be negative for a
// reservation. The floor guard keeps stock from going below zero.
func (r *ProductRepository) AdjustStock(ctx context.Context, id, delta int) error {
	query := `UPDATE products SET stock_quantity = GREATEST(stock_quantity + ?, 0) WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, delta, id)
	return err
}
