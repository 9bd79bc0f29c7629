package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartcart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, int64, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Featured(ctx context.Context, limit int) ([]*Product, error)
	Related(ctx context.Context, category string, excludeID int64, limit int) ([]*Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, price, original_price, rating, reviews, image, images,
	badge, category, brand, in_stock, stock_count, description, features,
	colors, sizes, free_shipping, estimated_days, sales, status, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.OriginalPrice, &p.Rating, &p.Reviews,
		&p.Image, pq.Array(&p.Images), &p.Badge, &p.Category, &p.Brand,
		&p.InStock, &p.StockCount, &p.Description, pq.Array(&p.Features),
		pq.Array(&p.Colors), pq.Array(&p.Sizes), &p.FreeShipping,
		&p.EstimatedDays, &p.Sales, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "List"),
		zap.Int("page", opts.Page),
		zap.Int("limit", opts.Limit),
	)

	where := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	if opts.Category != "" {
		where += fmt.Sprintf(" AND category ILIKE $%d", argIndex)
		args = append(args, "%"+opts.Category+"%")
		argIndex++
	}

	if opts.Search != "" {
		where += fmt.Sprintf(
			" AND (name ILIKE $%d OR description ILIKE $%d OR brand ILIKE $%d)",
			argIndex, argIndex, argIndex,
		)
		args = append(args, "%"+opts.Search+"%")
		argIndex++
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		log.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	query := "SELECT " + productColumns + " FROM products" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Featured(ctx context.Context, limit int) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = 'active'
		ORDER BY rating DESC, sales DESC
		LIMIT $1
	`
	return r.queryProducts(ctx, query, limit)
}

func (r *repository) Related(ctx context.Context, category string, excludeID int64, limit int) ([]*Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = 'active' AND category ILIKE $1 AND id <> $2
		ORDER BY sales DESC
		LIMIT $3
	`
	return r.queryProducts(ctx, query, "%"+category+"%", excludeID, limit)
}

func (r *repository) queryProducts(ctx context.Context, query string, args ...any) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	query := `
		INSERT INTO products (
			name, price, original_price, image, images, badge, category, brand,
			in_stock, stock_count, description, features, colors, sizes,
			free_shipping, estimated_days, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,'active')
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query,
		params.Name, params.Price, params.OriginalPrice, params.Image,
		pq.Array(params.Images), params.Badge, params.Category, params.Brand,
		params.StockCount > 0, params.StockCount, params.Description,
		pq.Array(params.Features), pq.Array(params.Colors), pq.Array(params.Sizes),
		params.FreeShipping, params.EstimatedDays,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, params UpdateParams) (*Product, error) {
	var images, features, colors, sizes any
	if params.Images != nil {
		images = pq.Array(*params.Images)
	}
	if params.Features != nil {
		features = pq.Array(*params.Features)
	}
	if params.Colors != nil {
		colors = pq.Array(*params.Colors)
	}
	if params.Sizes != nil {
		sizes = pq.Array(*params.Sizes)
	}

	// in_stock is recomputed whenever the row changes so it can never drift
	// from stock_count.
	query := `
		UPDATE products SET
			name           = COALESCE($1, name),
			price          = COALESCE($2, price),
			original_price = COALESCE($3, original_price),
			image          = COALESCE($4, image),
			images         = COALESCE($5, images),
			badge          = COALESCE($6, badge),
			category       = COALESCE($7, category),
			brand          = COALESCE($8, brand),
			stock_count    = COALESCE($9, stock_count),
			description    = COALESCE($10, description),
			features       = COALESCE($11, features),
			colors         = COALESCE($12, colors),
			sizes          = COALESCE($13, sizes),
			free_shipping  = COALESCE($14, free_shipping),
			estimated_days = COALESCE($15, estimated_days),
			in_stock       = COALESCE($9, stock_count) > 0
		WHERE id = $16
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query,
		params.Name, params.Price, params.OriginalPrice, params.Image,
		images, params.Badge, params.Category, params.Brand,
		params.StockCount, params.Description, features, colors, sizes,
		params.FreeShipping, params.EstimatedDays, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) ToggleStatus(ctx context.Context, id int64) (*Product, error) {
	query := `
		UPDATE products
		SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
