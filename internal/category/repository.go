package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var ErrCategoryNotFound = errors.New("category not found")

type Repository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, c *Category) (*Category, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Category, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = "id, name, description, product_count, subcategories"

func scanCategory(row interface{ Scan(...any) error }) (*Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ProductCount, pq.Array(&c.Subcategories))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c *Category) (*Category, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, product_count, subcategories)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.Name, c.Description, c.ProductCount, pq.Array(c.Subcategories)).Scan(&c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, params UpdateParams) (*Category, error) {
	var subcategories any
	if params.Subcategories != nil {
		subcategories = pq.Array(*params.Subcategories)
	}

	c, err := scanCategory(r.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name          = COALESCE($1, name),
			description   = COALESCE($2, description),
			product_count = COALESCE($3, product_count),
			subcategories = COALESCE($4, subcategories)
		WHERE id = $5
		RETURNING `+categoryColumns,
		params.Name, params.Description, params.ProductCount, subcategories, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
