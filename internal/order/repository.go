package order

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
	CreateOrderTx(ctx context.Context, o *Order) error
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]*Order, int64, error)
	ListAll(ctx context.Context, page, limit int) ([]*Order, int64, error)
	GetByID(ctx context.Context, orderID int64) (*Order, error)
	CancelTx(ctx context.Context, orderID int64) (*Order, error)
	AdminUpdateTx(ctx context.Context, orderID int64, params AdminUpdateParams) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, order_number, status, name, street, city, state,
	zip_code, country, subtotal, discount, shipping, tax, total,
	tracking_number, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Status,
		&o.ShippingAddress.Name, &o.ShippingAddress.Street, &o.ShippingAddress.City,
		&o.ShippingAddress.State, &o.ShippingAddress.ZipCode, &o.ShippingAddress.Country,
		&o.Subtotal, &o.Discount, &o.Shipping, &o.Tax, &o.Total,
		&o.TrackingNumber, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrderTx persists the order, its items and the initial tracking entry,
// decrements stock and clears the cart in a single transaction. The stock
// decrement is conditional (stock_count >= quantity); when another order won
// the race the whole transaction rolls back with ErrInsufficientStock, so
// stock can never go negative.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreateOrderTx"),
		zap.Int64("user_id", o.UserID),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, order_number, status, name, street, city, state,
			zip_code, country, subtotal, discount, shipping, tax, total
		) VALUES (
			$1, 'ORD-' || lpad(nextval('order_number_seq')::text, 6, '0'),
			$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		RETURNING id, order_number, created_at
	`,
		o.UserID, o.Status,
		o.ShippingAddress.Name, o.ShippingAddress.Street, o.ShippingAddress.City,
		o.ShippingAddress.State, o.ShippingAddress.ZipCode, o.ShippingAddress.Country,
		o.Subtotal, o.Discount, o.Shipping, o.Tax, o.Total,
	).Scan(&o.ID, &o.OrderNumber, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity, image)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID, item.ProductID, item.Name, item.Price, item.Quantity, item.Image)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int64("product_id", item.ProductID), zap.Error(err))
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock_count = stock_count - $1,
			    in_stock    = stock_count - $1 > 0,
			    sales       = sales + $1
			WHERE id = $2 AND stock_count >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			log.Error("failed to decrement stock",
				zap.Int64("product_id", item.ProductID), zap.Error(err))
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			log.Warn("stock decrement lost the race",
				zap.Int64("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
			)
			return ErrInsufficientStock
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_tracking (order_id, status) VALUES ($1, $2)
	`, o.ID, StatusPending)
	if err != nil {
		log.Error("failed to insert tracking entry", zap.Error(err))
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, o.UserID)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	o.TrackingUpdates = []TrackingUpdate{{Status: StatusPending, Date: o.CreatedAt}}

	log.Info("order placed",
		zap.Int64("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
	)
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64, page, limit int) ([]*Order, int64, error) {
	return r.list(ctx, " WHERE user_id = $1", []any{userID}, page, limit)
}

func (r *repository) ListAll(ctx context.Context, page, limit int) ([]*Order, int64, error) {
	return r.list(ctx, "", nil, page, limit)
}

func (r *repository) list(ctx context.Context, where string, args []any, page, limit int) ([]*Order, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "ListOrders"),
		zap.Int("page", page),
		zap.Int("limit", limit),
	)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, 0, err
	}

	argIndex := len(args) + 1
	query := "SELECT " + orderColumns + " FROM orders" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachDetails(ctx, orders); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// attachDetails loads items and tracking logs for a page of orders.
func (r *repository) attachDetails(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
		o.Items = []Item{}
		o.TrackingUpdates = []TrackingUpdate{}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, name, price, quantity, image
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var it Item
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.Image); err != nil {
			return err
		}
		byID[orderID].Items = append(byID[orderID].Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	trows, err := r.db.QueryContext(ctx, `
		SELECT order_id, status, date, location
		FROM order_tracking
		WHERE order_id = ANY($1)
		ORDER BY date, id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer trows.Close()

	for trows.Next() {
		var orderID int64
		var tu TrackingUpdate
		if err := trows.Scan(&orderID, &tu.Status, &tu.Date, &tu.Location); err != nil {
			return err
		}
		byID[orderID].TrackingUpdates = append(byID[orderID].TrackingUpdates, tu)
	}
	return trows.Err()
}

func (r *repository) GetByID(ctx context.Context, orderID int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachDetails(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// CancelTx marks the order cancelled, appends the tracking entry and restores
// exactly the quantities the order decremented, in one transaction.
func (r *repository) CancelTx(ctx context.Context, orderID int64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CancelTx"),
		zap.Int64("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Guarded so a concurrent double-cancel cannot restock twice.
	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1
		WHERE id = $2 AND status IN ('pending', 'processing')
	`, StatusCancelled, orderID)
	if err != nil {
		return nil, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrNotCancellable
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_tracking (order_id, status) VALUES ($1, $2)
	`, orderID, StatusCancelled)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE products p
		SET stock_count = p.stock_count + oi.quantity,
		    in_stock    = true
		FROM order_items oi
		WHERE oi.order_id = $1 AND p.id = oi.product_id
	`, orderID)
	if err != nil {
		log.Error("failed to restock cancelled order", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order cancelled")
	return r.GetByID(ctx, orderID)
}

// AdminUpdateTx applies a status change (with tracking entry) and/or a
// tracking number.
func (r *repository) AdminUpdateTx(ctx context.Context, orderID int64, params AdminUpdateParams) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if params.Status != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1 WHERE id = $2`, *params.Status, orderID)
		if err != nil {
			return nil, err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return nil, ErrOrderNotFound
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_tracking (order_id, status, location) VALUES ($1, $2, $3)
		`, orderID, *params.Status, params.Location)
		if err != nil {
			return nil, err
		}
	}

	if params.TrackingNumber != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE orders SET tracking_number = $1 WHERE id = $2`, *params.TrackingNumber, orderID)
		if err != nil {
			return nil, err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return nil, ErrOrderNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, orderID)
}
