package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopline/order-system/internal/model"
)

// OrderRepository предоставляет доступ к хранилищу заказов в PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository создаёт репозиторий заказов и инициализирует схему БД через миграции.
func NewOrderRepository(dsn string) (*OrderRepository, error) {
	pool, err := newPool(dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := runMigrations(ctx, pool, "migrations/orders"); err != nil {
		pool.Close()
		return nil, err
	}

	return &OrderRepository{pool: pool}, nil
}

// Close закрывает пул соединений с БД.
func (r *OrderRepository) Close() error {
	r.pool.Close()
	return nil
}

// Цены хранятся в минорных единицах, во внешних структурах используется число с двумя знаками.
func priceToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

const orderColumns = `id, user_id, product, price, quantity, status, description, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o          model.Order
		priceCents int64
		status     string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.Product, &priceCents, &o.Quantity,
		&status, &o.Description, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	o.Price = float64(priceCents) / 100
	o.Status = model.OrderStatus(status)
	return &o, nil
}

// CreateOrder сохраняет новый заказ и возвращает его с присвоенным идентификатором и метками времени.
func (r *OrderRepository) CreateOrder(ctx context.Context, o *model.Order) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO orders (user_id, product, price, quantity, status, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+orderColumns,
		o.UserID, o.Product, priceToCents(o.Price), o.Quantity, string(o.Status), o.Description,
	)

	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return created, nil
}

// GetOrderByID возвращает заказ по идентификатору.
func (r *OrderRepository) GetOrderByID(ctx context.Context, id int64) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// GetAllOrders возвращает все заказы, отсортированные по дате создания.
func (r *OrderRepository) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// GetOrdersByUser возвращает заказы указанного пользователя.
func (r *OrderRepository) GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
}

// GetOrdersByStatus возвращает заказы в указанном статусе.
func (r *OrderRepository) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC`,
		string(status))
}

// GetOrdersByUserAndStatus возвращает заказы пользователя в указанном статусе.
func (r *OrderRepository) GetOrdersByUserAndStatus(ctx context.Context, userID int64, status model.OrderStatus) ([]model.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`,
		userID, string(status))
}

// UpdateOrderStatus обновляет статус заказа и метку времени изменения.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
		 RETURNING `+orderColumns,
		id, string(status),
	)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

// UpdateOrder обновляет изменяемые поля заказа. Идентификатор и дата создания не меняются.
func (r *OrderRepository) UpdateOrder(ctx context.Context, id int64, o *model.Order) (*model.Order, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE orders
		 SET product = $2, price = $3, quantity = $4, status = $5, description = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+orderColumns,
		id, o.Product, priceToCents(o.Price), o.Quantity, string(o.Status), o.Description,
	)

	updated, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return updated, nil
}

// DeleteOrder удаляет заказ по идентификатору.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id int64) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
