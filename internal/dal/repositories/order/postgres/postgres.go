package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ceibacafe/ordering/internal/dal/postgres"
	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/service/models/orderitem"
	"github.com/ceibacafe/ordering/internal/service/models/orderstatus"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"id",
	"restaurant_id",
	"status",
	"total::text",
	"delivery_address",
	"estimated_delivery_time",
	"coalesce(idempotency_key::text, '')",
	"created_at",
}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id                    int64     `db:"id"`
	RestaurantId          int64     `db:"restaurant_id"`
	Status                string    `db:"status"`
	Total                 string    `db:"total"`
	DeliveryAddress       string    `db:"delivery_address"`
	EstimatedDeliveryTime string    `db:"estimated_delivery_time"`
	IdempotencyKey        string    `db:"idempotency_key"`
	CreatedAt             time.Time `db:"created_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := orderstatus.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	total, err := decimal.NewFromString(o.Total)
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	return &order.Order{
		ID:                    o.Id,
		RestaurantID:          o.RestaurantId,
		Status:                status,
		Total:                 total,
		DeliveryAddress:       o.DeliveryAddress,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		IdempotencyKey:        o.IdempotencyKey,
		CreatedAt:             o.CreatedAt,
		Items:                 []orderitem.OrderItem{}, // populated separately
	}, nil
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates an order row and returns it with its assigned id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	var key interface{}
	if o.IdempotencyKey != "" {
		key = o.IdempotencyKey
	}

	sql, args, err := r.sb.
		Insert("orders").
		Columns(
			"restaurant_id",
			"status",
			"total",
			"delivery_address",
			"estimated_delivery_time",
			"idempotency_key",
			"created_at",
		).
		Values(
			o.RestaurantID,
			o.Status.String(),
			o.Total.String(),
			o.DeliveryAddress,
			o.EstimatedDeliveryTime,
			key,
			o.CreatedAt,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := r.scanRow(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return inserted, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.RestaurantIds) > 0 {
		query = query.Where(sq.Eq{"restaurant_id": filter.RestaurantIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus sets only the status column; returns nil when the id does
// not exist.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status orderstatus.Status,
) (*order.Order, error) {
	sql, args, err := r.sb.
		Update("orders").
		Set("status", status.String()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := r.scanRow(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return updated, nil
}

// GetByIdempotencyKey returns the order previously created with the key,
// or nil when the key is unseen.
func (r *PostgresOrderRepository) GetByIdempotencyKey(
	ctx context.Context,
	key string,
) (*order.Order, error) {
	sql, args, err := r.sb.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"idempotency_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	found, err := r.scanRow(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query order by idempotency key: %w", err)
	}

	return found, nil
}

func (r *PostgresOrderRepository) scanRow(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.RestaurantId,
		&dal.Status,
		&dal.Total,
		&dal.DeliveryAddress,
		&dal.EstimatedDeliveryTime,
		&dal.IdempotencyKey,
		&dal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	return dal.ToModel()
}
