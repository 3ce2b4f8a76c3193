package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ceibacafe/ordering/internal/dal/postgres"
	"github.com/ceibacafe/ordering/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id         int64  `db:"id"`
	OrderId    int64  `db:"order_id"`
	MenuItemId int64  `db:"menu_item_id"`
	Quantity   int    `db:"quantity"`
	Price      string `db:"price"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() (*orderitem.OrderItem, error) {
	price, err := decimal.NewFromString(oi.Price)
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}

	return &orderitem.OrderItem{
		ID:         oi.Id,
		OrderID:    oi.OrderId,
		MenuItemID: oi.MenuItemId,
		Quantity:   oi.Quantity,
		Price:      price,
	}, nil
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts all items in one statement and returns them with
// assigned ids, in input order.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query := r.sb.
		Insert("order_items").
		Columns("order_id", "menu_item_id", "quantity", "price")

	for _, oi := range orderItems {
		query = query.Values(oi.OrderID, oi.MenuItemID, oi.Quantity, oi.Price.String())
	}

	sql, args, err := query.
		Suffix("RETURNING id, order_id, menu_item_id, quantity, price::text").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select("id", "order_id", "menu_item_id", "quantity", "price::text").
		From("order_items").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	if len(filter.MenuItemIds) > 0 {
		query = query.Where(sq.Eq{"menu_item_id": filter.MenuItemIds})
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
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

func scanOrderItems(rows pgx.Rows) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.MenuItemId,
			&dal.Quantity,
			&dal.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order item dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
