package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/ceibacafe/ordering/internal/dal/postgres"
	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// menuItemColumns is the select list shared by every query; NUMERIC columns
// are cast to text.
var menuItemColumns = []string{
	"id",
	"restaurant_id",
	"name",
	"description",
	"price::text",
	"regular_price::text",
	"big_price::text",
	"has_size_options",
	"image",
	"category",
	"is_available",
}

// MenuItemDal represents menu item data access layer model.
type MenuItemDal struct {
	Id             int64   `db:"id"`
	RestaurantId   int64   `db:"restaurant_id"`
	Name           string  `db:"name"`
	Description    string  `db:"description"`
	Price          string  `db:"price"`
	RegularPrice   *string `db:"regular_price"`
	BigPrice       *string `db:"big_price"`
	HasSizeOptions bool    `db:"has_size_options"`
	Image          string  `db:"image"`
	Category       string  `db:"category"`
	IsAvailable    bool    `db:"is_available"`
}

// ToModel converts MenuItemDal to the service layer MenuItem model.
func (m *MenuItemDal) ToModel() (*menuitem.MenuItem, error) {
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}

	item := &menuitem.MenuItem{
		ID:             m.Id,
		RestaurantID:   m.RestaurantId,
		Name:           m.Name,
		Description:    m.Description,
		Price:          price,
		HasSizeOptions: m.HasSizeOptions,
		Image:          m.Image,
		Category:       m.Category,
		IsAvailable:    m.IsAvailable,
	}

	if m.RegularPrice != nil {
		regular, err := decimal.NewFromString(*m.RegularPrice)
		if err != nil {
			return nil, fmt.Errorf("parse regular price: %w", err)
		}
		item.RegularPrice = &regular
	}
	if m.BigPrice != nil {
		big, err := decimal.NewFromString(*m.BigPrice)
		if err != nil {
			return nil, fmt.Errorf("parse big price: %w", err)
		}
		item.BigPrice = &big
	}

	return item, nil
}

// PostgresMenuItemRepository represents a Postgres menu item repository.
type PostgresMenuItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresMenuItemRepository creates a new Postgres menu item repository.
func NewPostgresMenuItemRepository(conn postgres.GenericConn) *PostgresMenuItemRepository {
	return &PostgresMenuItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query retrieves menu items based on filter criteria.
func (r *PostgresMenuItemRepository) Query(
	ctx context.Context,
	filter *menuitem.QueryMenuItemsModel,
) ([]menuitem.MenuItem, error) {
	query := r.sb.
		Select(menuItemColumns...).
		From("menu_items").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.RestaurantIds) > 0 {
		query = query.Where(sq.Eq{"restaurant_id": filter.RestaurantIds})
	}

	if filter.Category != "" {
		query = query.Where(sq.Eq{"category": filter.Category})
	}

	if filter.OnlyAvailable {
		query = query.Where(sq.Eq{"is_available": true})
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
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	return scanMenuItems(rows)
}

// Insert creates a menu item and returns it with its assigned id.
func (r *PostgresMenuItemRepository) Insert(
	ctx context.Context,
	item menuitem.MenuItem,
) (*menuitem.MenuItem, error) {
	sql, args, err := r.sb.
		Insert("menu_items").
		Columns(
			"restaurant_id",
			"name",
			"description",
			"price",
			"regular_price",
			"big_price",
			"has_size_options",
			"image",
			"category",
			"is_available",
		).
		Values(
			item.RestaurantID,
			item.Name,
			item.Description,
			item.Price.String(),
			decimalOrNil(item.RegularPrice),
			decimalOrNil(item.BigPrice),
			item.HasSizeOptions,
			item.Image,
			item.Category,
			item.IsAvailable,
		).
		Suffix("RETURNING " + selectList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	return r.scanOne(ctx, sql, args)
}

// Update rewrites a menu item; returns nil when the id does not exist.
func (r *PostgresMenuItemRepository) Update(
	ctx context.Context,
	item menuitem.MenuItem,
) (*menuitem.MenuItem, error) {
	sql, args, err := r.sb.
		Update("menu_items").
		Set("restaurant_id", item.RestaurantID).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price.String()).
		Set("regular_price", decimalOrNil(item.RegularPrice)).
		Set("big_price", decimalOrNil(item.BigPrice)).
		Set("has_size_options", item.HasSizeOptions).
		Set("image", item.Image).
		Set("category", item.Category).
		Set("is_available", item.IsAvailable).
		Where(sq.Eq{"id": item.ID}).
		Suffix("RETURNING " + selectList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := r.scanOne(ctx, sql, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return updated, nil
}

// Delete removes a menu item; reports whether a row was deleted.
func (r *PostgresMenuItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.
		Delete("menu_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete menu item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PostgresMenuItemRepository) scanOne(
	ctx context.Context,
	sql string,
	args []interface{},
) (*menuitem.MenuItem, error) {
	var dal MenuItemDal
	err := r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.RestaurantId,
		&dal.Name,
		&dal.Description,
		&dal.Price,
		&dal.RegularPrice,
		&dal.BigPrice,
		&dal.HasSizeOptions,
		&dal.Image,
		&dal.Category,
		&dal.IsAvailable,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan menu item: %w", err)
	}

	return dal.ToModel()
}

func scanMenuItems(rows pgx.Rows) ([]menuitem.MenuItem, error) {
	var result []menuitem.MenuItem
	for rows.Next() {
		var dal MenuItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.RestaurantId,
			&dal.Name,
			&dal.Description,
			&dal.Price,
			&dal.RegularPrice,
			&dal.BigPrice,
			&dal.HasSizeOptions,
			&dal.Image,
			&dal.Category,
			&dal.IsAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert menu item dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func selectList() string {
	return strings.Join(menuItemColumns, ", ")
}

func decimalOrNil(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}
