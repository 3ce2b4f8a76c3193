package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ceibacafe/ordering/internal/dal/postgres"
	"github.com/ceibacafe/ordering/internal/service/models/restaurant"
	"github.com/shopspring/decimal"
)

// RestaurantDal represents restaurant data access layer model. Money and
// rating columns travel as text so NUMERIC values never pass through binary
// floats.
type RestaurantDal struct {
	Id           int64  `db:"id"`
	Name         string `db:"name"`
	Cuisine      string `db:"cuisine"`
	Rating       string `db:"rating"`
	DeliveryTime string `db:"delivery_time"`
	DeliveryFee  string `db:"delivery_fee"`
	Image        string `db:"image"`
	Category     string `db:"category"`
	IsOpen       bool   `db:"is_open"`
}

// ToModel converts RestaurantDal to the service layer Restaurant model.
func (r *RestaurantDal) ToModel() (*restaurant.Restaurant, error) {
	rating, err := decimal.NewFromString(r.Rating)
	if err != nil {
		return nil, fmt.Errorf("parse rating: %w", err)
	}
	fee, err := decimal.NewFromString(r.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("parse delivery fee: %w", err)
	}

	return &restaurant.Restaurant{
		ID:           r.Id,
		Name:         r.Name,
		Cuisine:      r.Cuisine,
		Rating:       rating,
		DeliveryTime: r.DeliveryTime,
		DeliveryFee:  fee,
		Image:        r.Image,
		Category:     r.Category,
		IsOpen:       r.IsOpen,
	}, nil
}

// PostgresRestaurantRepository represents a Postgres restaurant repository.
type PostgresRestaurantRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresRestaurantRepository creates a new Postgres restaurant repository.
func NewPostgresRestaurantRepository(conn postgres.GenericConn) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Query retrieves restaurants based on filter criteria.
func (r *PostgresRestaurantRepository) Query(
	ctx context.Context,
	filter *restaurant.QueryRestaurantsModel,
) ([]restaurant.Restaurant, error) {
	query := r.sb.
		Select(
			"id",
			"name",
			"cuisine",
			"rating::text",
			"delivery_time",
			"delivery_fee::text",
			"image",
			"category",
			"is_open",
		).
		From("restaurants").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if filter.Category != "" {
		query = query.Where(sq.Eq{"category": filter.Category})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"cuisine": pattern},
		})
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
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var result []restaurant.Restaurant
	for rows.Next() {
		var dal RestaurantDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Cuisine,
			&dal.Rating,
			&dal.DeliveryTime,
			&dal.DeliveryFee,
			&dal.Image,
			&dal.Category,
			&dal.IsOpen,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert restaurant dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
