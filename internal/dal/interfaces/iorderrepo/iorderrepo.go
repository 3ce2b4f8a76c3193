package iorderrepo

import (
	"context"

	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/service/models/orderstatus"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	// Insert creates an order row and returns it with its assigned id.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// Query returns orders newest-first.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// UpdateStatus sets only the status column; returns nil when the id
	// does not exist.
	UpdateStatus(ctx context.Context, id int64, status orderstatus.Status) (*order.Order, error)

	// GetByIdempotencyKey returns the order previously created with the
	// key, or nil when the key is unseen.
	GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error)
}
