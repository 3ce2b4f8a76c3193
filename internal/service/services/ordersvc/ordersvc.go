package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ceibacafe/ordering/internal/dal/interfaces/iorderitemrepo"
	"github.com/ceibacafe/ordering/internal/dal/interfaces/iorderrepo"
	"github.com/ceibacafe/ordering/internal/dal/interfaces/ioutboxrepo"
	"github.com/ceibacafe/ordering/internal/dal/postgres"
	"github.com/ceibacafe/ordering/internal/dal/uow"
	"github.com/ceibacafe/ordering/internal/service/errs"
	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/service/models/orderitem"
	"github.com/ceibacafe/ordering/internal/service/models/orderstatus"
	"github.com/ceibacafe/ordering/internal/service/models/outbox"
	"github.com/ceibacafe/ordering/internal/service/models/restaurant"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// QueueOrderCreated receives one message per accepted order; the
	// notification side consumes it.
	QueueOrderCreated = "orders.created"
	// QueueOrderStatusUpdated receives one message per status change.
	QueueOrderStatusUpdated = "orders.status_updated"

	outboxMaxRetries = 5
	resolveWorkers   = 4
)

// catalog is the read-only menu collaborator orders are validated against.
type catalog interface {
	GetRestaurant(ctx context.Context, id int64) (*restaurant.Restaurant, error)
	GetMenuItem(ctx context.Context, id int64) (*menuitem.MenuItem, error)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// OrderService turns submitted carts into durable, price-correct orders
// and walks them through the fulfillment statuses.
type OrderService struct {
	catalog           catalog
	newUOW            func() unitOfWork
	estimatedDelivery string
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		estimatedDelivery: "25-35 min",
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithCatalog sets the catalog collaborator.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c catalog) option {
	return func(s *OrderService) {
		s.catalog = c
	}
}

// WithUnitOfWorkFactory sets the unit of work factory directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithEstimatedDeliveryTime sets the window stamped onto new orders.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEstimatedDeliveryTime(window string) option {
	return func(s *OrderService) {
		if window != "" {
			s.estimatedDelivery = window
		}
	}
}

// CreateOrder validates the request against the catalog, snapshots prices,
// and persists the order with its items and an outbox event in one
// transaction. Nothing is written unless every line resolves.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	if err := validateCreateOrder(&req); err != nil {
		return nil, err
	}

	rest, err := s.catalog.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	items, total, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	if req.IdempotencyKey != "" {
		existing, err := work.OrderRepository().GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			// Replayed submission: hand back the order the key created.
			_ = work.Rollback(ctx)
			return s.GetOrder(ctx, existing.ID)
		}
	}

	inserted, err := work.OrderRepository().Insert(ctx, order.Order{
		RestaurantID:          req.RestaurantID,
		Status:                orderstatus.StatusConfirmed,
		Total:                 total,
		DeliveryAddress:       req.DeliveryAddress,
		EstimatedDeliveryTime: s.estimatedDelivery,
		IdempotencyKey:        req.IdempotencyKey,
		CreatedAt:             time.Now(),
	})
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = inserted.ID
	}
	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}
	for i := range insertedItems {
		insertedItems[i].MenuItem = items[i].MenuItem
	}

	inserted.Items = insertedItems
	inserted.Restaurant = rest

	if err := s.enqueueEvent(ctx, work, QueueOrderCreated, inserted); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return inserted, nil
}

// resolveItems looks every requested line up in the catalog and snapshots
// its unit price. Any unresolvable id fails the whole request.
func (s *OrderService) resolveItems(
	ctx context.Context,
	reqItems []CreateOrderItemRequest,
) ([]orderitem.OrderItem, decimal.Decimal, error) {
	resolved := make([]orderitem.OrderItem, len(reqItems))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveWorkers)
	for i, reqItem := range reqItems {
		g.Go(func() error {
			item, err := s.catalog.GetMenuItem(gctx, reqItem.MenuItemID)
			if err != nil {
				return err
			}

			resolved[i] = orderitem.OrderItem{
				MenuItemID: reqItem.MenuItemID,
				Quantity:   reqItem.Quantity,
				Price:      item.UnitPrice(menuitem.Size(reqItem.Size)),
				MenuItem:   item,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for i := range resolved {
		total = total.Add(resolved[i].Price.Mul(decimal.NewFromInt(int64(resolved[i].Quantity))))
	}

	return resolved, total, nil
}

// GetOrder retrieves one order with its restaurant and joined items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	orders, err := s.GetOrders(ctx, order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.NotFound("order", id)
	}

	return &orders[0], nil
}

// GetOrders retrieves orders newest-first, each composed with its
// restaurant and items joined with their menu items.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIds = append(orderIds, o.ID)
	}
	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: orderIds,
	})
	if err != nil {
		return nil, err
	}

	menuItems, err := s.resolveMenuItems(ctx, items)
	if err != nil {
		return nil, err
	}
	restaurants, err := s.resolveRestaurants(ctx, orders)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].MenuItem = menuItems[items[i].MenuItemID]
	}
	for i := range orders {
		orders[i].Restaurant = restaurants[orders[i].RestaurantID]
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return orders, nil
}

// UpdateStatus moves an order along the fulfillment progression. Unknown
// statuses and backward moves are rejected; re-setting the current status
// stays allowed so retried updates are harmless.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	id int64,
	statusStr string,
) (*order.Order, error) {
	next, err := orderstatus.ParseStatus(statusStr)
	if err != nil {
		return nil, errs.ValidationError{
			Field:   "status",
			Message: "must be one of: confirmed, preparing, out_for_delivery, delivered",
		}
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = work.Rollback(ctx) }()

	current, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, errs.NotFound("order", id)
	}

	if !current[0].Status.CanTransitionTo(next) {
		return nil, errs.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot move from %s to %s", current[0].Status, next),
		}
	}

	updated, err := work.OrderRepository().UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errs.NotFound("order", id)
	}

	if err := s.enqueueEvent(ctx, work, QueueOrderStatusUpdated, updated); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	return updated, nil
}

// enqueueEvent stages an order event in the outbox within the current
// transaction; the outbox worker delivers it to RabbitMQ.
func (s *OrderService) enqueueEvent(
	ctx context.Context,
	work unitOfWork,
	queue string,
	o *order.Order,
) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	now := time.Now()
	return work.OutboxRepository().Insert(ctx, outbox.OutboxMessage{
		QueueName:   queue,
		RoutingKey:  queue,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  outboxMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}

func (s *OrderService) resolveMenuItems(
	ctx context.Context,
	items []orderitem.OrderItem,
) (map[int64]*menuitem.MenuItem, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if !seen[item.MenuItemID] {
			seen[item.MenuItemID] = true
			ids = append(ids, item.MenuItemID)
		}
	}

	resolved := make([]*menuitem.MenuItem, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveWorkers)
	for i, id := range ids {
		g.Go(func() error {
			item, err := s.catalog.GetMenuItem(gctx, id)
			if err != nil {
				return err
			}
			resolved[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byId := make(map[int64]*menuitem.MenuItem, len(ids))
	for i, id := range ids {
		byId[id] = resolved[i]
	}

	return byId, nil
}

func (s *OrderService) resolveRestaurants(
	ctx context.Context,
	orders []order.Order,
) (map[int64]*restaurant.Restaurant, error) {
	byId := make(map[int64]*restaurant.Restaurant, 1)
	for _, o := range orders {
		if _, ok := byId[o.RestaurantID]; ok {
			continue
		}
		rest, err := s.catalog.GetRestaurant(ctx, o.RestaurantID)
		if err != nil {
			return nil, err
		}
		byId[o.RestaurantID] = rest
	}

	return byId, nil
}
