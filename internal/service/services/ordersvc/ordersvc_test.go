package ordersvc

import (
	"context"
	"testing"
	"time"

	"github.com/ceibacafe/ordering/internal/service/errs"
	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/service/models/orderitem"
	"github.com/ceibacafe/ordering/internal/service/models/orderstatus"
	"github.com/ceibacafe/ordering/internal/service/models/outbox"
	"github.com/ceibacafe/ordering/internal/service/models/restaurant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceibacafe/ordering/internal/dal/interfaces/iorderitemrepo"
	"github.com/ceibacafe/ordering/internal/dal/interfaces/iorderrepo"
	"github.com/ceibacafe/ordering/internal/dal/interfaces/ioutboxrepo"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// fakeCatalog serves a fixed restaurant and menu.
type fakeCatalog struct {
	restaurants map[int64]*restaurant.Restaurant
	menuItems   map[int64]*menuitem.MenuItem
}

func (f *fakeCatalog) GetRestaurant(_ context.Context, id int64) (*restaurant.Restaurant, error) {
	if r, ok := f.restaurants[id]; ok {
		return r, nil
	}
	return nil, errs.NotFound("restaurant", id)
}

func (f *fakeCatalog) GetMenuItem(_ context.Context, id int64) (*menuitem.MenuItem, error) {
	if m, ok := f.menuItems[id]; ok {
		return m, nil
	}
	return nil, errs.NotFound("menu item", id)
}

// fakeOrderRepo is an in-memory order store.
type fakeOrderRepo struct {
	orders []order.Order
	nextID int64
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	f.nextID++
	o.ID = f.nextID
	f.orders = append(f.orders, o)
	return &o, nil
}

func (f *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		o := f.orders[i]
		if len(filter.Ids) > 0 && !containsID(filter.Ids, o.ID) {
			continue
		}
		o.Items = nil
		o.Restaurant = nil
		result = append(result, o)
	}
	return result, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status orderstatus.Status) (*order.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			updated := f.orders[i]
			return &updated, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetByIdempotencyKey(_ context.Context, key string) (*order.Order, error) {
	for i := range f.orders {
		if f.orders[i].IdempotencyKey == key {
			found := f.orders[i]
			return &found, nil
		}
	}
	return nil, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// fakeOrderItemRepo is an in-memory order item store.
type fakeOrderItemRepo struct {
	items  []orderitem.OrderItem
	nextID int64
}

func (f *fakeOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	inserted := make([]orderitem.OrderItem, 0, len(items))
	for _, item := range items {
		f.nextID++
		item.ID = f.nextID
		item.MenuItem = nil
		f.items = append(f.items, item)
		inserted = append(inserted, item)
	}
	return inserted, nil
}

func (f *fakeOrderItemRepo) Query(_ context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, item := range f.items {
		if len(filter.OrderIds) > 0 && !containsID(filter.OrderIds, item.OrderID) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// fakeOutboxRepo records staged messages.
type fakeOutboxRepo struct {
	messages []outbox.OutboxMessage
}

func (f *fakeOutboxRepo) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.OutboxMessage, error) {
	return f.messages, nil
}

func (f *fakeOutboxRepo) Delete(_ context.Context, _ int64) error { return nil }

func (f *fakeOutboxRepo) UpdateRetry(_ context.Context, _ int64, _ int, _ string, _ time.Time) error {
	return nil
}

// fakeUOW shares the fake repos across transactions and counts outcomes.
type fakeUOW struct {
	orderRepo     *fakeOrderRepo
	orderItemRepo *fakeOrderItemRepo
	outboxRepo    *fakeOutboxRepo
	commits       int
	rollbacks     int
}

func (f *fakeUOW) Begin(_ context.Context) error    { return nil }
func (f *fakeUOW) Commit(_ context.Context) error   { f.commits++; return nil }
func (f *fakeUOW) Rollback(_ context.Context) error { f.rollbacks++; return nil }

func (f *fakeUOW) OrderRepository() iorderrepo.IOrderRepository             { return f.orderRepo }
func (f *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository { return f.orderItemRepo }
func (f *fakeUOW) OutboxRepository() ioutboxrepo.IOutboxRepository          { return f.outboxRepo }

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		restaurants: map[int64]*restaurant.Restaurant{
			1: {ID: 1, Name: "Ceiba Cafe Pizzeria", IsOpen: true},
		},
		menuItems: map[int64]*menuitem.MenuItem{
			1: {
				ID:             1,
				RestaurantID:   1,
				Name:           "Margherita Classica",
				Price:          dec("18.99"),
				RegularPrice:   decPtr("18.99"),
				BigPrice:       decPtr("24.99"),
				HasSizeOptions: true,
				IsAvailable:    true,
			},
			6: {
				ID:           6,
				RestaurantID: 1,
				Name:         "Spaghetti Carbonara",
				Price:        dec("16.99"),
				IsAvailable:  true,
			},
		},
	}
}

func newTestService(work *fakeUOW) *OrderService {
	return MustNewOrderService(
		WithCatalog(testCatalog()),
		WithUnitOfWorkFactory(func() unitOfWork { return work }),
	)
}

func newFakeUOW() *fakeUOW {
	return &fakeUOW{
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
		outboxRepo:    &fakeOutboxRepo{},
	}
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	work := newFakeUOW()
	s := newTestService(work)

	created, err := s.CreateOrder(context.Background(), CreateOrderRequest{
		RestaurantID:    1,
		DeliveryAddress: "Calle Principal 5",
		Items: []CreateOrderItemRequest{
			{MenuItemID: 1, Quantity: 2, Size: "big"},
			{MenuItemID: 6, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, orderstatus.StatusConfirmed, created.Status)
	assert.Equal(t, "25-35 min", created.EstimatedDeliveryTime)
	// 24.99 * 2 + 16.99
	assert.True(t, dec("66.97").Equal(created.Total), "got %s", created.Total)

	require.Len(t, created.Items, 2)
	assert.True(t, dec("24.99").Equal(created.Items[0].Price))
	assert.True(t, dec("16.99").Equal(created.Items[1].Price))

	require.NotNil(t, created.Restaurant)
	assert.Equal(t, "Ceiba Cafe Pizzeria", created.Restaurant.Name)

	assert.Equal(t, 1, work.commits)
	require.Len(t, work.outboxRepo.messages, 1)
	assert.Equal(t, QueueOrderCreated, work.outboxRepo.messages[0].QueueName)
}

func TestCreateOrderLaterPriceEditsDoNotChangeTotal(t *testing.T) {
	work := newFakeUOW()
	catalog := testCatalog()
	s := MustNewOrderService(
		WithCatalog(catalog),
		WithUnitOfWorkFactory(func() unitOfWork { return work }),
	)

	created, err := s.CreateOrder(context.Background(), CreateOrderRequest{
		RestaurantID: 1,
		Items:        []CreateOrderItemRequest{{MenuItemID: 6, Quantity: 2}},
	})
	require.NoError(t, err)
	require.True(t, dec("33.98").Equal(created.Total))

	// The kitchen raises the price after the order is in.
	catalog.menuItems[6].Price = dec("99.99")

	fetched, err := s.GetOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, dec("33.98").Equal(fetched.Total), "got %s", fetched.Total)
	require.Len(t, fetched.Items, 1)
	assert.True(t, dec("16.99").Equal(fetched.Items[0].Price))
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateOrderRequest
		wantField string
	}{
		{
			name:      "missing restaurant id",
			req:       CreateOrderRequest{Items: []CreateOrderItemRequest{{MenuItemID: 1, Quantity: 1}}},
			wantField: "restaurantId",
		},
		{
			name:      "empty items",
			req:       CreateOrderRequest{RestaurantID: 1},
			wantField: "items",
		},
		{
			name: "zero quantity",
			req: CreateOrderRequest{
				RestaurantID: 1,
				Items:        []CreateOrderItemRequest{{MenuItemID: 1, Quantity: 0}},
			},
			wantField: "quantity",
		},
		{
			name: "unknown size",
			req: CreateOrderRequest{
				RestaurantID: 1,
				Items:        []CreateOrderItemRequest{{MenuItemID: 1, Quantity: 1, Size: "medium"}},
			},
			wantField: "size",
		},
		{
			name: "malformed idempotency key",
			req: CreateOrderRequest{
				RestaurantID:   1,
				IdempotencyKey: "not-a-uuid",
				Items:          []CreateOrderItemRequest{{MenuItemID: 1, Quantity: 1}},
			},
			wantField: "idempotencyKey",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			work := newFakeUOW()
			s := newTestService(work)

			_, err := s.CreateOrder(context.Background(), testCase.req)

			ve, ok := errs.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Contains(t, ve.Field, testCase.wantField)
			assert.Empty(t, work.orderRepo.orders, "nothing may be written")
			assert.Equal(t, 0, work.commits)
		})
	}
}

func TestCreateOrderUnknownReferencesWriteNothing(t *testing.T) {
	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{
			name: "unknown restaurant",
			req: CreateOrderRequest{
				RestaurantID: 42,
				Items:        []CreateOrderItemRequest{{MenuItemID: 1, Quantity: 1}},
			},
		},
		{
			name: "unknown menu item fails the whole order",
			req: CreateOrderRequest{
				RestaurantID: 1,
				Items: []CreateOrderItemRequest{
					{MenuItemID: 1, Quantity: 1},
					{MenuItemID: 999, Quantity: 1},
				},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			work := newFakeUOW()
			s := newTestService(work)

			_, err := s.CreateOrder(context.Background(), testCase.req)

			assert.True(t, errs.IsNotFound(err), "expected not found, got %v", err)
			assert.Empty(t, work.orderRepo.orders)
			assert.Empty(t, work.orderItemRepo.items)
			assert.Empty(t, work.outboxRepo.messages)
			assert.Equal(t, 0, work.commits)
		})
	}
}

func TestCreateOrderIdempotencyReplay(t *testing.T) {
	work := newFakeUOW()
	s := newTestService(work)

	key := "3b241101-e2bb-4255-8caf-4136c566a962"
	req := CreateOrderRequest{
		RestaurantID:   1,
		IdempotencyKey: key,
		Items:          []CreateOrderItemRequest{{MenuItemID: 6, Quantity: 1}},
	}

	first, err := s.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	second, err := s.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, work.orderRepo.orders, 1, "replay must not create a second order")
	assert.Len(t, work.outboxRepo.messages, 1, "replay must not enqueue a second event")
}

func TestGetOrderNotFound(t *testing.T) {
	s := newTestService(newFakeUOW())

	_, err := s.GetOrder(context.Background(), 12345)

	assert.True(t, errs.IsNotFound(err))
}

func TestGetOrdersNewestFirstWithJoins(t *testing.T) {
	work := newFakeUOW()
	s := newTestService(work)

	first, err := s.CreateOrder(context.Background(), CreateOrderRequest{
		RestaurantID: 1,
		Items:        []CreateOrderItemRequest{{MenuItemID: 6, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := s.CreateOrder(context.Background(), CreateOrderRequest{
		RestaurantID: 1,
		Items:        []CreateOrderItemRequest{{MenuItemID: 1, Quantity: 1, Size: "regular"}},
	})
	require.NoError(t, err)

	orders, err := s.GetOrders(context.Background(), order.QueryOrdersModel{})
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	for _, o := range orders {
		require.NotNil(t, o.Restaurant)
		require.Len(t, o.Items, 1)
		require.NotNil(t, o.Items[0].MenuItem)
	}
	assert.Equal(t, "Margherita Classica", orders[0].Items[0].MenuItem.Name)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		from      orderstatus.Status
		to        string
		wantErr   string
		wantField string
	}{
		{name: "forward move", from: orderstatus.StatusConfirmed, to: "preparing"},
		{name: "skip ahead", from: orderstatus.StatusConfirmed, to: "delivered"},
		{name: "same status retry", from: orderstatus.StatusPreparing, to: "preparing"},
		{name: "backward move rejected", from: orderstatus.StatusOutForDelivery, to: "preparing", wantField: "status"},
		{name: "unknown status rejected", from: orderstatus.StatusConfirmed, to: "cancelled", wantField: "status"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			work := newFakeUOW()
			s := newTestService(work)

			created, err := s.CreateOrder(context.Background(), CreateOrderRequest{
				RestaurantID: 1,
				Items:        []CreateOrderItemRequest{{MenuItemID: 6, Quantity: 1}},
			})
			require.NoError(t, err)
			if testCase.from != orderstatus.StatusConfirmed {
				_, err := work.orderRepo.UpdateStatus(context.Background(), created.ID, testCase.from)
				require.NoError(t, err)
			}
			eventsBefore := len(work.outboxRepo.messages)

			updated, err := s.UpdateStatus(context.Background(), created.ID, testCase.to)

			if testCase.wantField != "" {
				ve, ok := errs.AsValidation(err)
				require.True(t, ok, "expected validation error, got %v", err)
				assert.Equal(t, testCase.wantField, ve.Field)
				assert.Len(t, work.outboxRepo.messages, eventsBefore)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, orderstatus.Status(testCase.to), updated.Status)
			require.Len(t, work.outboxRepo.messages, eventsBefore+1)
			assert.Equal(t, QueueOrderStatusUpdated, work.outboxRepo.messages[eventsBefore].QueueName)
		})
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	s := newTestService(newFakeUOW())

	_, err := s.UpdateStatus(context.Background(), 9999, "preparing")

	assert.True(t, errs.IsNotFound(err))
}
