package catalogsvc

import (
	"context"
	"testing"

	"github.com/ceibacafe/ordering/internal/service/errs"
	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/ceibacafe/ordering/internal/service/models/restaurant"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// fakeRestaurantRepo filters an in-memory restaurant list.
type fakeRestaurantRepo struct {
	restaurants []restaurant.Restaurant
}

func (f *fakeRestaurantRepo) Query(_ context.Context, filter *restaurant.QueryRestaurantsModel) ([]restaurant.Restaurant, error) {
	var result []restaurant.Restaurant
	for _, r := range f.restaurants {
		if len(filter.Ids) > 0 && !containsID(filter.Ids, r.ID) {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// fakeMenuItemRepo is an in-memory menu item store.
type fakeMenuItemRepo struct {
	items   []menuitem.MenuItem
	nextID  int64
	queries int
}

func (f *fakeMenuItemRepo) Query(_ context.Context, filter *menuitem.QueryMenuItemsModel) ([]menuitem.MenuItem, error) {
	f.queries++
	var result []menuitem.MenuItem
	for _, item := range f.items {
		if len(filter.Ids) > 0 && !containsID(filter.Ids, item.ID) {
			continue
		}
		if len(filter.RestaurantIds) > 0 && !containsID(filter.RestaurantIds, item.RestaurantID) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (f *fakeMenuItemRepo) Insert(_ context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error) {
	f.nextID++
	item.ID = f.nextID
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeMenuItemRepo) Update(_ context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error) {
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = item
			return &item, nil
		}
	}
	return nil, nil
}

func (f *fakeMenuItemRepo) Delete(_ context.Context, id int64) (bool, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeCache is an in-memory stand-in for the Redis cache.
type fakeCache struct {
	entries map[int64]*menuitem.MenuItem
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]*menuitem.MenuItem)}
}

func (f *fakeCache) Get(_ context.Context, id int64) (*menuitem.MenuItem, error) {
	if item, ok := f.entries[id]; ok {
		f.hits++
		return item, nil
	}
	return nil, nil
}

func (f *fakeCache) Set(_ context.Context, item *menuitem.MenuItem) error {
	f.entries[item.ID] = item
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, id int64) error {
	delete(f.entries, id)
	return nil
}

func seededService() (*CatalogService, *fakeRestaurantRepo, *fakeMenuItemRepo, *fakeCache) {
	restaurantRepo := &fakeRestaurantRepo{
		restaurants: []restaurant.Restaurant{
			{ID: 1, Name: "Ceiba Cafe Pizzeria", Category: "pizza", IsOpen: true},
			{ID: 2, Name: "Sushi Bar", Category: "sushi", IsOpen: true},
		},
	}
	menuItemRepo := &fakeMenuItemRepo{
		items: []menuitem.MenuItem{
			{ID: 1, RestaurantID: 1, Name: "Margherita Classica", Price: dec("18.99"), Category: "pizzas", IsAvailable: true},
			{ID: 2, RestaurantID: 1, Name: "Caesar Salad", Price: dec("12.99"), Category: "salads", IsAvailable: true},
		},
	}
	menuItemRepo.nextID = 2
	cache := newFakeCache()

	s := MustNewCatalogService(
		WithRepositories(restaurantRepo, menuItemRepo),
		WithCache(cache),
	)
	return s, restaurantRepo, menuItemRepo, cache
}

func TestGetRestaurants(t *testing.T) {
	s, _, _, _ := seededService()

	all, err := s.GetRestaurants(context.Background(), restaurant.QueryRestaurantsModel{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pizza, err := s.GetRestaurants(context.Background(), restaurant.QueryRestaurantsModel{Category: "pizza"})
	require.NoError(t, err)
	require.Len(t, pizza, 1)
	assert.Equal(t, "Ceiba Cafe Pizzeria", pizza[0].Name)

	none, err := s.GetRestaurants(context.Background(), restaurant.QueryRestaurantsModel{Category: "thai"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetRestaurantNotFound(t *testing.T) {
	s, _, _, _ := seededService()

	_, err := s.GetRestaurant(context.Background(), 99)

	assert.True(t, errs.IsNotFound(err))
}

func TestGetMenuItemsByCategory(t *testing.T) {
	s, _, _, _ := seededService()

	items, err := s.GetMenuItems(context.Background(), 1, "salads")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Caesar Salad", items[0].Name)

	all, err := s.GetMenuItems(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetMenuItemReadsThroughCache(t *testing.T) {
	s, _, menuItemRepo, cache := seededService()

	first, err := s.GetMenuItem(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Margherita Classica", first.Name)
	queriesAfterMiss := menuItemRepo.queries

	second, err := s.GetMenuItem(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, queriesAfterMiss, menuItemRepo.queries, "second read must be served from cache")
	assert.Equal(t, 1, cache.hits)
}

func TestGetMenuItemNotFound(t *testing.T) {
	s, _, _, _ := seededService()

	_, err := s.GetMenuItem(context.Background(), 404)

	assert.True(t, errs.IsNotFound(err))
}

func TestCreateMenuItemValidation(t *testing.T) {
	tests := []struct {
		name      string
		item      menuitem.MenuItem
		wantField string
	}{
		{
			name:      "missing name",
			item:      menuitem.MenuItem{RestaurantID: 1, Price: dec("9.99")},
			wantField: "name",
		},
		{
			name:      "missing restaurant",
			item:      menuitem.MenuItem{Name: "Tiramisu", Price: dec("7.99")},
			wantField: "restaurantId",
		},
		{
			name: "size options without both prices",
			item: menuitem.MenuItem{
				Name:           "Calzone",
				RestaurantID:   1,
				Price:          dec("14.99"),
				HasSizeOptions: true,
				RegularPrice:   decPtr("14.99"),
			},
			wantField: "hasSizeOptions",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s, _, menuItemRepo, _ := seededService()
			itemsBefore := len(menuItemRepo.items)

			_, err := s.CreateMenuItem(context.Background(), testCase.item)

			ve, ok := errs.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, testCase.wantField, ve.Field)
			assert.Len(t, menuItemRepo.items, itemsBefore)
		})
	}
}

func TestCreateMenuItem(t *testing.T) {
	s, _, _, _ := seededService()

	created, err := s.CreateMenuItem(context.Background(), menuitem.MenuItem{
		RestaurantID: 1,
		Name:         "Tiramisu",
		Price:        dec("7.99"),
		Category:     "desserts",
		IsAvailable:  true,
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	items, err := s.GetMenuItems(context.Background(), 1, "desserts")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUpdateMenuItemInvalidatesCache(t *testing.T) {
	s, _, _, cache := seededService()

	// Warm the cache.
	_, err := s.GetMenuItem(context.Background(), 1)
	require.NoError(t, err)
	require.Contains(t, cache.entries, int64(1))

	updated, err := s.UpdateMenuItem(context.Background(), menuitem.MenuItem{
		ID:           1,
		RestaurantID: 1,
		Name:         "Margherita Classica",
		Price:        dec("19.99"),
		Category:     "pizzas",
		IsAvailable:  true,
	})

	require.NoError(t, err)
	assert.True(t, dec("19.99").Equal(updated.Price))
	assert.NotContains(t, cache.entries, int64(1))
}

func TestUpdateMenuItemNotFound(t *testing.T) {
	s, _, _, _ := seededService()

	_, err := s.UpdateMenuItem(context.Background(), menuitem.MenuItem{
		ID:           404,
		RestaurantID: 1,
		Name:         "Ghost Dish",
		Price:        dec("1.00"),
	})

	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteMenuItem(t *testing.T) {
	s, _, menuItemRepo, cache := seededService()

	_, err := s.GetMenuItem(context.Background(), 2)
	require.NoError(t, err)

	err = s.DeleteMenuItem(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, menuItemRepo.items, 1)
	assert.NotContains(t, cache.entries, int64(2))

	err = s.DeleteMenuItem(context.Background(), 2)
	assert.True(t, errs.IsNotFound(err))
}
