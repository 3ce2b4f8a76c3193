package catalogsvc

import (
	"context"
	"log/slog"

	"github.com/ceibacafe/ordering/internal/dal/interfaces/imenuitemrepo"
	"github.com/ceibacafe/ordering/internal/dal/interfaces/irestaurantrepo"
	"github.com/ceibacafe/ordering/internal/dal/postgres"
	menuitemrepo "github.com/ceibacafe/ordering/internal/dal/repositories/menuitem/postgres"
	restaurantrepo "github.com/ceibacafe/ordering/internal/dal/repositories/restaurant/postgres"
	"github.com/ceibacafe/ordering/internal/service/errs"
	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/ceibacafe/ordering/internal/service/models/restaurant"
)

// menuItemCache is a read-through cache in front of menu item lookups.
type menuItemCache interface {
	Get(ctx context.Context, id int64) (*menuitem.MenuItem, error)
	Set(ctx context.Context, item *menuitem.MenuItem) error
	Invalidate(ctx context.Context, id int64) error
}

// CatalogService serves restaurant and menu reads plus the admin menu
// lifecycle. The order flow treats it as a read-only collaborator.
type CatalogService struct {
	restaurantRepo irestaurantrepo.IRestaurantRepository
	menuItemRepo   imenuitemrepo.IMenuItemRepository
	cache          menuItemCache
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient builds the repositories on the client's pool.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.restaurantRepo = restaurantrepo.NewPostgresRestaurantRepository(pgClient.Pool())
		s.menuItemRepo = menuitemrepo.NewPostgresMenuItemRepository(pgClient.Pool())
	}
}

// WithCache sets the menu item cache.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCache(cache menuItemCache) option {
	return func(s *CatalogService) {
		s.cache = cache
	}
}

// WithRepositories sets the repositories directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRepositories(
	restaurantRepo irestaurantrepo.IRestaurantRepository,
	menuItemRepo imenuitemrepo.IMenuItemRepository,
) option {
	return func(s *CatalogService) {
		s.restaurantRepo = restaurantRepo
		s.menuItemRepo = menuItemRepo
	}
}

// GetRestaurants retrieves restaurants with optional category and search
// filters.
func (s *CatalogService) GetRestaurants(
	ctx context.Context,
	filter restaurant.QueryRestaurantsModel,
) ([]restaurant.Restaurant, error) {
	restaurants, err := s.restaurantRepo.Query(ctx, &filter)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []restaurant.Restaurant{}
	}

	return restaurants, nil
}

// GetRestaurant retrieves one restaurant by id.
func (s *CatalogService) GetRestaurant(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	restaurants, err := s.restaurantRepo.Query(ctx, &restaurant.QueryRestaurantsModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, errs.NotFound("restaurant", id)
	}

	return &restaurants[0], nil
}

// GetMenuItems retrieves a restaurant's menu, optionally narrowed to a
// category.
func (s *CatalogService) GetMenuItems(
	ctx context.Context,
	restaurantID int64,
	category string,
) ([]menuitem.MenuItem, error) {
	items, err := s.menuItemRepo.Query(ctx, &menuitem.QueryMenuItemsModel{
		RestaurantIds: []int64{restaurantID},
		Category:      category,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []menuitem.MenuItem{}
	}

	return items, nil
}

// GetMenuItem retrieves one menu item by id, read-through cached.
func (s *CatalogService) GetMenuItem(ctx context.Context, id int64) (*menuitem.MenuItem, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			slog.Warn("menu item cache read failed", "id", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	items, err := s.menuItemRepo.Query(ctx, &menuitem.QueryMenuItemsModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NotFound("menu item", id)
	}

	item := &items[0]
	if s.cache != nil {
		if err := s.cache.Set(ctx, item); err != nil {
			slog.Warn("menu item cache write failed", "id", id, "error", err)
		}
	}

	return item, nil
}

// CreateMenuItem creates a menu item for the admin surface.
func (s *CatalogService) CreateMenuItem(
	ctx context.Context,
	item menuitem.MenuItem,
) (*menuitem.MenuItem, error) {
	if err := validateMenuItem(&item); err != nil {
		return nil, err
	}

	return s.menuItemRepo.Insert(ctx, item)
}

// UpdateMenuItem rewrites a menu item and drops its cache entry.
func (s *CatalogService) UpdateMenuItem(
	ctx context.Context,
	item menuitem.MenuItem,
) (*menuitem.MenuItem, error) {
	if err := validateMenuItem(&item); err != nil {
		return nil, err
	}

	updated, err := s.menuItemRepo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errs.NotFound("menu item", item.ID)
	}

	s.invalidate(ctx, item.ID)

	return updated, nil
}

// DeleteMenuItem removes a menu item and drops its cache entry.
func (s *CatalogService) DeleteMenuItem(ctx context.Context, id int64) error {
	deleted, err := s.menuItemRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NotFound("menu item", id)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		slog.Warn("menu item cache invalidation failed", "id", id, "error", err)
	}
}

// validateMenuItem enforces the size-option invariant: sized items must
// carry both size prices.
func validateMenuItem(item *menuitem.MenuItem) error {
	if item.Name == "" {
		return errs.ValidationError{Field: "name", Message: "name is required"}
	}
	if item.RestaurantID <= 0 {
		return errs.ValidationError{Field: "restaurantId", Message: "restaurantId must be positive"}
	}
	if item.HasSizeOptions && (item.RegularPrice == nil || item.BigPrice == nil) {
		return errs.ValidationError{
			Field:   "hasSizeOptions",
			Message: "regularPrice and bigPrice are required when hasSizeOptions is set",
		}
	}

	return nil
}
