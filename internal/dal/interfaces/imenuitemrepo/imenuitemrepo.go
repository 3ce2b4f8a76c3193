package imenuitemrepo

import (
	"context"

	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
)

// IMenuItemRepository is an interface for the menu item postgres repository.
type IMenuItemRepository interface {
	Query(ctx context.Context, filter *menuitem.QueryMenuItemsModel) ([]menuitem.MenuItem, error)

	// Insert creates a menu item and returns it with its assigned id.
	Insert(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error)

	// Update rewrites a menu item; returns nil when the id does not exist.
	Update(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error)

	// Delete removes a menu item; reports whether a row was deleted.
	Delete(ctx context.Context, id int64) (bool, error)
}
