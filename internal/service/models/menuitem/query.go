package menuitem

// QueryMenuItemsModel represents filter parameters for querying menu items.
type QueryMenuItemsModel struct {
	Ids           []int64 `json:"ids,omitempty"`
	RestaurantIds []int64 `json:"restaurantIds,omitempty"`
	Category      string  `json:"category,omitempty"`
	OnlyAvailable bool    `json:"onlyAvailable,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	Offset        int     `json:"offset,omitempty"`
}
