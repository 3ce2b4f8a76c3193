package order

// QueryOrdersModel represents filter parameters for querying orders.
// Results are always returned newest-first.
type QueryOrdersModel struct {
	Ids           []int64 `json:"ids,omitempty"`
	RestaurantIds []int64 `json:"restaurantIds,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	Offset        int     `json:"offset,omitempty"`
}
