package restaurant

// QueryRestaurantsModel represents filter parameters for querying restaurants.
type QueryRestaurantsModel struct {
	Ids      []int64 `json:"ids,omitempty"`
	Category string  `json:"category,omitempty"`
	Search   string  `json:"search,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	Offset   int     `json:"offset,omitempty"`
}
