package irestaurantrepo

import (
	"context"

	"github.com/ceibacafe/ordering/internal/service/models/restaurant"
)

// IRestaurantRepository is an interface for the restaurant postgres repository.
type IRestaurantRepository interface {
	Query(ctx context.Context, filter *restaurant.QueryRestaurantsModel) ([]restaurant.Restaurant, error)
}
