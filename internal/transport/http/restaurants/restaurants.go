package restaurants

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ceibacafe/ordering/internal/service/models/restaurant"
	"github.com/ceibacafe/ordering/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	GetRestaurants(ctx context.Context, filter restaurant.QueryRestaurantsModel) ([]restaurant.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (*restaurant.Restaurant, error)
}

// ListRestaurants handles the list restaurants request with optional
// category and search filters.
func ListRestaurants(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	filter := restaurant.QueryRestaurantsModel{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	restaurants, err := service.GetRestaurants(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting restaurants", "error", err)

		return
	}

	httperr.WriteJSON(w, http.StatusOK, restaurants)
}

// GetRestaurant handles the get restaurant by id request.
func GetRestaurant(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Invalid restaurant id")
		return
	}

	found, err := service.GetRestaurant(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting restaurant", "error", err, "id", id)

		return
	}

	httperr.WriteJSON(w, http.StatusOK, found)
}
