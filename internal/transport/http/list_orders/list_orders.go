package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
}

// parseIntSlice parses a comma-separated string to a slice of int64.
func parseIntSlice(s string) []int64 {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]int64, 0, len(parts))
	for _, part := range parts {
		if val, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
			result = append(result, val)
		}
	}

	return result
}

// ListOrders handles the list orders request; results come back
// newest-first.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := r.URL.Query()

	filter := order.QueryOrdersModel{
		Ids:           parseIntSlice(query.Get("ids")),
		RestaurantIds: parseIntSlice(query.Get("restaurantIds")),
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

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	httperr.WriteJSON(w, http.StatusOK, orders)
}
