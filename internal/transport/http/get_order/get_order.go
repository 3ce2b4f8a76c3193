package getorder

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
}

// GetOrder handles the get order by id request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	found, err := service.GetOrder(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting order", "error", err, "id", id)

		return
	}

	httperr.WriteJSON(w, http.StatusOK, found)
}
