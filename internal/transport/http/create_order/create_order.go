package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/service/services/ordersvc"
	"github.com/ceibacafe/ordering/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, req ordersvc.CreateOrderRequest) (*order.Order, error)
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req ordersvc.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	created, err := service.CreateOrder(r.Context(), req)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	httperr.WriteJSON(w, http.StatusCreated, created)
}
