package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ceibacafe/ordering/internal/service/models/order"
	"github.com/ceibacafe/ordering/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	UpdateStatus(ctx context.Context, id int64, status string) (*order.Order, error)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles the update order status request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding request body for update status", "error", err)

		return
	}

	if req.Status == "" {
		httperr.WriteMessage(w, http.StatusBadRequest, "Status is required")
		return
	}

	updated, err := service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error updating order status", "error", err, "id", id, "status", req.Status)

		return
	}

	httperr.WriteJSON(w, http.StatusOK, updated)
}
