package menu

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ceibacafe/ordering/internal/service/models/menuitem"
	"github.com/ceibacafe/ordering/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	GetMenuItems(ctx context.Context, restaurantID int64, category string) ([]menuitem.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*menuitem.MenuItem, error)
	CreateMenuItem(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error
}

// ListMenuItems handles the restaurant menu request, optionally narrowed
// to a category.
func ListMenuItems(w http.ResponseWriter, r *http.Request, service service) {
	restaurantID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Invalid restaurant id")
		return
	}

	items, err := service.GetMenuItems(r.Context(), restaurantID, r.URL.Query().Get("category"))
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting menu items", "error", err, "restaurantId", restaurantID)

		return
	}

	httperr.WriteJSON(w, http.StatusOK, items)
}

// GetMenuItem handles the get menu item by id request.
func GetMenuItem(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	item, err := service.GetMenuItem(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting menu item", "error", err, "id", id)

		return
	}

	httperr.WriteJSON(w, http.StatusOK, item)
}

// CreateMenuItem handles the admin create menu item request.
func CreateMenuItem(w http.ResponseWriter, r *http.Request, service service) {
	var item menuitem.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding request body for create menu item", "error", err)

		return
	}

	created, err := service.CreateMenuItem(r.Context(), item)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating menu item", "error", err)

		return
	}

	httperr.WriteJSON(w, http.StatusCreated, created)
}

// UpdateMenuItem handles the admin update menu item request. The path id
// wins over any id in the body.
func UpdateMenuItem(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	var item menuitem.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Failed to decode request body")
		slog.Error("Error decoding request body for update menu item", "error", err)

		return
	}
	item.ID = id

	updated, err := service.UpdateMenuItem(r.Context(), item)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error updating menu item", "error", err, "id", id)

		return
	}

	httperr.WriteJSON(w, http.StatusOK, updated)
}

// DeleteMenuItem handles the admin delete menu item request.
func DeleteMenuItem(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httperr.WriteMessage(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	if err := service.DeleteMenuItem(r.Context(), id); err != nil {
		httperr.Write(w, err)
		slog.Error("Error deleting menu item", "error", err, "id", id)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
