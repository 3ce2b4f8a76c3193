package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ceibacafe/ordering/internal/service/services/catalogsvc"
	"github.com/ceibacafe/ordering/internal/service/services/ordersvc"
	createorder "github.com/ceibacafe/ordering/internal/transport/http/create_order"
	getorder "github.com/ceibacafe/ordering/internal/transport/http/get_order"
	listorders "github.com/ceibacafe/ordering/internal/transport/http/list_orders"
	"github.com/ceibacafe/ordering/internal/transport/http/menu"
	"github.com/ceibacafe/ordering/internal/transport/http/restaurants"
	updatestatus "github.com/ceibacafe/ordering/internal/transport/http/update_status"
	"github.com/ceibacafe/ordering/pkg/http/middleware/trace"
	"github.com/ceibacafe/ordering/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	orderSvc   *ordersvc.OrderService
	catalogSvc *catalogsvc.CatalogService
}

func NewHTTPTransport(orderSvc *ordersvc.OrderService, catalogSvc *catalogsvc.CatalogService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:     server,
		router:     router,
		orderSvc:   orderSvc,
		catalogSvc: catalogSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/restaurants", h.listRestaurants)
		r.Get("/restaurants/{id}", h.getRestaurant)
		r.Get("/restaurants/{id}/menu", h.listMenuItems)

		r.Get("/menu-items/{id}", h.getMenuItem)
		r.Post("/admin/menu-items", h.createMenuItem)
		r.Put("/admin/menu-items/{id}", h.updateMenuItem)
		r.Delete("/admin/menu-items/{id}", h.deleteMenuItem)

		r.Post("/orders", h.createOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Patch("/orders/{id}/status", h.updateStatus)
	})
}

func (h *HTTPTransport) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants.ListRestaurants(w, r, h.catalogSvc)
}

func (h *HTTPTransport) getRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurants.GetRestaurant(w, r, h.catalogSvc)
}

func (h *HTTPTransport) listMenuItems(w http.ResponseWriter, r *http.Request) {
	menu.ListMenuItems(w, r, h.catalogSvc)
}

func (h *HTTPTransport) getMenuItem(w http.ResponseWriter, r *http.Request) {
	menu.GetMenuItem(w, r, h.catalogSvc)
}

func (h *HTTPTransport) createMenuItem(w http.ResponseWriter, r *http.Request) {
	menu.CreateMenuItem(w, r, h.catalogSvc)
}

func (h *HTTPTransport) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	menu.UpdateMenuItem(w, r, h.catalogSvc)
}

func (h *HTTPTransport) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	menu.DeleteMenuItem(w, r, h.catalogSvc)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.orderSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
