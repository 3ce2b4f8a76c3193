package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ceibacafe/ordering/internal/dal/cache"
	"github.com/ceibacafe/ordering/internal/dal/postgres"
	"github.com/ceibacafe/ordering/internal/dal/rabbitmq"
	outboxrepo "github.com/ceibacafe/ordering/internal/dal/repositories/outbox/postgres"
	"github.com/ceibacafe/ordering/internal/otel"
	"github.com/ceibacafe/ordering/internal/service/services/catalogsvc"
	"github.com/ceibacafe/ordering/internal/service/services/ordersvc"
	httptransport "github.com/ceibacafe/ordering/internal/transport/http"
	outboxworker "github.com/ceibacafe/ordering/internal/worker/outbox"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	catalogSvc     *catalogsvc.CatalogService
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	menuItemCache  *cache.MenuItemCache
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	menuItemCache := cache.MustNewMenuItemCache()
	rabbitClient := rabbitmq.MustNewClient()

	for _, queue := range []string{ordersvc.QueueOrderCreated, ordersvc.QueueOrderStatusUpdated} {
		if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
			Name:    queue,
			Durable: true,
		}); err != nil {
			panic("failed to declare queue " + queue + ": " + err.Error())
		}
	}

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
		catalogsvc.WithCache(menuItemCache),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithCatalog(catalogSvc),
		ordersvc.WithEstimatedDeliveryTime(viper.GetString("orders.estimated_delivery_time")),
	)

	outboxWorker := outboxworker.NewWorker(
		outboxrepo.NewPostgresOutboxRepository(postgresClient.Pool()),
		rabbitClient,
	)

	transport := httptransport.NewHTTPTransport(orderSvc, catalogSvc)
	transport.RegisterRoutes()

	return &App{
		catalogSvc:     catalogSvc,
		orderSvc:       orderSvc,
		transport:      transport,
		postgresClient: postgresClient,
		menuItemCache:  menuItemCache,
		rabbitClient:   rabbitClient,
		outboxWorker:   outboxWorker,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.menuItemCache.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	} else {
		slog.Info("Redis connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
