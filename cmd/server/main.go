package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-service/config"
	"restaurant-service/internal/api"
	"restaurant-service/internal/broker"
	"restaurant-service/internal/redisclient"
	"restaurant-service/internal/service"
	"restaurant-service/internal/store"
	"restaurant-service/internal/util"
	"restaurant-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := util.InitLogger(cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting restaurant service",
		zap.String("env", cfg.Server.Env),
		zap.String("store", cfg.Store.Backend))

	tp, err := util.InitTracer("restaurant-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	kv, closeKV, err := openStore(cfg)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeKV.Close()

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		logger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	loc, err := cfg.Restaurant.Location()
	if err != nil {
		logger.Fatal("Invalid time zone", zap.Error(err))
	}

	tableService := service.NewTableService(kv)
	orderService := service.NewOrderService(kv, publisher)
	catalogService := service.NewCatalogService(kv)
	summaryService := service.NewSummaryService(orderService, loc)
	floorService := service.NewFloorService(tableService, orderService)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	for name, load := range map[string]func(context.Context) error{
		"tables":  tableService.Load,
		"orders":  orderService.Load,
		"catalog": catalogService.Load,
	} {
		if err := load(loadCtx); err != nil {
			loadCancel()
			logger.Fatal("Failed to load state", zap.String("collection", name), zap.Error(err))
		}
	}
	loadCancel()

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var revenueWorker *worker.RevenueWorker
	if cfg.Kafka.Enabled() {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
		revenueWorker = worker.NewRevenueWorker(consumer)
		go func() {
			if err := revenueWorker.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Revenue worker error", zap.Error(err))
			}
		}()
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	handler := api.NewHandler(api.Services{
		Tables:  tableService,
		Orders:  orderService,
		Catalog: catalogService,
		Summary: summaryService,
		Floor:   floorService,
		QR:      service.TableQRGenerator{BaseURL: cfg.Restaurant.PublicBaseURL},
	})
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: cors.AllowAll().Handler(router),
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	workerCancel()
	if revenueWorker != nil {
		_ = revenueWorker.Stop()
	}

	logger.Info("Server exited")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore connects the configured snapshot backend
func openStore(cfg *config.Config) (store.KV, io.Closer, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err := store.NewStore(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.StoreRedis:
		rc, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		return rc, rc, nil
	default:
		return store.NewMemoryStore(), nopCloser{}, nil
	}
}
