package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront-console/internal/app"
	"storefront-console/internal/console"
	handlersAdvertisement "storefront-console/internal/handlers/advertisement"
	handlersOrder "storefront-console/internal/handlers/order"
	handlersSession "storefront-console/internal/handlers/session"
	"storefront-console/internal/kafka"
	"storefront-console/internal/middleware"
	"storefront-console/internal/mutation"
	"storefront-console/internal/session"
	wrappers "storefront-console/internal/wrappers/backend_wrappers"
)

const cfgPath = "config/config.yaml"

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init kafka, без брокеров события не публикуются
	var events kafka.EventProducer
	if len(c.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(c.Kafka.Brokers, c.Kafka.Topic, logger)
		defer producer.Close()
		events = producer
	}

	// init repository
	backend := wrappers.NewBackendWrapper(c.Backend.BaseURL, c.Backend.Timeout, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.SessionDuration)

	coordinator := mutation.NewCoordinator(backend, backend, events, logger)
	registry := console.NewRegistry(
		sessionRepository,
		backend,
		backend,
		coordinator,
		console.PageSizes{
			Listings:              c.Pagination.ListingsPageSize,
			ListingsEmptyFallback: c.Pagination.ListingsEmptyFallback,
			Orders:                c.Pagination.OrdersPageSize,
			OrdersEmptyFallback:   c.Pagination.OrdersEmptyFallback,
		},
		logger,
	)

	// init handlers
	sessionHandlers := handlersSession.NewSessionHandler(logger, registry)
	advertisementHandlers := handlersAdvertisement.NewAdvertisementHandler(logger, registry)
	orderHandlers := handlersOrder.NewOrderHandler(logger, registry)

	// init router
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", sessionHandlers.Open).Methods("POST")

	// Ручки внутри консольной сессии
	s := api.PathPrefix("/sessions/{sid}").Subrouter()
	s.Use(middleware.Session(sessionRepository, logger))

	s.HandleFunc("", sessionHandlers.Close).Methods("DELETE")
	s.HandleFunc("/messages", sessionHandlers.DismissMessages).Methods("DELETE")

	s.HandleFunc("/advertisements", advertisementHandlers.List).Methods("GET")
	s.HandleFunc("/advertisements", advertisementHandlers.Create).Methods("POST")
	s.HandleFunc("/advertisements/reload", advertisementHandlers.Reload).Methods("POST")
	s.HandleFunc("/advertisements/filter", advertisementHandlers.SetFilter).Methods("PUT")
	s.HandleFunc("/advertisements/pagination", advertisementHandlers.SetPagination).Methods("PUT")
	s.HandleFunc("/advertisements/{id}", advertisementHandlers.Delete).Methods("DELETE")

	s.HandleFunc("/advertisement/{id}", advertisementHandlers.Detail).Methods("GET")
	s.HandleFunc("/advertisement/{id}/edit", advertisementHandlers.Edit).Methods("POST")
	s.HandleFunc("/advertisement/{id}/draft", advertisementHandlers.Draft).Methods("PUT")
	s.HandleFunc("/advertisement/{id}/save", advertisementHandlers.Save).Methods("POST")
	s.HandleFunc("/advertisement/{id}/cancel", advertisementHandlers.Cancel).Methods("POST")
	s.HandleFunc("/advertisement/{id}/description", advertisementHandlers.ToggleDescription).Methods("POST")

	s.HandleFunc("/orders", orderHandlers.List).Methods("GET")
	s.HandleFunc("/orders/reload", orderHandlers.Reload).Methods("POST")
	s.HandleFunc("/orders/filter", orderHandlers.SetFilter).Methods("PUT")
	s.HandleFunc("/orders/pagination", orderHandlers.SetPagination).Methods("PUT")
	s.HandleFunc("/orders/{id}/complete", orderHandlers.Complete).Methods("POST")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// истекшие в Redis сессии выгружаются из памяти
	go func() {
		ticker := time.NewTicker(c.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := registry.Sweep(ctx); n > 0 {
					logger.Infof("evicted %d expired console sessions", n)
				}
			}
		}
	}()

	logger.Infow("starting server",
		"type", "START",
		"addr", c.ServerPort,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("can't start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	registry.CloseAll()
}
