package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	authapp "github.com/dwikikusuma/food-storefront/internal/auth/app"
	authhttp "github.com/dwikikusuma/food-storefront/internal/auth/infra/httpapi"
	"github.com/dwikikusuma/food-storefront/internal/cart/infra/memory"
	cartredis "github.com/dwikikusuma/food-storefront/internal/cart/infra/redis"
	catalogapp "github.com/dwikikusuma/food-storefront/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/food-storefront/internal/catalog/infra/httpapi"
	checkoutapp "github.com/dwikikusuma/food-storefront/internal/checkout/app"
	"github.com/dwikikusuma/food-storefront/internal/checkout/infra/adapter"
	orderapp "github.com/dwikikusuma/food-storefront/internal/order/app"
	orderhttp "github.com/dwikikusuma/food-storefront/internal/order/infra/httpapi"
	"github.com/dwikikusuma/food-storefront/internal/session"
	"github.com/dwikikusuma/food-storefront/pkg/apiclient"
	"github.com/dwikikusuma/food-storefront/pkg/config"
	"github.com/dwikikusuma/food-storefront/pkg/logger"
	"github.com/dwikikusuma/food-storefront/pkg/redisconn"
	"github.com/dwikikusuma/food-storefront/pkg/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background(), log)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("storefront stopped", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	api, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Name:    "food-api",
	}, log)
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}

	stores, closeStores, err := openCartStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	catalogSvc := catalogapp.NewService(cataloghttp.NewMenuClient(api))
	orderSvc := orderapp.NewService(orderhttp.NewOrderClient(api))
	authSvc := authapp.NewService(authhttp.NewUserClient(api))
	checkoutSvc := checkoutapp.NewService(
		adapter.NewCatalogServiceReader(catalogSvc),
		adapter.NewOrderServiceWriter(orderSvc),
		cfg.QuoteConcurrent,
	)

	sessions := session.NewRegistry(stores, cfg.SessionIdleTTL, log)

	srv := &server{
		log:          log,
		sessions:     sessions,
		catalog:      catalogSvc,
		orders:       orderSvc,
		auth:         authSvc,
		checkout:     checkoutSvc,
		cookieSecure: cfg.CookieSecure,
		pingEvery:    25 * time.Second,
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Run(gctx, time.Minute)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}
		return nil
	})

	return g.Wait()
}

// openCartStores picks the durable mirror for carts: Redis when an address is
// configured, process memory otherwise.
func openCartStores(ctx context.Context, cfg config.Config, log *slog.Logger) (session.StoreFactory, func(), error) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, carts are mirrored in memory only")
		return memory.NewSlots().Slot, func() {}, nil
	}

	rdb, err := redisconn.Open(ctx, redisconn.Config{
		Addr:       cfg.RedisAddr,
		Password:   cfg.RedisPassword,
		DB:         cfg.RedisDB,
		MaxRetries: 5,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Error("redis close error", slog.Any("err", err))
		}
	}
	return cartredis.Factory(rdb, cfg.CartTTL), closeFn, nil
}
