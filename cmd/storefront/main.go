// Command storefront serves the Renova session and cart API.
//
// @title        Renova Storefront API
// @version      1.0
// @description  Session and optimistic cart service in front of the Renova marketplace backend.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/renova/storefront/internal/api"
	"github.com/renova/storefront/internal/api/handler"
	"github.com/renova/storefront/internal/api/metrics"
	"github.com/renova/storefront/internal/core/ports"
	"github.com/renova/storefront/internal/core/service"
	"github.com/renova/storefront/internal/infrastructure/backend"
	mongostore "github.com/renova/storefront/internal/infrastructure/db/mongo"
	redisstore "github.com/renova/storefront/internal/infrastructure/db/redis"
	miniostore "github.com/renova/storefront/internal/infrastructure/objectstore/minio"
	"github.com/renova/storefront/internal/infrastructure/queue"
	"github.com/renova/storefront/internal/infrastructure/storage/file"
	"github.com/renova/storefront/internal/infrastructure/storage/sealed"
	"github.com/renova/storefront/internal/pkg/config"
	"github.com/renova/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront",
	})
	log := logger.Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("storefront stopped")
	}
	log.Info().Msg("storefront stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Component("main")
	checks := map[string]handler.Check{}
	var closers []func(context.Context) error

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](closeCtx); err != nil {
				log.Warn().Err(err).Msg("close dependency")
			}
		}
	}()

	// --- Session storage ---
	storage, err := openSessionStorage(ctx, cfg, checks, &closers)
	if err != nil {
		return err
	}
	if cfg.Session.Secret != "" {
		storage, err = sealed.New(storage, cfg.Session.Secret)
		if err != nil {
			return err
		}
	}

	session := service.NewSessionStore(storage, cfg.Session.Key, logger.Component("session"))
	session.Hydrate(ctx)

	// --- Backend ---
	client := backend.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger.Component("backend"))
	checks["backend"] = client.Ping

	// --- Cart sync ---
	observer := metrics.NewObserver(logger.Component("cart"))
	dispatcher := queue.NewDispatcher(
		cfg.Sync.Workers,
		client,
		queue.MultiSink{queue.NewLogSink(logger.Component("sync")), observer},
		logger.Component("sync"),
	)
	// Workers outlive the signal so Shutdown can drain pending commands.
	dispatcher.Start(context.WithoutCancel(ctx))
	metrics.RegisterSyncQueueDepth(dispatcher.Depth)

	cart := service.NewCartStore(client, session, dispatcher, observer, logger.Component("cart"))
	cart.Refresh(ctx)

	// --- Ticket archive ---
	var archive ports.ReceiptArchive
	if cfg.Receipts.Enabled {
		a, err := openReceiptArchive(ctx, cfg.Receipts)
		if err != nil {
			return err
		}
		archive = a
	}

	accounts := service.NewAccountService(client, session, cart, logger.Component("account"))
	checkout := service.NewCheckoutService(client, session, cart, archive, logger.Component("checkout"))

	e := api.NewRouter(api.Deps{
		Session:  session,
		Accounts: accounts,
		Cart:     cart,
		Checkout: checkout,
		Checks:   checks,
		Log:      logger.Component("http"),
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.API.BaseURL).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Int("pending", dispatcher.Depth()).Msg("sync queue not drained")
	}
	return nil
}

func openSessionStorage(
	ctx context.Context,
	cfg *config.Config,
	checks map[string]handler.Check,
	closers *[]func(context.Context) error,
) (ports.SessionStorage, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			URL:  cfg.Redis.URL,
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		*closers = append(*closers, func(context.Context) error { return rdb.Close() })
		return redisstore.NewSessionStorage(rdb, cfg.Session.TTL), nil

	case config.SessionBackendMongo:
		conn, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		checks["mongodb"] = conn.Ping
		*closers = append(*closers, conn.Close)
		return mongostore.NewSessionStorage(conn.DB), nil

	default:
		store, err := file.NewStore(cfg.Session.FileDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func openReceiptArchive(ctx context.Context, cfg config.ReceiptsConfig) (*miniostore.ReceiptArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return miniostore.NewReceiptArchive(ctx, client, cfg.Bucket)
}
