// Package platform assembles the marketplace API: storage, cache,
// broker, media storage and the HTTP server with all its routes.
package platform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/bventy/platform/internal/cache"
	"github.com/bventy/platform/internal/config"
	"github.com/bventy/platform/internal/lib/jwt"
	"github.com/bventy/platform/internal/lib/rabbitmq"
	"github.com/bventy/platform/internal/lib/sl"
	"github.com/bventy/platform/internal/migrations"
	activityservice "github.com/bventy/platform/internal/services/activity"
	adminservice "github.com/bventy/platform/internal/services/admin"
	archiverservice "github.com/bventy/platform/internal/services/archiver"
	authservice "github.com/bventy/platform/internal/services/auth"
	bridgeservice "github.com/bventy/platform/internal/services/bridge"
	eventservice "github.com/bventy/platform/internal/services/event"
	groupservice "github.com/bventy/platform/internal/services/group"
	mediaservice "github.com/bventy/platform/internal/services/media"
	quoteservice "github.com/bventy/platform/internal/services/quote"
	vendorservice "github.com/bventy/platform/internal/services/vendors"
	"github.com/bventy/platform/internal/storage/repository"

	"github.com/streadway/amqp"
)

// App is the assembled API server with its dependencies.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	rabbit   *amqp.Connection
	archiver *archiverservice.Service
}

// New wires the whole service from configuration.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, []rabbitmq.QueueConfig{
		{QueueName: "activity.events", RoutingKey: activityservice.RoutingKey},
	})
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	mediaService, err := mediaservice.New(cfg.MediaStorage, logger)
	if err != nil {
		return nil, err
	}

	authService := authservice.New(db, cacheRedis, jwtMaker, logger)
	bridgeService := bridgeservice.New(cacheRedis, authService, jwtMaker, cfg.Subdomains, logger)
	vendorService := vendorservice.New(db, cacheRedis, logger)
	eventService := eventservice.New(db, db, logger)
	groupService := groupservice.New(db, logger)
	quoteService := quoteservice.New(db, db, db, db, logger)
	adminService := adminservice.New(db, db, logger)
	activityService := activityservice.New(rabbitCh, logger)
	archiverService := archiverservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, &Services{
		Auth:     authService,
		Bridge:   bridgeService,
		Vendor:   vendorService,
		Event:    eventService,
		Group:    groupService,
		Quote:    quoteService,
		Admin:    adminService,
		Media:    mediaService,
		Activity: activityService,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		rabbit:   rabbitConn,
		archiver: archiverService,
	}, nil
}

// Run starts the HTTP server and the quote archival sweep, then blocks
// until the context is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	go a.archiver.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.rabbit.Close(); cerr != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
