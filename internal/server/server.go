// Package server boots the HTTP process: config, cache, logging sinks,
// router, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brookxc/menuadmin/app/controllers"
	"github.com/brookxc/menuadmin/app/repositories"
	"github.com/brookxc/menuadmin/app/routes"
	"github.com/brookxc/menuadmin/app/services"
	"github.com/brookxc/menuadmin/config"
	"github.com/brookxc/menuadmin/internal/store"
	"github.com/brookxc/menuadmin/pkg/cache"
	"github.com/brookxc/menuadmin/pkg/logger"
	"github.com/brookxc/menuadmin/pkg/metrics"
	"github.com/brookxc/menuadmin/pkg/middleware"
	"github.com/brookxc/menuadmin/pkg/reqid"
	"github.com/brookxc/menuadmin/pkg/router"
	"github.com/brookxc/menuadmin/pkg/session"
)

const shutdownTimeout = 15 * time.Second

// BuildRouter assembles the full middleware chain and every route. It does
// not touch the network: Mongo and Redis connections are established
// lazily, so commands like route:list can call this offline.
func BuildRouter() (*router.Router, error) {
	authService, err := services.NewAuthService()
	if err != nil {
		return nil, err
	}

	restaurantService := services.NewRestaurantService(repositories.NewRestaurantRepository())

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		session.Middleware(session.DefaultOptions()),
	)

	routes.Register(r,
		controllers.NewAuthController(authService),
		controllers.NewRestaurantController(restaurantService),
		controllers.NewPageController(restaurantService),
		controllers.NewMenuController(restaurantService),
	)
	return r, nil
}

// Start runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests and disconnects the store.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, sessions and menu cache degraded", "error", err)
	}

	closeLogs := setupLogShipping()
	defer closeLogs()

	r, err := BuildRouter()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown did not drain cleanly", "error", err)
	}
	if err := store.Disconnect(ctx); err != nil {
		logger.Error("store disconnect failed", "error", err)
	}
	return nil
}

// setupLogShipping mirrors log records into Mongo when enabled. The local
// handler keeps working either way.
func setupLogShipping() func() {
	if !config.LogToMongo() {
		return func() {}
	}

	mh, err := logger.NewMongoHandler(config.MongoURI(), config.MongoDB(), "logs")
	if err != nil {
		logger.Warn("mongo log shipping disabled", "error", err)
		return func() {}
	}

	local := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger.UseHandler(logger.NewMultiHandler(local, mh))
	return mh.Close
}
