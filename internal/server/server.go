// Package server boots every subsystem and runs the HTTP server until
// the process is told to stop.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmin574/pc-diamond-edge/app/routes"
	"github.com/pmin574/pc-diamond-edge/app/services"
	"github.com/pmin574/pc-diamond-edge/config"
	_ "github.com/pmin574/pc-diamond-edge/database/migrations"
	"github.com/pmin574/pc-diamond-edge/pkg/cache"
	"github.com/pmin574/pc-diamond-edge/pkg/database"
	"github.com/pmin574/pc-diamond-edge/pkg/logger"
	"github.com/pmin574/pc-diamond-edge/pkg/metrics"
	"github.com/pmin574/pc-diamond-edge/pkg/middleware"
	"github.com/pmin574/pc-diamond-edge/pkg/migration"
	"github.com/pmin574/pc-diamond-edge/pkg/notification"
	"github.com/pmin574/pc-diamond-edge/pkg/orm"
	"github.com/pmin574/pc-diamond-edge/pkg/rbac"
	"github.com/pmin574/pc-diamond-edge/pkg/reqid"
	"github.com/pmin574/pc-diamond-edge/pkg/router"
	"github.com/pmin574/pc-diamond-edge/pkg/storage"
	"github.com/pmin574/pc-diamond-edge/pkg/ws"
)

const shutdownGrace = 15 * time.Second

// cacheBridge adapts pkg/cache to the orm.Cacher interface.
type cacheBridge struct{}

func (cacheBridge) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }
func (cacheBridge) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}

// Boot initialises config, storage, database, cache, and audit logging.
// Shared by the server and the CLI commands.
func Boot() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.AuditMongoURI(); uri != "" {
		if _, err := logger.EnableMongoAudit(uri, config.AuditMongoDatabase(), config.AuditMongoCollection()); err != nil {
			logger.Warn("server: mongo audit disabled", "error", err)
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Authorization reads the role row on every request; tokens only
	// prove identity.
	rbac.SetResolver(services.NewUserService().RoleOf)

	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, catalog cache disabled", "error", err)
	} else {
		orm.CacheStore = cacheBridge{}
	}

	storage.Connect()
	notification.SetSlackWebhook(config.SlackWebhookURL())
	return nil
}

// Start boots everything, runs pending migrations, and serves HTTP
// until SIGINT/SIGTERM. Connections get a grace period to finish.
func Start() error {
	if err := Boot(); err != nil {
		return err
	}

	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	if origin := config.WSAllowedOrigin(); origin != "" {
		ws.SetCheckOrigin(func(r *http.Request) bool {
			return r.Header.Get("Origin") == origin
		})
	}

	hub := ws.NewHub()
	go hub.Run()

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
	)
	routes.RegisterAPI(r, hub)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}
