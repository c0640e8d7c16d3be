// Package server boots the API: config, logging, MongoDB, Redis, queue
// workers, the middleware chain and the route table, then serves HTTP
// with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Duvhier/jylclean-back/app/controllers"
	"github.com/Duvhier/jylclean-back/app/jobs"
	"github.com/Duvhier/jylclean-back/app/repositories"
	"github.com/Duvhier/jylclean-back/app/routes"
	"github.com/Duvhier/jylclean-back/app/services"
	"github.com/Duvhier/jylclean-back/config"
	"github.com/Duvhier/jylclean-back/pkg/cache"
	"github.com/Duvhier/jylclean-back/pkg/ctx"
	"github.com/Duvhier/jylclean-back/pkg/database"
	"github.com/Duvhier/jylclean-back/pkg/logger"
	"github.com/Duvhier/jylclean-back/pkg/metrics"
	"github.com/Duvhier/jylclean-back/pkg/middleware"
	"github.com/Duvhier/jylclean-back/pkg/queue"
	"github.com/Duvhier/jylclean-back/pkg/reqid"
	"github.com/Duvhier/jylclean-back/pkg/router"
	"github.com/Duvhier/jylclean-back/pkg/schedule"
	"github.com/Duvhier/jylclean-back/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelBoot()

	db, err := database.Connect(bootCtx)
	if err != nil {
		return fmt.Errorf("server: mongodb: %w", err)
	}
	if err := db.EnsureIndexes(bootCtx); err != nil {
		return fmt.Errorf("server: indexes: %w", err)
	}

	// Redis is optional: without it the app serves straight from MongoDB
	// and queue jobs run on the in-memory driver.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
	}

	// In production every log line is mirrored into MongoDB for later
	// inspection; locally stdout is enough.
	var logSink *logger.MongoHandler
	switch config.AppEnv() {
	case "production", "prod":
		logSink, err = logger.AttachMongo(config.MongoURI(), config.MongoDatabase(), "logs")
		if err != nil {
			logger.Warn("mongo log sink unavailable, continuing with stdout only", "error", err)
		}
	}

	storage.Connect()

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	bootQueue(workersCtx, db)
	bootSchedule(workersCtx, db)

	r := BuildRouter(db)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	stopWorkers()
	_ = cache.Close()
	if logSink != nil {
		logSink.Close()
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Error("mongodb disconnect", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

// bootQueue selects the queue driver, registers job types and starts workers.
func bootQueue(ctx context.Context, db *database.DB) {
	jobs.RegisterAll()
	queue.UseDB(db.Database())

	if config.Get("QUEUE_DRIVER", "memory") == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		logger.Info("queue: redis driver active")
	}

	queue.StartWorkers(ctx, 2)
}

// bootSchedule registers recurring maintenance tasks and starts the
// scheduler loop.
func bootSchedule(ctx context.Context, db *database.DB) {
	users := repositories.NewUserRepository(db.Database())

	schedule.Every(time.Hour).Name("purge-reset-tokens").WithoutOverlapping().Run(func() {
		purgeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		n, err := users.PurgeExpiredResetTokens(purgeCtx)
		if err != nil {
			logger.Error("purge reset tokens", "error", err)
			return
		}
		if n > 0 {
			logger.Info("purged expired reset tokens", "count", n)
		}
	})

	schedule.Start(ctx)
}

// BuildRouter wires repositories, services, controllers and the global
// middleware chain into a ready router. Exposed for route:list.
func BuildRouter(db *database.DB) *router.Router {
	mdb := db.Database()

	userRepo := repositories.NewUserRepository(mdb)
	productRepo := repositories.NewProductRepository(mdb)
	cartRepo := repositories.NewCartRepository(mdb)
	saleRepo := repositories.NewSaleRepository(mdb)

	authSvc := services.NewAuthService(userRepo, jobs.QueueNotifier{})
	userSvc := services.NewUserService(userRepo)
	productSvc := services.NewProductService(productRepo)
	cartSvc := services.NewCartService(cartRepo, productRepo)
	saleSvc := services.NewSaleService(saleRepo, productRepo)

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the goroutine
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. CORS              — explicit origin allow-list
	//  6. Rate limiter      — reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", healthHandler(db))

	routes.RegisterAPI(r, routes.Deps{
		Auth:       controllers.NewAuthController(authSvc),
		Users:      controllers.NewUserController(userSvc),
		Products:   controllers.NewProductController(productSvc),
		Carts:      controllers.NewCartController(cartSvc),
		Sales:      controllers.NewSaleController(saleSvc),
		UserFinder: userRepo,
	})

	return r
}

func healthHandler(db *database.DB) http.HandlerFunc {
	return ctx.Wrap(func(c *ctx.Context) {
		pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"mongodb": "up", "redis": "up"}
		code := http.StatusOK

		if err := db.Ping(pingCtx); err != nil {
			status["mongodb"] = "down"
			code = http.StatusServiceUnavailable
		}
		if cache.RDB == nil {
			status["redis"] = "down"
		} else if err := cache.RDB.Ping(pingCtx).Err(); err != nil {
			status["redis"] = "down"
		}

		c.JSON(code, status)
	})
}
