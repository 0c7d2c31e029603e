package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/shelfsync/backend/docs"
	accountapp "github.com/shelfsync/backend/internal/application/account"
	inventoryapp "github.com/shelfsync/backend/internal/application/inventory"
	stockapp "github.com/shelfsync/backend/internal/application/stock"
	"github.com/shelfsync/backend/internal/domain/account"
	"github.com/shelfsync/backend/internal/infrastructure/cache"
	"github.com/shelfsync/backend/internal/infrastructure/config"
	"github.com/shelfsync/backend/internal/infrastructure/event"
	"github.com/shelfsync/backend/internal/infrastructure/logger"
	"github.com/shelfsync/backend/internal/infrastructure/persistence"
	"github.com/shelfsync/backend/internal/infrastructure/provider"
	"github.com/shelfsync/backend/internal/infrastructure/scheduler"
	"github.com/shelfsync/backend/internal/infrastructure/telemetry"
	"github.com/shelfsync/backend/internal/interfaces/http/handler"
	"github.com/shelfsync/backend/internal/interfaces/http/middleware"
	"github.com/shelfsync/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

//	@title			ShelfSync API
//	@version		1.0
//	@description	Nearby stock lookup, store inventory reconciliation and saved customer defaults.
//	@BasePath		/api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	if err := run(cfg, baseLog); err != nil {
		baseLog.Error("Server exited with error", zap.Error(err))
		_ = baseLog.Sync()
		os.Exit(1)
	}
	_ = baseLog.Sync()
}

func run(cfg *config.Config, baseLog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			baseLog.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()
	log := tel.Logs.Bridge(baseLog, zapcore.InfoLevel)
	tp := tel.TracerProvider()

	log.Info("Starting ShelfSync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log.Named("gorm"), cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, tp, log); err != nil {
		return err
	}
	log.Info("Database connected successfully")

	meter := tel.Meter.Meter("shelfsync")
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	if tel.Meter.IsEnabled() {
		poolMetrics, err := telemetry.NewDBPoolMetrics(meter, sqlDB, cfg.Telemetry.MetricsInterval, log)
		if err != nil {
			return err
		}
		poolMetrics.Start(ctx)
		defer poolMetrics.Stop()
	}

	// Repositories and the inventory provider
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	itemRepo := persistence.NewGormCatalogItemRepository(db.DB, db.MaxBatchSize)

	inventoryClient, err := provider.NewClient(provider.Config{
		BaseURL:   cfg.Provider.BaseURL,
		APIKey:    cfg.Provider.APIKey,
		Timeout:   cfg.Provider.Timeout,
		RateLimit: cfg.Provider.RateLimit,
		Burst:     cfg.Provider.Burst,
	}, log.Named("provider"))
	if err != nil {
		return err
	}

	lookup := stockapp.NewLookupService(inventoryClient, stockapp.LookupConfig{
		FallbackLatitude:  cfg.Lookup.FallbackLatitude,
		FallbackLongitude: cfg.Lookup.FallbackLongitude,
		Timeout:           cfg.Lookup.Timeout,
	}, log.Named("lookup"))

	// Leases, change feed and stock events
	coord := cache.NewCoordination(ctx, cfg.Redis, log.Named("coordination"))
	defer func() {
		if err := coord.Close(); err != nil {
			log.Warn("Error closing Redis client", zap.Error(err))
		}
	}()

	publisher, closePublisher, err := event.NewEventPublisher(cfg.Events, tp, log.Named("events"))
	if err != nil {
		return err
	}
	defer func() {
		if err := closePublisher(); err != nil {
			log.Warn("Error closing event publisher", zap.Error(err))
		}
	}()

	reconcilerOpts := []inventoryapp.ReconcilerOption{inventoryapp.WithEventPublisher(publisher)}
	if tel.Meter.IsEnabled() {
		syncMetrics, err := telemetry.NewInventoryMetrics(meter)
		if err != nil {
			return err
		}
		reconcilerOpts = append(reconcilerOpts, inventoryapp.WithSyncRecorder(syncMetrics))
	}
	reconciler := inventoryapp.NewReconciler(storeRepo, itemRepo, inventoryClient, coord.Leases, inventoryapp.ReconcilerConfig{
		BatchSize:   cfg.Reconcile.BatchSize,
		LeaseTTL:    cfg.Reconcile.LeaseTTL,
		HistorySize: cfg.Reconcile.HistorySize,
	}, log.Named("reconciler"), reconcilerOpts...)

	// Background sweeps
	var (
		syncScheduler *scheduler.InventorySyncScheduler
		syncTrigger   *scheduler.SyncTrigger
		syncQueue     handler.SyncQueue
	)
	if cfg.Reconcile.ScheduleEnabled {
		schedCfg := scheduler.DefaultInventorySyncSchedulerConfig()
		schedCfg.MaxConcurrentJobs = cfg.Reconcile.MaxConcurrentJobs
		schedCfg.JobTimeout = cfg.Reconcile.JobTimeout
		syncScheduler, err = scheduler.NewInventorySyncScheduler(schedCfg, reconciler, log)
		if err != nil {
			return err
		}
		syncTrigger, err = scheduler.NewSyncTrigger(cfg.Reconcile.ScheduleInterval, storeRepo, syncScheduler, log)
		if err != nil {
			return err
		}
		syncQueue = syncScheduler
	}

	// Saved addresses and payment methods
	addresses := accountapp.NewAddressService(accountapp.NewDefaultManager[*account.SavedAddress](
		persistence.NewGormAddressStore(db.DB), coord.Feed, log.Named("addresses")))
	payments := accountapp.NewPaymentMethodService(accountapp.NewDefaultManager[*account.PaymentMethod](
		persistence.NewGormPaymentMethodStore(db.DB), coord.Feed, log.Named("payment-methods")))

	// HTTP
	system := handler.NewSystemHandler(cfg.App.Name, version).
		AddCheck("database", func(ctx context.Context) error { return sqlDB.PingContext(ctx) }).
		AddCheck("redis", coord.Ping)

	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName:      cfg.Telemetry.ServiceName,
		Release:          cfg.App.Env == "production",
		TracingEnabled:   tel.Tracer.IsEnabled(),
		TracerProvider:   tp,
		Meter:            httpMeter(tel.Meter),
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		LookupRateLimit:  cfg.HTTP.RateLimit,
		LookupRateBurst:  cfg.HTTP.RateBurst,
		ProfilingLabels:  tel.Profiler.IsEnabled(),
		Swagger: middleware.SwaggerConfig{
			Enabled:    cfg.HTTP.SwaggerEnabled,
			AllowedIPs: cfg.HTTP.SwaggerAllowedIPs,
		},
		Logger: log,
	}, router.Handlers{
		System:         system,
		Stock:          handler.NewStockHandler(lookup),
		Stores:         handler.NewStoreHandler(storeRepo, reconciler, syncQueue),
		Addresses:      handler.NewAddressHandler(addresses),
		PaymentMethods: handler.NewPaymentMethodHandler(payments),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
		BaseContext:    func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	if syncScheduler != nil {
		if err := syncScheduler.Start(gctx); err != nil {
			return err
		}
		if err := syncTrigger.Start(gctx); err != nil {
			return err
		}
		log.Info("Scheduled inventory sync enabled",
			zap.Duration("interval", cfg.Reconcile.ScheduleInterval),
			zap.Int("workers", cfg.Reconcile.MaxConcurrentJobs),
		)
	}

	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		errs := []error{srv.Shutdown(shutdownCtx)}
		if syncTrigger != nil {
			errs = append(errs, syncTrigger.Stop(shutdownCtx))
		}
		if syncScheduler != nil {
			errs = append(errs, syncScheduler.Stop(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server exited gracefully")
	return nil
}

// httpMeter returns the HTTP meter, nil when metrics export is off
func httpMeter(mp *telemetry.MeterProvider) metric.Meter {
	if !mp.IsEnabled() {
		return nil
	}
	return mp.Meter("shelfsync/http")
}
