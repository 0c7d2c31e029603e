package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shelfsync/backend/internal/infrastructure/logger"
	"github.com/shelfsync/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// EngineConfig configures the HTTP engine and its middleware chain
type EngineConfig struct {
	ServiceName      string
	Release          bool
	TracingEnabled   bool
	TracerProvider   trace.TracerProvider
	Meter            metric.Meter // nil disables HTTP metrics
	CORSAllowOrigins []string
	TrustedProxies   []string
	MaxBodySize      int64
	LookupRateLimit  float64 // per-client requests per second on stock lookups, 0 = unlimited
	LookupRateBurst  int
	ProfilingLabels  bool // attach route labels to Pyroscope profiles
	Swagger          middleware.SwaggerConfig
	Logger           *zap.Logger
}

// NewEngine builds the gin engine with the middleware chain and all API routes.
//
// Middleware order: recovery, request id, tracing, span error marking, access log,
// identity, profiling labels (optional), metrics, CORS, body limit.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	httpMetrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins

	chain := []gin.HandlerFunc{
		logger.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName:    cfg.ServiceName,
			Enabled:        cfg.TracingEnabled,
			TracerProvider: cfg.TracerProvider,
		}),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(cfg.Logger.Named("http")),
		middleware.Identity(),
	}
	if cfg.ProfilingLabels {
		chain = append(chain, middleware.Profiling())
	}
	chain = append(chain,
		httpMetrics,
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(cfg.MaxBodySize),
	)
	engine.Use(chain...)

	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	// Serves whatever document the docs package registered with swag
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	var lookupLimit gin.HandlerFunc
	if cfg.LookupRateLimit > 0 {
		lookupLimit = middleware.NewRateLimiter(cfg.LookupRateLimit, cfg.LookupRateBurst).Middleware()
	}

	NewRouter(engine).Register(APIGroups(h, lookupLimit)...).Setup()
	return engine, nil
}
