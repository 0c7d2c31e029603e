package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shelfsync/backend/internal/infrastructure/telemetry"
)

// Profiling labels each request with its route pattern, method and tenant so
// Pyroscope profiles can be filtered per endpoint. Unmatched routes are skipped.
func Profiling() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || route == "/health" {
			c.Next()
			return
		}

		labels := map[string]string{
			telemetry.ProfilingLabelRoute:  route,
			telemetry.ProfilingLabelMethod: c.Request.Method,
		}
		if tenantID, ok := GetTenantID(c); ok {
			labels[telemetry.ProfilingLabelTenantID] = tenantID.String()
		}

		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
