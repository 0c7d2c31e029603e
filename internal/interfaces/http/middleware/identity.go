package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/infrastructure/logger"
	"github.com/shelfsync/backend/internal/interfaces/http/dto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Identity headers and gin context keys.
// Authentication happens upstream; the gateway forwards the verified ids.
const (
	TenantIDHeader = "X-Tenant-ID"
	OwnerIDHeader  = "X-User-ID"

	TenantIDKey = "tenant_id"
	OwnerIDKey  = "owner_id"
)

// Identity extracts the tenant and customer ids forwarded by the gateway.
// Malformed ids are rejected; missing ids are left for the route guards.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span := trace.SpanFromContext(ctx)

		if requestID := GetRequestID(c); requestID != "" {
			ctx = logger.WithRequestID(ctx, requestID)
			span.SetAttributes(attribute.String("request_id", requestID))
		}

		if raw := c.GetHeader(TenantIDHeader); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				abortWithCode(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid tenant ID format")
				return
			}
			c.Set(TenantIDKey, id)
			ctx = logger.WithTenantID(ctx, id.String())
			span.SetAttributes(attribute.String("tenant_id", id.String()))
		}

		if raw := c.GetHeader(OwnerIDHeader); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				abortWithCode(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid user ID format")
				return
			}
			c.Set(OwnerIDKey, id)
			ctx = logger.WithOwnerID(ctx, id.String())
			span.SetAttributes(attribute.String("owner_id", id.String()))
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireTenant rejects requests without a tenant id
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetTenantID(c); !ok {
			abortWithCode(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Tenant context is required")
			return
		}
		c.Next()
	}
}

// RequireOwner rejects requests without a customer id
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetOwnerID(c); !ok {
			abortWithCode(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "User context is required")
			return
		}
		c.Next()
	}
}

// GetTenantID returns the tenant id set by Identity
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	return uuidValue(c, TenantIDKey)
}

// GetOwnerID returns the customer id set by Identity
func GetOwnerID(c *gin.Context) (uuid.UUID, bool) {
	return uuidValue(c, OwnerIDKey)
}

func uuidValue(c *gin.Context, key string) (uuid.UUID, bool) {
	v, exists := c.Get(key)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func abortWithCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
