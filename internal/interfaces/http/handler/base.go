package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	accountapp "github.com/shelfsync/backend/internal/application/account"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/stock"
	"github.com/shelfsync/backend/internal/infrastructure/logger"
	"github.com/shelfsync/backend/internal/infrastructure/scheduler"
	"github.com/shelfsync/backend/internal/interfaces/http/dto"
	"github.com/shelfsync/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// StatusClientClosedRequest is written when the client went away before the response
const StatusClientClosedRequest = 499

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 accepted response
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindJSON binds the request body and writes a 400 response on failure
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
				"Request validation failed",
				middleware.GetRequestID(c),
				details,
			))
			return false
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body")
		return false
	}
	return true
}

// ParamID parses a uuid path parameter and writes a 400 response on failure
func (h *BaseHandler) ParamID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// HandleError converts application errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	switch {
	case errors.Is(err, stock.ErrSuperseded):
		h.Error(c, http.StatusConflict, dto.ErrCodeSuperseded, "Lookup superseded by a newer request")
	case errors.Is(err, stock.ErrTimeout):
		h.Error(c, http.StatusGatewayTimeout, dto.ErrCodeUpstreamTimeout, "Inventory service timed out")
	case errors.Is(err, stock.ErrNetwork):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable, "Inventory service is unreachable")
	case errors.Is(err, stock.ErrService):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamInvalid, "Inventory service returned an invalid response")
	case errors.Is(err, scheduler.ErrJobQueueFull):
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeQueueFull, "Sync queue is full, retry later")
	case errors.Is(err, scheduler.ErrSchedulerNotRunning), errors.Is(err, accountapp.ErrSubscriptionsUnavailable):
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Service temporarily unavailable")
	case errors.Is(err, context.Canceled) && c.Request.Context().Err() != nil:
		c.AbortWithStatus(StatusClientClosedRequest)
	default:
		logger.L(c.Request.Context()).Error("unhandled request error", zap.Error(err))
		h.InternalError(c, "An unexpected error occurred")
	}
}
