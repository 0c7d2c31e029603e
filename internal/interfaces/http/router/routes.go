package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shelfsync/backend/internal/interfaces/http/handler"
	"github.com/shelfsync/backend/internal/interfaces/http/middleware"
)

// Handlers are the API handlers mounted by NewEngine
type Handlers struct {
	System         *handler.SystemHandler
	Stock          *handler.StockHandler
	Stores         *handler.StoreHandler
	Addresses      *handler.AddressHandler
	PaymentMethods *handler.PaymentMethodHandler
}

// APIGroups builds the /api/v1 route groups.
// lookupLimit guards the consumer stock lookup and may be nil.
func APIGroups(h Handlers, lookupLimit gin.HandlerFunc) []RouteRegistrar {
	groups := make([]RouteRegistrar, 0, 4)

	if h.System != nil {
		groups = append(groups, NewDomainGroup("system", "/system").
			GET("/info", h.System.GetSystemInfo))
	}

	if h.Stock != nil {
		stock := NewDomainGroup("stock", "/stock")
		if lookupLimit != nil {
			stock.Use(lookupLimit)
		}
		stock.POST("/availability", h.Stock.CheckAvailability)
		groups = append(groups, stock)
	}

	if h.Stores != nil {
		groups = append(groups, NewDomainGroup("stores", "/stores").
			Use(middleware.RequireTenant()).
			GET("", h.Stores.List).
			GET("/:id", h.Stores.GetByID).
			POST("/:id/sync", h.Stores.Sync).
			GET("/:id/sync-jobs", h.Stores.SyncJobs))
	}

	me := NewDomainGroup("me", "/me").Use(middleware.RequireOwner())
	if h.Addresses != nil {
		me.Group("addresses", "/addresses").
			GET("", h.Addresses.List).
			POST("", h.Addresses.Create).
			GET("/default", h.Addresses.GetDefault).
			GET("/stream", h.Addresses.Stream).
			GET("/:id", h.Addresses.GetByID).
			PUT("/:id", h.Addresses.Update).
			POST("/:id/default", h.Addresses.SetDefault).
			DELETE("/:id", h.Addresses.Delete)
	}
	if h.PaymentMethods != nil {
		me.Group("payment-methods", "/payment-methods").
			GET("", h.PaymentMethods.List).
			POST("", h.PaymentMethods.Create).
			GET("/default", h.PaymentMethods.GetDefault).
			GET("/stream", h.PaymentMethods.Stream).
			PUT("/:id", h.PaymentMethods.Update).
			POST("/:id/default", h.PaymentMethods.SetDefault).
			DELETE("/:id", h.PaymentMethods.Delete)
	}
	if h.Addresses != nil || h.PaymentMethods != nil {
		groups = append(groups, me)
	}

	return groups
}
