package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	accountapp "github.com/shelfsync/backend/internal/application/account"
	"github.com/shelfsync/backend/internal/interfaces/http/middleware"
)

// AddressUseCases is the saved-address application service
type AddressUseCases interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]accountapp.AddressResponse, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*accountapp.AddressResponse, error)
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*accountapp.AddressResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req accountapp.CreateAddressRequest) (*accountapp.AddressResponse, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req accountapp.UpdateAddressRequest) (*accountapp.AddressResponse, error)
	SetDefault(ctx context.Context, ownerID, id uuid.UUID) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Watch(ctx context.Context, ownerID uuid.UUID, fn func([]accountapp.AddressResponse)) (*accountapp.Subscription, error)
}

// PaymentMethodUseCases is the payment-method application service
type PaymentMethodUseCases interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]accountapp.PaymentMethodResponse, error)
	GetDefault(ctx context.Context, ownerID uuid.UUID) (*accountapp.PaymentMethodResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req accountapp.CreatePaymentMethodRequest) (*accountapp.PaymentMethodResponse, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req accountapp.UpdatePaymentMethodRequest) (*accountapp.PaymentMethodResponse, error)
	SetDefault(ctx context.Context, ownerID, id uuid.UUID) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Watch(ctx context.Context, ownerID uuid.UUID, fn func([]accountapp.PaymentMethodResponse)) (*accountapp.Subscription, error)
}

var (
	_ AddressUseCases       = (*accountapp.AddressService)(nil)
	_ PaymentMethodUseCases = (*accountapp.PaymentMethodService)(nil)
)

// AccountOption configures the account handlers
type AccountOption func(*accountOptions)

type accountOptions struct {
	heartbeat time.Duration
}

// WithHeartbeat sets the SSE heartbeat interval
func WithHeartbeat(d time.Duration) AccountOption {
	return func(o *accountOptions) {
		if d > 0 {
			o.heartbeat = d
		}
	}
}

func buildAccountOptions(opts []AccountOption) accountOptions {
	o := accountOptions{heartbeat: DefaultHeartbeat}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ---------------------------------------------------------------------------
// Saved addresses
// ---------------------------------------------------------------------------

// AddressHandler handles the customer's saved addresses under /me/addresses
type AddressHandler struct {
	BaseHandler
	service   AddressUseCases
	heartbeat time.Duration
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(service AddressUseCases, opts ...AccountOption) *AddressHandler {
	o := buildAccountOptions(opts)
	return &AddressHandler{service: service, heartbeat: o.heartbeat}
}

// List returns the customer's addresses
//
// @ID           listAddresses
// @Summary      List addresses
// @Tags         addresses
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Success      200 {object} dto.Response{data=[]accountapp.AddressResponse}
// @Router       /me/addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	list, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetDefault returns the default address, 404 when none is set
//
// @ID           getDefaultAddress
// @Summary      Get the default
// @Tags         addresses
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Success      200 {object} dto.Response{data=accountapp.AddressResponse}
// @Failure      404 {object} dto.Response
// @Router       /me/addresses/default [get]
func (h *AddressHandler) GetDefault(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	addr, err := h.service.GetDefault(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// GetByID returns one address
//
// @ID           getAddress
// @Summary      Get an address
// @Tags         addresses
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        id path string true "ID" format(uuid)
// @Success      200 {object} dto.Response{data=accountapp.AddressResponse}
// @Failure      404 {object} dto.Response
// @Router       /me/addresses/{id} [get]
func (h *AddressHandler) GetByID(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	addr, err := h.service.GetByID(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// Create saves a new address; is_default makes it the only default
//
// @ID           createAddress
// @Summary      Save a new entry
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        request body accountapp.CreateAddressRequest true "Entry"
// @Success      201 {object} dto.Response{data=accountapp.AddressResponse}
// @Failure      400 {object} dto.Response
// @Router       /me/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	var req accountapp.CreateAddressRequest
	if !h.BindJSON(c, &req) {
		return
	}
	addr, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, addr)
}

// Update edits an address at the version the client read
//
// @ID           updateAddress
// @Summary      Edit an entry
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        id path string true "ID" format(uuid)
// @Param        request body accountapp.UpdateAddressRequest true "Entry with the version read"
// @Success      200 {object} dto.Response{data=accountapp.AddressResponse}
// @Failure      409 {object} dto.Response
// @Router       /me/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req accountapp.UpdateAddressRequest
	if !h.BindJSON(c, &req) {
		return
	}
	addr, err := h.service.Update(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// SetDefault makes an address the default, clearing every other default atomically
//
// @ID           setDefaultAddress
// @Summary      Make an entry the only default
// @Tags         addresses
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        id path string true "ID" format(uuid)
// @Success      200 {object} dto.Response{data=accountapp.AddressResponse}
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /me/addresses/{id}/default [post]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.SetDefault(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes an address. Deleting the default leaves the customer without one.
//
// @ID           deleteAddress
// @Summary      Delete an entry
// @Tags         addresses
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        id path string true "ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /me/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stream pushes the address list as Server-Sent Events on every change
//
// @ID           streamAddresses
// @Summary      Live list over server-sent events
// @Tags         addresses
// @Produce      text/event-stream
// @Param        X-Owner-ID header string true "Owner ID"
// @Success      200 {string} string "snapshot and heartbeat events"
// @Router       /me/addresses/stream [get]
func (h *AddressHandler) Stream(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	streamSnapshots[[]accountapp.AddressResponse](c, h.heartbeat,
		func(ctx context.Context, fn func([]accountapp.AddressResponse)) (*accountapp.Subscription, error) {
			return h.service.Watch(ctx, ownerID, fn)
		},
		func(err error) { h.HandleError(c, err) },
	)
}

// ---------------------------------------------------------------------------
// Payment methods
// ---------------------------------------------------------------------------

// PaymentMethodHandler handles the customer's payment methods under /me/payment-methods
type PaymentMethodHandler struct {
	BaseHandler
	service   PaymentMethodUseCases
	heartbeat time.Duration
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(service PaymentMethodUseCases, opts ...AccountOption) *PaymentMethodHandler {
	o := buildAccountOptions(opts)
	return &PaymentMethodHandler{service: service, heartbeat: o.heartbeat}
}

// List returns the customer's payment methods
//
// @ID           listPaymentMethods
// @Summary      List payment-methods
// @Tags         payment-methods
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Success      200 {object} dto.Response{data=[]accountapp.PaymentMethodResponse}
// @Router       /me/payment-methods [get]
func (h *PaymentMethodHandler) List(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	list, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetDefault returns the default payment method, 404 when none is set
//
// @ID           getDefaultPaymentMethod
// @Summary      Get the default
// @Tags         payment-methods
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Success      200 {object} dto.Response{data=accountapp.PaymentMethodResponse}
// @Failure      404 {object} dto.Response
// @Router       /me/payment-methods/default [get]
func (h *PaymentMethodHandler) GetDefault(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	pm, err := h.service.GetDefault(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pm)
}

// Create saves a new payment method
//
// @ID           createPaymentMethod
// @Summary      Save a new entry
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        request body accountapp.CreatePaymentMethodRequest true "Entry"
// @Success      201 {object} dto.Response{data=accountapp.PaymentMethodResponse}
// @Failure      400 {object} dto.Response
// @Router       /me/payment-methods [post]
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	var req accountapp.CreatePaymentMethodRequest
	if !h.BindJSON(c, &req) {
		return
	}
	pm, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pm)
}

// Update edits a payment method at the version the client read
//
// @ID           updatePaymentMethod
// @Summary      Edit an entry
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        id path string true "ID" format(uuid)
// @Param        request body accountapp.UpdatePaymentMethodRequest true "Entry with the version read"
// @Success      200 {object} dto.Response{data=accountapp.PaymentMethodResponse}
// @Failure      409 {object} dto.Response
// @Router       /me/payment-methods/{id} [put]
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req accountapp.UpdatePaymentMethodRequest
	if !h.BindJSON(c, &req) {
		return
	}
	pm, err := h.service.Update(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pm)
}

// SetDefault makes a payment method the default
//
// @ID           setDefaultPaymentMethod
// @Summary      Make an entry the only default
// @Tags         payment-methods
// @Produce      json
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        id path string true "ID" format(uuid)
// @Success      200 {object} dto.Response{data=accountapp.PaymentMethodResponse}
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /me/payment-methods/{id}/default [post]
func (h *PaymentMethodHandler) SetDefault(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.SetDefault(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes a payment method
//
// @ID           deletePaymentMethod
// @Summary      Delete an entry
// @Tags         payment-methods
// @Param        X-Owner-ID header string true "Owner ID"
// @Param        id path string true "ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /me/payment-methods/{id} [delete]
func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stream pushes the payment method list as Server-Sent Events on every change
//
// @ID           streamPaymentMethods
// @Summary      Live list over server-sent events
// @Tags         payment-methods
// @Produce      text/event-stream
// @Param        X-Owner-ID header string true "Owner ID"
// @Success      200 {string} string "snapshot and heartbeat events"
// @Router       /me/payment-methods/stream [get]
func (h *PaymentMethodHandler) Stream(c *gin.Context) {
	ownerID, _ := middleware.GetOwnerID(c)
	streamSnapshots[[]accountapp.PaymentMethodResponse](c, h.heartbeat,
		func(ctx context.Context, fn func([]accountapp.PaymentMethodResponse)) (*accountapp.Subscription, error) {
			return h.service.Watch(ctx, ownerID, fn)
		},
		func(err error) { h.HandleError(c, err) },
	)
}
