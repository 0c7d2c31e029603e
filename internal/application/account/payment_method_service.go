package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/account"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// PaymentMethodService handles saved payment method operations
type PaymentMethodService struct {
	manager *DefaultManager[*account.PaymentMethod]
}

// NewPaymentMethodService creates a new PaymentMethodService
func NewPaymentMethodService(manager *DefaultManager[*account.PaymentMethod]) *PaymentMethodService {
	return &PaymentMethodService{manager: manager}
}

// List returns an owner's payment methods
func (s *PaymentMethodService) List(ctx context.Context, ownerID uuid.UUID) ([]PaymentMethodResponse, error) {
	list, err := s.manager.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToPaymentMethodResponses(list), nil
}

// GetDefault returns the owner's default payment method
func (s *PaymentMethodService) GetDefault(ctx context.Context, ownerID uuid.UUID) (*PaymentMethodResponse, error) {
	pm, err := s.manager.Default(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentMethodResponse(pm)
	return &resp, nil
}

// Create saves a new payment method
func (s *PaymentMethodService) Create(ctx context.Context, ownerID uuid.UUID, req CreatePaymentMethodRequest) (*PaymentMethodResponse, error) {
	pm, err := account.NewPaymentMethod(ownerID, req.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.manager.Add(ctx, pm, req.IsDefault); err != nil {
		return nil, err
	}
	resp := ToPaymentMethodResponse(pm)
	return &resp, nil
}

// Update edits a payment method
func (s *PaymentMethodService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdatePaymentMethodRequest) (*PaymentMethodResponse, error) {
	pm, err := s.manager.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if pm.Version != req.Version {
		return nil, shared.ErrConcurrencyConflict
	}
	if err := pm.UpdateDetails(req.toDetails()); err != nil {
		return nil, err
	}
	if req.IsDefault != nil {
		pm.SetDefault(*req.IsDefault)
	}
	if err := s.manager.Update(ctx, pm); err != nil {
		return nil, err
	}
	resp := ToPaymentMethodResponse(pm)
	return &resp, nil
}

// SetDefault makes a payment method the owner's default
func (s *PaymentMethodService) SetDefault(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.manager.SetDefault(ctx, ownerID, id)
}

// Delete removes a payment method
func (s *PaymentMethodService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.manager.Delete(ctx, ownerID, id)
}

// Watch streams the owner's payment methods until ctx ends or the subscription is closed
func (s *PaymentMethodService) Watch(ctx context.Context, ownerID uuid.UUID, fn func([]PaymentMethodResponse)) (*Subscription, error) {
	return s.manager.Subscribe(ctx, ownerID, func(list []*account.PaymentMethod) {
		fn(ToPaymentMethodResponses(list))
	})
}
