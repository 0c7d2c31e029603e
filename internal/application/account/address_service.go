package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/account"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// AddressService handles saved address operations
type AddressService struct {
	manager *DefaultManager[*account.SavedAddress]
}

// NewAddressService creates a new AddressService
func NewAddressService(manager *DefaultManager[*account.SavedAddress]) *AddressService {
	return &AddressService{manager: manager}
}

// List returns an owner's addresses
func (s *AddressService) List(ctx context.Context, ownerID uuid.UUID) ([]AddressResponse, error) {
	list, err := s.manager.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(list), nil
}

// GetByID returns one address
func (s *AddressService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*AddressResponse, error) {
	addr, err := s.manager.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToAddressResponse(addr)
	return &resp, nil
}

// GetDefault returns the owner's default address
func (s *AddressService) GetDefault(ctx context.Context, ownerID uuid.UUID) (*AddressResponse, error) {
	addr, err := s.manager.Default(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	resp := ToAddressResponse(addr)
	return &resp, nil
}

// Create saves a new address
func (s *AddressService) Create(ctx context.Context, ownerID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	addr, err := account.NewSavedAddress(ownerID, req.toDetails())
	if err != nil {
		return nil, err
	}
	if err := s.manager.Add(ctx, addr, req.IsDefault); err != nil {
		return nil, err
	}
	resp := ToAddressResponse(addr)
	return &resp, nil
}

// Update edits an address
func (s *AddressService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	addr, err := s.manager.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if addr.Version != req.Version {
		return nil, shared.ErrConcurrencyConflict
	}
	if err := addr.UpdateDetails(req.toDetails()); err != nil {
		return nil, err
	}
	if req.IsDefault != nil {
		addr.SetDefault(*req.IsDefault)
	}
	if err := s.manager.Update(ctx, addr); err != nil {
		return nil, err
	}
	resp := ToAddressResponse(addr)
	return &resp, nil
}

// SetDefault makes an address the owner's default
func (s *AddressService) SetDefault(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.manager.SetDefault(ctx, ownerID, id)
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.manager.Delete(ctx, ownerID, id)
}

// Watch streams the owner's address list until ctx ends or the subscription is closed
func (s *AddressService) Watch(ctx context.Context, ownerID uuid.UUID, fn func([]AddressResponse)) (*Subscription, error) {
	return s.manager.Subscribe(ctx, ownerID, func(list []*account.SavedAddress) {
		fn(ToAddressResponses(list))
	})
}
