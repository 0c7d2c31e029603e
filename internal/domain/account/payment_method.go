package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// CollectionPaymentMethods is the sibling collection name of payment methods
const CollectionPaymentMethods = "payment_methods"

// PaymentMethodType represents the kind of payment method
type PaymentMethodType string

const (
	PaymentMethodTypeCard   PaymentMethodType = "card"
	PaymentMethodTypeWallet PaymentMethodType = "wallet"
)

// IsValid checks if the payment method type is valid
func (t PaymentMethodType) IsValid() bool {
	switch t {
	case PaymentMethodTypeCard, PaymentMethodTypeWallet:
		return true
	}
	return false
}

// PaymentMethodDetails holds the descriptive fields of a payment method.
// Only display data is stored; card numbers never reach this service.
type PaymentMethodDetails struct {
	Type        PaymentMethodType
	Brand       string
	Last4       string
	ExpiryMonth int
	ExpiryYear  int
	HolderName  string
}

// PaymentMethod is a payment method saved by a customer
type PaymentMethod struct {
	shared.BaseAggregateRoot
	OwnerID uuid.UUID
	PaymentMethodDetails
	Default bool
}

// NewPaymentMethod creates a new payment method
func NewPaymentMethod(ownerID uuid.UUID, details PaymentMethodDetails) (*PaymentMethod, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if err := details.validate(time.Now()); err != nil {
		return nil, err
	}
	return &PaymentMethod{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		OwnerID:              ownerID,
		PaymentMethodDetails: details.normalized(),
	}, nil
}

// GetOwnerID returns the owner of the payment method
func (p *PaymentMethod) GetOwnerID() uuid.UUID {
	return p.OwnerID
}

// IsDefault returns true if this is the owner's default payment method
func (p *PaymentMethod) IsDefault() bool {
	return p.Default
}

// SetDefault sets the default flag
func (p *PaymentMethod) SetDefault(isDefault bool) {
	p.Default = isDefault
	p.UpdatedAt = time.Now()
}

// UpdateDetails replaces the descriptive fields
func (p *PaymentMethod) UpdateDetails(details PaymentMethodDetails) error {
	if err := details.validate(time.Now()); err != nil {
		return err
	}
	p.PaymentMethodDetails = details.normalized()
	p.UpdatedAt = time.Now()
	return nil
}

// IsExpired returns true if a card is past its expiry month
func (p *PaymentMethod) IsExpired(now time.Time) bool {
	if p.Type != PaymentMethodTypeCard {
		return false
	}
	return p.ExpiryYear < now.Year() || (p.ExpiryYear == now.Year() && p.ExpiryMonth < int(now.Month()))
}

func (d PaymentMethodDetails) validate(now time.Time) error {
	if !d.Type.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment method type must be card or wallet")
	}
	if strings.TrimSpace(d.Brand) == "" {
		return shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}
	if d.Type != PaymentMethodTypeCard {
		return nil
	}
	last4 := strings.TrimSpace(d.Last4)
	if len(last4) != 4 || strings.Trim(last4, "0123456789") != "" {
		return shared.NewDomainError("INVALID_LAST4", "Last4 must be 4 digits")
	}
	if d.ExpiryMonth < 1 || d.ExpiryMonth > 12 {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry month must be between 1 and 12")
	}
	if d.ExpiryYear < now.Year() || (d.ExpiryYear == now.Year() && d.ExpiryMonth < int(now.Month())) {
		return shared.NewDomainError("INVALID_EXPIRY", "Card is expired")
	}
	return nil
}

func (d PaymentMethodDetails) normalized() PaymentMethodDetails {
	d.Brand = strings.TrimSpace(d.Brand)
	d.Last4 = strings.TrimSpace(d.Last4)
	d.HolderName = strings.TrimSpace(d.HolderName)
	return d
}
