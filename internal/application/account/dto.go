package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/account"
)

// ---------------------------------------------------------------------------
// Address DTOs
// ---------------------------------------------------------------------------

// AddressRequest carries the descriptive fields of an address
type AddressRequest struct {
	Label         string `json:"label" binding:"max=50"`
	RecipientName string `json:"recipient_name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"max=30"`
	Line1         string `json:"line1" binding:"required,max=200"`
	Line2         string `json:"line2" binding:"max=200"`
	City          string `json:"city" binding:"required,max=100"`
	Region        string `json:"region" binding:"max=100"`
	PostalCode    string `json:"postal_code" binding:"max=20"`
	Country       string `json:"country" binding:"required,len=2"`
}

// CreateAddressRequest represents a request to save a new address
type CreateAddressRequest struct {
	AddressRequest
	IsDefault bool `json:"is_default"`
}

// UpdateAddressRequest represents a request to edit an address.
// Version must be the version the client read.
type UpdateAddressRequest struct {
	AddressRequest
	IsDefault *bool `json:"is_default"`
	Version   int   `json:"version" binding:"required,min=1"`
}

// AddressResponse represents a saved address in API responses
type AddressResponse struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Label         string    `json:"label,omitempty"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone,omitempty"`
	Line1         string    `json:"line1"`
	Line2         string    `json:"line2,omitempty"`
	City          string    `json:"city"`
	Region        string    `json:"region,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Country       string    `json:"country"`
	IsDefault     bool      `json:"is_default"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r AddressRequest) toDetails() account.AddressDetails {
	return account.AddressDetails{
		Label:         r.Label,
		RecipientName: r.RecipientName,
		Phone:         r.Phone,
		Line1:         r.Line1,
		Line2:         r.Line2,
		City:          r.City,
		Region:        r.Region,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
	}
}

// ToAddressResponse converts a domain address to a response
func ToAddressResponse(a *account.SavedAddress) AddressResponse {
	return AddressResponse{
		ID:            a.ID,
		OwnerID:       a.OwnerID,
		Label:         a.Label,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		Region:        a.Region,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		IsDefault:     a.Default,
		Version:       a.Version,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToAddressResponses converts a list of domain addresses to responses
func ToAddressResponses(list []*account.SavedAddress) []AddressResponse {
	out := make([]AddressResponse, len(list))
	for i, a := range list {
		out[i] = ToAddressResponse(a)
	}
	return out
}

// ---------------------------------------------------------------------------
// Payment method DTOs
// ---------------------------------------------------------------------------

// PaymentMethodRequest carries the descriptive fields of a payment method
type PaymentMethodRequest struct {
	Type        string `json:"type" binding:"required,oneof=card wallet"`
	Brand       string `json:"brand" binding:"required,max=50"`
	Last4       string `json:"last4" binding:"omitempty,len=4,numeric"`
	ExpiryMonth int    `json:"expiry_month" binding:"omitempty,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" binding:"omitempty,min=2000"`
	HolderName  string `json:"holder_name" binding:"max=100"`
}

// CreatePaymentMethodRequest represents a request to save a new payment method
type CreatePaymentMethodRequest struct {
	PaymentMethodRequest
	IsDefault bool `json:"is_default"`
}

// UpdatePaymentMethodRequest represents a request to edit a payment method
type UpdatePaymentMethodRequest struct {
	PaymentMethodRequest
	IsDefault *bool `json:"is_default"`
	Version   int   `json:"version" binding:"required,min=1"`
}

// PaymentMethodResponse represents a payment method in API responses
type PaymentMethodResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Type        string    `json:"type"`
	Brand       string    `json:"brand"`
	Last4       string    `json:"last4,omitempty"`
	ExpiryMonth int       `json:"expiry_month,omitempty"`
	ExpiryYear  int       `json:"expiry_year,omitempty"`
	HolderName  string    `json:"holder_name,omitempty"`
	IsDefault   bool      `json:"is_default"`
	IsExpired   bool      `json:"is_expired"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r PaymentMethodRequest) toDetails() account.PaymentMethodDetails {
	return account.PaymentMethodDetails{
		Type:        account.PaymentMethodType(r.Type),
		Brand:       r.Brand,
		Last4:       r.Last4,
		ExpiryMonth: r.ExpiryMonth,
		ExpiryYear:  r.ExpiryYear,
		HolderName:  r.HolderName,
	}
}

// ToPaymentMethodResponse converts a domain payment method to a response
func ToPaymentMethodResponse(p *account.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Type:        string(p.Type),
		Brand:       p.Brand,
		Last4:       p.Last4,
		ExpiryMonth: p.ExpiryMonth,
		ExpiryYear:  p.ExpiryYear,
		HolderName:  p.HolderName,
		IsDefault:   p.Default,
		IsExpired:   p.IsExpired(time.Now()),
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPaymentMethodResponses converts a list of domain payment methods to responses
func ToPaymentMethodResponses(list []*account.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, len(list))
	for i, p := range list {
		out[i] = ToPaymentMethodResponse(p)
	}
	return out
}
