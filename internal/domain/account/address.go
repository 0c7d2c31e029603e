package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// CollectionAddresses is the sibling collection name of saved addresses
const CollectionAddresses = "addresses"

// AddressDetails holds the descriptive fields of a saved address
type AddressDetails struct {
	Label         string
	RecipientName string
	Phone         string
	Line1         string
	Line2         string
	City          string
	Region        string
	PostalCode    string
	Country       string
}

// SavedAddress is a delivery address saved by a customer
type SavedAddress struct {
	shared.BaseAggregateRoot
	OwnerID uuid.UUID
	AddressDetails
	Default bool
}

// NewSavedAddress creates a new saved address
func NewSavedAddress(ownerID uuid.UUID, details AddressDetails) (*SavedAddress, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if err := details.validate(); err != nil {
		return nil, err
	}
	return &SavedAddress{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		AddressDetails:    details.normalized(),
	}, nil
}

// GetOwnerID returns the owner of the address
func (a *SavedAddress) GetOwnerID() uuid.UUID {
	return a.OwnerID
}

// IsDefault returns true if this is the owner's default address
func (a *SavedAddress) IsDefault() bool {
	return a.Default
}

// SetDefault sets the default flag
func (a *SavedAddress) SetDefault(isDefault bool) {
	a.Default = isDefault
	a.UpdatedAt = time.Now()
}

// UpdateDetails replaces the descriptive fields
func (a *SavedAddress) UpdateDetails(details AddressDetails) error {
	if err := details.validate(); err != nil {
		return err
	}
	a.AddressDetails = details.normalized()
	a.UpdatedAt = time.Now()
	return nil
}

func (d AddressDetails) validate() error {
	if strings.TrimSpace(d.RecipientName) == "" {
		return shared.NewDomainError("INVALID_RECIPIENT", "Recipient name cannot be empty")
	}
	if strings.TrimSpace(d.Line1) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if strings.TrimSpace(d.City) == "" {
		return shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if len(strings.TrimSpace(d.Country)) != 2 {
		return shared.NewDomainError("INVALID_COUNTRY", "Country must be a 2-letter ISO code")
	}
	return nil
}

func (d AddressDetails) normalized() AddressDetails {
	d.Label = strings.TrimSpace(d.Label)
	d.RecipientName = strings.TrimSpace(d.RecipientName)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Line1 = strings.TrimSpace(d.Line1)
	d.Line2 = strings.TrimSpace(d.Line2)
	d.City = strings.TrimSpace(d.City)
	d.Region = strings.TrimSpace(d.Region)
	d.PostalCode = strings.TrimSpace(d.PostalCode)
	d.Country = strings.ToUpper(strings.TrimSpace(d.Country))
	return d
}
