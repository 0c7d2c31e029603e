package models

import (
	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/account"
)

// SavedAddressModel is the persistence model of a saved address.
// The partial unique index keeps at most one default per owner.
type SavedAddressModel struct {
	AggregateModel
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_saved_addresses_owner_default,where:is_default = true"`
	Label         string    `gorm:"type:varchar(50);not null;default:''"`
	RecipientName string    `gorm:"type:varchar(100);not null"`
	Phone         string    `gorm:"type:varchar(30);not null;default:''"`
	Line1         string    `gorm:"type:varchar(200);not null"`
	Line2         string    `gorm:"type:varchar(200);not null;default:''"`
	City          string    `gorm:"type:varchar(100);not null"`
	Region        string    `gorm:"type:varchar(100);not null;default:''"`
	PostalCode    string    `gorm:"type:varchar(20);not null"`
	Country       string    `gorm:"type:char(2);not null"`
	IsDefault     bool      `gorm:"not null;default:false"`
}

// TableName returns the table name
func (SavedAddressModel) TableName() string {
	return "saved_addresses"
}

// ToDomain converts the model to a domain saved address
func (m *SavedAddressModel) ToDomain() *account.SavedAddress {
	return &account.SavedAddress{
		BaseAggregateRoot: m.AggregateModel.ToDomain(),
		OwnerID:           m.OwnerID,
		AddressDetails: account.AddressDetails{
			Label:         m.Label,
			RecipientName: m.RecipientName,
			Phone:         m.Phone,
			Line1:         m.Line1,
			Line2:         m.Line2,
			City:          m.City,
			Region:        m.Region,
			PostalCode:    m.PostalCode,
			Country:       m.Country,
		},
		Default: m.IsDefault,
	}
}

// SavedAddressModelFromDomain converts a domain saved address to its model
func SavedAddressModelFromDomain(a *account.SavedAddress) *SavedAddressModel {
	m := &SavedAddressModel{
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
	}
	m.FromDomain(a.BaseAggregateRoot)
	return m
}

// PaymentMethodModel is the persistence model of a saved payment method
type PaymentMethodModel struct {
	AggregateModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_payment_methods_owner_default,where:is_default = true"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Brand       string    `gorm:"type:varchar(50);not null;default:''"`
	Last4       string    `gorm:"type:varchar(4);not null;default:''"`
	ExpiryMonth int       `gorm:"not null;default:0"`
	ExpiryYear  int       `gorm:"not null;default:0"`
	HolderName  string    `gorm:"type:varchar(100);not null;default:''"`
	IsDefault   bool      `gorm:"not null;default:false"`
}

// TableName returns the table name
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// ToDomain converts the model to a domain payment method
func (m *PaymentMethodModel) ToDomain() *account.PaymentMethod {
	return &account.PaymentMethod{
		BaseAggregateRoot: m.AggregateModel.ToDomain(),
		OwnerID:           m.OwnerID,
		PaymentMethodDetails: account.PaymentMethodDetails{
			Type:        account.PaymentMethodType(m.Type),
			Brand:       m.Brand,
			Last4:       m.Last4,
			ExpiryMonth: m.ExpiryMonth,
			ExpiryYear:  m.ExpiryYear,
			HolderName:  m.HolderName,
		},
		Default: m.IsDefault,
	}
}

// PaymentMethodModelFromDomain converts a domain payment method to its model
func PaymentMethodModelFromDomain(p *account.PaymentMethod) *PaymentMethodModel {
	m := &PaymentMethodModel{
		OwnerID:     p.OwnerID,
		Type:        string(p.Type),
		Brand:       p.Brand,
		Last4:       p.Last4,
		ExpiryMonth: p.ExpiryMonth,
		ExpiryYear:  p.ExpiryYear,
		HolderName:  p.HolderName,
		IsDefault:   p.Default,
	}
	m.FromDomain(p.BaseAggregateRoot)
	return m
}

// AllModels lists every model for schema migration in tests
func AllModels() []any {
	return []any{
		&CatalogItemModel{},
		&StoreModel{},
		&SavedAddressModel{},
		&PaymentMethodModel{},
	}
}
