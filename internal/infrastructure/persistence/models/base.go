package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/shared"
)

// AggregateModel holds the persistence fields shared by all aggregates
type AggregateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
}

// FromDomain populates the model from a domain aggregate root
func (m *AggregateModel) FromDomain(a shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// ToDomain builds the domain aggregate root
func (m *AggregateModel) ToDomain() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Version:    m.Version,
	}
}

// TenantAggregateModel extends AggregateModel with the owning tenant
type TenantAggregateModel struct {
	AggregateModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// FromDomainTenant populates the model from a tenant aggregate root
func (m *TenantAggregateModel) FromDomainTenant(t shared.TenantAggregateRoot) {
	m.FromDomain(t.BaseAggregateRoot)
	m.TenantID = t.TenantID
}

// ToDomainTenant builds the domain tenant aggregate root
func (m *TenantAggregateModel) ToDomainTenant() shared.TenantAggregateRoot {
	return shared.TenantAggregateRoot{BaseAggregateRoot: m.ToDomain(), TenantID: m.TenantID}
}
