package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shelfsync/backend/internal/domain/account"
	"github.com/shelfsync/backend/internal/domain/shared"
	"github.com/shelfsync/backend/internal/domain/sibling"
	"github.com/shelfsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiblingMapper converts between a sibling member and its persistence model
type SiblingMapper[T sibling.Member, M any] struct {
	ToModel  func(T) *M
	ToDomain func(*M) T
}

// GormSiblingStore implements sibling.Store for one collection. The table must
// have id, owner_id, version, is_default, created_at and updated_at columns.
type GormSiblingStore[T sibling.Member, M any] struct {
	db         *gorm.DB
	collection string
	mapper     SiblingMapper[T, M]
}

// NewGormSiblingStore creates a sibling store for a collection
func NewGormSiblingStore[T sibling.Member, M any](db *gorm.DB, collection string, mapper SiblingMapper[T, M]) *GormSiblingStore[T, M] {
	return &GormSiblingStore[T, M]{db: db, collection: collection, mapper: mapper}
}

// NewGormAddressStore creates the saved address store
func NewGormAddressStore(db *gorm.DB) *GormSiblingStore[*account.SavedAddress, models.SavedAddressModel] {
	return NewGormSiblingStore(db, account.CollectionAddresses, SiblingMapper[*account.SavedAddress, models.SavedAddressModel]{
		ToModel:  models.SavedAddressModelFromDomain,
		ToDomain: (*models.SavedAddressModel).ToDomain,
	})
}

// NewGormPaymentMethodStore creates the payment method store
func NewGormPaymentMethodStore(db *gorm.DB) *GormSiblingStore[*account.PaymentMethod, models.PaymentMethodModel] {
	return NewGormSiblingStore(db, account.CollectionPaymentMethods, SiblingMapper[*account.PaymentMethod, models.PaymentMethodModel]{
		ToModel:  models.PaymentMethodModelFromDomain,
		ToDomain: (*models.PaymentMethodModel).ToDomain,
	})
}

// Collection returns the name of the sibling collection
func (s *GormSiblingStore[T, M]) Collection() string {
	return s.collection
}

// ListByOwner returns all members of an owner's set, oldest first
func (s *GormSiblingStore[T, M]) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	return s.list(s.db.WithContext(ctx), ownerID, false)
}

// FindByID finds one member of an owner's set
func (s *GormSiblingStore[T, M]) FindByID(ctx context.Context, ownerID, id uuid.UUID) (T, error) {
	var zero T
	row := new(M)
	if err := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, shared.ErrNotFound
		}
		return zero, err
	}
	return s.mapper.ToDomain(row), nil
}

// Commit applies the batch in one transaction. The owner's rows are locked and
// the batch is checked against them before any write; every non-insert write
// is conditional on its expected version.
func (s *GormSiblingStore[T, M]) Commit(ctx context.Context, batch sibling.Batch[T]) error {
	if err := batch.Validate(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.list(tx, batch.OwnerID, true)
		if err != nil {
			return err
		}
		if _, err := sibling.Apply(current, batch); err != nil {
			return err
		}

		now := time.Now()
		for _, w := range orderWrites(batch.Writes) {
			if err := s.write(tx, batch.OwnerID, w, now); err != nil {
				return err
			}
		}

		var defaults int64
		if err := tx.Model(new(M)).
			Where("owner_id = ? AND is_default = ?", batch.OwnerID, true).
			Count(&defaults).Error; err != nil {
			return err
		}
		if defaults > 1 {
			return sibling.ErrMultipleDefaults
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConcurrencyConflict
	}
	return err
}

func (s *GormSiblingStore[T, M]) list(db *gorm.DB, ownerID uuid.UUID, lock bool) ([]T, error) {
	query := db.Where("owner_id = ?", ownerID).Order("created_at ASC").Order("id ASC")
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []M
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	members := make([]T, len(rows))
	for i := range rows {
		members[i] = s.mapper.ToDomain(&rows[i])
	}
	return members, nil
}

func (s *GormSiblingStore[T, M]) write(tx *gorm.DB, ownerID uuid.UUID, w sibling.Write[T], now time.Time) error {
	var result *gorm.DB
	switch w.Kind {
	case sibling.WriteInsert:
		return tx.Create(s.mapper.ToModel(w.Member)).Error
	case sibling.WriteOverwrite:
		row := s.mapper.ToModel(w.Member)
		result = tx.Model(row).
			Where("owner_id = ? AND version = ?", ownerID, w.ExpectedVersion).
			Select("*").Omit("created_at", "owner_id").
			Updates(row)
	case sibling.WriteClearDefault, sibling.WriteSetDefault:
		result = tx.Model(new(M)).
			Where("id = ? AND owner_id = ? AND version = ?", w.ID, ownerID, w.ExpectedVersion).
			Updates(map[string]any{
				"is_default": w.Kind == sibling.WriteSetDefault,
				"version":    gorm.Expr("version + 1"),
				"updated_at": now,
			})
	case sibling.WriteDelete:
		result = tx.Where("id = ? AND owner_id = ? AND version = ?", w.ID, ownerID, w.ExpectedVersion).
			Delete(new(M))
	default:
		return shared.ErrInvalidInput
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// orderWrites runs writes that drop a default before writes that add one,
// so the per-owner unique default index never sees two defaults mid-transaction.
func orderWrites[T sibling.Member](writes []sibling.Write[T]) []sibling.Write[T] {
	rank := func(w sibling.Write[T]) int {
		switch w.Kind {
		case sibling.WriteDelete, sibling.WriteClearDefault:
			return 0
		case sibling.WriteSetDefault:
			return 2
		default:
			if w.Member.IsDefault() {
				return 2
			}
			return 1
		}
	}
	ordered := append([]sibling.Write[T](nil), writes...)
	sort.SliceStable(ordered, func(i, j int) bool { return rank(ordered[i]) < rank(ordered[j]) })
	return ordered
}

var (
	_ sibling.Store[*account.SavedAddress]  = (*GormSiblingStore[*account.SavedAddress, models.SavedAddressModel])(nil)
	_ sibling.Store[*account.PaymentMethod] = (*GormSiblingStore[*account.PaymentMethod, models.PaymentMethodModel])(nil)
)
