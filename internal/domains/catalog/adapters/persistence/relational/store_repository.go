package relational

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

var _ ports.StoreRepository = (*StoreRepository)(nil)

// StoreRepository persists stores using GORM. Works against PostgreSQL and SQLite.
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository wires a GORM-backed store repository. Caller manages DB lifecycle and migrations.
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// Create inserts a store, rejecting names that are already taken.
func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	record := toStoreRecord(store)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&storeRecord{}).Where("name = ?", record.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ports.ErrDuplicateStoreName
		}
		return tx.Omit("Items").Create(&record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateStoreName
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns every store in creation order, without items.
func (r *StoreRepository) List(ctx context.Context) ([]*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []storeRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, err
	}
	stores := make([]*domain.Store, 0, len(records))
	for i := range records {
		stores = append(stores, records[i].toDomain())
	}
	return stores, nil
}

// GetByID loads a store together with its items.
func (r *StoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record storeRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrStoreNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes the store and every item it owns in one transaction.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&itemRecord{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&storeRecord{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrStoreNotFound
		}
		return nil
	})
}

func (r *StoreRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("store repository not configured")
	}
	return nil
}
