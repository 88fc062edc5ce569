package relational

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

var _ ports.ItemRepository = (*ItemRepository)(nil)

// ItemRepository persists items using GORM.
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository wires a GORM-backed item repository. Caller manages DB lifecycle and migrations.
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts an item after confirming its store exists.
func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	record := toItemRecord(item)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store storeRecord
		if err := tx.Select("id").First(&store, "id = ?", record.StoreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrStoreNotFound
			}
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ports.ErrStoreNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns every item in creation order.
func (r *ItemRepository) List(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

// GetByID fetches an item by identifier.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrItemNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update locks the row, applies mutate and writes back name and price. store_id is never rewritten.
func (r *ItemRepository) Update(ctx context.Context, id string, mutate func(*domain.Item) error) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record itemRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrItemNotFound
			}
			return err
		}
		item := record.toDomain()
		if mutate != nil {
			if err := mutate(item); err != nil {
				return err
			}
		}
		if err := tx.Model(&record).Updates(map[string]any{
			"name":  item.Name,
			"price": item.Price,
		}).Error; err != nil {
			return err
		}
		updated = &domain.Item{ID: record.ID, Name: item.Name, Price: item.Price, StoreID: record.StoreID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a single item.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&itemRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("item repository not configured")
	}
	return nil
}
