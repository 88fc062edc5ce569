package relational

import (
	"time"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/ports"
)

// storeRecord maps the store aggregate to a relational table. Items cascade on delete.
type storeRecord struct {
	ID        string       `gorm:"primaryKey;column:id;size:32"`
	Name      string       `gorm:"column:name;size:255;not null;uniqueIndex:idx_stores_name"`
	Items     []itemRecord `gorm:"foreignKey:StoreID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `gorm:"column:created_at;index"`
	UpdatedAt time.Time    `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

type itemRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:32"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Price     float64   `gorm:"column:price;not null"`
	StoreID   string    `gorm:"column:store_id;size:32;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "items" }

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	ItemID      string    `gorm:"column:item_id;size:32"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "item_idempotency_keys" }

func toStoreRecord(store *domain.Store) storeRecord {
	return storeRecord{ID: store.ID, Name: store.Name}
}

func (r storeRecord) toDomain() *domain.Store {
	store := &domain.Store{ID: r.ID, Name: r.Name}
	if len(r.Items) > 0 {
		store.Items = make([]domain.Item, 0, len(r.Items))
		for _, item := range r.Items {
			store.Items = append(store.Items, *item.toDomain())
		}
	}
	return store
}

func toItemRecord(item *domain.Item) itemRecord {
	return itemRecord{ID: item.ID, Name: item.Name, Price: item.Price, StoreID: item.StoreID}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{ID: r.ID, Name: r.Name, Price: r.Price, StoreID: r.StoreID}
}

func toIdempotencyRecord(rec ports.IdempotencyRecord) idempotencyRecord {
	return idempotencyRecord{
		Key:         rec.Key,
		RequestHash: rec.RequestHash,
		ItemID:      rec.ItemID,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func (r *idempotencyRecord) toPort() *ports.IdempotencyRecord {
	if r == nil {
		return nil
	}
	return &ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		ItemID:      r.ItemID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
