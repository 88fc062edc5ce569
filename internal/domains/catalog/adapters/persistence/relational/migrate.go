package relational

import "gorm.io/gorm"

// Models lists the catalog tables in dependency order.
func Models() []any {
	return []any{&storeRecord{}, &itemRecord{}, &idempotencyRecord{}}
}

// Migrate creates or updates the catalog schema.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(Models()...)
}
