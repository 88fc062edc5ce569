package migrations

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/Apurer/go-gin-store-api/internal/domains/catalog/adapters/persistence/relational"
)

// TableStatus describes one managed table.
type TableStatus struct {
	Table   string
	Present bool
	Rows    int64
}

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return relational.Migrate(db)
}

// Status reports, in migration order, whether each managed table exists and how many rows it holds.
func Status(db *gorm.DB) ([]TableStatus, error) {
	if db == nil {
		return nil, fmt.Errorf("database not configured")
	}
	models := relational.Models()
	statuses := make([]TableStatus, 0, len(models))
	for _, model := range models {
		status := TableStatus{Table: tableName(db, model)}
		if db.Migrator().HasTable(model) {
			status.Present = true
			if err := db.Model(model).Count(&status.Rows).Error; err != nil {
				return nil, fmt.Errorf("count %s: %w", status.Table, err)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func tableName(db *gorm.DB, model any) string {
	if tabler, ok := model.(schema.Tabler); ok {
		return tabler.TableName()
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}
