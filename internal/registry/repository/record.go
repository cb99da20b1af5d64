package repository

import (
	"context"

	"github.com/fabianopolone123/ERP-TI/internal/registry"
	"gorm.io/gorm"
)

type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) registry.RepositoryAPI {
	return &RecordRepository{db: db}
}

// Insert writes a single row. Table and column names come from the module registry,
// never from callers.
func (r *RecordRepository) Insert(ctx context.Context, table string, values map[string]interface{}) error {
	return r.db.WithContext(ctx).Table(table).Create(values).Error
}

func (r *RecordRepository) List(ctx context.Context, table string, columns []string, limit int) ([]registry.Row, error) {
	var raw []map[string]interface{}
	err := r.db.WithContext(ctx).
		Table(table).
		Select(columns).
		Order("id ASC").
		Limit(limit).
		Find(&raw).Error
	if err != nil {
		return nil, err
	}

	rows := make([]registry.Row, 0, len(raw))
	for _, m := range raw {
		row := make(registry.Row, len(m))
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
