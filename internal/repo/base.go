package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Base is embedded by gorm backed stores.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx. A nil ctx returns the raw connection.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Upsert inserts value, or overwrites updateColumns when a row with the same
// keyColumns already exists.
func (b Base) Upsert(ctx context.Context, value any, keyColumns, updateColumns []string) error {
	if len(keyColumns) == 0 {
		return errors.New("upsert requires at least one key column")
	}
	columns := make([]clause.Column, 0, len(keyColumns))
	for _, name := range keyColumns {
		columns = append(columns, clause.Column{Name: name})
	}
	return b.DB(ctx).Clauses(clause.OnConflict{
		Columns:   columns,
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(value).Error
}

// IsNotFound reports whether err is gorm's record not found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
