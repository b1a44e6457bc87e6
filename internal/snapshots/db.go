package snapshots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/internal/repo"
)

// CartSnapshot maps the cart_snapshots table.
type CartSnapshot struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey;size:128"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (CartSnapshot) TableName() string { return "cart_snapshots" }

// DBStore upserts the snapshot into a single row per key.
type DBStore struct {
	repo.Base
	now func() time.Time
}

func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if db == nil {
		return nil, errors.New("db required")
	}
	return &DBStore{Base: repo.NewBase(db), now: time.Now}, nil
}

func (s *DBStore) Load(ctx context.Context, key string) ([]byte, error) {
	var row CartSnapshot
	err := s.DB(ctx).Where("snapshot_key = ?", key).Take(&row).Error
	if repo.IsNotFound(err) {
		return nil, cart.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	return []byte(row.Payload), nil
}

func (s *DBStore) Save(ctx context.Context, key string, data []byte) error {
	row := CartSnapshot{
		Key:       key,
		Payload:   string(data),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.Upsert(ctx, &row, []string{"snapshot_key"}, []string{"payload", "updated_at"}); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}
