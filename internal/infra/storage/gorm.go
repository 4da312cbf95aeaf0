package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/braids-scheduler/internal/models"
)

type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var rec models.KVRecord
	if err := g.db.WithContext(ctx).
		Where("key = ?", key).
		First(&rec).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	rec := models.KVRecord{Key: key, Value: string(value)}

	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (g *Gorm) Clear(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&models.KVRecord{}).Error
}

var _ Storage = (*Gorm)(nil)
