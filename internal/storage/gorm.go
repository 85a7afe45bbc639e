package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type kvRecord struct {
	Key       string         `gorm:"type:text;primaryKey"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (kvRecord) TableName() string {
	return "quizdeck_kv"
}

type gormKV struct {
	db *gorm.DB
}

// OpenPostgres connects to DATABASE_DSN and migrates the single kv table.
// Stored values must be valid JSON.
func OpenPostgres(ctx context.Context, dsn string) (KV, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return NewGormKV(ctx, db)
}

func NewGormKV(ctx context.Context, db *gorm.DB) (KV, error) {
	if err := db.WithContext(ctx).AutoMigrate(&kvRecord{}); err != nil {
		return nil, err
	}
	return &gormKV{db: db}, nil
}

func (s *gormKV) Get(ctx context.Context, key string) (Entry, error) {
	var rec kvRecord
	if err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return Entry{Value: []byte(rec.Value), UpdatedAt: rec.UpdatedAt}, nil
}

func (s *gormKV) Put(ctx context.Context, key string, value []byte) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := kvRecord{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rec).Error
	})
}

func (s *gormKV) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&kvRecord{}, "key = ?", key).Error
}

func (s *gormKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
