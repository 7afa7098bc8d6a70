package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainrepo "app/internal/repository"
)

// kv_recordsテーブルの1行
type KVRecord struct {
	Key   string `gorm:"primaryKey;column:key;type:varchar(255)"`
	Value string `gorm:"column:value;type:text;not null"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}

// Postgres上のKVストア（postgresドライバ）。
type kvGormStore struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewKVGormStore(db *gorm.DB) domainrepo.KVStore {
	return &kvGormStore{db: db}
}

func (s *kvGormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var rec KVRecord

	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&rec).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return rec.Value, true, nil
}

// Upsert（同一キーは上書き）
func (s *kvGormStore) Set(ctx context.Context, key string, value string) error {
	rec := KVRecord{Key: key, Value: value}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&rec).Error
}

func (s *kvGormStore) Remove(ctx context.Context, key string) error {
	// 0件削除も成功扱い
	return s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&KVRecord{}).Error
}
