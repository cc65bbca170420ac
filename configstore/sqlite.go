package configstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/capsohq/modelcache/schemas"
)

// TableCacheConfig is the key/value row the sqlite store keeps config
// payloads in.
type TableCacheConfig struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

// TableName sets the table name for gorm.
func (TableCacheConfig) TableName() string { return "cache_configs" }

// SQLiteStore is a ConfigStore over a sqlite database file.
type SQLiteStore struct {
	db     *gorm.DB
	logger schemas.Logger
}

// NewSQLiteStore opens (creating if needed) the sqlite database at path and
// migrates the config table.
func NewSQLiteStore(path string, logger schemas.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = schemas.NopLogger{}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store at %s: %w", path, err)
	}
	if err := db.AutoMigrate(&TableCacheConfig{}); err != nil {
		return nil, fmt.Errorf("migrate config table: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// GetConfig returns the value for key, or ErrNotFound.
func (s *SQLiteStore) GetConfig(ctx context.Context, key string) (string, error) {
	var row TableCacheConfig
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get config %q: %w", key, err)
	}
	return row.Value, nil
}

// UpdateConfig inserts or replaces the value for key.
func (s *SQLiteStore) UpdateConfig(ctx context.Context, key string, value string) error {
	row := TableCacheConfig{Key: key, Value: value}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("update config %q: %w", key, err)
	}
	return nil
}

// Ping verifies the underlying database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
