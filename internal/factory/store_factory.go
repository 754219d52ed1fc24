package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aquashield/lead-intake/internal/adapters/store"
	"github.com/aquashield/lead-intake/internal/config"
	"github.com/aquashield/lead-intake/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates storage backends based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateStore creates a storage backend based on the configuration
func (f *StoreFactory) CreateStore() (core.Store, error) {
	storeType := f.cfg.GetString("storage.type")

	switch storeType {
	case "memory":
		f.logger.Warn("Using in-memory storage; rate-limit counts reset on restart")
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("storage.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("storage.mysql_dsn")
		return store.NewMySQLStore(mysqlDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storeType)
	}
}
