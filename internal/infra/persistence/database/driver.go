package database

import (
	"registryauth/config"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DriverFactory opens a gorm connection for the given config.
type DriverFactory func(cfg *config.Config, gormCfg *gorm.Config) (*gorm.DB, error)

var driverFactories = map[string]DriverFactory{
	config.DriverSQLite: func(cfg *config.Config, gormCfg *gorm.Config) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(cfg.Database.URL), gormCfg)
	},
	config.DriverPostgres: func(cfg *config.Config, gormCfg *gorm.Config) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(cfg.Database.URL), gormCfg)
	},
	config.DriverPostgresCluster: func(cfg *config.Config, _ *gorm.Config) (*gorm.DB, error) {
		// go-lib owns the gorm config for primary/replica setups; Open applies ours afterwards.
		return pgLib.New(cfg.Postgres)
	},
}

// Open connects to the store named by cfg.Database.Driver.
func Open(cfg *config.Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	factory, ok := driverFactories[cfg.Database.Driver]
	if !ok {
		return nil, errors.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := factory(cfg, gormCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", cfg.Database.Driver)
	}

	// Unique violations must surface as gorm.ErrDuplicatedKey whatever opened the connection.
	db.Config.TranslateError = true

	return db, nil
}

// RegisterDriver allows registering custom database drivers
func RegisterDriver(name string, factory DriverFactory) {
	driverFactories[name] = factory
}
