package database

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"registryauth/config"
	"registryauth/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSQLiteConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			URL:    "file:" + filepath.Join(t.TempDir(), "auth.db") + "?_foreign_keys=on",
		},
	}

	return cfg
}

// testDB opens a migrated SQLite database in a temp dir.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := newSQLiteConfig(t)
	db, err := Open(cfg, &gorm.Config{Logger: newGormSlogLogger(newDiscardLogger(), cfg)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, password string) *model.UserModel {
	t.Helper()

	user := &model.UserModel{Username: username, Password: password}
	require.NoError(t, db.Create(user).Error)

	return user
}

func seedGroup(t *testing.T, db *gorm.DB, name *string) *model.GroupModel {
	t.Helper()

	group := &model.GroupModel{Name: name}
	require.NoError(t, db.Create(group).Error)

	return group
}

func link(t *testing.T, db *gorm.DB, userID uuid.UUID, groupID *uuid.UUID) {
	t.Helper()

	require.NoError(t, db.Create(&model.GroupUserModel{UserID: userID, GroupID: groupID}).Error)
}

func ptr(s string) *string {
	return &s
}
