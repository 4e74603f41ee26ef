package database

import (
	"context"

	"registryauth/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates the users, groups and group_users tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&model.UserModel{},
		&model.GroupModel{},
		&model.GroupUserModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate auth schema")
	}

	return nil
}
