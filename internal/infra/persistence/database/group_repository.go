package database

import (
	"context"

	"registryauth/internal/domain/entity"
	domainerrors "registryauth/internal/domain/errors"
	"registryauth/internal/domain/repository"
	"registryauth/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository returns the GORM-backed repository.GroupRepository.
func NewGroupRepository(db *gorm.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

type membershipRow struct {
	GroupID *uuid.UUID
	Name    *string
}

// FindByUserID left-joins group_users to groups so a dangling link still
// produces an entry, with a nil name.
func (repo *groupRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Group, error) {
	var rows []membershipRow

	err := repo.db.WithContext(ctx).
		Model(&model.GroupUserModel{}).
		Select(`"groups".id AS group_id, "groups".name AS name`).
		Joins(`LEFT JOIN "groups" ON "groups".id = group_users.group_id`).
		Where("group_users.user_id = ?", userID).
		Order("group_users.id").
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list groups for user")
	}

	groups := make([]entity.Group, 0, len(rows))
	for _, row := range rows {
		group := entity.Group{Name: row.Name}
		if row.GroupID != nil {
			group.ID = *row.GroupID
		}
		groups = append(groups, group)
	}

	return groups, nil
}
