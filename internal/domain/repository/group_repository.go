package repository

import (
	"context"

	"registryauth/internal/domain/entity"

	"github.com/google/uuid"
)

// GroupRepository reads group memberships. It never writes.
type GroupRepository interface {
	// FindByUserID lists the groups linked to the user, one entry per link,
	// in link order. A link whose group is gone yields a Group with nil Name.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Group, error)
}
