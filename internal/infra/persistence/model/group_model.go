package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupModel mirrors the 'groups' table.
type GroupModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      *string   `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (GroupModel) TableName() string {
	return "groups"
}

// BeforeCreate assigns an ID when the caller did not.
func (m *GroupModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}

// GroupUserModel mirrors the 'group_users' link table. The auto-increment ID
// fixes the order memberships are listed in.
type GroupUserModel struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	GroupID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time

	Group *GroupModel `gorm:"foreignKey:GroupID"`
}

// TableName explicitly sets the table name for GORM.
func (GroupUserModel) TableName() string {
	return "group_users"
}
