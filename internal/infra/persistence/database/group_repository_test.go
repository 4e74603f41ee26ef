package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_FindByUserID(t *testing.T) {
	db := testDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", "digest-1")
	bob := seedUser(t, db, "bob", "digest-2")

	g1 := seedGroup(t, db, ptr("g1"))
	g2 := seedGroup(t, db, ptr("g2"))
	g3 := seedGroup(t, db, nil)

	link(t, db, alice.ID, &g1.ID)
	link(t, db, alice.ID, &g2.ID)
	link(t, db, alice.ID, &g3.ID)
	link(t, db, bob.ID, &g2.ID)

	groups, err := repo.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, g1.ID, groups[0].ID)
	require.NotNil(t, groups[0].Name)
	assert.Equal(t, "g1", *groups[0].Name)
	require.NotNil(t, groups[1].Name)
	assert.Equal(t, "g2", *groups[1].Name)
	assert.Equal(t, g3.ID, groups[2].ID)
	assert.Nil(t, groups[2].Name)
}

func TestGroupRepository_DanglingLinkKeepsPosition(t *testing.T) {
	db := testDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice", "digest-1")
	g1 := seedGroup(t, db, ptr("g1"))

	link(t, db, alice.ID, nil)
	link(t, db, alice.ID, &g1.ID)

	groups, err := repo.FindByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Nil(t, groups[0].Name)
	assert.Equal(t, uuid.Nil, groups[0].ID)
	require.NotNil(t, groups[1].Name)
	assert.Equal(t, "g1", *groups[1].Name)
}

func TestGroupRepository_NoGroups(t *testing.T) {
	db := testDB(t)
	repo := NewGroupRepository(db)

	alice := seedUser(t, db, "alice", "digest-1")

	groups, err := repo.FindByUserID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
