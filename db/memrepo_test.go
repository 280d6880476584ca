package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartlib/models"
)

var (
	_ UserStore     = (*MemRepo)(nil)
	_ ActivityStore = (*MemRepo)(nil)
)

func TestMemRepoUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewMemRepo()

	require.NoError(t, SeedUsers(ctx, repo))
	n, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// seeding an already-populated store is a no-op
	require.NoError(t, SeedUsers(ctx, repo))
	n, _ = repo.CountUsers(ctx)
	assert.EqualValues(t, 2, n)

	admin, err := repo.FindUserByEmail(ctx, "ADMIN@smartlib.id")
	require.NoError(t, err, "email lookup is case-insensitive")
	assert.True(t, admin.IsAdmin())

	dup := &models.User{ID: "x", Email: "admin@smartlib.id"}
	assert.ErrorIs(t, repo.CreateUser(ctx, dup), ErrDuplicateEmail)

	_, err = repo.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.TouchUserLogin(ctx, admin.ID))
	admin, _ = repo.FindUserByID(ctx, admin.ID)
	assert.EqualValues(t, 1, admin.LoginCount)
	assert.NotNil(t, admin.LastLoginAt)

	require.NoError(t, repo.DeleteUserByID(ctx, admin.ID))
	_, err = repo.FindUserByID(ctx, admin.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemRepoListUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewMemRepo()
	require.NoError(t, SeedUsers(ctx, repo))

	res, err := repo.ListUsers(ctx, "budi", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "MEM-000001", res.Users[0].MembershipID)

	res, err = repo.ListUsers(ctx, "", 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	assert.Len(t, res.Users, 1)
}

func TestMemRepoActivities(t *testing.T) {
	ctx := context.Background()
	repo := NewMemRepo()

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AppendActivity(ctx, &models.Activity{
			ID:        string(rune('a' + i)),
			Action:    models.ActionLogin,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := repo.ListActivities(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID, "newest first")
	assert.Equal(t, "b", got[1].ID)
}
