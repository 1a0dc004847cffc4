package service

import (
	"context"
	"errors"
	"testing"

	"task_portal/internal/common"
	"task_portal/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.createUser(t, "admin", model.RoleAdmin)
	env.createUser(t, "alice", model.RoleCandidate)
	env.createUser(t, "bob", model.RoleCandidate)

	all, err := env.users.List(ctx, model.RoleAdmin, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, u := range all {
		assert.Empty(t, u.HashedPassword)
	}

	candidates, err := env.users.List(ctx, model.RoleAdmin, model.RoleCandidate)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	_, err = env.users.List(ctx, model.RoleAdmin, "superuser")
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestGetUserAccess(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	alice := env.createUser(t, "alice", model.RoleCandidate)
	bob := env.createUser(t, "bob", model.RoleCandidate)

	// Admin may view anyone.
	got, err := env.users.Get(ctx, model.RoleAdmin, admin.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Username, got.Username)
	assert.Empty(t, got.HashedPassword)

	// A candidate may view only themselves.
	got, err = env.users.Get(ctx, model.RoleCandidate, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = env.users.Get(ctx, model.RoleCandidate, alice.ID, bob.ID)
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.createUser(t, "alice", model.RoleCandidate)
	bob := env.createUser(t, "bob", model.RoleCandidate)

	name := "Alice Renamed"
	updated, err := env.users.UpdateProfile(ctx, alice.ID, alice.ID, UpdateProfileRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", updated.FullName)
	assert.Equal(t, alice.Username, updated.Username)
	assert.Equal(t, alice.CandidateID, updated.CandidateID)

	// Password change keeps login working with the new secret only.
	newPass := "fresh-secret"
	_, err = env.users.UpdateProfile(ctx, alice.ID, alice.ID, UpdateProfileRequest{Password: &newPass})
	require.NoError(t, err)
	_, err = env.auth.Login(ctx, LoginRequest{Username: "alice", Password: "fresh-secret"})
	assert.NoError(t, err)
	_, err = env.auth.Login(ctx, LoginRequest{Username: "alice", Password: "s3cret-pass"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	// Not the owner.
	_, err = env.users.UpdateProfile(ctx, bob.ID, alice.ID, UpdateProfileRequest{FullName: &name})
	assert.True(t, errors.Is(err, common.ErrForbidden))

	short := "ab"
	_, err = env.users.UpdateProfile(ctx, alice.ID, alice.ID, UpdateProfileRequest{Password: &short})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestListUsersIsAdminOnly(t *testing.T) {
	env := newTestEnv()
	env.createUser(t, "alice", model.RoleCandidate)

	_, err := env.users.List(context.Background(), model.RoleCandidate, "")
	assert.True(t, errors.Is(err, common.ErrForbidden))
}
