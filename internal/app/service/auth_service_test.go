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

func TestRegister(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.auth.Register(ctx, RegisterRequest{
		Username: "jdoe",
		Password: "s3cret-pass",
		FullName: "Jamie Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleCandidate, resp.User.Role, "role defaults to candidate")
	require.NotNil(t, resp.User.CandidateID, "candidate reference is auto-generated")
	assert.Contains(t, *resp.User.CandidateID, "C-")
	assert.Empty(t, resp.User.HashedPassword)

	// Duplicate username conflicts.
	_, err = env.auth.Register(ctx, RegisterRequest{
		Username: "jdoe",
		Password: "other-pass",
		FullName: "Someone Else",
	})
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing username", RegisterRequest{Password: "s3cret-pass", FullName: "X"}},
		{"short password", RegisterRequest{Username: "abc", Password: "ab", FullName: "X"}},
		{"missing full name", RegisterRequest{Username: "abc", Password: "s3cret-pass"}},
		{"bad role", RegisterRequest{Username: "abc", Password: "s3cret-pass", FullName: "X", Role: "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, tt.req)
			assert.True(t, errors.Is(err, common.ErrValidation), "got %v", err)
		})
	}
}

func TestRegisterAdminHasNoCandidateID(t *testing.T) {
	env := newTestEnv()

	resp, err := env.auth.Register(context.Background(), RegisterRequest{
		Username: "boss",
		Password: "s3cret-pass",
		FullName: "The Boss",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.User.CandidateID)
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.createUser(t, "jdoe", model.RoleCandidate)

	resp, err := env.auth.Login(ctx, LoginRequest{Username: "jdoe", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.HashedPassword)

	_, err = env.auth.Login(ctx, LoginRequest{Username: "jdoe", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	// Unknown user gets the same generic error as a bad password.
	_, err = env.auth.Login(ctx, LoginRequest{Username: "ghost", Password: "whatever"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestMe(t *testing.T) {
	env := newTestEnv()
	user := env.createUser(t, "jdoe", model.RoleCandidate)

	me, err := env.auth.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
	assert.Empty(t, me.HashedPassword)

	_, err = env.auth.Me(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestLogout(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	err := env.auth.Logout(ctx, "")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))

	require.NoError(t, env.auth.Logout(ctx, "some-jti"))
	assert.True(t, env.revocations.IsRevoked(ctx, "some-jti"))
	assert.False(t, env.revocations.IsRevoked(ctx, "other-jti"))
}
