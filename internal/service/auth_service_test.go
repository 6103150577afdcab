package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter42",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter42", user.PasswordHash)

	resp, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter42"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "hunter42"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "b@example.com", Password: "hunter42"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "hunter42"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "a@example.com", Password: "hunter42"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@example.com", Password: "hunter42"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), "test-secret")

	_, err := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCreds)
}
