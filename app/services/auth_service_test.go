package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/app/services"
	"github.com/luminabooks/lumina/pkg/auth"
)

func TestSignupIssuesWorkingToken(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	token, user, err := svc.Signup(context.Background(), "Jordan Reader", "jordan@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "jordan@example.com", user.Email)
	assert.NotEmpty(t, user.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestSignupAdminEmailGetsAdminRole(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	// Matches the configured bootstrap admin email (default config).
	_, user, err := svc.Signup(context.Background(), "Admin", "admin@lumina.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// Any other email stays a regular user.
	_, other, err := svc.Signup(context.Background(), "Reader", "reader@lumina.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, other.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	_, _, err := svc.Signup(context.Background(), "First", "dup@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "Second", "dup@example.com", "other456")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeUserStore()
	svc := services.NewAuthService(store)

	_, _, err := svc.Signup(context.Background(), "Jordan", "jordan@example.com", "secret123")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "jordan@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jordan@example.com", user.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	_, _, err := svc.Signup(context.Background(), "Jordan", "jordan@example.com", "secret123")
	require.NoError(t, err)

	_, _, wrongPass := svc.Login(context.Background(), "jordan@example.com", "nope")
	_, _, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "secret123")

	assert.ErrorIs(t, wrongPass, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
}
