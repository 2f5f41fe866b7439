package services

import (
	"context"
	"errors"
	"strings"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/config"
	"github.com/luminabooks/lumina/pkg/auth"
)

// AuthService implements the signup and login flows.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Signup registers a new user, hashes the password, and issues a token.
// A duplicate email yields ErrEmailTaken whether it is caught by the
// lookup or by the unique index when two signups race. The bootstrap
// admin email is the single place an admin role is assigned outside the
// seeder.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, models.PublicUser, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", models.PublicUser{}, ErrEmailTaken
	} else if !isNotFound(err) {
		return "", models.PublicUser{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", models.PublicUser{}, err
	}

	role := models.RoleUser
	if strings.EqualFold(email, config.AdminEmail()) {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", models.PublicUser{}, storeErr(err)
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", models.PublicUser{}, err
	}

	return token, user.Public(), nil
}

// Login verifies credentials and issues a fresh token. An unknown email
// and a wrong password both return ErrInvalidCredentials so callers
// cannot tell which case occurred.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return "", models.PublicUser{}, ErrInvalidCredentials
		}
		return "", models.PublicUser{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", models.PublicUser{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", models.PublicUser{}, err
	}

	return token, user.Public(), nil
}

// isNotFound accepts both the service sentinel (from fakes) and the
// repository sentinel (from the real store).
func isNotFound(err error) bool {
	return errors.Is(storeErr(err), ErrNotFound)
}
