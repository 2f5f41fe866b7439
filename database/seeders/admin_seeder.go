package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/app/repositories"
	"github.com/luminabooks/lumina/config"
	"github.com/luminabooks/lumina/pkg/auth"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the bootstrap administrator from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skipped when ADMIN_PASSWORD is empty or the account
// already exists; an existing account is never overwritten.
func SeedAdmin(ctx context.Context, db *mongo.Database) error {
	password := config.AdminPassword()
	if password == "" {
		fmt.Print("(ADMIN_PASSWORD not set, skipping) ")
		return nil
	}

	users := repositories.NewUserRepository(db)
	email := config.AdminEmail()

	if _, err := users.FindByEmail(ctx, email); err == nil {
		fmt.Print("(already exists) ")
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			fmt.Print("(already exists) ")
			return nil
		}
		return err
	}
	return nil
}
