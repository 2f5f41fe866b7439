package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/app/services"
)

func TestToggleIsAnInvolution(t *testing.T) {
	users := newFakeUserStore()
	books := newFakeBookStore()
	svc := services.NewWishlistService(users, books)
	ctx := context.Background()

	user := &models.User{Name: "Jordan", Email: "j@example.com"}
	require.NoError(t, users.Create(ctx, user))
	seeded := seedCatalog(t, books)
	bookID := seeded[0].ID.Hex()

	// First toggle adds.
	ids, err := svc.Toggle(ctx, user.ID.Hex(), bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{bookID}, ids)

	// Second toggle removes — back to the original state.
	ids, err = svc.Toggle(ctx, user.ID.Hex(), bookID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Third adds again.
	ids, err = svc.Toggle(ctx, user.ID.Hex(), bookID)
	require.NoError(t, err)
	assert.Equal(t, []string{bookID}, ids)
}

func TestToggleOnlyAffectsTargetBook(t *testing.T) {
	users := newFakeUserStore()
	books := newFakeBookStore()
	svc := services.NewWishlistService(users, books)
	ctx := context.Background()

	user := &models.User{Name: "Jordan", Email: "j@example.com"}
	require.NoError(t, users.Create(ctx, user))
	seeded := seedCatalog(t, books)

	_, err := svc.Toggle(ctx, user.ID.Hex(), seeded[0].ID.Hex())
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, user.ID.Hex(), seeded[1].ID.Hex())
	require.NoError(t, err)

	// Removing the first leaves the second in place.
	ids, err := svc.Toggle(ctx, user.ID.Hex(), seeded[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{seeded[1].ID.Hex()}, ids)
}

func TestListResolvesBooks(t *testing.T) {
	users := newFakeUserStore()
	books := newFakeBookStore()
	svc := services.NewWishlistService(users, books)
	ctx := context.Background()

	user := &models.User{Name: "Jordan", Email: "j@example.com"}
	require.NoError(t, users.Create(ctx, user))
	seeded := seedCatalog(t, books)

	_, err := svc.Toggle(ctx, user.ID.Hex(), seeded[2].ID.Hex())
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, user.ID.Hex(), seeded[0].ID.Hex())
	require.NoError(t, err)

	got, err := svc.List(ctx, user.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Pride and Prejudice", got[0].Title)
	assert.Equal(t, "Dune", got[1].Title)
}

func TestToggleUnknownUser(t *testing.T) {
	svc := services.NewWishlistService(newFakeUserStore(), newFakeBookStore())

	_, err := svc.Toggle(context.Background(), "652f00000000000000000000", "652f00000000000000000001")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
