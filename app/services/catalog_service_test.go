package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/app/services"
)

func seedCatalog(t *testing.T, books *fakeBookStore) []*models.Book {
	t.Helper()
	ctx := context.Background()

	seed := []*models.Book{
		{Title: "Dune", Author: "Frank Herbert", Price: 18.99, Category: "Sci-Fi"},
		{Title: "1984", Author: "George Orwell", Price: 14.99, Category: "Sci-Fi"},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Price: 9.99, Category: "Romance"},
	}
	for _, b := range seed {
		require.NoError(t, books.Create(ctx, b))
	}
	return seed
}

func TestListSearchMatchesTitleOrAuthor(t *testing.T) {
	books := newFakeBookStore()
	svc := services.NewCatalogService(books, newFakeUserStore())
	seedCatalog(t, books)

	// "or" hits George Orwell (author) and nothing in titles except 1984's author.
	got, err := svc.List(context.Background(), "orwell", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1984", got[0].Title)

	// Case-insensitive title match.
	got, err = svc.List(context.Background(), "dUnE", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)
}

func TestListCategoryAllDisablesFilter(t *testing.T) {
	books := newFakeBookStore()
	svc := services.NewCatalogService(books, newFakeUserStore())
	seedCatalog(t, books)

	all, err := svc.List(context.Background(), "", "All")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, all, none)

	scifi, err := svc.List(context.Background(), "", "Sci-Fi")
	require.NoError(t, err)
	assert.Len(t, scifi, 2)
}

func TestCreateAppliesDefaultCategory(t *testing.T) {
	books := newFakeBookStore()
	svc := services.NewCatalogService(books, newFakeUserStore())

	book := &models.Book{Title: "Untagged", Author: "Anon", Price: 5}
	require.NoError(t, svc.Create(context.Background(), book))
	assert.Equal(t, models.DefaultCategory, book.Category)
	assert.NotEmpty(t, book.ID)
}

func TestUpdateMissingBookIsNotFound(t *testing.T) {
	svc := services.NewCatalogService(newFakeBookStore(), newFakeUserStore())

	title := "New Title"
	_, err := svc.Update(context.Background(), "652f00000000000000000000", models.BookUpdate{Title: &title})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateLeavesNilFieldsUntouched(t *testing.T) {
	books := newFakeBookStore()
	svc := services.NewCatalogService(books, newFakeUserStore())
	seeded := seedCatalog(t, books)

	price := 21.50
	updated, err := svc.Update(context.Background(), seeded[0].ID.Hex(), models.BookUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 21.50, updated.Price)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "Frank Herbert", updated.Author)
}

func TestAddReviewCarriesDisplayName(t *testing.T) {
	books := newFakeBookStore()
	users := newFakeUserStore()
	svc := services.NewCatalogService(books, users)
	seeded := seedCatalog(t, books)

	reviewer := &models.User{Name: "Jordan Reader", Email: "jordan@example.com", Role: models.RoleUser}
	require.NoError(t, users.Create(context.Background(), reviewer))

	book, err := svc.AddReview(context.Background(), seeded[0].ID.Hex(), reviewer.ID.Hex(), 5, "A classic.")
	require.NoError(t, err)

	require.Len(t, book.Reviews, 1)
	assert.Equal(t, "Jordan Reader", book.Reviews[0].User)
	assert.Equal(t, 5, book.Reviews[0].Rating)
	assert.Equal(t, "A classic.", book.Reviews[0].Comment)
	assert.False(t, book.Reviews[0].CreatedAt.IsZero())
}

func TestAddReviewAcceptsAnyRating(t *testing.T) {
	books := newFakeBookStore()
	users := newFakeUserStore()
	svc := services.NewCatalogService(books, users)
	seeded := seedCatalog(t, books)

	reviewer := &models.User{Name: "Jordan", Email: "j@example.com"}
	require.NoError(t, users.Create(context.Background(), reviewer))

	// Ratings are stored as given, even outside a 1-5 scale.
	book, err := svc.AddReview(context.Background(), seeded[0].ID.Hex(), reviewer.ID.Hex(), 99, "")
	require.NoError(t, err)
	require.Len(t, book.Reviews, 1)
	assert.Equal(t, 99, book.Reviews[0].Rating)
}

func TestAddReviewUnknownBook(t *testing.T) {
	users := newFakeUserStore()
	svc := services.NewCatalogService(newFakeBookStore(), users)

	reviewer := &models.User{Name: "Jordan", Email: "j@example.com"}
	require.NoError(t, users.Create(context.Background(), reviewer))

	_, err := svc.AddReview(context.Background(), "652f00000000000000000000", reviewer.ID.Hex(), 4, "x")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteRemovesBook(t *testing.T) {
	books := newFakeBookStore()
	svc := services.NewCatalogService(books, newFakeUserStore())
	seeded := seedCatalog(t, books)

	require.NoError(t, svc.Delete(context.Background(), seeded[1].ID.Hex()))

	_, err := svc.Get(context.Background(), seeded[1].ID.Hex())
	assert.ErrorIs(t, err, services.ErrNotFound)

	remaining, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
