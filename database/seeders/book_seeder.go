package seeders

import (
	"context"

	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/app/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register("books", SeedBooks)
}

var demoBooks = []models.Book{
	{
		Title:       "The Great Gatsby",
		Author:      "F. Scott Fitzgerald",
		Description: "A novel set in the Jazz Age that tells the story of Jay Gatsby's unrequited love for Daisy Buchanan.",
		Price:       12.99,
		Category:    "Fiction",
	},
	{
		Title:       "1984",
		Author:      "George Orwell",
		Description: "A dystopian social science fiction novel and cautionary tale about the future.",
		Price:       14.99,
		Category:    "Sci-Fi",
	},
	{
		Title:       "To Kill a Mockingbird",
		Author:      "Harper Lee",
		Description: "A novel about the serious issues of rape and racial inequality.",
		Price:       10.99,
		Category:    "Fiction",
	},
	{
		Title:       "Pride and Prejudice",
		Author:      "Jane Austen",
		Description: "A romantic novel of manners written by Jane Austen.",
		Price:       9.99,
		Category:    "Romance",
	},
	{
		Title:       "The Catcher in the Rye",
		Author:      "J.D. Salinger",
		Description: "A story about adolescent alienation and loss of innocence.",
		Price:       11.99,
		Category:    "Fiction",
	},
	{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Set on the desert planet Arrakis, Dune is the story of the boy Paul Atreides.",
		Price:       18.99,
		Category:    "Sci-Fi",
	},
	{
		Title:       "Thinking, Fast and Slow",
		Author:      "Daniel Kahneman",
		Description: "The major New York Times bestseller that explains the two systems that drive the way we think.",
		Price:       16.99,
		Category:    "Business",
	},
}

// SeedBooks resets the catalog to the demo inventory.
func SeedBooks(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection("books").DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	books := repositories.NewBookRepository(db)
	for i := range demoBooks {
		book := demoBooks[i]
		if err := books.Create(ctx, &book); err != nil {
			return err
		}
	}
	return nil
}
