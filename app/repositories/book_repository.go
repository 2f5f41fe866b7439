package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/luminabooks/lumina/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryAll is the sentinel category value that disables the category
// filter in List.
const CategoryAll = "All"

// BookRepository handles persistence for Book documents and their
// embedded reviews.
type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection("books")}
}

// List returns books newest first. search matches title OR author as a
// case-insensitive substring; category is an exact match unless empty or
// the "All" sentinel.
func (r *BookRepository) List(ctx context.Context, search, category string) ([]models.Book, error) {
	filter := bson.M{}

	if search != "" {
		pattern := regexp.QuoteMeta(search)
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"author": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	if category != "" && category != CategoryAll {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// FindByID fetches one book by hex ID.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var book models.Book
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// FindByIDs fetches books for the given IDs, preserving the order of ids
// (dropped IDs of since-deleted books are skipped).
func (r *BookRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Book
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Book, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}

	books := make([]models.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

// Create inserts a new book.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	book.CreatedAt = time.Now().UTC()
	if book.Category == "" {
		book.Category = models.DefaultCategory
	}
	if book.Reviews == nil {
		book.Reviews = []models.Review{}
	}

	res, err := r.col.InsertOne(ctx, book)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		book.ID = id
	}
	return nil
}

// Update applies the non-nil fields of upd to an existing book and
// returns the updated document. Updating a missing ID is an explicit
// ErrNotFound.
func (r *BookRepository) Update(ctx context.Context, id string, upd models.BookUpdate) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	fields := bson.M{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Author != nil {
		fields["author"] = *upd.Author
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Price != nil {
		fields["price"] = *upd.Price
	}
	if upd.Category != nil {
		fields["category"] = *upd.Category
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var book models.Book
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Delete removes a book by hex ID.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendReview appends a review to the book's embedded review list as a
// single atomic $push, so concurrent posts never lose each other.
func (r *BookRepository) AppendReview(ctx context.Context, bookID string, review models.Review) error {
	oid, err := primitive.ObjectIDFromHex(bookID)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"reviews": review}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
