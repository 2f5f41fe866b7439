package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/app/services"
	"github.com/luminabooks/lumina/pkg/bind"
	"github.com/luminabooks/lumina/pkg/middleware"
	"github.com/luminabooks/lumina/pkg/response"
)

type storeBookRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Author      string  `json:"author" validate:"required,max=255"`
	Description string  `json:"description" validate:"nullable,max=5000"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Category    string  `json:"category" validate:"nullable,max=100"`
}

// updateBookRequest is the allow-listed update payload. Unknown JSON
// keys are rejected at decode time; nil fields are left untouched.
type updateBookRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

// storeReviewRequest deliberately puts no range (or presence) rule on
// the rating: zero, negative, and >5 ratings are all stored as given.
type storeReviewRequest struct {
	Rating  int    `json:"rating" validate:"integer"`
	Comment string `json:"comment" validate:"nullable,max=2000"`
}

// BookController serves the catalog: public reads, admin writes, and
// authenticated review posting.
type BookController struct {
	catalog *services.CatalogService
}

func NewBookController(catalog *services.CatalogService) *BookController {
	return &BookController{catalog: catalog}
}

// Index handles GET /api/books?search=&category=.
func (c *BookController) Index(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	books, err := c.catalog.List(r.Context(), search, category)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not list books")
		return
	}
	response.Success(w, books)
}

// Show handles GET /api/books/{id}.
func (c *BookController) Show(w http.ResponseWriter, r *http.Request) {
	book, err := c.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "Book not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not fetch book")
		return
	}
	response.Success(w, book)
}

// Store handles POST /api/books (admin).
func (c *BookController) Store(w http.ResponseWriter, r *http.Request) {
	var req storeBookRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	book := &models.Book{
		Title:       strings.TrimSpace(req.Title),
		Author:      strings.TrimSpace(req.Author),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Category:    strings.TrimSpace(req.Category),
	}
	if err := c.catalog.Create(r.Context(), book); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create book")
		return
	}
	response.Created(w, book)
}

// Update handles PUT /api/books/{id} (admin). Updating a missing book
// is 404, never a silent success.
func (c *BookController) Update(w http.ResponseWriter, r *http.Request) {
	var req updateBookRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if req.Price != nil && *req.Price < 0 {
		response.ValidationError(w, map[string]string{"price": "The price must be greater than or equal to 0."})
		return
	}

	upd := models.BookUpdate{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}
	book, err := c.catalog.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "Book not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not update book")
		return
	}
	response.Success(w, book)
}

// Destroy handles DELETE /api/books/{id} (admin).
func (c *BookController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "Book not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not delete book")
		return
	}
	response.Success(w, map[string]string{"message": "Book deleted"})
}

// StoreReview handles POST /api/books/{id}/reviews (authenticated).
// The review carries the poster's display name and is appended
// atomically to the book document.
func (c *BookController) StoreReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied")
		return
	}

	var req storeReviewRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	book, err := c.catalog.AddReview(r.Context(), chi.URLParam(r, "id"), userID, req.Rating, strings.TrimSpace(req.Comment))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "Book not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not add review")
		return
	}
	response.Created(w, book)
}
