package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/luminabooks/lumina/app/services"
	"github.com/luminabooks/lumina/pkg/middleware"
	"github.com/luminabooks/lumina/pkg/response"
)

// WishlistController serves /api/user/wishlist.
type WishlistController struct {
	wishlist *services.WishlistService
}

func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

// Toggle handles POST /api/user/wishlist/{bookId}. A present book is
// removed, an absent one added; the response is the resulting ID list.
func (c *WishlistController) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied")
		return
	}

	ids, err := c.wishlist.Toggle(r.Context(), userID, chi.URLParam(r, "bookId"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not update wishlist")
		return
	}
	response.Success(w, ids)
}

// Index handles GET /api/user/wishlist, resolving the stored IDs to
// full book records.
func (c *WishlistController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied")
		return
	}

	books, err := c.wishlist.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not fetch wishlist")
		return
	}
	response.Success(w, books)
}
