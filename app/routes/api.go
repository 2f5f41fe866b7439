// Package routes registers the API surface. Route names follow the
// dotted convention used by route:list (auth.signup, books.index, …).
package routes

import (
	"github.com/luminabooks/lumina/app/controllers"
	"github.com/luminabooks/lumina/app/models"
	"github.com/luminabooks/lumina/pkg/middleware"
	"github.com/luminabooks/lumina/pkg/rbac"
	"github.com/luminabooks/lumina/pkg/router"
)

// Controllers bundles the handlers the API mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Books    *controllers.BookController
	Wishlist *controllers.WishlistController
	Orders   *controllers.OrderController
	Payment  *controllers.PaymentController
}

// Register mounts every API route on r. Catalog reads are public;
// catalog writes require the caller's stored role to be admin, resolved
// against roles on every request.
func Register(r *router.Router, c Controllers, roles rbac.RoleResolver) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", "auth.signup", c.Auth.Signup)
	auth.Post("/login", "auth.login", c.Auth.Login)

	adminOnly := rbac.HasRole(roles, models.RoleAdmin)

	books := api.Group("/books")
	books.Get("/", "books.index", c.Books.Index)
	books.Get("/{id}", "books.show", c.Books.Show)
	books.Post("/", "books.store", c.Books.Store, middleware.Auth, adminOnly)
	books.Put("/{id}", "books.update", c.Books.Update, middleware.Auth, adminOnly)
	books.Delete("/{id}", "books.destroy", c.Books.Destroy, middleware.Auth, adminOnly)
	books.Post("/{id}/reviews", "books.reviews.store", c.Books.StoreReview, middleware.Auth)

	wishlist := api.Group("/user/wishlist", middleware.Auth)
	wishlist.Get("/", "wishlist.index", c.Wishlist.Index)
	wishlist.Post("/{bookId}", "wishlist.toggle", c.Wishlist.Toggle)

	orders := api.Group("/orders", middleware.Auth)
	orders.Post("/", "orders.store", c.Orders.Store)
	orders.Get("/my-orders", "orders.index", c.Orders.Index)
	orders.Get("/{id}", "orders.show", c.Orders.Show)
	orders.Post("/{id}/confirm", "orders.confirm", c.Orders.Confirm)

	payment := api.Group("/payment")
	payment.Post("/create-intent", "payment.create_intent", c.Payment.CreateIntent)
}
