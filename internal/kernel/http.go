// Package kernel assembles the HTTP stack: global middleware, the
// operational endpoints, and the API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/luminabooks/lumina/app/controllers"
	"github.com/luminabooks/lumina/app/repositories"
	"github.com/luminabooks/lumina/app/routes"
	"github.com/luminabooks/lumina/app/services"
	"github.com/luminabooks/lumina/pkg/database"
	"github.com/luminabooks/lumina/pkg/metrics"
	"github.com/luminabooks/lumina/pkg/middleware"
	"github.com/luminabooks/lumina/pkg/payment"
	"github.com/luminabooks/lumina/pkg/reqid"
	"github.com/luminabooks/lumina/pkg/response"
	"github.com/luminabooks/lumina/pkg/router"
)

// Build wires repositories, services, controllers, and routes onto a
// fresh router. Call after database.Connect.
func Build() *router.Router {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	users := repositories.NewUserRepository(database.DB())
	books := repositories.NewBookRepository(database.DB())
	orders := repositories.NewOrderRepository(database.DB())
	gateway := payment.NewGateway()

	ctrls := routes.Controllers{
		Auth:     controllers.NewAuthController(services.NewAuthService(users)),
		Books:    controllers.NewBookController(services.NewCatalogService(books, users)),
		Wishlist: controllers.NewWishlistController(services.NewWishlistService(users, books)),
		Orders:   controllers.NewOrderController(services.NewOrderService(orders, books, gateway)),
		Payment:  controllers.NewPaymentController(gateway),
	}
	routes.Register(r, ctrls, users)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.HandleFunc("/metrics", metrics.Handler())

	return r
}

// RouteTable registers the API surface against a throwaway router and
// returns its named routes. No connections are opened; the handlers are
// never invoked. Used by route:list.
func RouteTable() []router.RouteInfo {
	r := router.New()

	var users *repositories.UserRepository
	ctrls := routes.Controllers{
		Auth:     controllers.NewAuthController(nil),
		Books:    controllers.NewBookController(nil),
		Wishlist: controllers.NewWishlistController(nil),
		Orders:   controllers.NewOrderController(nil),
		Payment:  controllers.NewPaymentController(nil),
	}
	routes.Register(r, ctrls, users)

	return r.Routes()
}
