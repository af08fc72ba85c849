// Package routes registers every HTTP endpoint on the named router.
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/brookxc/menuadmin/app/controllers"
	"github.com/brookxc/menuadmin/internal/store"
	"github.com/brookxc/menuadmin/pkg/metrics"
	"github.com/brookxc/menuadmin/pkg/middleware"
	"github.com/brookxc/menuadmin/pkg/response"
	"github.com/brookxc/menuadmin/pkg/router"
)

// Register wires all controllers onto r. Everything under /api/restaurants
// and the management pages require a session; the public menu, login, and
// operational endpoints do not.
func Register(r *router.Router, auth *controllers.AuthController, restaurants *controllers.RestaurantController, pages *controllers.PageController, menu *controllers.MenuController) {
	loginLimit := middleware.RateLimit(10, time.Minute)

	r.Get("/", "home", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard", http.StatusSeeOther)
	})

	r.Get("/login", "login.page", pages.Login)
	r.Post("/api/login", "auth.login", auth.Login, loginLimit)
	r.Post("/api/logout", "auth.logout", auth.Logout)

	// Public menu, reachable from QR codes without a session. The /menu
	// alias serves older printed codes.
	r.Get("/restaurant/{id}", "menu.public", menu.Show)
	r.Get("/menu/{id}", "menu.public.alias", menu.Show)

	api := r.Group("/api/restaurants", middleware.RequireSession)
	api.Get("/", "restaurants.list", restaurants.List)
	api.Post("/", "restaurants.create", restaurants.Create)
	api.Get("/{id}", "restaurants.show", restaurants.Show)
	api.Put("/{id}", "restaurants.update", restaurants.Update)
	api.Delete("/{id}", "restaurants.delete", restaurants.Delete)
	api.Put("/{id}/lock", "restaurants.lock", restaurants.Lock)

	admin := r.Group("/", middleware.RequireSession)
	admin.Get("/dashboard", "pages.dashboard", pages.Dashboard)
	admin.Get("/restaurants", "pages.restaurants", pages.Restaurants)
	admin.Get("/add-restaurant", "pages.add", pages.AddRestaurant)
	admin.Get("/restaurants/{id}/edit", "pages.edit", pages.EditRestaurant)
	admin.Get("/restaurants/{id}/menu", "pages.menu", pages.MenuBuilder)

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthz)
}

// healthz reports readiness based on the primary store. Redis is optional
// at runtime so it does not gate health.
func healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	response.Message(w, "ok")
}
