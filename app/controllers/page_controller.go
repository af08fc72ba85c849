package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brookxc/menuadmin/app/models"
	"github.com/brookxc/menuadmin/app/services"
	"github.com/brookxc/menuadmin/app/views"
	"github.com/brookxc/menuadmin/config"
	"github.com/brookxc/menuadmin/pkg/logger"
	"github.com/brookxc/menuadmin/pkg/qrcode"
)

// PageController renders the operator-facing management pages. Mutations
// happen through the JSON API; these handlers only read.
type PageController struct {
	service *services.RestaurantService
}

func NewPageController(service *services.RestaurantService) *PageController {
	return &PageController{service: service}
}

// Login renders the sign-in form.
func (c *PageController) Login(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, "login.html", nil)
}

// Dashboard shows aggregate counts across all restaurants.
func (c *PageController) Dashboard(w http.ResponseWriter, r *http.Request) {
	restaurants, err := c.service.List(r.Context())
	if err != nil {
		c.renderError(w, r, "load dashboard", err)
		return
	}

	totalItems := 0
	locked := 0
	for _, restaurant := range restaurants {
		if restaurant.Locked {
			locked++
		}
		for _, category := range restaurant.MenuCategories {
			totalItems += len(category.Items)
		}
	}

	views.Render(w, http.StatusOK, "dashboard.html", map[string]interface{}{
		"TotalRestaurants":  len(restaurants),
		"TotalItems":        totalItems,
		"LockedRestaurants": locked,
	})
}

// Restaurants renders the list page; the table itself is loaded from the
// JSON API so search and row actions stay client-side.
func (c *PageController) Restaurants(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, "restaurants.html", map[string]interface{}{
		"PublicHost": config.PublicHost(),
	})
}

// AddRestaurant renders the create form.
func (c *PageController) AddRestaurant(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, "restaurant_form.html", map[string]interface{}{
		"Restaurant": nil,
	})
}

// EditRestaurant renders the identity form pre-filled from the record.
func (c *PageController) EditRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.renderError(w, r, "load restaurant", err)
		return
	}
	views.Render(w, http.StatusOK, "restaurant_form.html", map[string]interface{}{
		"Restaurant": restaurant,
	})
}

// MenuBuilder renders the menu editor with the share link and QR code for
// the public page.
func (c *PageController) MenuBuilder(w http.ResponseWriter, r *http.Request) {
	restaurant, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.renderError(w, r, "load menu", err)
		return
	}

	categories := restaurant.MenuCategories
	if categories == nil {
		categories = []models.MenuCategory{}
	}

	link := qrcode.MenuLink(config.PublicHost(), restaurant.ID.Hex())
	views.Render(w, http.StatusOK, "menu_builder.html", map[string]interface{}{
		"Restaurant": restaurant,
		"Categories": categories,
		"MenuLink":   link,
		"QRImageURL": qrcode.ImageURL(link),
	})
}

func (c *PageController) renderError(w http.ResponseWriter, r *http.Request, action string, err error) {
	if errors.Is(err, models.ErrNotFound) {
		views.Render(w, http.StatusNotFound, "not_found.html", nil)
		return
	}
	logger.WithCtx(r.Context()).Error("page "+action+" failed", "error", err)
	views.Render(w, http.StatusInternalServerError, "error.html", nil)
}
