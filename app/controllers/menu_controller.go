package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brookxc/menuadmin/app/models"
	"github.com/brookxc/menuadmin/app/services"
	"github.com/brookxc/menuadmin/app/views"
	"github.com/brookxc/menuadmin/pkg/logger"
)

// MenuController serves the public, unauthenticated menu page reached from
// QR codes and shared links.
type MenuController struct {
	service *services.RestaurantService
}

func NewMenuController(service *services.RestaurantService) *MenuController {
	return &MenuController{service: service}
}

// Show handles GET /restaurant/{id}. A missing record renders a dedicated
// not-found page; store failures render a generic error page, never a blank
// menu.
func (c *MenuController) Show(w http.ResponseWriter, r *http.Request) {
	restaurant, err := c.service.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			views.Render(w, http.StatusNotFound, "not_found.html", nil)
			return
		}
		logger.WithCtx(r.Context()).Error("public menu load failed", "error", err)
		views.Render(w, http.StatusInternalServerError, "error.html", nil)
		return
	}

	views.Render(w, http.StatusOK, "public_menu.html", map[string]interface{}{
		"Restaurant": restaurant,
	})
}
