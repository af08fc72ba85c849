package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brookxc/menuadmin/app/menudraft"
	"github.com/brookxc/menuadmin/app/models"
	"github.com/brookxc/menuadmin/app/services"
	"github.com/brookxc/menuadmin/pkg/bind"
	"github.com/brookxc/menuadmin/pkg/logger"
	"github.com/brookxc/menuadmin/pkg/response"
	"github.com/brookxc/menuadmin/pkg/validate"
)

// RestaurantController exposes the REST surface over restaurants.
type RestaurantController struct {
	service *services.RestaurantService
}

func NewRestaurantController(service *services.RestaurantService) *RestaurantController {
	return &RestaurantController{service: service}
}

// errMissingPrice rejects items whose body omits the price field entirely;
// a present-but-empty price already fails at decode time.
var errMissingPrice = errors.New("item price is required")

type itemInput struct {
	ID          string        `json:"id"`
	Name        string        `json:"name" validate:"required"`
	Price       *models.Price `json:"price"`
	Description string        `json:"description"`
	Image       *string       `json:"image" validate:"nullable,data_uri"`
}

type categoryInput struct {
	ID    string      `json:"id"`
	Name  string      `json:"name" validate:"required"`
	Items []itemInput `json:"items"`
}

type createRestaurantRequest struct {
	Name           string          `json:"name" validate:"required,min=2,max=100"`
	Location       string          `json:"location" validate:"required,min=2,max=200"`
	Description    string          `json:"description" validate:"nullable,max=2000"`
	Logo           *string         `json:"logo" validate:"nullable,data_uri"`
	ThemeColor     string          `json:"themeColor" validate:"nullable,hex_color"`
	MenuCategories []categoryInput `json:"menuCategories"`
}

// updateRestaurantRequest is the tagged update variant: the presence of
// menuCategories selects a menu-content replace, its absence an identity
// replace. Field validation runs per variant, after discrimination.
type updateRestaurantRequest struct {
	MenuCategories *[]categoryInput `json:"menuCategories"`
	Name           string           `json:"name"`
	Location       string           `json:"location"`
	Description    string           `json:"description"`
	Logo           *string          `json:"logo"`
	CoverPhoto     *string          `json:"coverPhoto"`
	ThemeColor     string           `json:"themeColor"`
}

type infoFields struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Location    string  `json:"location" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	Logo        *string `json:"logo" validate:"nullable,data_uri"`
	CoverPhoto  *string `json:"coverPhoto" validate:"nullable,data_uri"`
	ThemeColor  string  `json:"themeColor" validate:"nullable,hex_color"`
}

type lockRequest struct {
	Locked *bool `json:"locked"`
}

// List handles GET /api/restaurants — newest first, no pagination.
func (c *RestaurantController) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := c.service.List(r.Context())
	if err != nil {
		c.storeError(w, r, "list restaurants", err)
		return
	}
	response.Success(w, restaurants)
}

// Create handles POST /api/restaurants.
func (c *RestaurantController) Create(w http.ResponseWriter, r *http.Request) {
	var req createRestaurantRequest
	errs, err := bind.JSON(w, r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	categories, err := toCategories(req.MenuCategories)
	if err != nil {
		c.writeError(w, r, "create restaurant", err)
		return
	}

	restaurant := models.Restaurant{
		Name:           req.Name,
		Location:       req.Location,
		Description:    req.Description,
		Logo:           req.Logo,
		ThemeColor:     req.ThemeColor,
		MenuCategories: categories,
	}

	created, err := c.service.Create(r.Context(), restaurant)
	if err != nil {
		c.writeError(w, r, "create restaurant", err)
		return
	}
	response.Created(w, created)
}

// Show handles GET /api/restaurants/{id}.
func (c *RestaurantController) Show(w http.ResponseWriter, r *http.Request) {
	restaurant, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.writeError(w, r, "fetch restaurant", err)
		return
	}
	response.Success(w, restaurant)
}

// Update handles PUT /api/restaurants/{id}: either a menu-content replace
// or an identity replace, never both.
func (c *RestaurantController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRestaurantRequest
	if _, err := bind.JSON(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.MenuCategories != nil {
		categories, err := toCategories(*req.MenuCategories)
		if err != nil {
			c.writeError(w, r, "update menu", err)
			return
		}

		updated, err := c.service.UpdateMenu(r.Context(), id, categories)
		if err != nil {
			c.writeError(w, r, "update menu", err)
			return
		}
		response.Success(w, updated)
		return
	}

	info := infoFields{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Logo:        req.Logo,
		CoverPhoto:  req.CoverPhoto,
		ThemeColor:  req.ThemeColor,
	}
	if errs := validate.Struct(&info); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	updated, err := c.service.UpdateInfo(r.Context(), id, models.InfoUpdate{
		Name:        info.Name,
		Location:    info.Location,
		Description: info.Description,
		Logo:        info.Logo,
		CoverPhoto:  info.CoverPhoto,
		ThemeColor:  info.ThemeColor,
	})
	if err != nil {
		c.writeError(w, r, "update restaurant", err)
		return
	}
	response.Success(w, updated)
}

// Delete handles DELETE /api/restaurants/{id}.
func (c *RestaurantController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.writeError(w, r, "delete restaurant", err)
		return
	}
	response.Message(w, "Restaurant deleted successfully")
}

// Lock handles PUT /api/restaurants/{id}/lock. The body must carry a JSON
// boolean; anything else (including "yes") is a 400 and the record is
// untouched.
func (c *RestaurantController) Lock(w http.ResponseWriter, r *http.Request) {
	var req lockRequest
	if _, err := bind.JSON(w, r, &req); err != nil || req.Locked == nil {
		response.Error(w, http.StatusBadRequest, "Invalid lock status")
		return
	}

	updated, err := c.service.SetLocked(r.Context(), chi.URLParam(r, "id"), *req.Locked)
	if err != nil {
		c.writeError(w, r, "update lock status", err)
		return
	}
	response.Success(w, updated)
}

// writeError translates service errors for endpoints scoped to one record.
func (c *RestaurantController) writeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		response.NotFound(w, "Restaurant not found")
	case errors.Is(err, models.ErrLocked):
		response.Locked(w, "Restaurant is locked; unlock it before editing")
	case errors.Is(err, menudraft.ErrEmptyCategoryName),
		errors.Is(err, menudraft.ErrEmptyItemName),
		errors.Is(err, errMissingPrice):
		response.ValidationError(w, map[string]string{"menuCategories": err.Error()})
	default:
		c.storeError(w, r, action, err)
	}
}

func (c *RestaurantController) storeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	logger.WithCtx(r.Context()).Error("restaurant "+action+" failed", "error", err)
	response.Error(w, http.StatusInternalServerError, "Failed to "+action)
}

func toCategories(in []categoryInput) ([]models.MenuCategory, error) {
	out := make([]models.MenuCategory, 0, len(in))
	for i, c := range in {
		cat := models.MenuCategory{
			ID:    objectIDFromHex(c.ID),
			Name:  c.Name,
			Items: make([]models.MenuItem, 0, len(c.Items)),
		}
		for j, it := range c.Items {
			if it.Price == nil {
				return nil, fmt.Errorf("category %d item %d: %w", i, j, errMissingPrice)
			}
			cat.Items = append(cat.Items, models.MenuItem{
				ID:          objectIDFromHex(it.ID),
				Name:        it.Name,
				Price:       *it.Price,
				Description: it.Description,
				Image:       it.Image,
			})
		}
		out = append(out, cat)
	}
	return out, nil
}

// objectIDFromHex keeps a previously assigned identifier; anything
// unparsable is treated as "not yet saved" and left for the store to assign.
func objectIDFromHex(s string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}
