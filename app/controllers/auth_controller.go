package controllers

import (
	"errors"
	"net/http"

	"github.com/brookxc/menuadmin/app/services"
	"github.com/brookxc/menuadmin/pkg/bind"
	"github.com/brookxc/menuadmin/pkg/logger"
	"github.com/brookxc/menuadmin/pkg/response"
	"github.com/brookxc/menuadmin/pkg/session"
)

// AuthController handles the shared-credential login and logout.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/login. Success stores the signed token in the
// session; every management route checks it from there.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	errs, err := bind.JSON(w, r, &req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.Login(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			logger.WithCtx(r.Context()).Error("login failed", "error", err)
		}
		response.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	sess := session.FromCtx(r)
	sess.Regenerate()
	sess.Set("token", token)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Could not establish session")
		return
	}

	response.Message(w, "Logged in")
}

// Logout handles POST /api/logout.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	sess.Invalidate()
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
	}
	response.Message(w, "Logged out")
}
