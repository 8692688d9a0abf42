package controllers

import (
	"net/http"

	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/bind"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Register(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, result)
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.auth.Login(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, result)
}
