package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	iauth "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/auth"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

// AuthHandler exposes the operator login endpoint.
type AuthHandler struct {
	login *iauth.LoginService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(login *iauth.LoginService) *AuthHandler {
	return &AuthHandler{login: login}
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var payload struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !bindAndValidate(c, &payload) {
		return
	}

	result, err := h.login.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
