package handlers

import (
	"errors"
	"net/http"

	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /register and POST /registration. A fresh token is
// issued together with the account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusUnprocessableEntity, "Validation failed while user tried to register", err.Error())
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			failure(c, http.StatusUnprocessableEntity, "Validation failed while user tried to register", ve.Fields)
			return
		}
		failure(c, http.StatusInternalServerError, "An error occurred during registration.", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": user, "token": token})
}

// Login handles POST /login. The login success body keeps the upstream
// shape, with the user under "user" rather than "data".
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusUnprocessableEntity, "Validation failed while user tried to login", err.Error())
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			failure(c, http.StatusUnprocessableEntity, "Validation failed while user tried to login", ve.Fields)
			return
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			// No distinction between unknown email and wrong password.
			failure(c, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		failure(c, http.StatusInternalServerError, "An error occurred during login.", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user, "token": token})
}

// Logout handles POST /logout: every token of the caller is revoked, not
// just the one presented.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		failure(c, http.StatusUnauthorized, "Unauthenticated.", nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), user.ID); err != nil {
		failure(c, http.StatusInternalServerError, "An error occurred while user tried to logout", err.Error())
		return
	}

	successMessage(c, http.StatusOK, "User successfully logged out")
}

// Me handles GET /user, returning the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		failure(c, http.StatusUnauthorized, "Unauthenticated.", nil)
		return
	}

	success(c, http.StatusOK, "Authenticated user successfully retrieved", user)
}
