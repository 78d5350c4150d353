package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/internal/middleware"
	"shift_manager_backend/internal/models"
	"shift_manager_backend/internal/services"
	"shift_manager_backend/pkg/utils"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if !bindJSON(c, &creds, "Login") {
		return
	}

	authResp, err := h.authService.Login(c.Request.Context(), creds)
	if err != nil {
		utils.LogError(err, "Login: Error from authService.Login")
		respondServiceError(c, err, "Failed to login.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   authResp.Token,
		"user":    authResp.User,
	})
}

// Verify handles GET /auth/verify, returning the fresh account behind the token.
func (h *AuthHandler) Verify(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.LogError(errors.New("userID not found in context"), "Verify: userID not in context")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return
	}

	user, err := h.authService.Verify(c.Request.Context(), userID)
	if err != nil {
		utils.LogError(err, "Verify: Error from authService.Verify")
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not found.", ""))
			return
		}
		respondServiceError(c, err, "Failed to verify token.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": user})
}

// ChangePassword handles POST /auth/change-password for the authenticated account.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user ID in context"))
		return
	}

	var req services.ChangePasswordRequest
	if !bindJSON(c, &req, "ChangePassword") {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		utils.LogError(err, "ChangePassword: Error from authService.ChangePassword")
		respondServiceError(c, err, "Failed to change password.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed"})
}
