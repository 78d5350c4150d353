package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/pkg/utils"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextUserIDKey     = "userID"
	ContextEmployeeIDKey = "employeeID"
	ContextUserRoleKey   = "userRole"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmployeeIDKey, claims.EmployeeID)
		c.Set(ContextUserRoleKey, claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the user role (from JWT claims) is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRoleKey)
		if !exists {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "User role not found in token claims", ""))
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "User role in token is not a string", ""))
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(roleStr, r) {
				c.Next()
				return
			}
		}

		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"You do not have permission to access this resource", "required roles: "+strings.Join(allowedRoles, ", ")))
	}
}

// UserIDFromContext returns the authenticated account id set by AuthMiddleware.
func UserIDFromContext(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
