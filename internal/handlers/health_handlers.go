package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/pkg/utils"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Shift Manager API is running",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound answers unknown routes with the standard error envelope.
func NotFound(c *gin.Context) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "API endpoint not found", c.Request.URL.Path))
}
