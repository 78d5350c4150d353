package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shift_manager_backend/internal/services"
	"shift_manager_backend/pkg/utils"
)

// respondServiceError maps a service error kind onto the HTTP error envelope.
// failure is the message used for internal errors, whose cause is only logged.
func respondServiceError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	case errors.Is(err, services.ErrDuplicateShift):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeDuplicateShift, "Employee already has this shift on the selected date.", err.Error()))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, notFoundMessage(err), err.Error()))
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, conflictMessage(err), err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid employee code or password.", ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, failure, "Internal error"))
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrShiftNotFound):
		return "Shift not found."
	case errors.Is(err, services.ErrEmployeeNotFound):
		return "Employee not found."
	case errors.Is(err, services.ErrTaskNotFound):
		return "Task not found."
	}
	return "Resource not found."
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEmployeeCodeExists):
		return "Employee code is already in use."
	case errors.Is(err, services.ErrInvalidStatusTransition):
		return "Shift status cannot be changed."
	}
	return "Request conflicts with the current state."
}

// paramID parses a positive integer path parameter, responding with 400 when it is not one.
func paramID(c *gin.Context, name, label string) (int64, bool) {
	raw := c.Param(name)
	id, err := utils.ParseID(raw)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+label+" ID format.", err.Error()))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.LogError(err, op+": Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return false
	}
	return true
}
