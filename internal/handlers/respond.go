package handlers

import (
	"errors"
	"net/http"

	"qr_dine_backend/internal/repositories"
	"qr_dine_backend/internal/services"
	"qr_dine_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service and repository errors onto HTTP responses.
// Every handler funnels failures through here so the taxonomy stays typed all
// the way to the boundary.
func handleServiceError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)

	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidOrderStatus),
		errors.Is(err, services.ErrUnknownStaffRole),
		errors.Is(err, services.ErrUnknownPlatform):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))

	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid credentials", ""))

	case errors.Is(err, services.ErrSessionExpired), errors.Is(err, services.ErrStaffInactive):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), ""))

	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrStaffNotFound),
		errors.Is(err, services.ErrFeedbackNotFound),
		errors.Is(err, services.ErrDiscountNotFound),
		errors.Is(err, repositories.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))

	case errors.Is(err, services.ErrEmailExists),
		errors.Is(err, services.ErrUsernameExists),
		errors.Is(err, repositories.ErrDuplicateKey),
		errors.Is(err, repositories.ErrForeignKeyViolation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))

	case errors.Is(err, services.ErrDiscountInactive),
		errors.Is(err, services.ErrDiscountNotStarted),
		errors.Is(err, services.ErrDiscountExpired),
		errors.Is(err, services.ErrDiscountUsageLimitReached),
		errors.Is(err, services.ErrDiscountMinOrderAmount),
		errors.Is(err, services.ErrDiscountQROnly):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeValidationFailed, err.Error(), ""))

	case errors.Is(err, repositories.ErrTimeout):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusGatewayTimeout, utils.ErrCodeTimeout, "The operation timed out", ""))

	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error", ""))
	}
}

func bindError(c *gin.Context, err error) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
		"Invalid request payload", err.Error()))
}
