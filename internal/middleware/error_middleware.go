package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/registrar/internal/app/models/dto"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// HandleAPIError handles common API errors and returns appropriate responses.
// A persistence failure is checked before unavailability: the store wraps a
// breaker rejection in ErrPersistence after the change is already in memory,
// so 503 would tell the client to retry an applied change.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, errorEnvelope(dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found")))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(http.StatusConflict, errorEnvelope(dto.ErrorCodeResourceAlreadyExists, messageOf(err, "Resource already exists")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, errorEnvelope(dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed")))
	case errors.Is(err, apperrors.ErrPersistence):
		// The change is applied in memory; only the write failed.
		msg := "Change applied but could not be saved"
		if errors.Is(err, apperrors.ErrUnavailable) {
			msg = "Change applied but storage unavailable"
		}
		c.JSON(http.StatusInternalServerError, errorEnvelope(dto.ErrorCodeStorageError, msg))
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorEnvelope(dto.ErrorCodeStorageUnavailable, "Storage unavailable"))
	default:
		c.JSON(http.StatusInternalServerError, errorEnvelope(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func errorEnvelope(code dto.ErrorCode, message string) *dto.ErrorResponse {
	return dto.NewErrorResponse(dto.NewErrorDetail(code, message))
}

// messageOf prefers the message of an apperrors.CustomError in the chain
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
