package handlers

import (
	"errors"
	"net/http"

	"spam-detection-service/internal/adapters/primary/http/dto"
	"spam-detection-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

// Client-facing 400 messages. Every 500 carries dto.MsgPredictionFailed so
// internal details never reach the response.
const (
	msgNotJSON    = "Request must be in JSON format"
	msgEmptyEmail = "Email subject and body cannot both be empty"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Validation errors
	case errors.Is(err, domain.ErrNotJSON):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgNotJSON})
	case errors.Is(err, domain.ErrEmptyEmail):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgEmptyEmail})

	// Malformed bodies and inference failures
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.MsgPredictionFailed})
	}
}
