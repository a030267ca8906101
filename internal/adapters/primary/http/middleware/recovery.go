package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"spam-detection-service/internal/adapters/primary/http/dto"
)

// Recovery turns a handler panic into a JSON 500 so clients never see a stack trace.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.WithFields(log.Fields{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(ContextKeyRequestID),
			"panic":      recovered,
		}).Error("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: dto.MsgPredictionFailed})
	})
}
