package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"spam-detection-service/internal/adapters/primary/http/dto"
	"spam-detection-service/internal/adapters/primary/http/middleware"
	"spam-detection-service/internal/core/domain"
)

const homeMessage = "Spam classification API is running"

// maxPredictBodyBytes caps a /predict body; larger bodies fail like any unreadable one.
const maxPredictBodyBytes = 1 << 20

func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: homeMessage})
}

// Ping is for uptime monitors: no body, no model access.
func (h *Handler) Ping(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (h *Handler) Predict(c *gin.Context) {
	start := time.Now()
	logger := log.WithField("request_id", c.GetString(middleware.ContextKeyRequestID))
	logger.Info("prediction requested")

	if !isJSONContentType(c.GetHeader("Content-Type")) {
		logger.WithField("content_type", c.GetHeader("Content-Type")).Warn("rejected non-JSON prediction request")
		mapDomainError(c, domain.ErrNotJSON)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPredictBodyBytes)
	raw, err := c.GetRawData()
	if err != nil {
		logger.WithError(err).WithField("limit_bytes", maxPredictBodyBytes).Error("read prediction request failed")
		mapDomainError(c, err)
		return
	}

	email, err := dto.DecodePredictRequest(raw)
	if err != nil {
		logger.WithError(err).Error("decode prediction request failed")
		mapDomainError(c, err)
		return
	}

	result, err := h.spamSvc.Classify(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyEmail) {
			logger.Warn("rejected empty email")
		} else {
			logger.WithError(err).Error("spam prediction failed")
		}
		mapDomainError(c, err)
		return
	}

	logger.WithFields(log.Fields{
		"spam":       result.Spam,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("prediction completed")
	c.JSON(http.StatusOK, dto.ToPredictResponse(result))
}

// isJSONContentType accepts application/json and structured-syntax suffixes
// such as application/problem+json. Media type parameters are ignored.
func isJSONContentType(header string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}
