package handlers

import (
	"spam-detection-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	spamSvc *services.SpamService
}

func New(spamSvc *services.SpamService) *Handler {
	return &Handler{spamSvc: spamSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Liveness
	r.GET("/", h.Home)
	r.GET("/ping", h.Ping)

	// Classification
	r.POST("/predict", h.Predict)
}
