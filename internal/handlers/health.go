package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/services"
)

type HealthHandler struct {
	logger *logrus.Logger
	health *services.HealthService
}

func NewHealthHandler(logger *logrus.Logger, health *services.HealthService) *HealthHandler {
	return &HealthHandler{logger: logger, health: health}
}

// Check reports dependency health. A degraded catalog still answers 200;
// the service keeps recommending, just from thinner reference data.
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.health.CheckHealth()

	code := http.StatusOK
	if status.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, status)
}
