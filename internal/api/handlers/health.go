package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness checks. This engine has no external
// dependencies to probe (no database, no cache, no upstream APIs), so
// unlike the original multi-service health/ready/startup-status surface,
// there is only one endpoint: if the process can answer, it is healthy.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
