package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cartwright/bdnrp/internal/api/handlers"
	"github.com/cartwright/bdnrp/pkg/config"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, cfg *config.Config) {
	optimizerHandler := handlers.NewOptimizerHandler(cfg)

	group.POST("/optimize", optimizerHandler.OptimizeLineups)
}
