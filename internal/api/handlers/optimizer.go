package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cartwright/bdnrp/internal/api/middleware"
	"github.com/cartwright/bdnrp/internal/optimizer"
	"github.com/cartwright/bdnrp/pkg/config"
	"github.com/cartwright/bdnrp/pkg/logger"
	"github.com/cartwright/bdnrp/pkg/utils"
)

// OptimizerHandler binds optimizer.Run to the HTTP surface.
type OptimizerHandler struct {
	cfg *config.Config
}

func NewOptimizerHandler(cfg *config.Config) *OptimizerHandler {
	return &OptimizerHandler{cfg: cfg}
}

// OptimizeLineups handles POST /optimize: binds the request body into
// optimizer.Request, applies the configured top-N cap, runs the
// pipeline, and maps its result to the wire response.
func (h *OptimizerHandler) OptimizeLineups(c *gin.Context) {
	var req optimizer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request body", err.Error())
		return
	}

	if req.TopN <= 0 {
		req.TopN = h.cfg.DefaultTopN
	}
	if req.TopN > h.cfg.MaxTopN {
		req.TopN = h.cfg.MaxTopN
	}
	if req.DeadlineMS <= 0 {
		req.DeadlineMS = h.cfg.OptimizationTimeout * 1000
	}

	log := logger.WithRequestID(middleware.GetRequestID(c))

	resp, err := optimizer.Run(c.Request.Context(), req, log)
	if err != nil {
		status := statusForErrCode(optimizer.ErrCode(err))
		utils.SendError(c, status, utils.NewAppError(optimizer.ErrCode(err), err.Error()))
		return
	}

	utils.SendSuccess(c, resp)
}

func statusForErrCode(code utils.ErrCode) int {
	switch code {
	case utils.ErrCodeValidation:
		return http.StatusBadRequest
	case utils.ErrCodeOptimization:
		return http.StatusUnprocessableEntity
	case utils.ErrCodeCancelled:
		return 499
	default:
		return http.StatusInternalServerError
	}
}
