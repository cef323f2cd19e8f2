package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/services"
)

type DashboardHandler struct {
	log     *logger.Logger
	service services.DashboardService
}

func NewDashboardHandler(baseLog *logger.Logger, service services.DashboardService) *DashboardHandler {
	handlerLog := baseLog.With("handler", "DashboardHandler")
	return &DashboardHandler{log: handlerLog, service: service}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to build dashboard overview", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, overview)
}

func (h *DashboardHandler) ChartData(c *gin.Context) {
	data, err := h.service.ChartData(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to build chart data", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, data)
}
