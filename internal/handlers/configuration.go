package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/services"
)

type ConfigurationHandler struct {
	log     *logger.Logger
	service services.ConfigurationService
}

func NewConfigurationHandler(baseLog *logger.Logger, service services.ConfigurationService) *ConfigurationHandler {
	handlerLog := baseLog.With("handler", "ConfigurationHandler")
	return &ConfigurationHandler{log: handlerLog, service: service}
}

func (h *ConfigurationHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, snapshot)
}
