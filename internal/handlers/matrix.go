package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/services"
)

type MatrixHandler struct {
	log     *logger.Logger
	service services.MatrixService
}

func NewMatrixHandler(baseLog *logger.Logger, service services.MatrixService) *MatrixHandler {
	handlerLog := baseLog.With("handler", "MatrixHandler")
	return &MatrixHandler{log: handlerLog, service: service}
}

func (h *MatrixHandler) Matrix(c *gin.Context) {
	rows, err := h.service.Matrix(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, rows)
}
