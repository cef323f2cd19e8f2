package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/batch"
	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/services"
)

// JSONEditorHandler backs the bulk editor page: GET serves the current
// database as an importable document, POST runs a submitted document
// through the batch engine and returns the summary.
type JSONEditorHandler struct {
	log           *logger.Logger
	batchService  services.BatchService
	exportService services.ExportService
}

func NewJSONEditorHandler(baseLog *logger.Logger, batchService services.BatchService, exportService services.ExportService) *JSONEditorHandler {
	handlerLog := baseLog.With("handler", "JSONEditorHandler")
	return &JSONEditorHandler{log: handlerLog, batchService: batchService, exportService: exportService}
}

func (h *JSONEditorHandler) Export(c *gin.Context) {
	doc, err := h.exportService.ExportDocument(c.Request.Context())
	if err != nil {
		h.log.Error("Export failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, doc)
}

func (h *JSONEditorHandler) Apply(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "failed to read request body")
		return
	}
	result, err := batch.ParseJSONDocument(body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	summary, err := h.batchService.Apply(c.Request.Context(), result)
	if err != nil {
		h.log.Error("Batch apply failed", "error", err)
		RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, summary)
}
