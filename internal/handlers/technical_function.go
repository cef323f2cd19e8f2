package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/services"
)

type TechnicalFunctionHandler struct {
	log     *logger.Logger
	service services.TechnicalFunctionService
}

func NewTechnicalFunctionHandler(baseLog *logger.Logger, service services.TechnicalFunctionService) *TechnicalFunctionHandler {
	handlerLog := baseLog.With("handler", "TechnicalFunctionHandler")
	return &TechnicalFunctionHandler{log: handlerLog, service: service}
}

func (h *TechnicalFunctionHandler) List(c *gin.Context) {
	functions, err := h.service.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, functions)
}

func (h *TechnicalFunctionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	function, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, function)
}

func (h *TechnicalFunctionHandler) Create(c *gin.Context) {
	var input services.TechnicalFunctionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	function, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, function)
}

func (h *TechnicalFunctionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input services.TechnicalFunctionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	function, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, function)
}

func (h *TechnicalFunctionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	force := c.Query("force") == "true"
	if err := h.service.Delete(c.Request.Context(), id, force); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"deleted": id})
}
