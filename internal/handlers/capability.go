package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/services"
)

type CapabilityHandler struct {
	log     *logger.Logger
	service services.CapabilityService
}

func NewCapabilityHandler(baseLog *logger.Logger, service services.CapabilityService) *CapabilityHandler {
	handlerLog := baseLog.With("handler", "CapabilityHandler")
	return &CapabilityHandler{log: handlerLog, service: service}
}

func (h *CapabilityHandler) List(c *gin.Context) {
	capabilities, err := h.service.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, capabilities)
}

func (h *CapabilityHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	capability, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, capability)
}

func (h *CapabilityHandler) Create(c *gin.Context) {
	var input services.CapabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	capability, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, capability)
}

func (h *CapabilityHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input services.CapabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	capability, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, capability)
}

func (h *CapabilityHandler) Delete(c *gin.Context) {
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
