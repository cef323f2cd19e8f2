package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/services"
)

type ProductFeatureHandler struct {
	log     *logger.Logger
	service services.ProductFeatureService
}

func NewProductFeatureHandler(baseLog *logger.Logger, service services.ProductFeatureService) *ProductFeatureHandler {
	handlerLog := baseLog.With("handler", "ProductFeatureHandler")
	return &ProductFeatureHandler{log: handlerLog, service: service}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (h *ProductFeatureHandler) List(c *gin.Context) {
	features, err := h.service.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, features)
}

func (h *ProductFeatureHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	feature, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, feature)
}

func (h *ProductFeatureHandler) Create(c *gin.Context) {
	var input services.ProductFeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	feature, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, feature)
}

func (h *ProductFeatureHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input services.ProductFeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	feature, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, feature)
}

func (h *ProductFeatureHandler) Delete(c *gin.Context) {
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
