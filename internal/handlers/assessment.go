package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/services"
)

type AssessmentHandler struct {
	log     *logger.Logger
	service services.AssessmentService
}

func NewAssessmentHandler(baseLog *logger.Logger, service services.AssessmentService) *AssessmentHandler {
	handlerLog := baseLog.With("handler", "AssessmentHandler")
	return &AssessmentHandler{log: handlerLog, service: service}
}

func queryUint(c *gin.Context, key string) uint {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}

func (h *AssessmentHandler) List(c *gin.Context) {
	filter := repos.AssessmentFilter{
		ProductFeatureID:    queryUint(c, "product_id"),
		TechnicalFunctionID: queryUint(c, "technical_id"),
		VehiclePlatformID:   queryUint(c, "platform_id"),
		MinTRL:              int(queryUint(c, "min_trl")),
	}
	assessments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, assessments)
}

func (h *AssessmentHandler) Create(c *gin.Context) {
	var input services.AssessmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	assessment, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, assessment)
}
