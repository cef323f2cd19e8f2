package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/handlers"
	"github.com/avready/readiness-backend/internal/middleware"
)

type RouterConfig struct {
	Mode string // gin.DebugMode or gin.ReleaseMode

	HealthcheckHandler       *handlers.HealthcheckHandler
	DashboardHandler         *handlers.DashboardHandler
	ProductFeatureHandler    *handlers.ProductFeatureHandler
	CapabilityHandler        *handlers.CapabilityHandler
	TechnicalFunctionHandler *handlers.TechnicalFunctionHandler
	AssessmentHandler        *handlers.AssessmentHandler
	ConfigurationHandler     *handlers.ConfigurationHandler
	MatrixHandler            *handlers.MatrixHandler
	JSONEditorHandler        *handlers.JSONEditorHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)

	router.GET("/", cfg.DashboardHandler.Overview)
	router.GET("/api/readiness_data", cfg.DashboardHandler.ChartData)

	features := router.Group("/product_features")
	{
		features.GET("", cfg.ProductFeatureHandler.List)
		features.POST("", cfg.ProductFeatureHandler.Create)
		features.GET("/:id", cfg.ProductFeatureHandler.Get)
		features.PUT("/:id", cfg.ProductFeatureHandler.Update)
		features.DELETE("/:id", cfg.ProductFeatureHandler.Delete)
	}

	capabilities := router.Group("/capabilities")
	{
		capabilities.GET("", cfg.CapabilityHandler.List)
		capabilities.POST("", cfg.CapabilityHandler.Create)
		capabilities.GET("/:id", cfg.CapabilityHandler.Get)
		capabilities.PUT("/:id", cfg.CapabilityHandler.Update)
		capabilities.DELETE("/:id", cfg.CapabilityHandler.Delete)
	}

	functions := router.Group("/technical_functions")
	{
		functions.GET("", cfg.TechnicalFunctionHandler.List)
		functions.POST("", cfg.TechnicalFunctionHandler.Create)
		functions.GET("/:id", cfg.TechnicalFunctionHandler.Get)
		functions.PUT("/:id", cfg.TechnicalFunctionHandler.Update)
		functions.DELETE("/:id", cfg.TechnicalFunctionHandler.Delete)
	}
	// Legacy route name kept for old clients.
	router.GET("/technical_capabilities", cfg.TechnicalFunctionHandler.List)

	router.GET("/readiness_assessments", cfg.AssessmentHandler.List)
	router.POST("/readiness_assessments", cfg.AssessmentHandler.Create)
	router.GET("/readiness_matrix", cfg.MatrixHandler.Matrix)
	router.GET("/configurations", cfg.ConfigurationHandler.Snapshot)

	router.GET("/json_editor", cfg.JSONEditorHandler.Export)
	router.POST("/json_editor", cfg.JSONEditorHandler.Apply)

	return router
}
