package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/db"
	"github.com/avready/readiness-backend/internal/handlers"
	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/server"
	"github.com/avready/readiness-backend/internal/services"
	"github.com/avready/readiness-backend/internal/utils"
)

func main() {
	mode := os.Getenv("APP_ENV")
	log, err := logger.New(mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	database, err := db.NewDatabaseService(log)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	if err := database.AutoMigrateAll(); err != nil {
		log.Fatal("Failed to migrate database", "error", err)
	}
	if err := database.SeedReferenceData(); err != nil {
		log.Fatal("Failed to seed reference data", "error", err)
	}
	gdb := database.DB()

	featureRepo := repos.NewProductFeatureRepo(gdb, log)
	capabilityRepo := repos.NewCapabilityRepo(gdb, log)
	functionRepo := repos.NewTechnicalFunctionRepo(gdb, log)
	assessmentRepo := repos.NewReadinessAssessmentRepo(gdb, log)
	platformRepo := repos.NewVehiclePlatformRepo(gdb, log)
	oddRepo := repos.NewODDRepo(gdb, log)
	envRepo := repos.NewEnvironmentRepo(gdb, log)
	trailerRepo := repos.NewTrailerRepo(gdb, log)
	levelRepo := repos.NewReadinessLevelRepo(gdb, log)

	batchService := services.NewBatchService(gdb, log,
		featureRepo, capabilityRepo, functionRepo, assessmentRepo,
		platformRepo, oddRepo, envRepo, trailerRepo, levelRepo)
	exportService := services.NewExportService(gdb, log,
		featureRepo, capabilityRepo, functionRepo, assessmentRepo,
		platformRepo, oddRepo, envRepo, trailerRepo, levelRepo)
	featureService := services.NewProductFeatureService(gdb, log, featureRepo, capabilityRepo)
	capabilityService := services.NewCapabilityService(gdb, log, capabilityRepo, functionRepo, featureRepo)
	functionService := services.NewTechnicalFunctionService(gdb, log, functionRepo, capabilityRepo, assessmentRepo)
	assessmentService := services.NewAssessmentService(gdb, log, assessmentRepo, functionRepo, levelRepo)
	configurationService := services.NewConfigurationService(gdb, log, platformRepo, oddRepo, envRepo, trailerRepo, levelRepo)
	dashboardService := services.NewDashboardService(gdb, log, featureRepo, assessmentRepo, levelRepo)
	matrixService := services.NewMatrixService(gdb, log, assessmentRepo)

	ginMode := gin.DebugMode
	if mode == "prod" || mode == "production" {
		ginMode = gin.ReleaseMode
	}
	router := server.NewRouter(server.RouterConfig{
		Mode:                     ginMode,
		HealthcheckHandler:       handlers.NewHealthcheckHandler(),
		DashboardHandler:         handlers.NewDashboardHandler(log, dashboardService),
		ProductFeatureHandler:    handlers.NewProductFeatureHandler(log, featureService),
		CapabilityHandler:        handlers.NewCapabilityHandler(log, capabilityService),
		TechnicalFunctionHandler: handlers.NewTechnicalFunctionHandler(log, functionService),
		AssessmentHandler:        handlers.NewAssessmentHandler(log, assessmentService),
		ConfigurationHandler:     handlers.NewConfigurationHandler(log, configurationService),
		MatrixHandler:            handlers.NewMatrixHandler(log, matrixService),
		JSONEditorHandler:        handlers.NewJSONEditorHandler(log, batchService, exportService),
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
