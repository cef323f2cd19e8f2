package main

import (
	"context"
	"fmt"
	"os"

	"github.com/avready/readiness-backend/internal/batch"
	"github.com/avready/readiness-backend/internal/db"
	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/services"
)

const usage = `Usage:
  update_from_csv <file>          apply due date / target TRL updates from CSV
  update_from_csv --export [file] export a per-entity readiness summary CSV
  update_from_csv --help          show this help

Expected columns: capability_type, capability_name, due_date, target_trl,
assessor, notes. Updates cascade into the readiness assessments reachable
from each named entity.
`

func main() {
	if len(os.Args) < 2 || os.Args[1] == "--help" || os.Args[1] == "-h" {
		fmt.Print(usage)
		return
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
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

	ctx := context.Background()

	if os.Args[1] == "--export" {
		out := os.Stdout
		if len(os.Args) > 2 {
			f, err := os.Create(os.Args[2])
			if err != nil {
				log.Error("Failed to create export file", "file", os.Args[2], "error", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}
		if err := exportService.ExportCSV(ctx, out); err != nil {
			log.Error("Export failed", "error", err)
			os.Exit(1)
		}
		if len(os.Args) > 2 {
			fmt.Printf("Exported to %s\n", os.Args[2])
		}
		return
	}

	file := os.Args[1]
	f, err := os.Open(file)
	if err != nil {
		log.Error("Failed to open file", "file", file, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	result, err := batch.ParseCSV(f)
	if err != nil {
		log.Error("Failed to parse CSV", "file", file, "error", err)
		os.Exit(1)
	}
	summary, err := batchService.Apply(ctx, result)
	if summary != nil {
		for _, line := range summary.Lines() {
			fmt.Println(line)
		}
		fmt.Println(summary.String())
	}
	if err != nil {
		os.Exit(1)
	}
}
