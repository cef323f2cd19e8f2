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
  update_from_json <file>            apply a batch update document
  update_from_json --export [file]   export the database as a batch document
  update_from_json --template [file] write an example document
  update_from_json --help            show this help
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

	switch os.Args[1] {
	case "--export":
		out, err := exportService.ExportJSON(ctx)
		if err != nil {
			log.Error("Export failed", "error", err)
			os.Exit(1)
		}
		if len(os.Args) > 2 {
			if err := os.WriteFile(os.Args[2], out, 0o644); err != nil {
				log.Error("Failed to write export file", "file", os.Args[2], "error", err)
				os.Exit(1)
			}
			fmt.Printf("Exported to %s\n", os.Args[2])
		} else {
			fmt.Println(string(out))
		}

	case "--template":
		file := "update_template.json"
		if len(os.Args) > 2 {
			file = os.Args[2]
		}
		if err := os.WriteFile(file, exportService.Template(), 0o644); err != nil {
			log.Error("Failed to write template", "file", file, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Template written to %s\n", file)

	default:
		file := os.Args[1]
		data, err := os.ReadFile(file)
		if err != nil {
			log.Error("Failed to read file", "file", file, "error", err)
			os.Exit(1)
		}
		result, err := batch.ParseJSONDocument(data)
		if err != nil {
			log.Error("Failed to parse document", "file", file, "error", err)
			os.Exit(1)
		}
		summary, err := batchService.Apply(ctx, result)
		printSummary(summary)
		if err != nil {
			os.Exit(1)
		}
	}
}

func printSummary(summary *batch.Summary) {
	if summary == nil {
		return
	}
	for _, line := range summary.Lines() {
		fmt.Println(line)
	}
	fmt.Println(summary.String())
}
