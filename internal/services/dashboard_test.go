package services

import (
	"context"
	"testing"

	"github.com/avready/readiness-backend/internal/batch"
	"github.com/avready/readiness-backend/internal/logger"
)

func TestDashboardOverviewBuckets(t *testing.T) {
	env := newTestEnv(t)
	seedGraph(t, env)
	fn, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Object Detection")
	env.seedAssessment(t, fn.ID, 8) // high
	env.seedAssessment(t, fn.ID, 5) // medium
	env.seedAssessment(t, fn.ID, 2) // low

	log, err := logger.New("dev")
	if err != nil {
		t.Fatal(err)
	}
	service := NewDashboardService(env.db, log, env.featureRepo, env.assessmentRepo, env.levelRepo)

	overview, err := service.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if overview.TotalAssessments != 3 {
		t.Fatalf("total = %d, want 3", overview.TotalAssessments)
	}
	if overview.HighReadiness != 1 || overview.MediumReadiness != 1 || overview.LowReadiness != 1 {
		t.Fatalf("buckets = %d/%d/%d, want 1/1/1",
			overview.HighReadiness, overview.MediumReadiness, overview.LowReadiness)
	}

	if len(overview.Features) != 1 {
		t.Fatalf("got %d feature rollups, want 1", len(overview.Features))
	}
	rollup := overview.Features[0]
	if rollup.Name != "Hub to Hub" || rollup.AssessmentCount != 3 {
		t.Fatalf("rollup = %+v", rollup)
	}
	if rollup.AverageTRL < 4.9 || rollup.AverageTRL > 5.1 {
		t.Fatalf("avg TRL = %v, want 5.0", rollup.AverageTRL)
	}
}

func TestDashboardChartData(t *testing.T) {
	env := newTestEnv(t)
	seedGraph(t, env)
	fn, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Object Detection")
	env.seedAssessment(t, fn.ID, 4)
	env.seedAssessment(t, fn.ID, 4)
	env.seedAssessment(t, fn.ID, 9)

	log, err := logger.New("dev")
	if err != nil {
		t.Fatal(err)
	}
	service := NewDashboardService(env.db, log, env.featureRepo, env.assessmentRepo, env.levelRepo)

	data, err := service.ChartData(context.Background())
	if err != nil {
		t.Fatalf("ChartData failed: %v", err)
	}
	if data.TRLDistribution[4] != 2 || data.TRLDistribution[9] != 1 {
		t.Fatalf("distribution = %v", data.TRLDistribution)
	}
	if data.TRLDistribution[1] != 0 {
		t.Fatal("distribution should cover all nine levels")
	}
	if len(data.Products) != 1 || data.Products[0].AssessmentCount != 3 {
		t.Fatalf("products = %+v", data.Products)
	}
}

func TestMatrixGroupsByFunction(t *testing.T) {
	env := newTestEnv(t)
	env.apply(t,
		batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Fn A"},
		batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Fn B"},
	)
	fnA, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Fn A")
	fnB, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Fn B")
	env.seedAssessment(t, fnA.ID, 3)
	env.seedAssessment(t, fnA.ID, 6)
	env.seedAssessment(t, fnB.ID, 7)

	log, err := logger.New("dev")
	if err != nil {
		t.Fatal(err)
	}
	service := NewMatrixService(env.db, log, env.assessmentRepo)

	rows, err := service.Matrix(context.Background())
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	byName := map[string]int{}
	for _, row := range rows {
		byName[row.TechnicalFunction] = len(row.Entries)
	}
	if byName["Fn A"] != 2 || byName["Fn B"] != 1 {
		t.Fatalf("entries per function = %v", byName)
	}
	for _, row := range rows {
		for _, entry := range row.Entries {
			if entry.VehiclePlatform == "" || entry.ODD == "" || entry.Environment == "" {
				t.Fatalf("configuration tuple not populated: %+v", entry)
			}
			if entry.Level == 0 {
				t.Fatalf("level not populated: %+v", entry)
			}
		}
	}
}
