package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/avready/readiness-backend/internal/batch"
	"github.com/avready/readiness-backend/internal/logger"
	"github.com/avready/readiness-backend/internal/repos"
	"github.com/avready/readiness-backend/internal/types"
)

type testEnv struct {
	db             *gorm.DB
	featureRepo    repos.ProductFeatureRepo
	capabilityRepo repos.CapabilityRepo
	functionRepo   repos.TechnicalFunctionRepo
	assessmentRepo repos.ReadinessAssessmentRepo
	platformRepo   repos.VehiclePlatformRepo
	oddRepo        repos.ODDRepo
	envRepo        repos.EnvironmentRepo
	trailerRepo    repos.TrailerRepo
	levelRepo      repos.ReadinessLevelRepo
	batch          BatchService
	export         ExportService
}

var testEnvSeq atomic.Int64

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), testEnvSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = gdb.AutoMigrate(
		&types.TechnicalReadinessLevel{},
		&types.VehiclePlatform{},
		&types.ODD{},
		&types.Environment{},
		&types.Trailer{},
		&types.ProductFeature{},
		&types.Capability{},
		&types.TechnicalFunction{},
		&types.ReadinessAssessment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	for level := 1; level <= 9; level++ {
		row := &types.TechnicalReadinessLevel{Level: level, Name: fmt.Sprintf("TRL %d", level), Description: "test"}
		if err := gdb.Create(row).Error; err != nil {
			t.Fatalf("failed to seed TRL %d: %v", level, err)
		}
	}
	if err := gdb.Create(&types.VehiclePlatform{ID: 8, Name: "Generic Platform", VehicleType: "generic"}).Error; err != nil {
		t.Fatalf("failed to seed platform: %v", err)
	}
	if err := gdb.Create(&types.ODD{Name: "Port Terminal"}).Error; err != nil {
		t.Fatalf("failed to seed ODD: %v", err)
	}
	if err := gdb.Create(&types.Environment{Name: "Northern Europe"}).Error; err != nil {
		t.Fatalf("failed to seed environment: %v", err)
	}

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	env := &testEnv{
		db:             gdb,
		featureRepo:    repos.NewProductFeatureRepo(gdb, log),
		capabilityRepo: repos.NewCapabilityRepo(gdb, log),
		functionRepo:   repos.NewTechnicalFunctionRepo(gdb, log),
		assessmentRepo: repos.NewReadinessAssessmentRepo(gdb, log),
		platformRepo:   repos.NewVehiclePlatformRepo(gdb, log),
		oddRepo:        repos.NewODDRepo(gdb, log),
		envRepo:        repos.NewEnvironmentRepo(gdb, log),
		trailerRepo:    repos.NewTrailerRepo(gdb, log),
		levelRepo:      repos.NewReadinessLevelRepo(gdb, log),
	}
	env.batch = NewBatchService(gdb, log,
		env.featureRepo, env.capabilityRepo, env.functionRepo, env.assessmentRepo,
		env.platformRepo, env.oddRepo, env.envRepo, env.trailerRepo, env.levelRepo)
	env.export = NewExportService(gdb, log,
		env.featureRepo, env.capabilityRepo, env.functionRepo, env.assessmentRepo,
		env.platformRepo, env.oddRepo, env.envRepo, env.trailerRepo, env.levelRepo)
	return env
}

func (e *testEnv) apply(t *testing.T, ops ...batch.Operation) *batch.Summary {
	t.Helper()
	summary, err := e.batch.Apply(context.Background(), &batch.ParseResult{Ops: ops})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	return summary
}

func (e *testEnv) seedAssessment(t *testing.T, functionID uint, level int) *types.ReadinessAssessment {
	t.Helper()
	var trl types.TechnicalReadinessLevel
	if err := e.db.Where("level = ?", level).First(&trl).Error; err != nil {
		t.Fatalf("TRL %d missing: %v", level, err)
	}
	assessment := &types.ReadinessAssessment{
		TechnicalFunctionID: functionID,
		ReadinessLevelID:    trl.ID,
		VehiclePlatformID:   8,
		ODDID:               1,
		EnvironmentID:       1,
		AssessmentDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Confidence:          3,
	}
	if err := e.db.Create(assessment).Error; err != nil {
		t.Fatalf("failed to seed assessment: %v", err)
	}
	return assessment
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func listPtr(s ...string) *[]string {
	return &s
}

func TestBatchCreateAndLink(t *testing.T) {
	env := newTestEnv(t)

	summary := env.apply(t,
		batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpCreate, Name: "Lane Keeping",
			Fields: batch.EntityFields{SuccessCriteria: strPtr("stays centered")}},
		batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Lateral Control",
			Fields: batch.EntityFields{Capabilities: listPtr("Lane Keeping")}},
		batch.Operation{Entity: batch.EntityProductFeature, Kind: batch.OpCreate, Name: "Hub to Hub",
			Fields: batch.EntityFields{Capabilities: listPtr("Lane Keeping")}},
	)

	if summary.Created != 3 {
		t.Fatalf("created = %d, want 3: %v", summary.Created, summary.Lines())
	}
	fn, err := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Lateral Control")
	if err != nil || fn == nil {
		t.Fatalf("function not created: %v", err)
	}
	if len(fn.Capabilities) != 1 || fn.Capabilities[0].Name != "Lane Keeping" {
		t.Fatalf("function not linked: %+v", fn.Capabilities)
	}
	pf, err := env.featureRepo.GetByNameOrLabel(context.Background(), nil, "Hub to Hub")
	if err != nil || pf == nil {
		t.Fatalf("feature not created: %v", err)
	}
	if len(pf.Capabilities) != 1 {
		t.Fatalf("feature not linked: %+v", pf.Capabilities)
	}
}

func TestBatchCreateExistingSkips(t *testing.T) {
	env := newTestEnv(t)
	env.apply(t, batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpCreate, Name: "Docking"})
	summary := env.apply(t, batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpCreate, Name: "Docking"})
	if summary.Created != 0 || summary.Skipped != 1 {
		t.Fatalf("created=%d skipped=%d, want 0/1", summary.Created, summary.Skipped)
	}
	if len(summary.Warnings) != 1 {
		t.Fatalf("want one already-exists warning, got %v", summary.Warnings)
	}
}

func TestBatchUpdateMissingWarns(t *testing.T) {
	env := newTestEnv(t)
	summary := env.apply(t, batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpUpdate, Name: "Ghost",
		Fields: batch.EntityFields{SuccessCriteria: strPtr("x")}})
	if summary.Updated != 0 || summary.Skipped != 1 || len(summary.Warnings) != 1 {
		t.Fatalf("missing update should warn and skip: %+v", summary)
	}
}

func TestBatchLookupByLabel(t *testing.T) {
	env := newTestEnv(t)
	env.apply(t, batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpCreate, Name: "Precision Docking",
		Fields: batch.EntityFields{Label: strPtr("C-DCK-2.1")}})
	summary := env.apply(t, batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpUpdate, Name: "C-DCK-2.1",
		Fields: batch.EntityFields{SuccessCriteria: strPtr("within 2cm")}})
	if summary.Updated != 1 {
		t.Fatalf("label lookup failed: %+v", summary)
	}
	capability, _ := env.capabilityRepo.GetByNameOrLabel(context.Background(), nil, "Precision Docking")
	if capability.SuccessCriteria != "within 2cm" {
		t.Fatalf("update via label not applied: %q", capability.SuccessCriteria)
	}
}

func TestBatchCascadeCapability(t *testing.T) {
	env := newTestEnv(t)
	env.apply(t,
		batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpCreate, Name: "Perception"},
		batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Object Detection",
			Fields: batch.EntityFields{Capabilities: listPtr("Perception")}},
		batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Object Tracking",
			Fields: batch.EntityFields{Capabilities: listPtr("Perception")}},
	)
	fnA, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Object Detection")
	fnB, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Object Tracking")
	a1 := env.seedAssessment(t, fnA.ID, 4)
	a2 := env.seedAssessment(t, fnB.ID, 5)

	due, _ := batch.ParseDate("2026-09-30")
	summary := env.apply(t, batch.Operation{
		Entity: batch.EntityCapability, Kind: batch.OpUpdate, Name: "Perception",
		Fields: batch.EntityFields{DueDate: due, TargetTRL: intPtr(7)},
	})
	if summary.Updated != 1 || summary.AssessmentsAffected != 2 {
		t.Fatalf("updated=%d affected=%d, want 1/2", summary.Updated, summary.AssessmentsAffected)
	}

	var trl7 types.TechnicalReadinessLevel
	if err := env.db.Where("level = ?", 7).First(&trl7).Error; err != nil {
		t.Fatal(err)
	}
	for _, id := range []uint{a1.ID, a2.ID} {
		var got types.ReadinessAssessment
		if err := env.db.First(&got, id).Error; err != nil {
			t.Fatal(err)
		}
		if got.NextReviewDate == nil || !got.NextReviewDate.Equal(*due) {
			t.Fatalf("assessment %d next_review_date = %v, want %v", id, got.NextReviewDate, due)
		}
		if got.TargetTRL != 7 || got.ReadinessLevelID != trl7.ID {
			t.Fatalf("assessment %d target not repointed: trl=%d level_id=%d", id, got.TargetTRL, got.ReadinessLevelID)
		}
		if !got.AssessmentDate.After(a1.AssessmentDate) {
			t.Fatalf("assessment %d date not refreshed: %v", id, got.AssessmentDate)
		}
	}
}

func TestBatchCascadeProductFeatureDedup(t *testing.T) {
	env := newTestEnv(t)
	// Two capabilities share one technical function; the shared function's
	// assessment must be touched exactly once.
	env.apply(t,
		batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpCreate, Name: "Cap A"},
		batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpCreate, Name: "Cap B"},
		batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Shared Fn",
			Fields: batch.EntityFields{Capabilities: listPtr("Cap A", "Cap B")}},
		batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Solo Fn",
			Fields: batch.EntityFields{Capabilities: listPtr("Cap B")}},
		batch.Operation{Entity: batch.EntityProductFeature, Kind: batch.OpCreate, Name: "Yard Automation",
			Fields: batch.EntityFields{Capabilities: listPtr("Cap A", "Cap B")}},
	)
	shared, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Shared Fn")
	solo, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Solo Fn")
	env.seedAssessment(t, shared.ID, 3)
	env.seedAssessment(t, solo.ID, 3)

	summary := env.apply(t, batch.Operation{
		Entity: batch.EntityProductFeature, Kind: batch.OpUpdate, Name: "Yard Automation",
		Fields: batch.EntityFields{TargetTRL: intPtr(6)},
	})
	if summary.AssessmentsAffected != 2 {
		t.Fatalf("affected = %d, want 2 (shared function deduplicated)", summary.AssessmentsAffected)
	}
}

func TestBatchDeleteConflictAndForce(t *testing.T) {
	env := newTestEnv(t)
	env.apply(t, batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Risky Fn"})
	fn, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Risky Fn")
	env.seedAssessment(t, fn.ID, 2)

	summary := env.apply(t, batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpDelete, Name: "Risky Fn"})
	if summary.Deleted != 0 || summary.Errored != 1 {
		t.Fatalf("unforced delete should be refused: %+v", summary)
	}
	if still, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Risky Fn"); still == nil {
		t.Fatal("function should survive refused delete")
	}

	summary = env.apply(t, batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpDelete, Name: "Risky Fn", ForceDelete: true})
	if summary.Deleted != 1 {
		t.Fatalf("forced delete failed: %+v", summary)
	}
	count, err := env.assessmentRepo.CountByFunctionID(context.Background(), nil, fn.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("forced delete should remove assessments, %d left", count)
	}
}

func TestBatchConfigurationOps(t *testing.T) {
	env := newTestEnv(t)
	summary := env.apply(t,
		batch.Operation{Entity: batch.EntityTrailer, Kind: batch.OpCreate, Name: "Box 13m",
			Config: batch.ConfigFields{TrailerType: strPtr("box")}},
		batch.Operation{Entity: batch.EntityReadinessLevel, Kind: batch.OpUpdate, Level: intPtr(9),
			Config: batch.ConfigFields{Description: strPtr("proven in the field")}},
	)
	if summary.Created != 1 || summary.Updated != 1 {
		t.Fatalf("created=%d updated=%d, want 1/1: %v", summary.Created, summary.Updated, summary.Lines())
	}

	trailer, err := env.trailerRepo.GetByName(context.Background(), nil, "Box 13m")
	if err != nil || trailer == nil || trailer.TrailerType != "box" {
		t.Fatalf("trailer not created: %+v err=%v", trailer, err)
	}
	level9, err := env.levelRepo.GetByLevel(context.Background(), nil, 9)
	if err != nil || level9.Description != "proven in the field" {
		t.Fatalf("TRL 9 not updated: %+v err=%v", level9, err)
	}
}

func TestBatchReadinessLevelDeleteRefused(t *testing.T) {
	env := newTestEnv(t)
	summary := env.apply(t, batch.Operation{Entity: batch.EntityReadinessLevel, Kind: batch.OpDelete, Level: intPtr(5)})
	if summary.Errored != 1 || summary.Deleted != 0 {
		t.Fatalf("TRL delete should be refused: %+v", summary)
	}
	if level, _ := env.levelRepo.GetByLevel(context.Background(), nil, 5); level == nil {
		t.Fatal("TRL 5 must survive")
	}
}

func TestBatchUnresolvedLinkWarns(t *testing.T) {
	env := newTestEnv(t)
	summary := env.apply(t, batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Fn",
		Fields: batch.EntityFields{Capabilities: listPtr("No Such Capability")}})
	if summary.Created != 1 {
		t.Fatalf("create should still succeed: %+v", summary)
	}
	if len(summary.Warnings) != 1 {
		t.Fatalf("want one unresolved-link warning, got %v", summary.Warnings)
	}
}
