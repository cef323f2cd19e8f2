package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/avready/readiness-backend/internal/batch"
)

func seedGraph(t *testing.T, env *testEnv) {
	t.Helper()
	env.apply(t,
		batch.Operation{Entity: batch.EntityTrailer, Kind: batch.OpCreate, Name: "Flatbed",
			Config: batch.ConfigFields{TrailerType: strPtr("flatbed")}},
		batch.Operation{Entity: batch.EntityCapability, Kind: batch.OpCreate, Name: "Perception",
			Fields: batch.EntityFields{Label: strPtr("C-PER-1.0"), SuccessCriteria: strPtr("sees things")}},
		batch.Operation{Entity: batch.EntityTechnicalFunction, Kind: batch.OpCreate, Name: "Object Detection",
			Fields: batch.EntityFields{Capabilities: listPtr("Perception")}},
		batch.Operation{Entity: batch.EntityProductFeature, Kind: batch.OpCreate, Name: "Hub to Hub",
			Fields: batch.EntityFields{Label: strPtr("PF-HUB-1.0"), Capabilities: listPtr("Perception")}},
	)
}

func TestExportReimportIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	seedGraph(t, env)

	out, err := env.export.ExportJSON(context.Background())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	result, err := batch.ParseJSONDocument(out)
	if err != nil {
		t.Fatalf("export does not parse as an import document: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("export produced invalid items: %v", result.Issues)
	}

	summary, err := env.batch.Apply(context.Background(), result)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if summary.Created != 0 {
		t.Fatalf("re-import into same database created %d rows: %v", summary.Created, summary.Lines())
	}
	if summary.Errored != 0 {
		t.Fatalf("re-import errored: %v", summary.Errors)
	}
}

func TestExportReproducesGraphInEmptyDatabase(t *testing.T) {
	source := newTestEnv(t)
	seedGraph(t, source)

	out, err := source.export.ExportJSON(context.Background())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	result, err := batch.ParseJSONDocument(out)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	target := newTestEnv(t)
	if _, err := target.batch.Apply(context.Background(), result); err != nil {
		t.Fatalf("import into empty database failed: %v", err)
	}

	ctx := context.Background()
	capability, err := target.capabilityRepo.GetByNameOrLabel(ctx, nil, "Perception")
	if err != nil || capability == nil {
		t.Fatalf("capability missing after import: %v", err)
	}
	if capability.Label != "C-PER-1.0" || capability.SuccessCriteria != "sees things" {
		t.Fatalf("capability fields lost: %+v", capability)
	}
	fn, err := target.functionRepo.GetByNameOrLabel(ctx, nil, "Object Detection")
	if err != nil || fn == nil {
		t.Fatalf("function missing after import: %v", err)
	}
	if len(fn.Capabilities) != 1 || fn.Capabilities[0].Name != "Perception" {
		t.Fatalf("function link lost: %+v", fn.Capabilities)
	}
	pf, err := target.featureRepo.GetByNameOrLabel(ctx, nil, "Hub to Hub")
	if err != nil || pf == nil {
		t.Fatalf("feature missing after import: %v", err)
	}
	if len(pf.Capabilities) != 1 {
		t.Fatalf("feature link lost: %+v", pf.Capabilities)
	}
	trailer, err := target.trailerRepo.GetByName(ctx, nil, "Flatbed")
	if err != nil || trailer == nil || trailer.TrailerType != "flatbed" {
		t.Fatalf("trailer missing after import: %+v err=%v", trailer, err)
	}
}

func TestExportCSVSummary(t *testing.T) {
	env := newTestEnv(t)
	seedGraph(t, env)
	fn, _ := env.functionRepo.GetByNameOrLabel(context.Background(), nil, "Object Detection")
	env.seedAssessment(t, fn.ID, 4)
	env.seedAssessment(t, fn.ID, 6)

	var buf bytes.Buffer
	if err := env.export.ExportCSV(context.Background(), &buf); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if rows[0][0] != "capability_type" || rows[0][3] != "current_avg_trl" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	// One capability row and one technical function row, both averaging the
	// same two assessments.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	for _, row := range rows[1:] {
		if row[3] != "5.0" {
			t.Fatalf("avg TRL = %q, want 5.0 (row %v)", row[3], row)
		}
		if row[4] != "2" {
			t.Fatalf("assessment count = %q, want 2", row[4])
		}
	}
}

func TestExportTemplateParses(t *testing.T) {
	env := newTestEnv(t)
	result, err := batch.ParseJSONDocument(env.export.Template())
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("template has invalid items: %v", result.Issues)
	}
	if len(result.Ops) == 0 {
		t.Fatal("template should contain example operations")
	}
}
