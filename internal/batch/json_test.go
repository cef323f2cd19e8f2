package batch

import (
	"strings"
	"testing"
)

func TestParseJSONDocumentBasic(t *testing.T) {
	doc := `{
		"metadata": {"version": "1.0", "created_by": "test"},
		"entities": [
			{"entity_type": "capability", "operation": "create", "name": "Lane Keeping",
			 "success_criteria": "Stays in lane", "label": "C-DRV-1.1"},
			{"entity_type": "technical_function", "operation": "create", "name": "Lateral Control",
			 "capabilities": ["Lane Keeping"]},
			{"entity_type": "product_feature", "operation": "update", "name": "Hub to Hub",
			 "due_date": "2026-06-30", "target_trl": 7}
		],
		"configurations": [
			{"config_type": "vehicle_platform", "operation": "create", "name": "Test Rig",
			 "vehicle_type": "truck", "max_payload": 4000}
		]
	}`
	result, err := ParseJSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSONDocument failed: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", result.Issues)
	}
	if len(result.Ops) != 4 {
		t.Fatalf("got %d ops, want 4", len(result.Ops))
	}

	pf := result.Ops[3]
	if pf.Entity != EntityProductFeature || pf.Kind != OpUpdate {
		t.Fatalf("op 4 = %s/%s, want product_feature/update", pf.Entity, pf.Kind)
	}
	if !pf.Cascades() {
		t.Fatal("due_date + target_trl update should cascade")
	}
	if pf.Fields.DueDate == nil || pf.Fields.DueDate.Year() != 2026 {
		t.Fatalf("due_date not parsed: %v", pf.Fields.DueDate)
	}

	cfg := result.Ops[0]
	if cfg.Entity != EntityVehiclePlatform || cfg.Name != "Test Rig" {
		t.Fatalf("config op = %s %q", cfg.Entity, cfg.Name)
	}
	if cfg.Config.MaxPayload == nil || *cfg.Config.MaxPayload != 4000 {
		t.Fatalf("max_payload = %v", cfg.Config.MaxPayload)
	}
}

func TestParseJSONDocumentConfigurationsFirst(t *testing.T) {
	// Entities may reference configurations the same document creates, so
	// configuration ops must come out ahead of entity ops regardless of the
	// document's section order.
	doc := `{
		"entities": [
			{"entity_type": "capability", "operation": "create", "name": "Cold Chain",
			 "vehicle_platform_id": 9}
		],
		"configurations": [
			{"config_type": "vehicle_platform", "operation": "create", "name": "Reefer Rig"}
		]
	}`
	result, err := ParseJSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSONDocument failed: %v", err)
	}
	if len(result.Ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(result.Ops))
	}
	if result.Ops[0].Entity != EntityVehiclePlatform {
		t.Fatalf("first op = %s, want vehicle_platform", result.Ops[0].Entity)
	}
	if result.Ops[1].Entity != EntityCapability {
		t.Fatalf("second op = %s, want capability", result.Ops[1].Entity)
	}
}

func TestParseJSONDocumentProgressBounds(t *testing.T) {
	doc := `{"entities": [
		{"entity_type": "capability", "operation": "update", "name": "A", "progress_relative_to_tmos": 0.0},
		{"entity_type": "capability", "operation": "update", "name": "B", "progress_relative_to_tmos": 100.0},
		{"entity_type": "capability", "operation": "update", "name": "C", "progress_relative_to_tmos": -0.1},
		{"entity_type": "capability", "operation": "update", "name": "D", "progress_relative_to_tmos": 100.1}
	]}`
	result, err := ParseJSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSONDocument failed: %v", err)
	}
	if len(result.Ops) != 2 {
		t.Fatalf("got %d ops, want 2 (boundary values accepted)", len(result.Ops))
	}
	if len(result.Issues) != 2 {
		t.Fatalf("got %d issues, want 2: %v", len(result.Issues), result.Issues)
	}
}

func TestParseJSONDocumentTargetTRLBounds(t *testing.T) {
	doc := `{"entities": [
		{"entity_type": "technical_function", "operation": "update", "name": "A", "target_trl": 0},
		{"entity_type": "technical_function", "operation": "update", "name": "B", "target_trl": 10},
		{"entity_type": "technical_function", "operation": "update", "name": "C", "target_trl": 1},
		{"entity_type": "technical_function", "operation": "update", "name": "D", "target_trl": 9}
	]}`
	result, err := ParseJSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSONDocument failed: %v", err)
	}
	if len(result.Ops) != 2 || len(result.Issues) != 2 {
		t.Fatalf("ops=%d issues=%d, want 2/2", len(result.Ops), len(result.Issues))
	}
}

func TestParseJSONDocumentLegacyAliases(t *testing.T) {
	doc := `{"entities": [
		{"entity_type": "product_feature", "operation": "create", "name": "PF",
		 "capabilities_required": ["Cap A"], "vehicle_type": "van"},
		{"entity_type": "capability", "operation": "create", "name": "Cap A",
		 "product_feature": "PF"}
	]}`
	result, err := ParseJSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSONDocument failed: %v", err)
	}
	pf := result.Ops[0]
	if pf.Fields.Capabilities == nil || (*pf.Fields.Capabilities)[0] != "Cap A" {
		t.Fatalf("capabilities_required not honored: %v", pf.Fields.Capabilities)
	}
	if pf.Fields.VehiclePlatformID == nil || *pf.Fields.VehiclePlatformID != 6 {
		t.Fatalf("vehicle_type van should map to platform 6, got %v", pf.Fields.VehiclePlatformID)
	}
	cap := result.Ops[1]
	if cap.Fields.ProductFeatures == nil || (*cap.Fields.ProductFeatures)[0] != "PF" {
		t.Fatalf("legacy product_feature not honored: %v", cap.Fields.ProductFeatures)
	}
}

func TestParseJSONDocumentNestedConfig(t *testing.T) {
	doc := `{"configurations": [
		{"type": "technical_readiness_level", "operation": "update",
		 "data": {"level": 7, "name": "System prototype demonstrated", "description": "updated"}}
	]}`
	result, err := ParseJSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSONDocument failed: %v", err)
	}
	op := result.Ops[0]
	if op.Entity != EntityReadinessLevel || op.Level == nil || *op.Level != 7 {
		t.Fatalf("TRL op = %s level=%v", op.Entity, op.Level)
	}
	if op.Name != "" {
		t.Fatalf("TRL ops are addressed by level, name should be cleared, got %q", op.Name)
	}
	if op.Config.LevelName == nil || *op.Config.LevelName != "System prototype demonstrated" {
		t.Fatalf("level name should move into config data, got %v", op.Config.LevelName)
	}
}

func TestParseJSONDocumentTRLLevelBounds(t *testing.T) {
	doc := `{"configurations": [
		{"config_type": "technical_readiness_level", "operation": "update", "level": 10}
	]}`
	result, err := ParseJSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSONDocument failed: %v", err)
	}
	if len(result.Ops) != 0 || len(result.Issues) != 1 {
		t.Fatalf("level 10 should be rejected: ops=%d issues=%v", len(result.Ops), result.Issues)
	}
}

func TestParseJSONDocumentFatal(t *testing.T) {
	if _, err := ParseJSONDocument([]byte("{not json")); err == nil {
		t.Fatal("malformed JSON should be fatal")
	}
	_, err := ParseJSONDocument([]byte(`{"metadata": {}}`))
	if err == nil || !strings.Contains(err.Error(), "entities") {
		t.Fatalf("document without sections should be fatal, got %v", err)
	}
}

func TestParseJSONDocumentMissingName(t *testing.T) {
	doc := `{"entities": [{"entity_type": "capability", "operation": "create"}]}`
	result, err := ParseJSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSONDocument failed: %v", err)
	}
	if len(result.Issues) != 1 || len(result.Ops) != 0 {
		t.Fatalf("missing name should be an issue: ops=%d issues=%v", len(result.Ops), result.Issues)
	}
}
