package batch

import (
	"strings"
	"testing"
)

func TestParseCSVBasic(t *testing.T) {
	input := `capability_type,capability_name,due_date,target_trl,assessor,notes
capability,Lane Keeping,2026-03-31,7,J. Smith,quarterly review
technical_function,Lateral Control,,6,,
`
	result, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", result.Issues)
	}
	if len(result.Ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(result.Ops))
	}

	first := result.Ops[0]
	if first.Entity != EntityCapability || first.Kind != OpUpdate || first.Name != "Lane Keeping" {
		t.Fatalf("unexpected op: %+v", first)
	}
	if first.Fields.DueDate == nil || first.Fields.TargetTRL == nil || *first.Fields.TargetTRL != 7 {
		t.Fatalf("cascade fields not parsed: %+v", first.Fields)
	}
	if first.Fields.Assessor == nil || *first.Fields.Assessor != "J. Smith" {
		t.Fatalf("assessor not parsed: %v", first.Fields.Assessor)
	}
	if !first.Cascades() {
		t.Fatal("due date row should cascade")
	}

	second := result.Ops[1]
	if second.Fields.DueDate != nil {
		t.Fatal("empty due_date should stay unset")
	}
	if second.Fields.TargetTRL == nil || *second.Fields.TargetTRL != 6 {
		t.Fatalf("target_trl not parsed: %v", second.Fields.TargetTRL)
	}
}

func TestParseCSVLegacyTypeAliases(t *testing.T) {
	input := `capability_type,capability_name,due_date
product,Hub to Hub,2026-01-15
technical,Object Detection,2026-01-15
`
	result, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if result.Ops[0].Entity != EntityProductFeature {
		t.Fatalf("legacy 'product' = %s, want product_feature", result.Ops[0].Entity)
	}
	if result.Ops[1].Entity != EntityTechnicalFunction {
		t.Fatalf("legacy 'technical' = %s, want technical_function", result.Ops[1].Entity)
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	input := "capability_name,due_date\nX,2026-01-01\n"
	if _, err := ParseCSV(strings.NewReader(input)); err == nil {
		t.Fatal("missing capability_type column should be fatal")
	}
}

func TestParseCSVBadRows(t *testing.T) {
	input := `capability_type,capability_name,due_date,target_trl
capability,,2026-01-01,5
rocket,Thing,2026-01-01,5
capability,Good,not-a-date,5
capability,AlsoGood,2026-01-01,12
capability,Fine,2026-01-01,5
`
	result, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(result.Issues) != 4 {
		t.Fatalf("got %d issues, want 4: %v", len(result.Issues), result.Issues)
	}
	if len(result.Ops) != 1 || result.Ops[0].Name != "Fine" {
		t.Fatalf("only the clean row should survive: %+v", result.Ops)
	}
}
