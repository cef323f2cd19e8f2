package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column aliases for capability_type. "product" and "technical" are the
// legacy spellings from earlier batch files.
var csvEntityTypes = map[string]EntityType{
	"capability":         EntityCapability,
	"technical_function": EntityTechnicalFunction,
	"product":            EntityProductFeature,
	"technical":          EntityTechnicalFunction,
}

// ParseCSV reads a due-date/TRL update file with header
// capability_type,capability_name,due_date,target_trl,assessor,notes.
// Every data row becomes one update operation; rows that fail validation are
// reported in Issues and skipped.
func ParseCSV(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"capability_type", "capability_name"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("required column %q not found in CSV", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := &ParseResult{}
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", rowNum, err)
		}

		ref := fmt.Sprintf("row %d", rowNum)
		name := cell(row, "capability_name")
		if name == "" {
			result.Issues = append(result.Issues, fmt.Sprintf("%s: skipping empty capability name", ref))
			continue
		}
		entity, ok := csvEntityTypes[strings.ToLower(cell(row, "capability_type"))]
		if !ok {
			result.Issues = append(result.Issues, fmt.Sprintf("%s: invalid capability_type %q", ref, cell(row, "capability_type")))
			continue
		}

		var fields EntityFields
		bad := false

		if v := cell(row, "due_date"); v != "" {
			due, err := ParseDate(v)
			if err != nil {
				result.Issues = append(result.Issues, fmt.Sprintf("%s: invalid due_date %q", ref, v))
				bad = true
			} else {
				fields.DueDate = due
			}
		}
		if v := cell(row, "target_trl"); v != "" {
			trl, err := strconv.Atoi(v)
			if err != nil || trl < 1 || trl > 9 {
				result.Issues = append(result.Issues, fmt.Sprintf("%s: invalid target_trl %q, must be 1-9", ref, v))
				bad = true
			} else {
				fields.TargetTRL = &trl
			}
		}
		if v := cell(row, "assessor"); v != "" {
			fields.Assessor = &v
		}
		if v := cell(row, "notes"); v != "" {
			fields.Notes = &v
		}
		if bad {
			continue
		}

		result.Ops = append(result.Ops, Operation{
			Entity: entity,
			Kind:   OpUpdate,
			Name:   name,
			Ref:    ref,
			Fields: fields,
		})
	}
	return result, nil
}
