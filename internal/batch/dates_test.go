package batch

import (
	"testing"
	"time"
)

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	cases := []string{
		"2025-12-31",
		"12/31/2025",
		"2025/12/31",
		"12-31-2025",
	}
	for _, input := range cases {
		got, err := ParseDate(input)
		if err != nil {
			t.Fatalf("ParseDate(%q) returned error: %v", input, err)
		}
		if got == nil || !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseDateDayFirstLayouts(t *testing.T) {
	// Day-first layouts only win when the month-first parse fails.
	got, err := ParseDate("31/12/2025")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate(31/12/2025) = %v, want %v", got, want)
	}
}

func TestParseDateTimestamp(t *testing.T) {
	got, err := ParseDate("2025-12-31T23:59:59")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if got.Hour() != 23 || got.Minute() != 59 {
		t.Fatalf("ParseDate timestamp = %v, want 23:59:59", got)
	}
}

func TestParseDateEmpty(t *testing.T) {
	got, err := ParseDate("")
	if err != nil {
		t.Fatalf("empty date should not error, got %v", err)
	}
	if got != nil {
		t.Fatalf("empty date should yield nil, got %v", got)
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("next tuesday"); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}
