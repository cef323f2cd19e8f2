package batch

import (
	"testing"
)

func TestNormalizePlatformRefNumeric(t *testing.T) {
	if got := NormalizePlatformRef(float64(3)); got == nil || *got != 3 {
		t.Fatalf("float64 3 = %v, want 3", got)
	}
	if got := NormalizePlatformRef("5"); got == nil || *got != 5 {
		t.Fatalf("string \"5\" = %v, want 5", got)
	}
}

func TestNormalizePlatformRefVehicleTypes(t *testing.T) {
	cases := map[string]uint{
		"terberg": 1,
		"ca500":   2,
		"t800":    3,
		"aev":     4,
		"truck":   5,
		"Van":     6,
		"CAR":     7,
		"generic": 8,
		"all":     8,
	}
	for input, want := range cases {
		got := NormalizePlatformRef(input)
		if got == nil || *got != want {
			t.Fatalf("NormalizePlatformRef(%q) = %v, want %d", input, got, want)
		}
	}
}

func TestNormalizePlatformRefFallback(t *testing.T) {
	got := NormalizePlatformRef("hovercraft")
	if got == nil || *got != GenericPlatformID {
		t.Fatalf("unknown type = %v, want generic (%d)", got, GenericPlatformID)
	}
}

func TestNormalizePlatformRefNil(t *testing.T) {
	if got := NormalizePlatformRef(nil); got != nil {
		t.Fatalf("nil input should stay nil, got %v", got)
	}
	if got := NormalizePlatformRef("  "); got != nil {
		t.Fatalf("blank string should stay nil, got %v", got)
	}
}
