package utils

import (
	"testing"

	"github.com/avready/readiness-backend/internal/logger"
)

func testLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatal(err)
	}
	return log
}

func TestGetEnv(t *testing.T) {
	log := testLog(t)
	t.Setenv("READINESS_TEST_STR", "hello")
	if got := GetEnv("READINESS_TEST_STR", "fallback", log); got != "hello" {
		t.Fatalf("GetEnv = %q, want hello", got)
	}
	if got := GetEnv("READINESS_TEST_STR_MISSING", "fallback", log); got != "fallback" {
		t.Fatalf("GetEnv default = %q, want fallback", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	log := testLog(t)
	t.Setenv("READINESS_TEST_INT", "42")
	if got := GetEnvAsInt("READINESS_TEST_INT", 7, log); got != 42 {
		t.Fatalf("GetEnvAsInt = %d, want 42", got)
	}
	if got := GetEnvAsInt("READINESS_TEST_INT_MISSING", 7, log); got != 7 {
		t.Fatalf("GetEnvAsInt default = %d, want 7", got)
	}
	t.Setenv("READINESS_TEST_INT_BAD", "not-a-number")
	if got := GetEnvAsInt("READINESS_TEST_INT_BAD", 7, log); got != 7 {
		t.Fatalf("GetEnvAsInt unparseable = %d, want default 7", got)
	}
	// Both helpers log on the found path as well as the default path; passing
	// a real logger exercises them without panicking on nil.
	if got := GetEnvAsInt("READINESS_TEST_INT", 7, nil); got != 42 {
		t.Fatalf("GetEnvAsInt with nil logger = %d, want 42", got)
	}
}
