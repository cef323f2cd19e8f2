package services

import (
	"context"
	"errors"
	"testing"

	"github.com/avready/readiness-backend/internal/logger"
)

func newFeatureService(t *testing.T, env *testEnv) ProductFeatureService {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatal(err)
	}
	return NewProductFeatureService(env.db, log, env.featureRepo, env.capabilityRepo)
}

func TestProductFeatureCreateConflict(t *testing.T) {
	env := newTestEnv(t)
	service := newFeatureService(t, env)

	ctx := context.Background()
	if _, err := service.Create(ctx, ProductFeatureInput{Name: "Hub to Hub"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := service.Create(ctx, ProductFeatureInput{Name: "Hub to Hub"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate create = %v, want ErrConflict", err)
	}
}

func TestProductFeatureValidation(t *testing.T) {
	env := newTestEnv(t)
	service := newFeatureService(t, env)
	ctx := context.Background()

	if _, err := service.Create(ctx, ProductFeatureInput{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name = %v, want ErrValidation", err)
	}
	bad := 120.0
	if _, err := service.Create(ctx, ProductFeatureInput{Name: "X", Progress: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("progress 120 = %v, want ErrValidation", err)
	}
}

func TestProductFeatureDeleteConflictAndForce(t *testing.T) {
	env := newTestEnv(t)
	service := newFeatureService(t, env)
	ctx := context.Background()

	capService := NewCapabilityService(env.db, mustLog(t), env.capabilityRepo, env.functionRepo, env.featureRepo)
	if _, err := capService.Create(ctx, CapabilityInput{Name: "Docking"}); err != nil {
		t.Fatalf("capability create failed: %v", err)
	}
	caps := []string{"Docking"}
	pf, err := service.Create(ctx, ProductFeatureInput{Name: "Yard Ops", Capabilities: &caps})
	if err != nil {
		t.Fatalf("feature create failed: %v", err)
	}

	if err := service.Delete(ctx, pf.ID, false); !errors.Is(err, ErrConflict) {
		t.Fatalf("linked delete = %v, want ErrConflict", err)
	}
	if err := service.Delete(ctx, pf.ID, true); err != nil {
		t.Fatalf("forced delete failed: %v", err)
	}
	if _, err := service.Get(ctx, pf.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("feature should be gone, got %v", err)
	}
}

func mustLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatal(err)
	}
	return log
}
