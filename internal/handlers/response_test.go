package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/avready/readiness-backend/internal/services"
)

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("capability 3: %w", services.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("capability x: %w", services.ErrConflict), http.StatusConflict},
		{fmt.Errorf("progress 200: %w", services.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		RespondServiceError(c, tc.err)
		if recorder.Code != tc.status {
			t.Fatalf("error %v mapped to %d, want %d", tc.err, recorder.Code, tc.status)
		}
		var body APIResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if body.Success || body.Error == "" {
			t.Fatalf("error envelope malformed: %+v", body)
		}
	}
}

func TestHealthcheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/healthcheck", NewHealthcheckHandler().Healthcheck)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("healthcheck = %d, want 200", recorder.Code)
	}
}
