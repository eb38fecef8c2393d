package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func TestNewCourseHandler(t *testing.T) {
	if h := NewCourseHandler(newTestLogger(t), nil); h == nil {
		t.Fatal("expected non-nil handler")
	}
}

func TestNewRecommendationHandler(t *testing.T) {
	if h := NewRecommendationHandler(newTestLogger(t), nil, nil); h == nil {
		t.Fatal("expected non-nil handler")
	}
}

func TestNewSearchHandler(t *testing.T) {
	if h := NewSearchHandler(newTestLogger(t), nil); h == nil {
		t.Fatal("expected non-nil handler")
	}
}

func TestNewLearnerHandler(t *testing.T) {
	if h := NewLearnerHandler(newTestLogger(t), nil); h == nil {
		t.Fatal("expected non-nil handler")
	}
}

func TestNewStatsHandler(t *testing.T) {
	if h := NewStatsHandler(newTestLogger(t), nil); h == nil {
		t.Fatal("expected non-nil handler")
	}
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", NewHealthHandler().HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
