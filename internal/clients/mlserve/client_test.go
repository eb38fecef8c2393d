package mlserve

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func newTestClient(t *testing.T, rt roundTripperFunc) *Client {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return &Client{
		log:        log,
		baseURL:    "http://mlserve",
		httpClient: &http.Client{Transport: rt},
		maxRetries: 2,
	}
}

func jsonResponse(status int, body any) *http.Response {
	b, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(b)),
	}
}

func TestPredictProfile(t *testing.T) {
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v1/predict/profile" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		var features domain.StudentFeatures
		if err := json.NewDecoder(req.Body).Decode(&features); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		return jsonResponse(http.StatusOK, Prediction{ClassID: 2, Confidence: 0.8}), nil
	})

	// A nil context is tolerated and normalized, including on the retry path.
	pred, err := c.PredictProfile(nil, domain.StudentFeatures{})
	if err != nil {
		t.Fatalf("PredictProfile: %v", err)
	}
	if pred.ClassID != 2 || pred.Confidence != 0.8 {
		t.Fatalf("prediction = %+v", pred)
	}
}

func TestDoRetriesWithNilContext(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if calls.Add(1) == 1 {
			return jsonResponse(http.StatusServiceUnavailable, map[string]string{"error": "warming up"}), nil
		}
		return jsonResponse(http.StatusOK, Prediction{ClassID: 1, Confidence: 0.9}), nil
	})

	pred, err := c.PredictOutcome(nil, domain.StudentFeatures{})
	if err != nil {
		t.Fatalf("PredictOutcome: %v", err)
	}
	if pred.ClassID != 1 {
		t.Fatalf("prediction = %+v", pred)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("server calls = %d, want 2", got)
	}
}

func TestDoStopsOnNonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusBadRequest, map[string]string{"error": "bad features"}), nil
	})

	if _, err := c.PredictProfile(nil, domain.StudentFeatures{}); err == nil {
		t.Fatalf("expected error on 400")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("server calls = %d, want 1", got)
	}
}
