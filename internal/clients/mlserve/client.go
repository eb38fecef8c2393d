// Package mlserve talks to the external model server that hosts the trained
// learner-profile classifier, the outcome predictor and the feature
// transformer. When no server is configured the constructor returns a nil
// client and callers degrade gracefully.
package mlserve

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/coursekg/coursekg-backend/internal/domain"
	"github.com/coursekg/coursekg-backend/internal/pkg/httpx"
	"github.com/coursekg/coursekg-backend/internal/platform/ctxutil"
	"github.com/coursekg/coursekg-backend/internal/platform/envutil"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

// Prediction is one classifier head's raw output: a class id plus the full
// probability distribution over that head's label set.
type Prediction struct {
	ClassID       int                `json:"class_id"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
}

type Client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewFromEnv builds a client from MLSERVE_BASE_URL. Returns (nil, nil) when
// the variable is unset, which callers treat as "models unavailable".
func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimSpace(os.Getenv("MLSERVE_BASE_URL"))
	if baseURL == "" {
		log.Warn("MLSERVE_BASE_URL not set, learner models unavailable")
		return nil, nil
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeoutSec := envutil.Int("MLSERVE_TIMEOUT_SECONDS", 30)
	maxRetries := envutil.Int("MLSERVE_MAX_RETRIES", 2)

	return &Client{
		log:        log.With("service", "MLServeClient"),
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

// PredictProfile runs the learner-profile classifier over one feature set.
func (c *Client) PredictProfile(ctx context.Context, features domain.StudentFeatures) (*Prediction, error) {
	var pred Prediction
	if err := c.do(ctx, "/v1/predict/profile", features, &pred); err != nil {
		return nil, fmt.Errorf("predict profile: %w", err)
	}
	return &pred, nil
}

// PredictOutcome runs the outcome predictor over one feature set.
func (c *Client) PredictOutcome(ctx context.Context, features domain.StudentFeatures) (*Prediction, error) {
	var pred Prediction
	if err := c.do(ctx, "/v1/predict/outcome", features, &pred); err != nil {
		return nil, fmt.Errorf("predict outcome: %w", err)
	}
	return &pred, nil
}

// ModelStatus reports which model heads the server has loaded.
type ModelStatus struct {
	ProfileClassifier bool `json:"profile_classifier"`
	OutcomePredictor  bool `json:"outcome_predictor"`
	EmbeddingPipeline bool `json:"embedding_pipeline"`
}

// Status asks the model server which heads are loaded.
func (c *Client) Status(ctx context.Context) (*ModelStatus, error) {
	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), http.MethodGet, c.baseURL+"/v1/status", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model status: %w", &mlserveHTTPError{StatusCode: resp.StatusCode, Body: string(raw)})
	}
	var status ModelStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("model status decode: %w", err)
	}
	return &status, nil
}

type transformResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Transform maps one feature set into the fitted model feature space, giving
// a dense vector usable for student-to-student similarity.
func (c *Client) Transform(ctx context.Context, features domain.StudentFeatures) ([]float64, error) {
	var resp transformResponse
	if err := c.do(ctx, "/v1/transform", features, &resp); err != nil {
		return nil, fmt.Errorf("transform features: %w", err)
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("transform features: empty embedding")
	}
	return resp.Embedding, nil
}

type mlserveHTTPError struct {
	StatusCode int
	Body       string
}

func (e *mlserveHTTPError) Error() string {
	return fmt.Sprintf("mlserve http status=%d body=%s", e.StatusCode, e.Body)
}

func (e *mlserveHTTPError) HTTPStatusCode() int { return e.StatusCode }

func (c *Client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &mlserveHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *Client) do(ctx context.Context, path string, body any, out any) error {
	ctx = ctxutil.Default(ctx)
	backoff := 500 * time.Millisecond

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("mlserve decode error: %w", uErr)
			}
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 5*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("model server request retrying",
			"path", path,
			"attempt", attempt+1,
			"sleep", sleepFor.String())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}
	return fmt.Errorf("mlserve: retries exhausted for %s", path)
}
