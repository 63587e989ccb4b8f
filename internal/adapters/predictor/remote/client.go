package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cat-health-synth/internal/domain/health"
	"cat-health-synth/internal/platform/httpclient"
	"cat-health-synth/internal/ports/predictor"
)

var (
	ErrNotConfigured = errors.New("predictor not configured")
	ErrUnauthorized  = errors.New("predictor unauthorized")
	ErrUpstream      = errors.New("predictor upstream error")
)

const predictPath = "/v1/predict"

// Config del cliente de modelo remoto.
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// Client implementa predictor.Predictor contra un endpoint HTTP de inferencia.
type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

var _ predictor.Predictor = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return newClient(hc, cfg), nil
}

func newClient(hc *httpclient.Client, cfg Config) *Client {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	return &Client{http: hc, apiKey: strings.TrimSpace(cfg.APIKey), apiKeyHeader: h}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

type predictRequest struct {
	Record   health.Record   `json:"record"`
	Features health.Features `json:"features"`
}

type predictResponse struct {
	Status           string             `json:"status"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
}

func (c *Client) Predict(ctx context.Context, rec health.Record, f health.Features) (predictor.Prediction, error) {
	if !c.IsConfigured() {
		return predictor.Prediction{}, ErrNotConfigured
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers[c.apiKeyHeader] = c.apiKey
	}

	var out predictResponse
	err := c.http.DoJSON(ctx, http.MethodPost, predictPath, headers, predictRequest{Record: rec, Features: f}, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return predictor.Prediction{}, ErrUnauthorized
		}
		return predictor.Prediction{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	status, ok := health.ParseStatus(out.Status)
	if !ok {
		return predictor.Prediction{}, fmt.Errorf("%w: unknown status %q", ErrUpstream, out.Status)
	}
	scores := make(map[health.Status]float64, len(health.Statuses))
	for _, st := range health.Statuses {
		scores[st] = 0
	}
	for k, v := range out.ConfidenceScores {
		if st, ok := health.ParseStatus(k); ok {
			scores[st] = v
		}
	}
	return predictor.Prediction{Status: status, ConfidenceScores: scores}, nil
}
