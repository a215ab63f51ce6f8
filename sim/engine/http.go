package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tiered-sim/tiered-sim/sim"
)

// HTTPEngine posts the submission to a remote engine service and waits for
// the full result in the response body.
type HTTPEngine struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPEngine creates an engine client. timeout bounds the whole run.
func NewHTTPEngine(baseURL, apiKey string, timeout time.Duration) *HTTPEngine {
	return &HTTPEngine{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name implements Engine.
func (e *HTTPEngine) Name() string {
	return "http:" + e.baseURL
}

// Run implements Engine.
func (e *HTTPEngine) Run(ctx context.Context, sub *Submission) ([]sim.CompletedTaskRecord, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling submission")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/runs", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	logrus.Debugf("posting run %s to %s (%d bytes)", sub.RunID, e.baseURL, len(body))
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "HTTP error")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return decodeResult(data, sub.RunID)
}
