// Package mlflow is a minimal MLflow 2.0 REST tracking client.
//
// Telemetry is a side channel: every method is best-effort, logging and
// swallowing failures so an unreachable tracking server can never abort a
// check run.
package mlflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Tracker starts telemetry runs. Tests inject fakes.
type Tracker interface {
	StartRun(ctx context.Context, name string) Run
}

// Run records telemetry for one check invocation.
type Run interface {
	LogParam(ctx context.Context, key, value string)
	LogMetric(ctx context.Context, key string, value float64)
	SetTag(ctx context.Context, key, value string)
	End(ctx context.Context)
}

// Client implements Tracker against an MLflow tracking server.
type Client struct {
	baseURL    string
	experiment string
	client     *http.Client
}

// NewClient creates a tracker for the given server and experiment name.
func NewClient(baseURL, experiment string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		experiment: experiment,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// StartRun resolves (creating if needed) the experiment and opens a run.
// On any failure it returns a no-op run.
func (c *Client) StartRun(ctx context.Context, name string) Run {
	expID, err := c.experimentID(ctx)
	if err != nil {
		log.Printf("mlflow: start run: %v", err)
		return noopRun{}
	}

	body, err := c.post(ctx, "runs/create", map[string]any{
		"experiment_id": expID,
		"run_name":      name,
		"start_time":    time.Now().UnixMilli(),
	})
	if err != nil {
		log.Printf("mlflow: start run: %v", err)
		return noopRun{}
	}

	runID := gjson.GetBytes(body, "run.info.run_id").String()
	if runID == "" {
		log.Printf("mlflow: start run: create response missing run id")
		return noopRun{}
	}

	return &activeRun{client: c, runID: runID}
}

func (c *Client) experimentID(ctx context.Context) (string, error) {
	endpoint := c.baseURL + "/api/2.0/mlflow/experiments/get-by-name?experiment_name=" + url.QueryEscape(c.experiment)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusOK {
		if id := gjson.GetBytes(body, "experiment.experiment_id").String(); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("get-by-name response missing experiment id")
	}

	// Absent experiment: create it.
	created, err := c.post(ctx, "experiments/create", map[string]any{"name": c.experiment})
	if err != nil {
		return "", err
	}
	if id := gjson.GetBytes(created, "experiment_id").String(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("create response missing experiment id")
}

func (c *Client) post(ctx context.Context, endpoint string, payload map[string]any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/2.0/mlflow/"+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// activeRun logs against an open MLflow run.
type activeRun struct {
	client *Client
	runID  string
}

func (r *activeRun) LogParam(ctx context.Context, key, value string) {
	_, err := r.client.post(ctx, "runs/log-parameter", map[string]any{
		"run_id": r.runID, "key": key, "value": value,
	})
	if err != nil {
		log.Printf("mlflow: log param %s: %v", key, err)
	}
}

func (r *activeRun) LogMetric(ctx context.Context, key string, value float64) {
	_, err := r.client.post(ctx, "runs/log-metric", map[string]any{
		"run_id": r.runID, "key": key, "value": value,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		log.Printf("mlflow: log metric %s: %v", key, err)
	}
}

func (r *activeRun) SetTag(ctx context.Context, key, value string) {
	_, err := r.client.post(ctx, "runs/set-tag", map[string]any{
		"run_id": r.runID, "key": key, "value": value,
	})
	if err != nil {
		log.Printf("mlflow: set tag %s: %v", key, err)
	}
}

func (r *activeRun) End(ctx context.Context) {
	_, err := r.client.post(ctx, "runs/update", map[string]any{
		"run_id": r.runID, "status": "FINISHED",
		"end_time": time.Now().UnixMilli(),
	})
	if err != nil {
		log.Printf("mlflow: end run: %v", err)
	}
}

// noopRun absorbs telemetry when the tracking server is unavailable.
type noopRun struct{}

func (noopRun) LogParam(context.Context, string, string)   {}
func (noopRun) LogMetric(context.Context, string, float64) {}
func (noopRun) SetTag(context.Context, string, string)     {}
func (noopRun) End(context.Context)                        {}

// Noop returns a Tracker that records nothing, for callers that disable
// telemetry.
func Noop() Tracker { return noopTracker{} }

type noopTracker struct{}

func (noopTracker) StartRun(context.Context, string) Run { return noopRun{} }
