package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/storage"
)

// HTTPClient implements DataSource by calling the repsheet REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the log lives on the server (reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListExercises(ctx context.Context, start, end, name string) ([]models.ExerciseRow, error) {
	params := url.Values{}
	if start != "" {
		params.Set("start", start)
	}
	if end != "" {
		params.Set("end", end)
	}
	if name != "" {
		params.Set("name", name)
	}

	body, err := c.get(ctx, "/api/v1/exercises", params)
	if err != nil {
		return nil, err
	}

	var rows []models.ExerciseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) MostRecentExercises(ctx context.Context) ([]models.ExerciseRow, error) {
	body, err := c.get(ctx, "/api/v1/exercises/recent", nil)
	if err != nil {
		return nil, err
	}

	// The server returns ordered body-part groups; flatten back to rows.
	var groups []struct {
		BodyPart  string               `json:"body_part"`
		Exercises []models.ExerciseRow `json:"exercises"`
	}
	if err := json.Unmarshal(body, &groups); err != nil {
		return nil, fmt.Errorf("httpclient: decode recent exercises: %w", err)
	}

	var rows []models.ExerciseRow
	for _, g := range groups {
		rows = append(rows, g.Exercises...)
	}
	return rows, nil
}

func (c *HTTPClient) LogExercise(ctx context.Context, row models.ExerciseRow) (models.ExerciseRow, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return models.ExerciseRow{}, fmt.Errorf("httpclient: encode row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/exercises", bytes.NewReader(payload))
	if err != nil {
		return models.ExerciseRow{}, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ExerciseRow{}, fmt.Errorf("httpclient: post exercise: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ExerciseRow{}, fmt.Errorf("httpclient: read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusConflict:
		return models.ExerciseRow{}, storage.ErrDuplicate
	default:
		return models.ExerciseRow{}, fmt.Errorf("httpclient: post exercise returned %d: %s", resp.StatusCode, body)
	}

	var logged models.ExerciseRow
	if err := json.Unmarshal(body, &logged); err != nil {
		return models.ExerciseRow{}, fmt.Errorf("httpclient: decode logged row: %w", err)
	}
	return logged, nil
}
