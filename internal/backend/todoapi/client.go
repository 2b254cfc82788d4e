// Package todoapi implements the service.Service interface over the todo
// backend's REST contract.
package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"

	"todoapp/internal/config"
	"todoapp/internal/service"
)

// RequestIDHeader carries a per-request id that also appears in the logs.
const RequestIDHeader = "X-Request-ID"

// Paths relative to the base URL.
const (
	completedPath  = "/completed"
	incompletePath = "/incomplete"
)

// Client implements service.Service against a single base URL.
// It does not retry and sets no timeout of its own; the caller's context
// bounds every call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for cfg.BaseURL using http.DefaultClient.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithHTTPClient(cfg.BaseURL, http.DefaultClient), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// ListTasks returns the tasks matching filter.
func (c *Client) ListTasks(ctx context.Context, filter service.Filter) ([]service.Task, error) {
	path := ""
	switch filter {
	case service.FilterAll:
	case service.FilterCompleted:
		path = completedPath
	case service.FilterIncomplete:
		path = incompletePath
	default:
		return nil, &service.ValidationError{Field: "filter", Message: fmt.Sprintf("invalid filter: %q", filter)}
	}

	var tasks []service.Task
	if err := c.do(ctx, "list", http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, id service.TaskID) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, "get", http.MethodGet, taskPath(id), nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a task and returns the server's copy.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, "create", http.MethodPost, "", task, &created); err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// UpdateTask sends the full task body and returns the server's copy.
func (c *Client) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	var updated service.Task
	if err := c.do(ctx, "update", http.MethodPut, taskPath(task.ID), task, &updated); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// DeleteTask deletes a task. Any response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id service.TaskID) error {
	return c.do(ctx, "delete", http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id service.TaskID) string {
	return "/" + url.PathEscape(id.String())
}

// do performs one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	logger := zerolog.Ctx(ctx)
	reqID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &service.RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &service.RemoteError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug().Str("op", op).Str("method", method).Str("url", req.URL.String()).Str("request_id", reqID).Msg("remote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Str("request_id", reqID).Msg("remote transport failure")
		return &service.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return statusError(logger, op, reqID, resp.StatusCode, err)
	}

	logger.Debug().Str("op", op).Int("status", resp.StatusCode).Str("request_id", reqID).Msg("remote response")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error().Err(err).Str("op", op).Int("status", resp.StatusCode).Str("request_id", reqID).Msg("remote response not decodable")
		return &service.RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError converts a non-2xx response into a RemoteError and records the
// payload for diagnostics.
func statusError(logger *zerolog.Logger, op, reqID string, status int, err error) error {
	remote := &service.RemoteError{Op: op, StatusCode: status, Err: err}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		remote.Body = apiErr.Body
		text := http.StatusText(apiErr.Code)
		if text == "" {
			text = "unexpected status"
		}
		remote.Err = errors.New(text)
	}
	logger.Error().
		Str("op", op).
		Int("status", status).
		Str("body", remote.Body).
		Str("request_id", reqID).
		Msg("remote call failed")
	return remote
}
