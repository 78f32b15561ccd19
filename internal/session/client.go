package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arbor-sh/arbor/pkg/version"
)

const (
	// DefaultBaseURL is the host API address used when nothing else is
	// configured.
	DefaultBaseURL = "http://127.0.0.1:4096"

	// EnvHostURL overrides the host API base URL.
	EnvHostURL = "ARBOR_HOST_URL"

	// EnvServerURL is the address the host itself exports for plugins.
	EnvServerURL = "OPENCODE_SERVER"
)

// ErrNotFound indicates the host has no session with the requested id.
var ErrNotFound = errors.New("session not found")

// Client is the host session API consumed by the fork orchestrator and the
// lifecycle handler.
type Client interface {
	GetSession(ctx context.Context, id string) (*Session, error)
	ForkSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
	AppendLog(ctx context.Context, id, message string) error
}

// ResolveBaseURL picks the host API base URL: ARBOR_HOST_URL, then
// OPENCODE_SERVER, then the configured settings value, then the default.
func ResolveBaseURL(settingsURL string) string {
	if v := os.Getenv(EnvHostURL); v != "" {
		return v
	}
	if v := os.Getenv(EnvServerURL); v != "" {
		return v
	}
	if settingsURL != "" {
		return settingsURL
	}
	return DefaultBaseURL
}

// httpClient is the concrete Client over the host's HTTP API.
type httpClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*httpClient)(nil)

// NewClient creates a Client against baseURL. A nil http.Client gets a
// 10 second timeout. For testing, pass the httptest.Server URL directly.
func NewClient(baseURL string, client *http.Client) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// GetSession fetches one session by id.
func (c *httpClient) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	if err := c.do(ctx, http.MethodGet, "/session/"+id, nil, &sess); err != nil {
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	return &sess, nil
}

// ForkSession asks the host to duplicate the session and returns the copy.
func (c *httpClient) ForkSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	if err := c.do(ctx, http.MethodPost, "/session/"+id+"/fork", nil, &sess); err != nil {
		return nil, fmt.Errorf("session: fork %s: %w", id, err)
	}
	return &sess, nil
}

// DeleteSession removes the session on the host.
func (c *httpClient) DeleteSession(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/session/"+id, nil, nil); err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	return nil
}

// AppendLog appends an informational log entry to the session transcript.
func (c *httpClient) AppendLog(ctx context.Context, id, message string) error {
	body := struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}{Level: "info", Message: message}

	if err := c.do(ctx, http.MethodPost, "/session/"+id+"/log", body, nil); err != nil {
		return fmt.Errorf("session: append log to %s: %w", id, err)
	}
	return nil
}

func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "arbor/"+version.GetVersion())
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
