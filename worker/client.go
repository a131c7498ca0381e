package worker

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

	"github.com/google/uuid"

	"github.com/membridge/membridge/core"
	"github.com/membridge/membridge/logging"
)

// DefaultBaseURL is where the worker listens when nothing else is configured.
const DefaultBaseURL = "http://127.0.0.1:37777"

// DefaultHealthTimeout bounds the health probe. The probe is the one call that
// gates every feature, so it gets a hard deadline instead of relying on the
// transport's own timeout like the other endpoints do.
const DefaultHealthTimeout = time.Second

// InitResult is the worker's response to a successful session initialization.
type InitResult struct {
	SessionDBID  int64 `json:"sessionDbId"`
	PromptNumber int   `json:"promptNumber"`
}

// Options configures a Client.
type Options struct {
	// HTTPClient performs all requests. Defaults to a fresh *http.Client with
	// a 30s overall timeout.
	HTTPClient *http.Client

	// HealthTimeout bounds Healthy. Defaults to DefaultHealthTimeout.
	HealthTimeout time.Duration

	// Logger receives debug-grade transport diagnostics. Defaults to no-op.
	Logger logging.Logger
}

// Client issues one bounded HTTP request per logical worker operation. It
// keeps no state between calls and is safe for concurrent use.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	healthTimeout time.Duration
	logger        logging.Logger
}

// NewClient creates a worker client for the given base URL (DefaultBaseURL
// when empty) with optional overrides.
func NewClient(baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient:    &http.Client{Timeout: 30 * time.Second},
		HealthTimeout: DefaultHealthTimeout,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    opts.HTTPClient,
		healthTimeout: opts.HealthTimeout,
		logger:        logging.OrNoOp(opts.Logger),
	}
}

// Healthy reports whether the worker answers its health endpoint. Any network
// error, timeout or non-2xx status yields false. The call is bounded by the
// configured health timeout regardless of the caller's context.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()
	_, ok := c.get(ctx, "/api/health", nil)
	return ok
}

// InitSession registers a new session with the worker. Returns nil on any
// failure; the caller may retry on a later lifecycle event.
func (c *Client) InitSession(ctx context.Context, sessionID, project, prompt string) *InitResult {
	body, ok := c.post(ctx, "/api/sessions/init", map[string]any{
		"contentSessionId": sessionID,
		"project":          project,
		"prompt":           prompt,
	})
	if !ok {
		return nil
	}
	var res InitResult
	if err := json.Unmarshal(body, &res); err != nil {
		c.logger.Debug("worker: init response not decodable", "error", err)
		return nil
	}
	return &res
}

// SendObservation records one tool invocation. Fire-and-forget: failures are
// swallowed and nothing is surfaced to the caller.
func (c *Client) SendObservation(ctx context.Context, ev core.ToolEvent) {
	c.post(ctx, "/api/sessions/observations", map[string]any{
		"contentSessionId": ev.SessionID,
		"tool_name":        ev.ToolName,
		"tool_input":       ev.Input,
		"tool_response":    ev.Output,
		"cwd":              ev.CWD,
	})
}

// Summarize asks the worker to condense the latest exchange. Fire-and-forget.
func (c *Client) Summarize(ctx context.Context, sessionID, lastUser, lastAssistant string) {
	c.post(ctx, "/api/sessions/summarize", map[string]any{
		"contentSessionId":       sessionID,
		"last_user_message":      lastUser,
		"last_assistant_message": lastAssistant,
	})
}

// CompleteSession marks the session finished on the worker side. Fire-and-forget.
func (c *Client) CompleteSession(ctx context.Context, sessionID string) {
	c.post(ctx, "/api/sessions/complete", map[string]any{
		"contentSessionId": sessionID,
	})
}

// SubagentComplete notifies the worker that a subagent finished, letting it
// flush any observations the subagent queued. Fire-and-forget.
func (c *Client) SubagentComplete(ctx context.Context, sessionID, project string) {
	c.post(ctx, "/api/sessions/subagent-complete", map[string]any{
		"contentSessionId": sessionID,
		"project":          project,
	})
}

// FetchContext retrieves the pre-formatted project context blob. The worker
// answers with either plain text or {"content": "..."}; empty bodies, empty
// objects and the literal text "null" all normalize to absence. The second
// return value is false when no context is available, for whatever reason.
func (c *Client) FetchContext(ctx context.Context, project string) (string, bool) {
	body, ok := c.get(ctx, "/api/context/inject", url.Values{"project": {project}})
	if !ok {
		return "", false
	}
	return sniffContext(body)
}

// Search queries the worker's memory index and returns the payload as text.
// Unlike every other operation, failures come back as descriptive strings:
// the result is relayed directly to the model as tool output, so an error
// message is more useful there than silence.
func (c *Client) Search(ctx context.Context, query, project string) string {
	body, ok := c.get(ctx, "/api/search", url.Values{"q": {query}, "project": {project}})
	if !ok {
		return fmt.Sprintf("Memory search is unavailable (worker not reachable). Query was: %s", query)
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "No results found."
	}
	return text
}

// sniffContext normalizes the context endpoint's permissive response shapes.
func sniffContext(body []byte) (string, bool) {
	text := strings.TrimSpace(string(body))
	if text == "" || text == "null" || text == "{}" {
		return "", false
	}
	if strings.HasPrefix(text, "{") {
		var payload struct {
			Content *string `json:"content"`
		}
		if err := json.Unmarshal(body, &payload); err != nil || payload.Content == nil {
			return "", false
		}
		content := strings.TrimSpace(*payload.Content)
		return content, content != ""
	}
	return text, true
}

// get performs one GET request. Returns the body and true only for a 2xx
// response; every failure mode collapses to ok=false.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, bool) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.logger.Debug("worker: building request failed", "path", path, "error", err)
		return nil, false
	}
	return c.do(req)
}

// post performs one POST request with a JSON body. Same fallback contract as get.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Debug("worker: encoding payload failed", "path", path, "error", err)
		return nil, false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		c.logger.Debug("worker: building request failed", "path", path, "error", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, bool) {
	req.Header.Set("X-Request-ID", uuid.NewString())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("worker: request failed", "path", req.URL.Path, "error", err)
		return nil, false
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Debug("worker: reading response failed", "path", req.URL.Path, "error", err)
		return nil, false
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("worker: non-2xx response", "path", req.URL.Path, "status", resp.StatusCode)
		return nil, false
	}
	return body, true
}
