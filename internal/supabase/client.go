package supabase

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

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/five82/gamedex/internal/catalog"
)

// Ensure Client implements catalog.Collection at compile time.
var _ catalog.Collection = (*Client)(nil)

// Client talks to a Supabase (PostgREST) table over HTTP.
type Client struct {
	baseURL   *url.URL
	table     string
	key       string
	http      *http.Client
	userAgent string
}

// Options configure a Client.
type Options struct {
	URL        string
	Key        string
	Table      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

const (
	defaultTable     = "games"
	defaultUserAgent = "gamedex/0.1"
	defaultTimeout   = 10 * time.Second
	restPrefix       = "/rest/v1/"
	selectColumns    = "id,name,platform,category,notable_features"
	maxErrorBody     = 1 << 20
)

// APIError is a failure reported by the hosted store in a response body.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// NewClient builds a Client for the project at opts.URL.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	table := strings.TrimSpace(opts.Table)
	if table == "" {
		table = defaultTable
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:   base,
		table:     table,
		key:       strings.TrimSpace(opts.Key),
		http:      httpClient,
		userAgent: defaultUserAgent,
	}, nil
}

// List retrieves every record ordered by id ascending.
func (c *Client) List(ctx context.Context) ([]catalog.Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("select", selectColumns)
	values.Set("order", "id.asc")
	rel := &url.URL{Path: restPrefix + c.table, RawQuery: values.Encode()}

	var records []catalog.Record
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Insert adds one candidate. The store assigns the id.
func (c *Client) Insert(ctx context.Context, cand catalog.Candidate) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	payload, err := json.Marshal([]catalog.Candidate{cand})
	if err != nil {
		return fmt.Errorf("encode candidate: %w", err)
	}
	rel := &url.URL{Path: restPrefix + c.table}
	return c.doURL(ctx, http.MethodPost, rel, payload, nil)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if c.key != "" {
		req.Header.Set("apikey", c.key)
		req.Header.Set("Authorization", "Bearer "+c.key)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("supabase %s %s failed (request %s): %v", method, rel.Path, requestID, err)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if apiErr := parseAPIError(resp.StatusCode, raw); apiErr != nil {
		log.Printf("supabase %s %s returned error (request %s): %v", method, rel.Path, requestID, apiErr)
		return apiErr
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseAPIError treats any non-empty error field in the body as a failure,
// whatever the HTTP status.
func parseAPIError(status int, body []byte) *APIError {
	if !gjson.ValidBytes(body) {
		return nil
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil
	}
	message := ""
	for _, field := range []string{"message", "error_description", "msg", "error"} {
		value := doc.Get(field)
		if value.IsObject() {
			value = value.Get("message")
		}
		if text := strings.TrimSpace(value.String()); text != "" {
			message = text
			break
		}
	}
	if message == "" {
		return nil
	}
	return &APIError{
		Status:  status,
		Code:    doc.Get("code").String(),
		Message: message,
		Details: strings.TrimSpace(doc.Get("details").String()),
		Hint:    strings.TrimSpace(doc.Get("hint").String()),
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("supabase url is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse supabase url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse supabase url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
