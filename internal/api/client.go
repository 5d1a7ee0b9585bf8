package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options tune a Client at construction time.
type Options struct {
	// Verbose prints each operation and its parameters before sending.
	Verbose bool
	// Diag receives verbose output. Defaults to os.Stdout.
	Diag io.Writer
	// HTTPClient defaults to a client with no timeout.
	HTTPClient *http.Client
	// UserAgent is sent on every request when set.
	UserAgent string
}

// Client invokes operations on the lending service.
type Client struct {
	baseURL   string
	http      *http.Client
	verbose   bool
	diag      io.Writer
	userAgent string
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts Options) *Client {
	// Strip trailing slash for consistent URL building.
	baseURL = strings.TrimRight(baseURL, "/")

	c := &Client{
		baseURL:   baseURL,
		http:      opts.HTTPClient,
		verbose:   opts.Verbose,
		diag:      opts.Diag,
		userAgent: opts.UserAgent,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.diag == nil {
		c.diag = os.Stdout
	}
	return c
}

// Invoke sends one operation and decodes the reply. Only transport faults
// are returned as errors; an application-level failure is a Response whose
// status is not ok.
func (c *Client) Invoke(ctx context.Context, op Operation, params Params) (*Response, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, string(op))
	}
	if params == nil {
		params = Params{}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", op, err)
	}
	if c.verbose {
		fmt.Fprintf(c.diag, "→ %q, Payload: %s\n", string(op), body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(op), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: reading response: %w", op, err)
	}
	return decodeResponse(op, resp.StatusCode, raw)
}

// do executes the request with the standard headers.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.http.Do(req)
}

func (c *Client) url(op Operation) string {
	return c.baseURL + "/" + string(op)
}

// decodeResponse accepts any body that decodes as a service reply. A non-2xx
// status is only a transport fault when the body is not such a reply.
func decodeResponse(op Operation, code int, raw []byte) (*Response, error) {
	r, err := parseResponse(raw)
	if err == nil {
		return r, nil
	}
	if code < 200 || code > 299 {
		return nil, &StatusError{Op: op, StatusCode: code, Body: strings.TrimSpace(string(raw))}
	}
	return nil, fmt.Errorf("invoke %s: %w", op, err)
}
