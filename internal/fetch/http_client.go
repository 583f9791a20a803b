package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ClientOptions for the fetch client.
type ClientOptions struct {
	Timeout   time.Duration
	UserAgent string
	// RetryMax is the number of extra attempts per request. Zero means one attempt.
	RetryMax int
	Logger   *zap.Logger
}

// StatusError is returned for any non-2xx response. URL has its credentials redacted.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client is a small wrapper around retryablehttp to provide timeouts, UA and JSON decoding.
type Client struct {
	inner     *retryablehttp.Client
	userAgent string
}

// NewClient creates a new Client.
func NewClient(opts ClientOptions) *Client {
	r := retryablehttp.NewClient()
	r.RetryMax = opts.RetryMax
	r.RetryWaitMin = 200 * time.Millisecond
	r.RetryWaitMax = 2 * time.Second
	r.HTTPClient.Timeout = opts.Timeout
	if opts.Logger != nil {
		r.Logger = leveledLogger{opts.Logger.Sugar()}
	} else {
		r.Logger = nil
	}
	// hand the last response back instead of a "giving up" error so callers see the status
	r.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{inner: r, userAgent: opts.UserAgent}
}

// Get performs a GET with the client's user agent and the given headers.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.inner.Do(req)
	return resp, redactError(err)
}

// GetJSON fetches url and decodes a 2xx JSON body into dst.
func (c *Client) GetJSON(ctx context.Context, rawURL string, dst any) error {
	resp, err := c.Get(ctx, rawURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: RedactURL(rawURL), StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// StandardClient exposes a plain *http.Client for libraries that want one.
func (c *Client) StandardClient() *http.Client {
	return c.inner.StandardClient()
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, redactFields(keysAndValues)...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, redactFields(keysAndValues)...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, redactFields(keysAndValues)...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, redactFields(keysAndValues)...)
}

// redactFields masks the request URL and transport errors retryablehttp logs between attempts.
func redactFields(keysAndValues []interface{}) []interface{} {
	out := make([]interface{}, len(keysAndValues))
	for i, v := range keysAndValues {
		switch v := v.(type) {
		case *url.URL:
			out[i] = RedactURL(v.String())
		case string:
			out[i] = lo.Ternary(strings.HasPrefix(v, "http"), RedactURL(v), v)
		case error:
			out[i] = redactError(v)
		default:
			out[i] = v
		}
	}
	return out
}
