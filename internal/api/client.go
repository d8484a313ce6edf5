package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dungnt9/bus-reservation-client/internal/observability"
	"github.com/dungnt9/bus-reservation-client/internal/session"
)

// DefaultAllowUnauthorized lists endpoints whose 401 responses must not
// trigger the destructive logout. The phone-change verification flow is
// legitimately callable while the stored session is stale.
var DefaultAllowUnauthorized = []string{
	"/auth/request-phone-change",
	"/auth/verify-phone-change",
}

const defaultLoginPath = "/login"

// envelope is the uniform transport wrapper emitted by the API. Callers of
// the client only ever see the payload under Data.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Session    *session.Session
	HTTPClient *http.Client
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	// AllowUnauthorized overrides DefaultAllowUnauthorized when non-nil.
	AllowUnauthorized []string
	// LoginPath is the navigation target issued on forced logout.
	LoginPath string
}

// Client is the single point of outbound request construction and response
// interpretation. The bearer token is sourced fresh from the session on
// every call; the client itself carries no credential state.
type Client struct {
	baseURL           string
	http              *http.Client
	sess              *session.Session
	logger            *zap.Logger
	metrics           *observability.Metrics
	allowUnauthorized []string
	loginPath         string
}

// New builds a client from options, applying defaults.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	allow := opts.AllowUnauthorized
	if allow == nil {
		allow = DefaultAllowUnauthorized
	}
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = defaultLoginPath
	}
	return &Client{
		baseURL:           strings.TrimRight(opts.BaseURL, "/"),
		http:              httpClient,
		sess:              opts.Session,
		logger:            logger,
		metrics:           opts.Metrics,
		allowUnauthorized: allow,
		loginPath:         loginPath,
	}
}

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.metrics.RecordFailure(method, path, "encode")
			return &APIError{Message: "failed to encode request body", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		c.metrics.RecordFailure(method, path, "build")
		return &APIError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordFailure(method, path, "network")
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &APIError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordFailure(method, path, "read")
		return &APIError{Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}
	c.metrics.RecordCall(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		if resp.StatusCode == http.StatusUnauthorized && !c.unauthorizedAllowed(path) {
			c.logger.Info("session rejected by server, clearing credentials",
				zap.String("path", path))
			c.sess.Expire(c.loginPath)
		}
		return &APIError{Status: resp.StatusCode, Code: eb.Code, Message: eb.Message}
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "malformed response envelope", Err: err}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "malformed response payload", Err: err}
	}
	return nil
}

func (c *Client) unauthorizedAllowed(path string) bool {
	for _, endpoint := range c.allowUnauthorized {
		if strings.Contains(path, endpoint) {
			return true
		}
	}
	return false
}
