// Package client calls the diagnosis API over HTTP.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"diagnosis_api/pkg/httpx"
	"diagnosis_api/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer of the API.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded %d %s: %s", e.StatusCode, e.Code, e.Message)
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTransport replaces the transport under the logging round tripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

func WithLogFieldMaxLen(maxLen int) Option {
	return func(c *Client) {
		c.logOpts = append(c.logOpts, httpx.WithLogFieldMaxLen(maxLen))
	}
}

// WithLogLevel sets the level the request and response dumps are logged at.
func WithLogLevel(level slog.Level) Option {
	return func(c *Client) {
		c.logOpts = append(c.logOpts, httpx.WithLogLevel(level))
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	transport  http.RoundTripper
	logOpts    []httpx.Option
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		transport:  http.DefaultTransport,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.Transport = httpx.NewLoggingRoundTripper(c.transport, c.logOpts...)

	return c
}

// Status returns the service descriptor served at the root path.
func (c *Client) Status(ctx context.Context) (rest.Status, error) {
	var status rest.Status

	if err := c.do(ctx, http.MethodGet, "/", nil, &status); err != nil {
		return rest.Status{}, err
	}

	return status, nil
}

// Predict returns the class label for one feature vector.
func (c *Client) Predict(ctx context.Context, features []float64) (int, error) {
	var response rest.PredictResponse

	if err := c.do(ctx, http.MethodPost, "/predict", rest.PredictRequest{Features: lo.ToSlicePtr(features)}, &response); err != nil {
		return 0, err
	}

	return response.Prediction, nil
}

func (c *Client) do(ctx context.Context, method, path string, request, dest any) error {
	body := io.Reader(http.NoBody)

	if request != nil {
		b, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}

// newAPIError falls back to the status text when the body is not an error
// document.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	var body rest.Error

	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		}

		apiErr.Code = string(body.Code)
	}

	return apiErr
}
