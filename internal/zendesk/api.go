package zendesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const (
	zendeskApiUrl = "zendesk.com/api/v2"
	maxRetries    = 3
)

var ErrMaxRetries = errors.New("max retries exceeded")

type Client struct {
	creds      Creds
	baseUrl    string
	httpClient *http.Client
}

// Creds holds the Basic auth pair sent with every request. When Token is set
// the Zendesk API token scheme is used instead of the password.
type Creds struct {
	Username  string `mapstructure:"username" json:"username"`
	Password  string `mapstructure:"password" json:"password"`
	Token     string `mapstructure:"token" json:"token"`
	Subdomain string `mapstructure:"subdomain" json:"subdomain"`
	BaseUrl   string `mapstructure:"base_url" json:"base_url"`
}

// APIError is returned for any non-2xx response that is not retried.
type APIError struct {
	Method     string
	Url        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Url, e.StatusCode)
}

func NewClient(creds Creds, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseUrl := creds.BaseUrl
	if baseUrl == "" {
		baseUrl = fmt.Sprintf("https://%s.%s", creds.Subdomain, zendeskApiUrl)
	}

	return &Client{
		creds:      creds,
		baseUrl:    baseUrl,
		httpClient: httpClient,
	}
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func (c *Client) basicAuth() (string, string) {
	if c.creds.Token != "" {
		return fmt.Sprintf("%s/token", c.creds.Username), c.creds.Token
	}
	return c.creds.Username, c.creds.Password
}

// ApiRequest is a wrapper for apiRequest, meant for more streamlined error logging.
func (c *Client) ApiRequest(ctx context.Context, method, url string, body io.Reader, target interface{}) error {
	if err := c.apiRequest(ctx, method, url, body, target); err != nil {
		slog.Warn("zendesk API error", "method", method, "url", url, "error", err)
		return fmt.Errorf("running zendesk API request: %w", err)
	}

	return nil
}

func (c *Client) apiRequest(ctx context.Context, method, url string, body io.Reader, target interface{}) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return fmt.Errorf("creating the request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.SetBasicAuth(c.basicAuth())

		res, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending the request: %w", err)
		}

		if res.StatusCode >= 200 && res.StatusCode < 300 {
			return decodeBody(res, target)
		}

		if res.StatusCode != http.StatusTooManyRequests {
			data, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
			_ = res.Body.Close()
			return &APIError{Method: method, Url: url, StatusCode: res.StatusCode, Body: string(data)}
		}

		if err := res.Body.Close(); err != nil {
			return err
		}

		if attempt == maxRetries {
			break
		}

		retryAfter := parseRetryAfter(res.Header.Get("Retry-After"))
		slog.Warn("rate limit exceeded, retrying", "retryAfter", retryAfter, "attempt", attempt)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(retryAfter) * time.Second):
		}
	}

	return ErrMaxRetries
}

func decodeBody(res *http.Response, target interface{}) error {
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading the response body: %w", err)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshaling the response to JSON: %w", err)
	}

	return nil
}

func parseRetryAfter(h string) int {
	if h == "" {
		return 1
	}

	retryAfter, err := strconv.Atoi(h)
	if err != nil || retryAfter < 0 {
		slog.Warn("failed to parse Retry-After header", "value", h)
		return 1
	}

	return retryAfter
}
