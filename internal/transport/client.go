// Package transport is the HTTP collaborator behind the live model: it
// owns OAuth2 authentication, rate limiting, retries, and reddit's error
// envelope, and exposes only Get and Post.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/redditlive/internal/retry"
	"github.com/redditlive/pkg/models"
)

const (
	defaultBaseURL = "https://oauth.reddit.com"
	defaultAuthURL = "https://www.reddit.com/api/v1/access_token"
)

// Credentials identify the reddit OAuth2 application and, optionally, the
// account to act as. With a username and password the password grant is
// used; without them, application-only (client_credentials).
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// Config configures a Client.
type Config struct {
	BaseURL           string
	AuthURL           string
	UserAgent         string
	Credentials       Credentials
	Timeout           time.Duration
	RequestsPerMinute int
	Retry             retry.Config
	Logger            zerolog.Logger
}

// Client is a rate-limited, authenticated HTTP client for the reddit API.
// It satisfies the live.Client collaborator contract.
type Client struct {
	baseURL   string
	authURL   string
	userAgent string
	creds     Credentials
	client    *http.Client
	limiter   *rate.Limiter
	retry     retry.Config
	log       zerolog.Logger

	tokens tokenSource
}

// New creates a reddit API client.
func New(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	authURL := config.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	perMinute := config.RequestsPerMinute
	if perMinute == 0 {
		perMinute = 60
	}

	retryConfig := config.Retry
	if retryConfig.MaxRetries == 0 && retryConfig.BaseDelay == 0 {
		retryConfig = retry.DefaultConfig()
	}

	c := &Client{
		baseURL:   baseURL,
		authURL:   authURL,
		userAgent: config.UserAgent,
		creds:     config.Credentials,
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		retry:     retryConfig,
		log:       config.Logger,
	}
	c.tokens.client = c
	return c
}

// Get issues a GET request against the API and decodes the JSON response
// into v when v is non-nil.
func (c *Client) Get(path string, params url.Values, v any) error {
	return retry.Do(c.retry, c.log, transientError, func() error {
		return c.do(http.MethodGet, path, params, nil, v)
	})
}

// Post issues a form-encoded POST request against the API and decodes the
// JSON response into v when v is non-nil. Reddit's in-body error envelope
// is surfaced as *models.APIError.
func (c *Client) Post(path string, form url.Values, v any) error {
	merged := url.Values{}
	for key, values := range form {
		merged[key] = values
	}
	merged.Set("api_type", "json")
	return retry.Do(c.retry, c.log, transientError, func() error {
		return c.do(http.MethodPost, path, nil, merged, v)
	})
}

func (c *Client) do(method, path string, params, form url.Values, v any) error {
	requestID := uuid.NewString()

	if err := c.limiter.Wait(context.Background()); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	token, err := c.tokens.get()
	if err != nil {
		return err
	}

	requestURL := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimPrefix(path, "/"))
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, requestURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if params != nil {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("reddit API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.RequestError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	if apiErr := models.ExtractAPIError(payload); apiErr != nil {
		return apiErr
	}

	if v != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// transientError classifies failures worth retrying: rate limiting, server
// errors, and network-level problems. API-reported errors (including
// conflicts) are never transient.
func transientError(err error) bool {
	var reqErr *models.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
