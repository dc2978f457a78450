package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// expirySlack renews tokens slightly before the server-reported expiry.
const expirySlack = 30 * time.Second

// tokenSource caches the OAuth2 access token and refreshes it ahead of
// expiry. It is the only piece of the transport that needs locking.
type tokenSource struct {
	client *Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func (s *tokenSource) get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expiry.Add(-expirySlack)) {
		return s.token, nil
	}

	token, expiresIn, err := s.fetch()
	if err != nil {
		return "", fmt.Errorf("failed to obtain access token: %w", err)
	}

	s.token = token
	s.expiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	return s.token, nil
}

// fetch requests a fresh token from the auth endpoint. The password grant
// is used when account credentials are configured, application-only
// otherwise.
func (s *tokenSource) fetch() (string, int, error) {
	creds := s.client.creds

	form := url.Values{}
	if creds.Username != "" {
		form.Set("grant_type", "password")
		form.Set("username", creds.Username)
		form.Set("password", creds.Password)
	} else {
		form.Set("grant_type", "client_credentials")
	}

	req, err := http.NewRequest(http.MethodPost, s.client.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(creds.ClientID, creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.client.userAgent)

	resp, err := s.client.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(payload))
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(payload, &grant); err != nil {
		return "", 0, fmt.Errorf("failed to decode token response: %w", err)
	}
	if grant.Error != "" {
		return "", 0, fmt.Errorf("token request rejected: %s", grant.Error)
	}
	if grant.AccessToken == "" {
		return "", 0, fmt.Errorf("token response carried no access token")
	}

	return grant.AccessToken, grant.ExpiresIn, nil
}
