package github

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/vibetorch/backend/go-services/internal/config"
	"github.com/vibetorch/backend/go-services/pkg/metrics"
)

const acceptHeader = "application/vnd.github.v3+json"

// Client talks to GitHub: the OAuth token endpoint for the code exchange
// and the REST API for identity and repository reads.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	apiBaseURL   string
	httpClient   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		clientID:     cfg.GitHub.ClientID,
		clientSecret: cfg.GitHub.ClientSecret,
		tokenURL:     cfg.GitHub.TokenURL,
		apiBaseURL:   strings.TrimRight(cfg.GitHub.APIBaseURL, "/"),
		// bounded timeout so a stalled provider call can't pile up requests
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// bearerClient wraps the base client with the user's access token.
func (c *Client) bearerClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	hc.Timeout = c.httpClient.Timeout
	return hc
}

// User is the authenticated GitHub identity.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ExchangeCode trades an OAuth authorization code for an access token and
// fetches the identity it belongs to. Provider rejections come back as
// *AuthError (carrying GitHub's error_description when present), transport
// failures as *NetworkError.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*User, string, error) {
	body, err := json.Marshal(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"code":          code,
	})
	if err != nil {
		return nil, "", &NetworkError{Op: "token exchange", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, "", &NetworkError{Op: "token exchange", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.GithubCalls.WithLabelValues("token_exchange", "error").Inc()
		return nil, "", &NetworkError{Op: "token exchange", Err: err}
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		metrics.GithubCalls.WithLabelValues("token_exchange", "error").Inc()
		return nil, "", &AuthError{Reason: "invalid code or provider error"}
	}
	if tr.AccessToken == "" {
		metrics.GithubCalls.WithLabelValues("token_exchange", "error").Inc()
		reason := tr.ErrorDescription
		if reason == "" {
			reason = "invalid code or provider error"
		}
		return nil, "", &AuthError{Reason: reason}
	}
	metrics.GithubCalls.WithLabelValues("token_exchange", "ok").Inc()

	u, err := c.fetchUser(ctx, tr.AccessToken)
	if err != nil {
		return nil, "", err
	}
	return u, tr.AccessToken, nil
}

func (c *Client) fetchUser(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/user", nil)
	if err != nil {
		return nil, &NetworkError{Op: "identity fetch", Err: err}
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.bearerClient(ctx, token).Do(req)
	if err != nil {
		metrics.GithubCalls.WithLabelValues("user", "error").Inc()
		return nil, &NetworkError{Op: "identity fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GithubCalls.WithLabelValues("user", "error").Inc()
		return nil, &AuthError{Reason: "failed to retrieve identity"}
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		metrics.GithubCalls.WithLabelValues("user", "error").Inc()
		return nil, &AuthError{Reason: "failed to retrieve identity"}
	}
	metrics.GithubCalls.WithLabelValues("user", "ok").Inc()
	return &u, nil
}
