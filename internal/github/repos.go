package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vibetorch/backend/go-services/pkg/metrics"
)

// Repository is the normalized view returned to clients. The field set is
// fixed; unlisted provider fields are never passed through.
type Repository struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Description     string `json:"description"`
	Private         bool   `json:"private"`
	HTMLURL         string `json:"html_url"`
	UpdatedAt       string `json:"updated_at"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
}

// rawRepository keeps the nullable provider fields as pointers so
// normalization can apply explicit defaults.
type rawRepository struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	Private         bool    `json:"private"`
	HTMLURL         string  `json:"html_url"`
	UpdatedAt       string  `json:"updated_at"`
	Language        *string `json:"language"`
	StargazersCount int     `json:"stargazers_count"`
	ForksCount      int     `json:"forks_count"`
}

func (r rawRepository) normalize() Repository {
	desc := ""
	if r.Description != nil {
		desc = *r.Description
	}
	lang := "Unknown"
	if r.Language != nil {
		lang = *r.Language
	}
	return Repository{
		ID:              r.ID,
		Name:            r.Name,
		FullName:        r.FullName,
		Description:     desc,
		Private:         r.Private,
		HTMLURL:         r.HTMLURL,
		UpdatedAt:       r.UpdatedAt,
		Language:        lang,
		StargazersCount: r.StargazersCount,
		ForksCount:      r.ForksCount,
	}
}

// ListRepositories fetches the 50 most recently updated repositories the
// access token can see.
func (c *Client) ListRepositories(ctx context.Context, token string) ([]Repository, error) {
	if token == "" {
		return nil, &AuthError{Reason: "no access token found"}
	}

	url := c.apiBaseURL + "/user/repos?sort=updated&per_page=50"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Op: "repository listing", Err: err}
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.bearerClient(ctx, token).Do(req)
	if err != nil {
		metrics.GithubCalls.WithLabelValues("list_repos", "error").Inc()
		return nil, &NetworkError{Op: "repository listing", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GithubCalls.WithLabelValues("list_repos", "error").Inc()
		return nil, &FetchError{Status: resp.StatusCode}
	}

	var raw []rawRepository
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		metrics.GithubCalls.WithLabelValues("list_repos", "error").Inc()
		return nil, &NetworkError{Op: "repository listing", Err: err}
	}
	metrics.GithubCalls.WithLabelValues("list_repos", "ok").Inc()

	repos := make([]Repository, 0, len(raw))
	for _, r := range raw {
		repos = append(repos, r.normalize())
	}
	return repos, nil
}

// GetRepository fetches a single repository by owner and name.
func (c *Client) GetRepository(ctx context.Context, token, owner, name string) (*Repository, error) {
	if token == "" {
		return nil, &AuthError{Reason: "no access token found"}
	}

	url := fmt.Sprintf("%s/repos/%s/%s", c.apiBaseURL, owner, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{Op: "repository fetch", Err: err}
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.bearerClient(ctx, token).Do(req)
	if err != nil {
		metrics.GithubCalls.WithLabelValues("get_repo", "error").Inc()
		return nil, &NetworkError{Op: "repository fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GithubCalls.WithLabelValues("get_repo", "error").Inc()
		return nil, &NotFoundError{Owner: owner, Repo: name}
	}

	var raw rawRepository
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		metrics.GithubCalls.WithLabelValues("get_repo", "error").Inc()
		return nil, &NetworkError{Op: "repository fetch", Err: err}
	}
	metrics.GithubCalls.WithLabelValues("get_repo", "ok").Inc()

	repo := raw.normalize()
	return &repo, nil
}
