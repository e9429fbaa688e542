// Package github lists a user's public repositories from the GitHub REST API.
package github

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

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	platformotel "github.com/sinhaparth5/portfolio/internal/platform/otel"
	"github.com/sinhaparth5/portfolio/internal/platform/timeouts"
)

const (
	defaultBaseURL = "https://api.github.com"
	maxBodyBytes   = 4 << 20
)

// Config controls the GitHub client. Fields map to PORTFOLIO_GITHUB_* variables.
type Config struct {
	BaseURL string `env:"BASE_URL" envDefault:"https://api.github.com"`
	// Token is optional; it only raises the rate limit.
	Token string `env:"TOKEN"`
}

// Repository is one public repository as the site renders it.
type Repository struct {
	ID          int64
	Name        string
	Description string
	URL         string
	Homepage    string
	Stars       int
	Language    string
	Topics      []string
	UpdatedAt   time.Time
}

type apiRepository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Homepage        *string   `json:"homepage"`
	StargazersCount int       `json:"stargazers_count"`
	Language        *string   `json:"language"`
	Topics          []string  `json:"topics"`
	UpdatedAt       time.Time `json:"updated_at"`
	Fork            bool      `json:"fork"`
	Private         bool      `json:"private"`
}

// Client calls the repos endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	schema     *jsonschema.Schema
}

// NewClient builds a client. A nil httpClient gets one bounded by
// timeouts.Collaborator.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse github base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.Collaborator}
	}
	schema, err := compileReposSchema()
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		httpClient: httpClient,
		schema:     schema,
	}, nil
}

// ListRepositories fetches the user's public repositories, most recently
// updated first as GitHub returns them. Private repositories are dropped.
func (c *Client) ListRepositories(ctx context.Context, username string) (repos []Repository, err error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("github username is required")
	}
	ctx, span := platformotel.Tracer("portfolio/github").Start(ctx, "github.ListRepositories")
	span.SetAttributes(attribute.String("github.username", username))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "list repositories")
		} else {
			span.SetAttributes(attribute.Int("github.repositories", len(repos)))
		}
		span.End()
	}()

	endpoint := fmt.Sprintf("%s/users/%s/repos?type=public&sort=updated&per_page=100", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch github repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch github repositories: status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read github response: %w", err)
	}
	return c.decode(body)
}

func (c *Client) decode(body []byte) ([]Repository, error) {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode github response: %w", err)
	}
	if err := c.schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("validate github response: %w", err)
	}
	var payload []apiRepository
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode github response: %w", err)
	}

	repos := make([]Repository, 0, len(payload))
	for _, item := range payload {
		if item.Private {
			continue
		}
		topics := item.Topics
		if topics == nil {
			topics = []string{}
		}
		repos = append(repos, Repository{
			ID:          item.ID,
			Name:        item.Name,
			Description: deref(item.Description),
			URL:         item.HTMLURL,
			Homepage:    deref(item.Homepage),
			Stars:       item.StargazersCount,
			Language:    deref(item.Language),
			Topics:      topics,
			UpdatedAt:   item.UpdatedAt,
		})
	}
	return repos, nil
}

// PublicRepositories is ListRepositories with failures logged and converted
// to an empty list, so a GitHub outage never breaks page rendering.
func (c *Client) PublicRepositories(ctx context.Context, username string) []Repository {
	repos, err := c.ListRepositories(ctx, username)
	if err != nil {
		log.Printf("github fetch failed user=%s err=%v", username, err)
		return []Repository{}
	}
	return repos
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
