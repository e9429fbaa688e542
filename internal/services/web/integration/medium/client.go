// Package medium lists a user's articles from their Medium RSS feed.
package medium

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	platformotel "github.com/sinhaparth5/portfolio/internal/platform/otel"
	"github.com/sinhaparth5/portfolio/internal/platform/timeouts"
)

const (
	defaultBaseURL = "https://medium.com"
	maxFeedBytes   = 8 << 20
	// DateLayout matches the long US date the site shows under each article.
	DateLayout = "January 2, 2006"
)

// Config controls the Medium client. Fields map to PORTFOLIO_MEDIUM_* variables.
type Config struct {
	BaseURL      string `env:"BASE_URL" envDefault:"https://medium.com"`
	ExcerptRunes int    `env:"EXCERPT_RUNES" envDefault:"220"`
}

// Article is one feed entry as the site renders it.
type Article struct {
	Title         string
	Link          string
	PubDate       string
	Published     time.Time
	FormattedDate string
	Categories    []string
	Excerpt       string
}

// Client fetches and parses the feed.
type Client struct {
	baseURL      string
	excerptRunes int
	httpClient   *http.Client
}

// NewClient builds a client. A nil httpClient gets one bounded by
// timeouts.Collaborator.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse medium base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.Collaborator}
	}
	excerpt := cfg.ExcerptRunes
	if excerpt <= 0 {
		excerpt = 220
	}
	return &Client{baseURL: baseURL, excerptRunes: excerpt, httpClient: httpClient}, nil
}

// ListArticles fetches the feed for username in feed order.
func (c *Client) ListArticles(ctx context.Context, username string) (articles []Article, err error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, fmt.Errorf("medium username is required")
	}
	ctx, span := platformotel.Tracer("portfolio/medium").Start(ctx, "medium.ListArticles")
	span.SetAttributes(attribute.String("medium.username", username))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "list articles")
		} else {
			span.SetAttributes(attribute.Int("medium.articles", len(articles)))
		}
		span.End()
	}()

	endpoint := fmt.Sprintf("%s/feed/@%s", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build medium request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch medium feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch medium feed: status %s", resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("parse medium feed: %w", err)
	}

	articles = make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		articles = append(articles, c.article(item))
	}
	return articles, nil
}

func (c *Client) article(item *gofeed.Item) Article {
	article := Article{
		Title:      strings.TrimSpace(item.Title),
		Link:       strings.TrimSpace(item.Link),
		PubDate:    strings.TrimSpace(item.Published),
		Categories: item.Categories,
	}
	if article.Categories == nil {
		article.Categories = []string{}
	}
	if item.PublishedParsed != nil {
		article.Published = item.PublishedParsed.UTC()
		article.FormattedDate = article.Published.Format(DateLayout)
	}
	body := item.Description
	if strings.TrimSpace(body) == "" {
		body = item.Content
	}
	article.Excerpt = Excerpt(body, c.excerptRunes)
	return article
}

// PublicArticles is ListArticles with failures logged and converted to an
// empty list, so a feed outage never breaks page rendering.
func (c *Client) PublicArticles(ctx context.Context, username string) []Article {
	articles, err := c.ListArticles(ctx, username)
	if err != nil {
		log.Printf("medium fetch failed user=%s err=%v", username, err)
		return []Article{}
	}
	return articles
}
