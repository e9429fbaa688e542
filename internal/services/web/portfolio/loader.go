// Package portfolio assembles the repository and article listings a page
// needs from the external collaborators.
package portfolio

import (
	"context"
	"log"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sinhaparth5/portfolio/internal/services/web/integration/cache"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/github"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/medium"
)

// CategoryAll disables project filtering.
const CategoryAll = "All"

const defaultFeatured = 3

// RepositoryGateway lists public repositories. Implementations degrade to an
// empty list instead of failing.
type RepositoryGateway interface {
	PublicRepositories(context.Context, string) []github.Repository
}

// ArticleGateway lists published articles. Implementations degrade to an
// empty list instead of failing.
type ArticleGateway interface {
	PublicArticles(context.Context, string) []medium.Article
}

type unavailableRepositories struct{}

func (unavailableRepositories) PublicRepositories(context.Context, string) []github.Repository {
	return []github.Repository{}
}

type unavailableArticles struct{}

func (unavailableArticles) PublicArticles(context.Context, string) []medium.Article {
	return []medium.Article{}
}

// Config wires the loader.
type Config struct {
	Repositories   RepositoryGateway
	Articles       ArticleGateway
	GitHubUsername string
	MediumUsername string
	// Featured is how many of each list the home page shows.
	Featured int
	CacheTTL time.Duration
}

// Home is the data behind the landing page.
type Home struct {
	Repositories []github.Repository
	Articles     []medium.Article
}

// Loader fetches and shapes collaborator data.
type Loader struct {
	repositories   RepositoryGateway
	articles       ArticleGateway
	githubUsername string
	mediumUsername string
	featured       int
	repoCache      *cache.Memo[[]github.Repository]
	articleCache   *cache.Memo[[]medium.Article]
}

// NewLoader builds a Loader. Missing gateways behave as permanently empty.
func NewLoader(cfg Config) *Loader {
	repos := cfg.Repositories
	if repos == nil {
		repos = unavailableRepositories{}
	}
	articles := cfg.Articles
	if articles == nil {
		articles = unavailableArticles{}
	}
	featured := cfg.Featured
	if featured <= 0 {
		featured = defaultFeatured
	}
	return &Loader{
		repositories:   repos,
		articles:       articles,
		githubUsername: strings.TrimSpace(cfg.GitHubUsername),
		mediumUsername: strings.TrimSpace(cfg.MediumUsername),
		featured:       featured,
		repoCache:      cache.New(cfg.CacheTTL, cache.WithKeep(cache.NonEmpty[github.Repository])),
		articleCache:   cache.New(cfg.CacheTTL, cache.WithKeep(cache.NonEmpty[medium.Article])),
	}
}

// Load fetches both lists in parallel and keeps the most recent few of each.
// A failure on one side never cancels or empties the other.
func (l *Loader) Load(ctx context.Context) Home {
	var (
		group    errgroup.Group
		repos    []github.Repository
		articles []medium.Article
	)
	group.Go(func() error {
		repos = l.AllRepositories(ctx, CategoryAll)
		return nil
	})
	group.Go(func() error {
		articles = l.AllArticles(ctx)
		return nil
	})
	_ = group.Wait()
	return Home{
		Repositories: head(repos, l.featured),
		Articles:     head(articles, l.featured),
	}
}

// AllRepositories returns repositories newest first, filtered by category.
func (l *Loader) AllRepositories(ctx context.Context, category string) []github.Repository {
	repos := l.repoCache.Get(ctx, "repos:"+l.githubUsername, func(ctx context.Context) []github.Repository {
		if l.githubUsername == "" {
			return []github.Repository{}
		}
		return recoverEmpty("repository", l.githubUsername, func() []github.Repository {
			return l.repositories.PublicRepositories(ctx, l.githubUsername)
		})
	})
	sorted := slices.Clone(repos)
	SortByUpdated(sorted)
	return FilterByCategory(sorted, category)
}

// AllArticles returns articles in feed order.
func (l *Loader) AllArticles(ctx context.Context) []medium.Article {
	articles := l.articleCache.Get(ctx, "articles:"+l.mediumUsername, func(ctx context.Context) []medium.Article {
		if l.mediumUsername == "" {
			return []medium.Article{}
		}
		return recoverEmpty("article", l.mediumUsername, func() []medium.Article {
			return l.articles.PublicArticles(ctx, l.mediumUsername)
		})
	})
	return slices.Clone(articles)
}

// recoverEmpty runs fetch and degrades a panic to an empty list. Fetches run
// on errgroup and singleflight goroutines where no handler recovery applies.
func recoverEmpty[T any](source, user string, fetch func() []T) (items []T) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s gateway panic user=%s panic=%v", source, user, r)
			items = []T{}
		}
	}()
	return fetch()
}

// SortByUpdated orders repositories by UpdatedAt, newest first. Ties keep
// their input order.
func SortByUpdated(repos []github.Repository) {
	slices.SortStableFunc(repos, func(a, b github.Repository) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

// FilterByCategory keeps repositories whose topics contain the lowercased
// category or whose language equals it. All (or blank) keeps everything.
func FilterByCategory(repos []github.Repository, category string) []github.Repository {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return repos
	}
	want := strings.ToLower(category)
	filtered := make([]github.Repository, 0, len(repos))
	for _, repo := range repos {
		if slices.Contains(repo.Topics, want) || strings.ToLower(repo.Language) == want {
			filtered = append(filtered, repo)
		}
	}
	return filtered
}

func head[T any](values []T, n int) []T {
	if values == nil {
		return []T{}
	}
	if len(values) > n {
		return values[:n]
	}
	return values
}
