package portfolio

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sinhaparth5/portfolio/internal/services/web/integration/github"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/medium"
)

type fakeRepositories struct {
	repos []github.Repository
	calls atomic.Int32
	user  atomic.Value
}

func (f *fakeRepositories) PublicRepositories(_ context.Context, user string) []github.Repository {
	f.calls.Add(1)
	f.user.Store(user)
	return f.repos
}

type fakeArticles struct {
	articles []medium.Article
	calls    atomic.Int32
}

func (f *fakeArticles) PublicArticles(context.Context, string) []medium.Article {
	f.calls.Add(1)
	return f.articles
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func repoNames(repos []github.Repository) []string {
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.Name)
	}
	return names
}

func TestLoadKeepsNewestFeatured(t *testing.T) {
	t.Parallel()

	repos := &fakeRepositories{repos: []github.Repository{
		{Name: "old", UpdatedAt: day(1)},
		{Name: "newest", UpdatedAt: day(9)},
		{Name: "mid", UpdatedAt: day(5)},
		{Name: "newer", UpdatedAt: day(7)},
	}}
	articles := &fakeArticles{articles: []medium.Article{{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}}}
	loader := NewLoader(Config{Repositories: repos, Articles: articles, GitHubUsername: "gh", MediumUsername: "md"})

	home := loader.Load(context.Background())
	if diff := cmp.Diff([]string{"newest", "newer", "mid"}, repoNames(home.Repositories)); diff != "" {
		t.Fatalf("repositories mismatch (-want +got):\n%s", diff)
	}
	if len(home.Articles) != 3 || home.Articles[0].Title != "a" {
		t.Fatalf("articles = %#v, want first three in feed order", home.Articles)
	}
	if got, _ := repos.user.Load().(string); got != "gh" {
		t.Fatalf("repository user = %q, want gh", got)
	}
}

func TestLoadRendersEmptyRepositoriesWhenCollaboratorFails(t *testing.T) {
	t.Parallel()

	repos := &fakeRepositories{repos: []github.Repository{}}
	articles := &fakeArticles{articles: []medium.Article{{Title: "still here"}}}
	loader := NewLoader(Config{Repositories: repos, Articles: articles, GitHubUsername: "gh", MediumUsername: "md"})

	home := loader.Load(context.Background())
	if home.Repositories == nil || len(home.Repositories) != 0 {
		t.Fatalf("repositories = %#v, want empty list", home.Repositories)
	}
	if len(home.Articles) != 1 {
		t.Fatalf("articles = %#v, want sibling result kept", home.Articles)
	}
}

type panickingArticles struct{}

func (panickingArticles) PublicArticles(context.Context, string) []medium.Article {
	panic("feed parser exploded")
}

func TestLoadDegradesPanickingGatewayToEmpty(t *testing.T) {
	t.Parallel()

	repos := &fakeRepositories{repos: []github.Repository{{Name: "kept", UpdatedAt: day(2)}}}
	loader := NewLoader(Config{Repositories: repos, Articles: panickingArticles{}, GitHubUsername: "gh", MediumUsername: "md", CacheTTL: time.Hour})

	for range 2 {
		home := loader.Load(context.Background())
		if home.Articles == nil || len(home.Articles) != 0 {
			t.Fatalf("articles = %#v, want empty list", home.Articles)
		}
		if diff := cmp.Diff([]string{"kept"}, repoNames(home.Repositories)); diff != "" {
			t.Fatalf("repositories mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestLoadWithoutGatewaysIsEmpty(t *testing.T) {
	t.Parallel()

	home := NewLoader(Config{GitHubUsername: "gh", MediumUsername: "md"}).Load(context.Background())
	if len(home.Repositories) != 0 || len(home.Articles) != 0 {
		t.Fatalf("home = %#v, want empty", home)
	}
}

func TestLoaderCachesNonEmptyResults(t *testing.T) {
	t.Parallel()

	repos := &fakeRepositories{repos: []github.Repository{{Name: "a"}}}
	articles := &fakeArticles{articles: []medium.Article{}}
	loader := NewLoader(Config{Repositories: repos, Articles: articles, GitHubUsername: "gh", MediumUsername: "md", CacheTTL: time.Hour})

	loader.Load(context.Background())
	loader.Load(context.Background())
	if n := repos.calls.Load(); n != 1 {
		t.Fatalf("repository calls = %d, want 1", n)
	}
	if n := articles.calls.Load(); n != 2 {
		t.Fatalf("article calls = %d, want empty result refetched", n)
	}
}

func TestLoaderSkipsBlankUsernames(t *testing.T) {
	t.Parallel()

	repos := &fakeRepositories{repos: []github.Repository{{Name: "a"}}}
	loader := NewLoader(Config{Repositories: repos})
	if got := loader.AllRepositories(context.Background(), CategoryAll); len(got) != 0 {
		t.Fatalf("AllRepositories() = %#v, want empty", got)
	}
	if n := repos.calls.Load(); n != 0 {
		t.Fatalf("calls = %d, want 0", n)
	}
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()

	repos := []github.Repository{
		{Name: "model", Topics: []string{"ai/ml", "pytorch"}},
		{Name: "site", Language: "TypeScript", Topics: []string{"web"}},
		{Name: "cli", Language: "Go", Topics: []string{"tools"}},
		{Name: "lib", Language: "Rust", Topics: []string{}},
	}
	tests := []struct {
		category string
		want     []string
	}{
		{category: "All", want: []string{"model", "site", "cli", "lib"}},
		{category: "", want: []string{"model", "site", "cli", "lib"}},
		{category: "AI/ML", want: []string{"model"}},
		{category: "Web", want: []string{"site"}},
		{category: "Tools", want: []string{"cli"}},
		{category: "rust", want: []string{"lib"}},
		{category: "Libraries", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			t.Parallel()
			got := repoNames(FilterByCategory(repos, tt.category))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("FilterByCategory(%q) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func TestSortByUpdatedIsStable(t *testing.T) {
	t.Parallel()

	repos := []github.Repository{
		{Name: "b", UpdatedAt: day(2)},
		{Name: "a1", UpdatedAt: day(3)},
		{Name: "a2", UpdatedAt: day(3)},
	}
	SortByUpdated(repos)
	if diff := cmp.Diff([]string{"a1", "a2", "b"}, repoNames(repos)); diff != "" {
		t.Fatalf("SortByUpdated() mismatch (-want +got):\n%s", diff)
	}
}
