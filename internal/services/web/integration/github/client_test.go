package github

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const reposFixture = `[
  {
    "id": 1,
    "name": "cuda-kernels",
    "description": " Hand-tuned kernels ",
    "html_url": "https://github.com/sinhaparth5/cuda-kernels",
    "homepage": null,
    "stargazers_count": 12,
    "language": "Cuda",
    "topics": ["cuda", "ai/ml"],
    "created_at": "2023-01-02T03:04:05Z",
    "updated_at": "2024-05-06T07:08:09Z",
    "fork": false,
    "private": false
  },
  {
    "id": 2,
    "name": "secret",
    "description": null,
    "html_url": "https://github.com/sinhaparth5/secret",
    "homepage": null,
    "stargazers_count": 0,
    "language": null,
    "updated_at": "2024-01-01T00:00:00Z",
    "private": true
  },
  {
    "id": 3,
    "name": "portfolio",
    "description": null,
    "html_url": "https://github.com/sinhaparth5/portfolio",
    "homepage": "https://parthsinha.com",
    "stargazers_count": 3,
    "language": "Go",
    "updated_at": "2024-02-03T00:00:00Z"
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{BaseURL: srv.URL + "/", Token: "tkn"}, srv.Client())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestListRepositoriesMapsPublicRepos(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/sinhaparth5/repos" {
			t.Errorf("path = %q, want /users/sinhaparth5/repos", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "public" {
			t.Errorf("type = %q, want public", got)
		}
		if got := r.URL.Query().Get("sort"); got != "updated" {
			t.Errorf("sort = %q, want updated", got)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github.v3+json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tkn" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(reposFixture))
	})

	repos, err := client.ListRepositories(context.Background(), "sinhaparth5")
	if err != nil {
		t.Fatalf("ListRepositories() error = %v", err)
	}
	want := []Repository{
		{
			ID:          1,
			Name:        "cuda-kernels",
			Description: "Hand-tuned kernels",
			URL:         "https://github.com/sinhaparth5/cuda-kernels",
			Stars:       12,
			Language:    "Cuda",
			Topics:      []string{"cuda", "ai/ml"},
			UpdatedAt:   time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		},
		{
			ID:        3,
			Name:      "portfolio",
			URL:       "https://github.com/sinhaparth5/portfolio",
			Homepage:  "https://parthsinha.com",
			Stars:     3,
			Language:  "Go",
			Topics:    []string{},
			UpdatedAt: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		},
	}
	if diff := cmp.Diff(want, repos); diff != "" {
		t.Fatalf("ListRepositories() mismatch (-want +got):\n%s", diff)
	}
}

func TestListRepositoriesRejectsSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not an array":     `{"message": "rate limited"}`,
		"missing name":     `[{"id": 1, "html_url": "x", "stargazers_count": 1, "updated_at": "2024-01-01T00:00:00Z"}]`,
		"stars as string":  `[{"id": 1, "name": "a", "html_url": "x", "stargazers_count": "many", "updated_at": "2024-01-01T00:00:00Z"}]`,
		"topics not array": `[{"id": 1, "name": "a", "html_url": "x", "stargazers_count": 1, "updated_at": "2024-01-01T00:00:00Z", "topics": "go"}]`,
		"malformed json":   `[{`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			if _, err := client.ListRepositories(context.Background(), "sinhaparth5"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestListRepositoriesNon200(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})
	_, err := client.ListRepositories(context.Background(), "sinhaparth5")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error = %v, want status", err)
	}
}

func TestListRepositoriesRequiresUsername(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{}, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.ListRepositories(context.Background(), "  "); err == nil {
		t.Fatal("expected username error")
	}
}

func TestPublicRepositoriesDegradesToEmptyList(t *testing.T) {
	prevWriter := log.Writer()
	defer log.SetOutput(prevWriter)
	var buffer bytes.Buffer
	log.SetOutput(&buffer)

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	repos := client.PublicRepositories(context.Background(), "sinhaparth5")
	if repos == nil || len(repos) != 0 {
		t.Fatalf("repos = %#v, want empty non-nil list", repos)
	}
	if !strings.Contains(buffer.String(), "github fetch failed user=sinhaparth5") {
		t.Fatalf("log = %q, want failure line", buffer.String())
	}
}
