package templates

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/sinhaparth5/portfolio/internal/services/web/content"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/github"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/medium"
)

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func TestLayoutWrapsChildren(t *testing.T) {
	t.Parallel()

	body := ErrorPage(404, nil)
	ctx := templ.WithChildren(context.Background(), body)
	got := renderString(t, ctx, Layout(PageContext{Title: "Parth <Sinha>", SiteName: "Parth", CurrentPath: "/projects"}))

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Parth &lt;Sinha&gt;</title>",
		`href="/static/site.css"`,
		`<a href="/projects" aria-current="page">`,
		"<h1>404</h1>",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("layout missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "scene.wasm") || strings.Contains(got, "<canvas") {
		t.Fatalf("scene assets rendered while disabled:\n%s", got)
	}
}

func TestLayoutSceneAssets(t *testing.T) {
	t.Parallel()

	page := PageContext{SceneEnabled: true, SceneIcons: []content.SceneIcon{{Name: "go", Size: 1}}}
	got := renderString(t, context.Background(), Layout(page))
	for _, want := range []string{
		`src="/scene/wasm_exec.js"`,
		`src="/static/scene.js" data-module="/scene/scene.wasm"`,
		`data-icons="[{&#34;name&#34;:&#34;go&#34;,&#34;size&#34;:1}]"`,
		`data-icon-base="/scene/icons/"`,
		`<canvas id="scene"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("layout missing %q", want)
		}
	}
}

func TestContactFormCarriesToken(t *testing.T) {
	t.Parallel()

	token := strings.Repeat("ab", 32)
	got := renderString(t, context.Background(), ContactForm(ContactView{Token: token, Name: `"quoted"`}, nil))
	if !strings.Contains(got, `<input type="hidden" name="csrf" value="`+token+`">`) {
		t.Fatalf("hidden csrf field missing:\n%s", got)
	}
	if !strings.Contains(got, `value="&#34;quoted&#34;"`) {
		t.Fatalf("name not escaped:\n%s", got)
	}
	if !strings.Contains(got, `method="post"`) {
		t.Fatalf("form method missing:\n%s", got)
	}
}

func TestContactFormBanners(t *testing.T) {
	t.Parallel()

	sent := renderString(t, context.Background(), ContactForm(ContactView{Sent: true}, nil))
	if !strings.Contains(sent, `class="banner success"`) {
		t.Fatalf("success banner missing:\n%s", sent)
	}
	failed := renderString(t, context.Background(), ContactForm(ContactView{Error: "Invalid security token"}, nil))
	if !strings.Contains(failed, "Invalid security token") || !strings.Contains(failed, `role="alert"`) {
		t.Fatalf("error banner missing:\n%s", failed)
	}
}

func TestProjectListEmpty(t *testing.T) {
	t.Parallel()

	got := renderString(t, context.Background(), ProjectList([]github.Repository{}, nil))
	if !strings.Contains(got, `class="empty"`) {
		t.Fatalf("empty notice missing:\n%s", got)
	}
}

func TestProjectListSanitizesLinks(t *testing.T) {
	t.Parallel()

	repos := []github.Repository{{
		Name:      "<b>x</b>",
		URL:       "https://github.com/a/x",
		Homepage:  "javascript:alert(1)",
		Stars:     4,
		Topics:    []string{"a", "b", "c", "d"},
		UpdatedAt: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	}}
	got := renderString(t, context.Background(), ProjectList(repos, nil))
	if strings.Contains(got, "javascript:") {
		t.Fatalf("unsafe URL rendered:\n%s", got)
	}
	if !strings.Contains(got, "&lt;b&gt;x&lt;/b&gt;") {
		t.Fatalf("name not escaped:\n%s", got)
	}
	if strings.Contains(got, "<li>d</li>") {
		t.Fatalf("more than three topics rendered:\n%s", got)
	}
}

func TestArticleList(t *testing.T) {
	t.Parallel()

	articles := []medium.Article{{
		Title:         "Kernels",
		Link:          "https://medium.com/@x/kernels",
		Published:     time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		FormattedDate: "May 6, 2024",
		Excerpt:       "Shared memory",
		Categories:    []string{"cuda"},
	}}
	got := renderString(t, context.Background(), ArticleList(articles, nil))
	for _, want := range []string{`<time datetime="2024-05-06">May 6, 2024</time>`, "Shared memory", "<li>cuda</li>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("article list missing %q:\n%s", want, got)
		}
	}
}

func TestCategoryFilterMarksSelection(t *testing.T) {
	t.Parallel()

	got := renderString(t, context.Background(), CategoryFilter([]string{"All", "AI/ML"}, "ai/ml"))
	if !strings.Contains(got, `href="/projects?category=AI%2FML" aria-current="true"`) {
		t.Fatalf("selected category not marked:\n%s", got)
	}
}

func TestAboutSection(t *testing.T) {
	t.Parallel()

	about := content.About{
		Paragraphs: []string{"Hello"},
		Stats:      []content.Stat{{Value: "5+", Label: "Years"}},
		Expertise:  []content.Expertise{{Category: "ML", Skills: []string{"PyTorch"}}},
	}
	got := renderString(t, context.Background(), AboutSection(about, nil))
	for _, want := range []string{"<p>Hello</p>", "<dt>5+</dt><dd>Years</dd>", "<h3>ML</h3>", "<li>PyTorch</li>"} {
		if !strings.Contains(got, want) {
			t.Fatalf("about missing %q:\n%s", want, got)
		}
	}
}

func TestContactFormInputs(t *testing.T) {
	t.Parallel()

	got := renderString(t, context.Background(), ContactForm(ContactView{Email: "ada@example.com", Message: "<hi>"}, nil))
	for _, want := range []string{
		`<label for="contact-email">contact.email</label>`,
		`<input id="contact-email" name="email" type="email" value="ada@example.com" autocomplete="email" required>`,
		`action="/#contact"`,
		`<textarea id="contact-message" name="message" rows="6" required>&lt;hi&gt;</textarea>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("contact form missing %q:\n%s", want, got)
		}
	}
}

func TestErrorPageStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   []string
	}{
		{name: "not found", status: 404, want: []string{"<h1>404</h1>", "<p>error.not_found</p>"}},
		{name: "internal", status: 500, want: []string{"<h1>500</h1>", "<p>error.internal</p>"}},
		{name: "other statuses render as internal", status: 418, want: []string{"<h1>500</h1>"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := renderString(t, context.Background(), ErrorPage(tc.status, nil))
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Fatalf("error page missing %q:\n%s", want, got)
				}
			}
		})
	}
}
