package templates

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sinhaparth5/portfolio/internal/services/web/content"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/github"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/medium"
	"github.com/sinhaparth5/portfolio/internal/services/web/routepath"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang            string
	Loc             Localizer
	Title           string
	MetaDescription string
	SiteName        string
	CurrentPath     string
	// SceneEnabled adds the animated background scripts. When false the page
	// renders without the canvas.
	SceneEnabled bool
	// SceneIcons are handed to the scene through the bridge script.
	SceneIcons []content.SceneIcon
}

func (p PageContext) lang() string {
	if lang := strings.TrimSpace(p.Lang); lang != "" {
		return lang
	}
	return "en"
}

func (p PageContext) description() string {
	return strings.TrimSpace(p.MetaDescription)
}

func (p PageContext) sceneIconData() string {
	raw, err := content.EncodeSceneIcons(p.SceneIcons)
	if err != nil {
		return "[]"
	}
	return raw
}

type navLink struct {
	path string
	key  string
}

var navLinks = []navLink{
	{path: routepath.Root, key: "nav.home"},
	{path: routepath.Projects, key: "nav.projects"},
	{path: routepath.Blogs, key: "nav.blogs"},
	{path: routepath.About, key: "nav.about"},
	{path: routepath.Root + routepath.ContactAnchor, key: "nav.contact"},
}

// ContactView is the contact form state.
type ContactView struct {
	// Token is echoed in the hidden csrf field.
	Token   string
	Name    string
	Email   string
	Subject string
	Message string
	Sent    bool
	Error   string
}

// HomeView is the landing page model.
type HomeView struct {
	Site         content.Site
	Repositories []github.Repository
	Articles     []medium.Article
	Contact      ContactView
}

// ProjectsView is the project listing model.
type ProjectsView struct {
	Repositories []github.Repository
	Categories   []string
	Selected     string
}

const (
	projectUpdatedLayout = "Jan 2, 2006"
	articleDateLayout    = "2006-01-02"
	cardTopicLimit       = 3
)

func cardTopics(repo github.Repository) []string {
	if len(repo.Topics) > cardTopicLimit {
		return repo.Topics[:cardTopicLimit]
	}
	return repo.Topics
}

func contactFieldID(name string) string {
	return "contact-" + name
}

const (
	errorNotFoundKey = "error.not_found"
	errorInternalKey = "error.internal"
)

// ErrorPageTitle returns the browser title for an error page.
func ErrorPageTitle(statusCode int, siteName string, loc Localizer) string {
	return T(loc, "title.error", normalizeErrorStatus(statusCode), siteName)
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func errorMessageKey(statusCode int) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return errorNotFoundKey
	}
	return errorInternalKey
}

func errorStatusText(statusCode int) string {
	return strconv.Itoa(normalizeErrorStatus(statusCode))
}
