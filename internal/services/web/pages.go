package web

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	"github.com/sinhaparth5/portfolio/internal/platform/timeouts"
	webi18n "github.com/sinhaparth5/portfolio/internal/services/web/i18n"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/httpx"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/pagerender"
	"github.com/sinhaparth5/portfolio/internal/services/web/portfolio"
	"github.com/sinhaparth5/portfolio/internal/services/web/routepath"
	webtemplates "github.com/sinhaparth5/portfolio/internal/services/web/templates"
)

func (h *handler) pageContext(r *http.Request, loc webi18n.Localizer, tag language.Tag, title string) webtemplates.PageContext {
	return webtemplates.PageContext{
		Lang:            tag.String(),
		Loc:             loc,
		Title:           title,
		MetaDescription: h.site.MetaDescription,
		SiteName:        h.site.SiteName,
		CurrentPath:     r.URL.Path,
		SceneEnabled:    h.sceneEnabled,
		SceneIcons:      h.site.SceneIcons,
	}
}

func (h *handler) writePage(w http.ResponseWriter, r *http.Request, page webtemplates.PageContext, status int, body templ.Component) {
	_ = pagerender.WritePage(w, r, pagerender.Page{Context: page, StatusCode: status, Body: body})
}

func pageLoadContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(httpx.RequestContext(r), timeouts.PageLoad)
}

func (h *handler) handleHome(w http.ResponseWriter, r *http.Request) {
	token, err := h.guard.Ensure(w, r)
	if err != nil {
		log.Printf("csrf token issue failed err=%v", err)
		h.writeError(w, r, http.StatusInternalServerError)
		return
	}
	h.renderHome(w, r, http.StatusOK, webtemplates.ContactView{Token: token})
}

func (h *handler) renderHome(w http.ResponseWriter, r *http.Request, status int, form webtemplates.ContactView) {
	loc, tag := webi18n.ForRequest(r)
	ctx, cancel := pageLoadContext(r)
	defer cancel()
	home := h.loader.Load(ctx)
	h.writePage(w, r, h.pageContext(r, loc, tag, h.site.SiteName), status, webtemplates.Home(webtemplates.HomeView{
		Site:         h.site,
		Repositories: home.Repositories,
		Articles:     home.Articles,
		Contact:      form,
	}, loc))
}

func (h *handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	loc, tag := webi18n.ForRequest(r)
	selected := h.resolveCategory(r.URL.Query().Get(routepath.CategoryParam))
	ctx, cancel := pageLoadContext(r)
	defer cancel()
	repos := h.loader.AllRepositories(ctx, selected)
	page := h.pageContext(r, loc, tag, loc.Sprintf("title.projects", h.site.SiteName))
	h.writePage(w, r, page, http.StatusOK, webtemplates.Projects(webtemplates.ProjectsView{
		Repositories: repos,
		Categories:   h.site.ProjectCategories,
		Selected:     selected,
	}, loc))
}

// resolveCategory maps a query value onto a configured category, falling back
// to All for blank or unknown values.
func (h *handler) resolveCategory(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, category := range h.site.ProjectCategories {
		if strings.EqualFold(category, raw) {
			return category
		}
	}
	return portfolio.CategoryAll
}

func (h *handler) handleBlogs(w http.ResponseWriter, r *http.Request) {
	loc, tag := webi18n.ForRequest(r)
	ctx, cancel := pageLoadContext(r)
	defer cancel()
	articles := h.loader.AllArticles(ctx)
	page := h.pageContext(r, loc, tag, loc.Sprintf("title.blogs", h.site.SiteName))
	h.writePage(w, r, page, http.StatusOK, webtemplates.Blogs(articles, loc))
}

func (h *handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	loc, tag := webi18n.ForRequest(r)
	page := h.pageContext(r, loc, tag, loc.Sprintf("title.about", h.site.SiteName))
	h.writePage(w, r, page, http.StatusOK, webtemplates.About(h.site, loc))
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound)
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, status int) {
	loc, tag := webi18n.ForRequest(r)
	page := h.pageContext(r, loc, tag, webtemplates.ErrorPageTitle(status, h.site.SiteName, loc))
	h.writePage(w, r, page, status, webtemplates.ErrorPage(status, loc))
}
