// Package pagerender centralizes full-page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"

	"github.com/a-h/templ"

	"github.com/sinhaparth5/portfolio/internal/services/web/platform/httpx"
	webtemplates "github.com/sinhaparth5/portfolio/internal/services/web/templates"
)

// Page describes one full-page response.
type Page struct {
	Context    webtemplates.PageContext
	StatusCode int
	Body       templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the site layout. Rendering happens into a
// buffer first so a template failure never leaves a half-written response.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	ctx := templ.WithChildren(httpx.RequestContext(r), body)
	var buf bytes.Buffer
	if err := webtemplates.Layout(page.Context).Render(ctx, &buf); err != nil {
		log.Printf("page render failed path=%s err=%v", requestPath(r), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if r == nil || r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
	return nil
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
