// Package securityheaders applies the fixed hardening policy to every
// response.
package securityheaders

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/sinhaparth5/portfolio/internal/services/web/platform/httpx"
)

// Directive is one Content-Security-Policy directive.
type Directive struct {
	Name    string
	Sources []string
}

// Policy is the explicitly constructed header set served on every response.
type Policy struct {
	ContentSecurity   []Directive
	FrameOptions      string
	ReferrerPolicy    string
	HSTSMaxAgeSeconds int
	HSTSPreload       bool
	PermissionsPolicy string
	// Extra headers are written verbatim after the standard ones.
	Extra map[string]string
}

// DefaultPolicy returns the site's standard policy. connectOrigins lists the
// extra origins the browser may fetch from.
func DefaultPolicy(connectOrigins ...string) Policy {
	connect := append([]string{"'self'"}, connectOrigins...)
	return Policy{
		ContentSecurity: []Directive{
			{Name: "default-src", Sources: []string{"'self'"}},
			{Name: "script-src", Sources: []string{"'self'", "'wasm-unsafe-eval'", "https://cdnjs.cloudflare.com"}},
			{Name: "style-src", Sources: []string{"'self'", "'unsafe-inline'", "https://fonts.googleapis.com"}},
			{Name: "img-src", Sources: []string{"'self'", "data:", "blob:", "https:"}},
			{Name: "font-src", Sources: []string{"'self'", "https://fonts.gstatic.com"}},
			{Name: "connect-src", Sources: connect},
			{Name: "frame-ancestors", Sources: []string{"'none'"}},
		},
		FrameOptions:      "DENY",
		ReferrerPolicy:    "strict-origin-when-cross-origin",
		HSTSMaxAgeSeconds: 31536000,
		HSTSPreload:       true,
		PermissionsPolicy: "camera=(), microphone=(), geolocation=()",
	}
}

// ContentSecurityPolicy renders the CSP header value.
func (p Policy) ContentSecurityPolicy() string {
	parts := make([]string, 0, len(p.ContentSecurity))
	for _, directive := range p.ContentSecurity {
		name := strings.TrimSpace(directive.Name)
		if name == "" {
			continue
		}
		if len(directive.Sources) == 0 {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+" "+strings.Join(directive.Sources, " "))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + ";"
}

// Headers renders the full header set. Empty values are omitted.
func (p Policy) Headers() http.Header {
	h := http.Header{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			h.Set(key, value)
		}
	}
	set("Content-Security-Policy", p.ContentSecurityPolicy())
	set("X-Frame-Options", p.FrameOptions)
	set("X-Content-Type-Options", "nosniff")
	set("X-XSS-Protection", "1; mode=block")
	set("Referrer-Policy", p.ReferrerPolicy)
	if p.HSTSMaxAgeSeconds > 0 {
		hsts := "max-age=" + strconv.Itoa(p.HSTSMaxAgeSeconds) + "; includeSubDomains"
		if p.HSTSPreload {
			hsts += "; preload"
		}
		set("Strict-Transport-Security", hsts)
	}
	set("Permissions-Policy", p.PermissionsPolicy)

	keys := make([]string, 0, len(p.Extra))
	for key := range p.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		set(key, p.Extra[key])
	}
	return h
}

// Middleware writes the policy headers before the wrapped handler runs.
func (p Policy) Middleware() httpx.Middleware {
	headers := p.Headers()
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dst := w.Header()
			for key, values := range headers {
				dst[key] = append([]string(nil), values...)
			}
			next.ServeHTTP(w, r)
		})
	}
}
