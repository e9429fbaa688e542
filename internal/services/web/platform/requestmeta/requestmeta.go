// Package requestmeta resolves request facts that depend on proxy trust.
package requestmeta

import (
	"net/http"
	"strings"
)

// SchemePolicy decides which headers may report the client-facing scheme.
//
// Forwarding headers are ignored unless TrustForwardedProto is set. Only set
// it behind a proxy that overwrites them.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPS reports whether the client reached the site over HTTPS.
func (p SchemePolicy) IsHTTPS(r *http.Request) bool {
	return p.Scheme(r) == "https"
}

// Scheme returns "http" or "https", or "" for a nil request. A trusted
// X-Forwarded-Proto wins over a trusted Forwarded header; both fall back to
// the connection itself.
func (p SchemePolicy) Scheme(r *http.Request) string {
	if r == nil {
		return ""
	}
	if p.TrustForwardedProto {
		if scheme := firstHopProto(r.Header.Get("X-Forwarded-Proto")); scheme != "" {
			return scheme
		}
		if scheme := forwardedProto(r.Header.Get("Forwarded")); scheme != "" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	if r.URL != nil && strings.EqualFold(r.URL.Scheme, "https") {
		return "https"
	}
	return "http"
}

// firstHopProto reads the client-facing entry of a comma-separated list.
func firstHopProto(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return normalizeScheme(first)
}

// forwardedProto reads proto= from the first element of an RFC 7239
// Forwarded header.
func forwardedProto(value string) string {
	first, _, _ := strings.Cut(value, ",")
	for _, pair := range strings.Split(first, ";") {
		key, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if ok && strings.EqualFold(key, "proto") {
			return normalizeScheme(strings.Trim(val, `"`))
		}
	}
	return ""
}

func normalizeScheme(value string) string {
	switch scheme := strings.ToLower(strings.TrimSpace(value)); scheme {
	case "http", "https":
		return scheme
	default:
		return ""
	}
}
