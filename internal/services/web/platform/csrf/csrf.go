// Package csrf issues and validates the double-submit token that guards the
// contact form.
//
// The browser cookie holds the authoritative copy of the token; the rendered
// form carries a disposable copy in a hidden field. A submission is accepted
// only when both copies are present and equal. Nothing is stored server side.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/sinhaparth5/portfolio/internal/services/web/platform/errors"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/requestmeta"
)

const (
	// CookieName is the canonical token cookie name.
	CookieName = "csrf-token"
	// FieldName is the hidden form field that echoes the cookie value.
	FieldName = "csrf"
	// TokenBytes is the entropy of a generated token.
	TokenBytes = 32
	// DefaultMaxAge bounds how long a browser reuses one token.
	DefaultMaxAge = 24 * time.Hour
)

// ErrorKey localizes the generic rejection. It never says which check failed.
const ErrorKey = "error.csrf_invalid"

// Config controls cookie attributes and the entropy source.
type Config struct {
	CookieName   string
	MaxAge       time.Duration
	SchemePolicy requestmeta.SchemePolicy
	// Rand defaults to crypto/rand.Reader.
	Rand io.Reader
}

// Guard issues and validates tokens. Build one with New and pass it to the
// handlers that need it.
type Guard struct {
	cookieName string
	maxAge     time.Duration
	policy     requestmeta.SchemePolicy
	rand       io.Reader
}

// New builds a Guard, filling defaults for zero-valued fields.
func New(cfg Config) *Guard {
	name := strings.TrimSpace(cfg.CookieName)
	if name == "" {
		name = CookieName
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	source := cfg.Rand
	if source == nil {
		source = rand.Reader
	}
	return &Guard{
		cookieName: name,
		maxAge:     maxAge,
		policy:     cfg.SchemePolicy,
		rand:       source,
	}
}

// CookieName reports the cookie this guard reads and writes.
func (g *Guard) CookieName() string {
	return g.cookieName
}

// GenerateToken reads TokenBytes from source and hex-encodes them.
func GenerateToken(source io.Reader) (string, error) {
	if source == nil {
		source = rand.Reader
	}
	buf := make([]byte, TokenBytes)
	if _, err := io.ReadFull(source, buf); err != nil {
		return "", fmt.Errorf("read token entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// WellFormed reports whether value looks like a token this package generated.
func WellFormed(value string) bool {
	if len(value) != hex.EncodedLen(TokenBytes) {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// IssueOrRead returns existing unchanged when it is well formed. Otherwise it
// generates a fresh token and reports issued=true so the caller writes the
// cookie.
func (g *Guard) IssueOrRead(existing string) (token string, issued bool, err error) {
	existing = strings.TrimSpace(existing)
	if WellFormed(existing) {
		return existing, false, nil
	}
	token, err = GenerateToken(g.rand)
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

// Read returns the trimmed cookie value when present.
func (g *Guard) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(g.cookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Ensure returns the visitor's token, writing exactly one Set-Cookie header
// when a new token had to be issued.
func (g *Guard) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	existing, _ := g.Read(r)
	token, issued, err := g.IssueOrRead(existing)
	if err != nil {
		return "", err
	}
	if issued {
		g.write(w, r, token)
	}
	return token, nil
}

func (g *Guard) write(w http.ResponseWriter, r *http.Request, token string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   g.policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(g.maxAge.Seconds()),
	})
}

// Validate reports whether the submitted and cookie tokens are both present
// and equal. The comparison runs in constant time.
func Validate(formToken, cookieToken string) bool {
	if formToken == "" || cookieToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(formToken), []byte(cookieToken)) == 1
}

// Check validates the request's form field against its cookie. It performs no
// writes. The caller must have parsed the form or allow Check to do it.
func (g *Guard) Check(r *http.Request) error {
	if r == nil {
		return rejection()
	}
	cookieToken, _ := g.Read(r)
	formToken := strings.TrimSpace(r.PostFormValue(FieldName))
	if !Validate(formToken, cookieToken) {
		return rejection()
	}
	return nil
}

func rejection() error {
	return apperrors.EK(apperrors.KindForbidden, ErrorKey, "Invalid security token")
}
