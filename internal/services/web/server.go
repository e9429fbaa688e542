package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sinhaparth5/portfolio/internal/platform/timeouts"
	"github.com/sinhaparth5/portfolio/internal/services/web/contact"
	"github.com/sinhaparth5/portfolio/internal/services/web/content"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/csrf"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/httpx"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/observability"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/requestmeta"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/securityheaders"
	"github.com/sinhaparth5/portfolio/internal/services/web/portfolio"
	"github.com/sinhaparth5/portfolio/internal/services/web/routepath"
	"github.com/sinhaparth5/portfolio/internal/services/web/static"
)

// Cache-Control values per route family.
const (
	cacheNoStore  = "no-store"
	cacheListings = "public, max-age=3600"
	cacheAssets   = "public, max-age=86400"
)

// maxContactBody bounds the contact form request body.
const maxContactBody = 64 << 10

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	Site     content.Site
	// SceneDir holds scene.wasm, wasm_exec.js and icons/*.svg. Empty disables the
	// animated background.
	SceneDir            string
	TrustForwardedProto bool
	CSRFMaxAge          time.Duration
	CacheTTL            time.Duration
	Repositories        portfolio.RepositoryGateway
	Articles            portfolio.ArticleGateway
	Mailer              contact.Mailer
	// ConnectOrigins extends the connect-src policy.
	ConnectOrigins []string
	// Logger receives request logs. Nil uses log.Default().
	Logger *log.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

type handler struct {
	site         content.Site
	guard        *csrf.Guard
	loader       *portfolio.Loader
	contact      *contact.Service
	sceneEnabled bool
}

// NewHandler assembles routes and middleware.
func NewHandler(config Config) (http.Handler, error) {
	site := config.Site
	if site.Owner == "" {
		defaults, err := content.Default()
		if err != nil {
			return nil, fmt.Errorf("load site content: %w", err)
		}
		site = defaults
	}

	sceneDir := strings.TrimSpace(config.SceneDir)
	if sceneDir != "" {
		info, err := os.Stat(sceneDir)
		if err != nil {
			return nil, fmt.Errorf("scene dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("scene dir %q is not a directory", sceneDir)
		}
	}

	h := &handler{
		site: site,
		guard: csrf.New(csrf.Config{
			MaxAge:       config.CSRFMaxAge,
			SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto},
		}),
		loader: portfolio.NewLoader(portfolio.Config{
			Repositories:   config.Repositories,
			Articles:       config.Articles,
			GitHubUsername: site.GitHubUsername,
			MediumUsername: site.MediumUsername,
			Featured:       site.FeaturedCount,
			CacheTTL:       config.CacheTTL,
		}),
		contact:      contact.NewService(config.Mailer),
		sceneEnabled: sceneDir != "",
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+routepath.Root+"{$}", httpx.Chain(http.HandlerFunc(h.handleHome), httpx.CacheControl(cacheNoStore)))
	mux.Handle("POST "+routepath.Root+"{$}", httpx.Chain(http.HandlerFunc(h.handleContact), httpx.CacheControl(cacheNoStore)))
	mux.Handle("GET "+routepath.Projects, httpx.Chain(http.HandlerFunc(h.handleProjects), httpx.CacheControl(cacheListings)))
	mux.Handle("GET "+routepath.Blogs, httpx.Chain(http.HandlerFunc(h.handleBlogs), httpx.CacheControl(cacheListings)))
	mux.Handle("GET "+routepath.About, httpx.Chain(http.HandlerFunc(h.handleAbout), httpx.CacheControl(cacheListings)))
	mux.HandleFunc("GET "+routepath.Health, h.handleHealth)
	mux.Handle(routepath.StaticPrefix, httpx.Chain(
		http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))),
		httpx.RequireMethod(http.MethodGet, http.MethodHead),
		httpx.CacheControl(cacheAssets),
	))
	if sceneDir != "" {
		mux.Handle(routepath.ScenePrefix, httpx.Chain(
			http.StripPrefix(routepath.ScenePrefix, http.FileServer(http.Dir(sceneDir))),
			httpx.RequireMethod(http.MethodGet, http.MethodHead),
			httpx.CacheControl(cacheAssets),
		))
	}
	mux.HandleFunc(routepath.Root, h.handleNotFound)

	policy := securityheaders.DefaultPolicy(config.ConnectOrigins...)
	policy.Extra = map[string]string{"X-Owned-By": site.Owner}

	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		policy.Middleware(),
		observability.RequestLogger(logger, observability.SkipPaths(routepath.Health)),
	), nil
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the server immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		log.Printf("close http server: %v", err)
	}
}
