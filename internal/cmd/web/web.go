package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sinhaparth5/portfolio/internal/platform/config"
	platformotel "github.com/sinhaparth5/portfolio/internal/platform/otel"
	"github.com/sinhaparth5/portfolio/internal/platform/timeouts"
	"github.com/sinhaparth5/portfolio/internal/services/web"
	"github.com/sinhaparth5/portfolio/internal/services/web/content"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/cache"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/emailjs"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/github"
	"github.com/sinhaparth5/portfolio/internal/services/web/integration/medium"
)

const (
	defaultHTTPAddr = "localhost:8080"
	serviceName     = "portfolio-web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr string
	// SceneDir serves scene.wasm and wasm_exec.js when set.
	SceneDir string
	// SiteFile replaces the embedded site content when set.
	SiteFile            string
	TrustForwardedProto bool
	// ConnectOrigins extends the connect-src policy.
	ConnectOrigins []string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		HTTPAddr: envOrDefault(lookup, []string{"PORTFOLIO_WEB_HTTP_ADDR", "PORT"}, defaultHTTPAddr),
		SceneDir: envOrDefault(lookup, []string{"PORTFOLIO_WEB_SCENE_DIR"}, ""),
		SiteFile: envOrDefault(lookup, []string{"PORTFOLIO_WEB_SITE_FILE"}, ""),
	}
	if raw := envOrDefault(lookup, []string{"PORTFOLIO_WEB_TRUST_FORWARDED_PROTO"}, ""); raw != "" {
		trust, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse PORTFOLIO_WEB_TRUST_FORWARDED_PROTO: %w", err)
		}
		cfg.TrustForwardedProto = trust
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SceneDir, "scene-dir", cfg.SceneDir, "Directory holding scene.wasm and wasm_exec.js")
	fs.StringVar(&cfg.SiteFile, "site-file", cfg.SiteFile, "YAML file overriding the embedded site content")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto when marking cookies secure")
	connectOrigins := envOrDefault(lookup, []string{"PORTFOLIO_WEB_CONNECT_ORIGINS"}, "")
	fs.StringVar(&connectOrigins, "connect-origins", connectOrigins, "Comma-separated origins added to connect-src")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.HTTPAddr = normalizeHTTPAddr(cfg.HTTPAddr)
	cfg.ConnectOrigins = splitList(connectOrigins)

	return cfg, nil
}

// collaboratorConfig groups the PORTFOLIO_* settings of outbound clients.
type collaboratorConfig struct {
	GitHub  github.Config  `envPrefix:"GITHUB_"`
	Medium  medium.Config  `envPrefix:"MEDIUM_"`
	EmailJS emailjs.Config `envPrefix:"EMAILJS_"`
	Cache   cache.Config   `envPrefix:"CACHE_"`
	CSRF    csrfConfig     `envPrefix:"CSRF_"`
}

type csrfConfig struct {
	MaxAge time.Duration `env:"MAX_AGE" envDefault:"24h"`
}

func loadCollaboratorConfig() (collaboratorConfig, error) {
	var cfg collaboratorConfig
	if err := config.ParseEnvWithPrefix(&cfg, config.EnvPrefix); err != nil {
		return collaboratorConfig{}, err
	}
	return cfg, nil
}

func loadSite(path string) (content.Site, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return content.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return content.Site{}, fmt.Errorf("read site file: %w", err)
	}
	return content.Parse(raw)
}

// buildServerConfig resolves collaborators into the web server config. An
// EmailJS account without credentials leaves the mailer unset.
func buildServerConfig(cfg Config, collaborators collaboratorConfig) (web.Config, error) {
	site, err := loadSite(cfg.SiteFile)
	if err != nil {
		return web.Config{}, fmt.Errorf("load site: %w", err)
	}
	githubClient, err := github.NewClient(collaborators.GitHub, nil)
	if err != nil {
		return web.Config{}, fmt.Errorf("init github client: %w", err)
	}
	mediumClient, err := medium.NewClient(collaborators.Medium, nil)
	if err != nil {
		return web.Config{}, fmt.Errorf("init medium client: %w", err)
	}

	serverCfg := web.Config{
		HTTPAddr:            cfg.HTTPAddr,
		Site:                site,
		SceneDir:            cfg.SceneDir,
		TrustForwardedProto: cfg.TrustForwardedProto,
		ConnectOrigins:      cfg.ConnectOrigins,
		CSRFMaxAge:          collaborators.CSRF.MaxAge,
		CacheTTL:            collaborators.Cache.TTL,
		Repositories:        githubClient,
		Articles:            mediumClient,
	}
	if collaborators.EmailJS.Configured() {
		mailer, err := emailjs.NewClient(collaborators.EmailJS, nil)
		if err != nil {
			return web.Config{}, fmt.Errorf("init emailjs client: %w", err)
		}
		serverCfg.Mailer = mailer
	} else {
		log.Printf("emailjs not configured; contact form disabled")
	}
	return serverCfg, nil
}

// Run starts the portfolio web server.
func Run(ctx context.Context, cfg Config) error {
	otelCfg, err := platformotel.LoadConfig()
	if err != nil {
		return fmt.Errorf("load otel config: %w", err)
	}
	shutdownTracing, err := platformotel.Setup(ctx, serviceName, otelCfg)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("tracing shutdown failed err=%v", err)
		}
	}()

	collaborators, err := loadCollaboratorConfig()
	if err != nil {
		return fmt.Errorf("load collaborator config: %w", err)
	}
	serverCfg, err := buildServerConfig(cfg, collaborators)
	if err != nil {
		return err
	}
	server, err := web.NewServer(serverCfg)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

// normalizeHTTPAddr accepts a bare port, as hosting platforms export PORT.
func normalizeHTTPAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return defaultHTTPAddr
	}
	if _, err := strconv.Atoi(addr); err == nil {
		return ":" + addr
	}
	return addr
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

func envOrDefault(lookup EnvLookup, keys []string, fallback string) string {
	for _, key := range keys {
		if lookup == nil {
			break
		}
		value, ok := lookup(key)
		if ok {
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}
