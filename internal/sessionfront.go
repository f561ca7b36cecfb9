package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmu-oauth/session-front/internal/config"
	"github.com/cmu-oauth/session-front/internal/cookie"
	"github.com/cmu-oauth/session-front/internal/credential"
	"github.com/cmu-oauth/session-front/internal/idp"
	"github.com/cmu-oauth/session-front/internal/log"
	"github.com/cmu-oauth/session-front/internal/server"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// SessionFront is the complete application: provider client, credential
// codec, cookie store and the HTTP server exposing them.
type SessionFront struct {
	config     config.Config
	handler    http.Handler
	httpServer *server.HTTPServer
}

// NewSessionFront builds the application from a validated config
func NewSessionFront(ctx context.Context, cfg config.Config) (*SessionFront, error) {
	log.LogInfoWithFields("sessionfront", "Building application", map[string]any{
		"addr":        cfg.Server.Addr,
		"environment": string(cfg.Server.Environment),
		"tokenUrl":    cfg.Provider.TokenURL,
		"profileUrl":  cfg.Provider.ProfileURL,
	})

	codec, err := credential.NewCodec([]byte(cfg.Session.JWTSecret), cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create credential codec: %w", err)
	}

	provider := idp.NewProvider(cfg.Provider)

	cookies := cookie.NewStore(cookie.Options{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		Path:   config.DefaultCookiePath,
		Secure: cfg.Server.Environment.IsProduction(),
		MaxAge: cfg.Session.TTL,
	})

	handler := server.NewRouter(server.NewSessionHandlers(provider, codec, cookies))

	return &SessionFront{
		config:     cfg,
		handler:    handler,
		httpServer: server.NewHTTPServer(handler, cfg.Server.Addr),
	}, nil
}

// Handler returns the fully wired HTTP handler
func (s *SessionFront) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, SIGINT/SIGTERM arrives, or the
// listener fails, then shuts down gracefully.
func (s *SessionFront) Run(ctx context.Context) error {
	log.LogInfoWithFields("sessionfront", "Starting application", map[string]any{
		"addr": s.config.Server.Addr,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.httpServer.Start(); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		reason := "shutdown requested"
		if ctx.Err() == nil {
			reason = "server error"
		} else if errors.Is(ctx.Err(), context.Canceled) {
			reason = "signal or cancellation"
		}
		log.LogInfoWithFields("sessionfront", "Starting graceful shutdown", map[string]any{
			"reason":  reason,
			"timeout": shutdownTimeout.String(),
		})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.LogErrorWithFields("sessionfront", "Application stopped with error", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	log.LogInfoWithFields("sessionfront", "Application shutdown complete", nil)
	return nil
}
