package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/index"
)

// DefaultTopK is the number of buyers and grants retrieved per match when the
// request does not say.
const DefaultTopK = 5

// DefaultAllowedOrigin is the CORS origin allowed when none is configured.
const DefaultAllowedOrigin = "http://localhost:3000"

var (
	// ErrServiceRequired is returned when no matching service is provided.
	ErrServiceRequired = errors.New("server: service is required")

	// ErrAdvisorRequired is returned when no advisor is provided.
	ErrAdvisorRequired = errors.New("server: advisor is required")

	// ErrInvalidOrigin is returned when an allowed CORS origin is malformed.
	ErrInvalidOrigin = errors.New("server: invalid allowed origin")
)

// Service is the matching backend served over HTTP.
type Service interface {
	Match(ctx context.Context, query core.RepQuery, topKBuyers, topKGrants int) ([]core.MatchResult, error)
	Reload(ctx context.Context) (*index.Corpus, error)
	Corpus() *index.Corpus
}

// Server routes HTTP requests to the matching service and the advisor.
type Server struct {
	service        Service
	advisor        ai.Advisor
	conversations  *ConversationStore
	allowedOrigins []string
	shutdownGrace  time.Duration
	router         *gin.Engine
	logger         *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origins. "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// WithConversationStore sets the advisor conversation store.
func WithConversationStore(store *ConversationStore) Option {
	return func(s *Server) {
		if store != nil {
			s.conversations = store
		}
	}
}

// WithShutdownGrace sets how long Run waits for in-flight requests.
func WithShutdownGrace(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownGrace = d
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a server. The gin mode is taken from the process (gin.SetMode).
func New(service Service, advisor ai.Advisor, opts ...Option) (*Server, error) {
	if service == nil {
		return nil, ErrServiceRequired
	}
	if advisor == nil {
		return nil, ErrAdvisorRequired
	}

	s := &Server{
		service:        service,
		advisor:        advisor,
		conversations:  NewConversationStore(DefaultMaxConversations),
		allowedOrigins: []string{DefaultAllowedOrigin},
		shutdownGrace:  10 * time.Second,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "http")

	policy := corsConfig(s.allowedOrigins)
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrigin, err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.logger), cors.New(policy))

	router.GET("/", s.handleRoot)
	router.GET("/healthz", s.handleHealth)
	router.POST("/match", s.handleMatch)
	router.POST("/chat", s.handleChat)
	router.POST("/admin/reload", s.handleReload)

	s.router = router
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
