package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/blackmichael/instaapp/internal/config"
	"github.com/blackmichael/instaapp/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// Tokens issues and verifies access tokens.
type Tokens interface {
	Issue(p *domain.Profile) (string, time.Time, error)
	Verify(token string) (domain.Actor, error)
}

// Services bundles the domain services the HTTP layer exposes.
type Services struct {
	Profiles *domain.ProfileService
	Posts    *domain.PostService
	Comments *domain.CommentService
	Stories  *domain.StoryService
	Ledger   *domain.Ledger
	Graph    *domain.Graph
	Tokens   Tokens

	// Stream serves the websocket activity stream. Optional.
	Stream http.Handler

	// Ping reports storage health. Optional.
	Ping func(ctx context.Context) error
}

// Server is the HTTP server that serves the REST API.
type Server struct {
	svc        Services
	logger     *slog.Logger
	handler    http.Handler
	httpServer *http.Server
}

// NewServer creates a new HTTP server over the given services.
func NewServer(cfg *config.Config, svc Services, logger *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /v1/register", s.handleRegister)
	mux.HandleFunc("POST /v1/login", s.handleLogin)

	mux.HandleFunc("GET /v1/profiles", s.authed(s.handleListProfiles))
	mux.HandleFunc("GET /v1/profiles/search", s.authed(s.handleSearchProfiles))
	mux.HandleFunc("GET /v1/profiles/me", s.authed(s.handleGetMe))
	mux.HandleFunc("PATCH /v1/profiles/me", s.authed(s.handleUpdateMe))
	mux.HandleFunc("POST /v1/profiles/me/verification", s.authed(s.handleSendVerification))
	mux.HandleFunc("POST /v1/profiles/me/verify", s.authed(s.handleVerifyEmail))
	mux.HandleFunc("GET /v1/profiles/{id}", s.authed(s.handleGetProfile))
	mux.HandleFunc("POST /v1/profiles/{id}/follow", s.authed(s.handleFollow))
	mux.HandleFunc("DELETE /v1/profiles/{id}/follow", s.authed(s.handleUnfollow))
	mux.HandleFunc("GET /v1/profiles/{id}/followers", s.authed(s.handleFollowers))
	mux.HandleFunc("GET /v1/profiles/{id}/followings", s.authed(s.handleFollowings))
	mux.HandleFunc("GET /v1/profiles/{id}/stories", s.authed(s.handleProfileStories))

	mux.HandleFunc("GET /v1/posts", s.authed(s.handleFeed))
	mux.HandleFunc("POST /v1/posts", s.authed(s.handleCreatePost))
	mux.HandleFunc("GET /v1/posts/{id}", s.authed(s.handleGetPost))
	mux.HandleFunc("PATCH /v1/posts/{id}", s.authed(s.handleUpdatePost))
	mux.HandleFunc("DELETE /v1/posts/{id}", s.authed(s.handleDeletePost))
	mux.HandleFunc("GET /v1/posts/{id}/like", s.authed(s.handleLikers(domain.TargetPost)))
	mux.HandleFunc("POST /v1/posts/{id}/like", s.authed(s.handleLike(domain.TargetPost)))
	mux.HandleFunc("DELETE /v1/posts/{id}/like", s.authed(s.handleUnlike(domain.TargetPost)))
	mux.HandleFunc("GET /v1/posts/{id}/comments", s.authed(s.handlePostComments))
	mux.HandleFunc("POST /v1/posts/{id}/comments", s.authed(s.handleCreateComment))

	mux.HandleFunc("GET /v1/comments", s.authed(s.handleListComments))
	mux.HandleFunc("DELETE /v1/comments/{id}", s.authed(s.handleDeleteComment))
	mux.HandleFunc("POST /v1/comments/{id}/like", s.authed(s.handleLike(domain.TargetComment)))
	mux.HandleFunc("DELETE /v1/comments/{id}/like", s.authed(s.handleUnlike(domain.TargetComment)))

	mux.HandleFunc("GET /v1/stories", s.authed(s.handleVisibleStories))
	mux.HandleFunc("POST /v1/stories", s.authed(s.handleCreateStory))
	mux.HandleFunc("GET /v1/stories/{id}", s.authed(s.handleGetStory))
	mux.HandleFunc("PATCH /v1/stories/{id}", s.authed(s.handleUpdateStory))
	mux.HandleFunc("DELETE /v1/stories/{id}", s.authed(s.handleDeleteStory))
	mux.HandleFunc("POST /v1/stories/{id}/like", s.authed(s.handleLike(domain.TargetStory)))
	mux.HandleFunc("DELETE /v1/stories/{id}/like", s.authed(s.handleUnlike(domain.TargetStory)))

	mux.HandleFunc("GET /v1/hashtags", s.authed(s.handleHashTags))

	if svc.Stream != nil {
		mux.Handle("GET /v1/stream", svc.Stream)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
	})
	s.handler = withRequestID(withLogging(logger, c.Handler(mux)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for HTTP requests. It blocks until the server is
// shut down or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.svc.Ping != nil {
		if err := s.svc.Ping(r.Context()); err != nil {
			s.logger.Error("health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Unavailable", "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pageParams reads limit (1..100, default 50) and cursor from the query string.
func pageParams(r *http.Request) (int, string, error) {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > maxLimit {
			return 0, "", fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, maxLimit)
		}
		limit = parsed
	}
	return limit, r.URL.Query().Get("cursor"), nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidInput, r.PathValue("id"))
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errType,
		"message": message,
	})
}

type requestIDKey struct{}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
			"request_id", requestID(r.Context()),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Hijack lets the websocket upgrader take over the connection.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
