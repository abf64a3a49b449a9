package httpserver

import (
	"net/http"
	"strings"

	"github.com/blackmichael/instaapp/internal/domain"
)

type actorHandler func(w http.ResponseWriter, r *http.Request, actor domain.Actor)

// authed requires a valid bearer token and passes the resolved actor on.
func (s *Server) authed(next actorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) <= 7 || !strings.EqualFold(header[:7], "bearer ") {
			s.fail(w, r, domain.ErrUnauthenticated)
			return
		}
		actor, err := s.svc.Tokens.Verify(strings.TrimSpace(header[7:]))
		if err != nil {
			s.fail(w, r, domain.ErrUnauthenticated)
			return
		}
		next(w, r, actor)
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Profiles.Register(r.Context(), domain.RegisterCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("profile registered", "profile_id", p.ID, "username", p.Username)
	s.writeSession(w, r, http.StatusCreated, p)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Profiles.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeSession(w, r, http.StatusOK, p)
}

func (s *Server) writeSession(w http.ResponseWriter, r *http.Request, status int, p *domain.Profile) {
	token, expires, err := s.svc.Tokens.Issue(p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, status, sessionView{
		Token:     token,
		ExpiresAt: expires.UTC(),
		Profile:   ownProfileView(p),
	})
}
