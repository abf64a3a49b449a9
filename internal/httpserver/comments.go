package httpserver

import (
	"net/http"

	"github.com/blackmichael/instaapp/internal/domain"
)

func (s *Server) handlePostComments(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	comments, err := s.svc.Comments.ListForPost(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": commentViews(comments)})
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.svc.Comments.Create(r.Context(), actor, id, req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCommentView(c))
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	limit, cursor, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.svc.Comments.ListAll(r.Context(), limit, cursor)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"comments": commentViews(page.Comments),
		"cursor":   page.Cursor,
	})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Comments.Delete(r.Context(), actor, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
