package httpserver

import (
	"net/http"

	"github.com/blackmichael/instaapp/internal/domain"
)

type storyRequest struct {
	Caption  *string `json:"caption"`
	ImageURL *string `json:"image_url"`
	VideoURL *string `json:"video_url"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// handleVisibleStories lists every story active right now.
func (s *Server) handleVisibleStories(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	stories, err := s.svc.Stories.Visible(r.Context(), s.svc.Stories.Now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": storyViews(stories, s.svc.Stories.TTL())})
}

func (s *Server) handleProfileStories(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stories, err := s.svc.Stories.VisibleByProfile(r.Context(), id, s.svc.Stories.Now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": storyViews(stories, s.svc.Stories.TTL())})
}

func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	var req storyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	story, err := s.svc.Stories.Create(r.Context(), actor, domain.CreateStoryCommand{
		Caption:  deref(req.Caption),
		ImageURL: deref(req.ImageURL),
		VideoURL: deref(req.VideoURL),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newStoryView(story, s.svc.Stories.TTL()))
}

func (s *Server) handleGetStory(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	story, err := s.svc.Stories.Get(r.Context(), actor, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStoryView(story, s.svc.Stories.TTL()))
}

func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req storyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	story, err := s.svc.Stories.Update(r.Context(), actor, id, domain.UpdateStoryCommand{
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStoryView(story, s.svc.Stories.TTL()))
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Stories.Delete(r.Context(), actor, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
