package httpserver

import (
	"net/http"

	"github.com/blackmichael/instaapp/internal/domain"
)

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	limit, cursor, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.svc.Profiles.List(r.Context(), limit, cursor)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profiles": profileViews(page.Profiles),
		"cursor":   page.Cursor,
	})
}

func (s *Server) handleSearchProfiles(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	limit, _, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	profiles, err := s.svc.Profiles.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profileViews(profiles)})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Profiles.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if p.ID == actor.ID {
		writeJSON(w, http.StatusOK, ownProfileView(p))
		return
	}
	writeJSON(w, http.StatusOK, newProfileView(p))
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	p, err := s.svc.Profiles.Get(r.Context(), actor.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ownProfileView(p))
}

type updateProfileRequest struct {
	Bio        *string `json:"bio"`
	AvatarURL  *string `json:"avatar_url"`
	WebsiteURL *string `json:"website_url"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Profiles.Update(r.Context(), actor, domain.UpdateProfileCommand{
		Bio:        req.Bio,
		AvatarURL:  req.AvatarURL,
		WebsiteURL: req.WebsiteURL,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ownProfileView(p))
}

func (s *Server) handleSendVerification(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	if err := s.svc.Profiles.SendVerification(r.Context(), actor); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.svc.Profiles.VerifyEmail(r.Context(), actor, req.Code)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ownProfileView(p))
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Graph.Follow(r.Context(), actor, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile_id": id, "following": true})
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Graph.Unfollow(r.Context(), actor, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile_id": id, "following": false})
}

func (s *Server) handleFollowers(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	profiles, err := s.svc.Graph.Followers(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profileViews(profiles)})
}

func (s *Server) handleFollowings(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	profiles, err := s.svc.Graph.Followings(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profileViews(profiles)})
}
