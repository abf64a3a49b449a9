package httpserver

import (
	"net/http"

	"github.com/blackmichael/instaapp/internal/domain"
)

type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`
	Tags     string `json:"tags"`
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
	VideoURL *string `json:"video_url"`
	Tags     *string `json:"tags"`
}

// handleFeed returns the posts of followed profiles, newest first.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	limit, cursor, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	page, err := s.svc.Posts.Feed(r.Context(), actor, limit, cursor)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := postPageView{
		Posts:  make([]postView, 0, len(page.Posts)),
		Cursor: page.Cursor,
	}
	for i := range page.Posts {
		resp.Posts = append(resp.Posts, newPostView(&page.Posts[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	post, err := s.svc.Posts.Create(r.Context(), actor, domain.CreatePostCommand{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		Tags:     req.Tags,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newPostView(post))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	post, err := s.svc.Posts.Get(r.Context(), actor, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPostView(post))
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	post, err := s.svc.Posts.Update(r.Context(), actor, id, domain.UpdatePostCommand{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
		Tags:     req.Tags,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPostView(post))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Posts.Delete(r.Context(), actor, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHashTags(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
	tags, err := s.svc.Posts.HashTags(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]hashTagView, 0, len(tags))
	for _, t := range tags {
		out = append(out, hashTagView{ID: t.ID, Name: t.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"hashtags": out})
}

// handleLike records a like by the caller on the path target and returns the new count.
func (s *Server) handleLike(kind domain.TargetKind) actorHandler {
	return func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		id, err := pathID(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		target := domain.Target{Kind: kind, ID: id}
		count, err := s.svc.Ledger.Like(r.Context(), actor, target)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, likesView{Target: target.String(), LikesCount: count})
	}
}

func (s *Server) handleUnlike(kind domain.TargetKind) actorHandler {
	return func(w http.ResponseWriter, r *http.Request, actor domain.Actor) {
		id, err := pathID(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		target := domain.Target{Kind: kind, ID: id}
		count, err := s.svc.Ledger.Unlike(r.Context(), actor, target)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, likesView{Target: target.String(), LikesCount: count})
	}
}

func (s *Server) handleLikers(kind domain.TargetKind) actorHandler {
	return func(w http.ResponseWriter, r *http.Request, _ domain.Actor) {
		id, err := pathID(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		target := domain.Target{Kind: kind, ID: id}
		likers, err := s.svc.Ledger.Likers(r.Context(), target)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, likesView{
			Target:     target.String(),
			LikesCount: len(likers),
			Likers:     profileViews(likers),
		})
	}
}
