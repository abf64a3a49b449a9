package httpserver

import (
	"time"

	"github.com/blackmichael/instaapp/internal/domain"
)

type profileView struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	EmailVerified *bool     `json:"email_verified,omitempty"`
	Bio           string    `json:"bio"`
	AvatarURL     string    `json:"avatar_url"`
	WebsiteURL    string    `json:"website_url"`
	CreatedAt     time.Time `json:"created_at"`
}

func newProfileView(p *domain.Profile) profileView {
	return profileView{
		ID:         p.ID,
		Username:   p.Username,
		Bio:        p.Bio,
		AvatarURL:  p.AvatarURL,
		WebsiteURL: p.WebsiteURL,
		CreatedAt:  p.CreatedAt,
	}
}

// ownProfileView includes the private fields only the owner sees.
func ownProfileView(p *domain.Profile) profileView {
	v := newProfileView(p)
	v.Email = p.Email
	verified := p.EmailVerified
	v.EmailVerified = &verified
	return v
}

func profileViews(ps []domain.Profile) []profileView {
	out := make([]profileView, 0, len(ps))
	for i := range ps {
		out = append(out, newProfileView(&ps[i]))
	}
	return out
}

type sessionView struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Profile   profileView `json:"profile"`
}

type postView struct {
	ID            int64     `json:"id"`
	ProfileID     int64     `json:"profile_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ImageURL      string    `json:"image_url,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	HashTags      []string  `json:"hashtags"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newPostView(p *domain.Post) postView {
	tags := p.HashTags
	if tags == nil {
		tags = []string{}
	}
	return postView{
		ID:            p.ID,
		ProfileID:     p.ProfileID,
		Title:         p.Title,
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		VideoURL:      p.VideoURL,
		HashTags:      tags,
		LikesCount:    p.LikeCount,
		CommentsCount: p.CommentCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type postPageView struct {
	Posts  []postView `json:"posts"`
	Cursor string     `json:"cursor,omitempty"`
}

type storyView struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"profile_id"`
	Caption    string    `json:"caption"`
	ImageURL   string    `json:"image_url,omitempty"`
	VideoURL   string    `json:"video_url,omitempty"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func newStoryView(s *domain.Story, ttl time.Duration) storyView {
	return storyView{
		ID:         s.ID,
		ProfileID:  s.ProfileID,
		Caption:    s.Caption,
		ImageURL:   s.ImageURL,
		VideoURL:   s.VideoURL,
		LikesCount: s.LikeCount,
		CreatedAt:  s.CreatedAt,
		ExpiresAt:  s.ExpiresAt(ttl),
	}
}

func storyViews(ss []domain.Story, ttl time.Duration) []storyView {
	out := make([]storyView, 0, len(ss))
	for i := range ss {
		out = append(out, newStoryView(&ss[i], ttl))
	}
	return out
}

type commentView struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"profile_id"`
	PostID     int64     `json:"post_id"`
	Text       string    `json:"text"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func newCommentView(c *domain.Comment) commentView {
	return commentView{
		ID:         c.ID,
		ProfileID:  c.ProfileID,
		PostID:     c.PostID,
		Text:       c.Text,
		LikesCount: c.LikeCount,
		CreatedAt:  c.CreatedAt,
	}
}

func commentViews(cs []domain.Comment) []commentView {
	out := make([]commentView, 0, len(cs))
	for i := range cs {
		out = append(out, newCommentView(&cs[i]))
	}
	return out
}

type likesView struct {
	Target     string        `json:"target"`
	LikesCount int           `json:"likes_count"`
	Likers     []profileView `json:"likers,omitempty"`
}

type hashTagView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
