package store

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/blackmichael/instaapp/internal/domain"
)

type profileModel struct {
	bun.BaseModel `bun:"table:profiles,alias:pr"`

	ID               int64     `bun:"id,pk,autoincrement"`
	Username         string    `bun:"username,notnull,unique"`
	Email            string    `bun:"email,notnull"`
	PasswordHash     string    `bun:"password_hash,notnull"`
	IsStaff          bool      `bun:"is_staff,notnull"`
	Bio              string    `bun:"bio,notnull"`
	AvatarURL        string    `bun:"avatar_url,notnull"`
	WebsiteURL       string    `bun:"website_url,notnull"`
	EmailVerified    bool      `bun:"email_verified,notnull"`
	VerificationCode string    `bun:"verification_code,notnull"`
	CreatedAt        time.Time `bun:"created_at,notnull"`
}

type followModel struct {
	bun.BaseModel `bun:"table:follows,alias:f"`

	FollowerID int64     `bun:"follower_id,pk"`
	FolloweeID int64     `bun:"followee_id,pk"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

type postModel struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID        int64     `bun:"id,pk,autoincrement"`
	ProfileID int64     `bun:"profile_id,notnull"`
	Title     string    `bun:"title,notnull"`
	Content   string    `bun:"content,notnull"`
	ImageURL  string    `bun:"image_url,notnull"`
	VideoURL  string    `bun:"video_url,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`

	LikeCount    int `bun:"like_count,scanonly"`
	CommentCount int `bun:"comment_count,scanonly"`
}

type hashTagModel struct {
	bun.BaseModel `bun:"table:hashtags,alias:h"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
}

type postHashTagModel struct {
	bun.BaseModel `bun:"table:post_hashtags,alias:ph"`

	PostID    int64 `bun:"post_id,pk"`
	HashTagID int64 `bun:"hashtag_id,pk"`
}

// postTagRow is the scan target for loading tag names of several posts at once.
type postTagRow struct {
	PostID int64  `bun:"post_id"`
	Name   string `bun:"name"`
}

type storyModel struct {
	bun.BaseModel `bun:"table:stories,alias:s"`

	ID        int64     `bun:"id,pk,autoincrement"`
	ProfileID int64     `bun:"profile_id,notnull"`
	Caption   string    `bun:"caption,notnull"`
	ImageURL  string    `bun:"image_url,notnull"`
	VideoURL  string    `bun:"video_url,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`

	LikeCount int `bun:"like_count,scanonly"`
}

type commentModel struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	ProfileID int64     `bun:"profile_id,notnull"`
	PostID    int64     `bun:"post_id,notnull"`
	Text      string    `bun:"text,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`

	LikeCount int `bun:"like_count,scanonly"`
}

type likeModel struct {
	bun.BaseModel `bun:"table:likes,alias:l"`

	ID         int64     `bun:"id,pk,autoincrement"`
	ProfileID  int64     `bun:"profile_id,notnull,unique:likes_profile_target_key"`
	TargetType string    `bun:"target_type,notnull,unique:likes_profile_target_key"`
	TargetID   int64     `bun:"target_id,notnull,unique:likes_profile_target_key"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

type expiryJobModel struct {
	bun.BaseModel `bun:"table:story_expiry_jobs,alias:j"`

	ID          string    `bun:"id,pk"`
	StoryID     int64     `bun:"story_id,notnull"`
	RunAt       time.Time `bun:"run_at,notnull"`
	LockedUntil time.Time `bun:"locked_until,notnull"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}

func profileFromDomain(p *domain.Profile) *profileModel {
	return &profileModel{
		ID:               p.ID,
		Username:         p.Username,
		Email:            p.Email,
		PasswordHash:     p.PasswordHash,
		IsStaff:          p.IsStaff,
		Bio:              p.Bio,
		AvatarURL:        p.AvatarURL,
		WebsiteURL:       p.WebsiteURL,
		EmailVerified:    p.EmailVerified,
		VerificationCode: p.VerificationCode,
		CreatedAt:        p.CreatedAt,
	}
}

func (m *profileModel) toDomain() domain.Profile {
	return domain.Profile{
		ID:               m.ID,
		Username:         m.Username,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		IsStaff:          m.IsStaff,
		Bio:              m.Bio,
		AvatarURL:        m.AvatarURL,
		WebsiteURL:       m.WebsiteURL,
		EmailVerified:    m.EmailVerified,
		VerificationCode: m.VerificationCode,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

func (m *postModel) toDomain() domain.Post {
	return domain.Post{
		ID:           m.ID,
		ProfileID:    m.ProfileID,
		Title:        m.Title,
		Content:      m.Content,
		ImageURL:     m.ImageURL,
		VideoURL:     m.VideoURL,
		HashTags:     []string{},
		LikeCount:    m.LikeCount,
		CommentCount: m.CommentCount,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func (m *storyModel) toDomain() domain.Story {
	return domain.Story{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		Caption:   m.Caption,
		ImageURL:  m.ImageURL,
		VideoURL:  m.VideoURL,
		LikeCount: m.LikeCount,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (m *commentModel) toDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		PostID:    m.PostID,
		Text:      m.Text,
		LikeCount: m.LikeCount,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (m *likeModel) toDomain() domain.Like {
	return domain.Like{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		Target:    domain.Target{Kind: domain.TargetKind(m.TargetType), ID: m.TargetID},
		CreatedAt: m.CreatedAt.UTC(),
	}
}
