package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// DefaultStoryTTL is how long a story stays visible after creation.
const DefaultStoryTTL = 24 * time.Hour

const maxCaptionLength = 2200

// Story is ephemeral content. It is visible while now - CreatedAt < ttl and is
// physically deleted by the expiry scheduler at CreatedAt + ttl.
type Story struct {
	ID        int64
	ProfileID int64

	Caption  string
	ImageURL string
	VideoURL string

	LikeCount int

	CreatedAt time.Time
}

// ExpiresAt returns the instant the story stops being visible.
func (s *Story) ExpiresAt(ttl time.Duration) time.Time {
	return s.CreatedAt.Add(ttl)
}

// VisibleAt reports whether the story is active at t.
func (s *Story) VisibleAt(t time.Time, ttl time.Duration) bool {
	return t.Sub(s.CreatedAt) < ttl
}

type CreateStoryCommand struct {
	Caption  string
	ImageURL string
	VideoURL string
}

// UpdateStoryCommand is a partial update; nil fields are left unchanged.
type UpdateStoryCommand struct {
	Caption  *string
	ImageURL *string
	VideoURL *string
}

func validateStory(s *Story) error {
	if s.ImageURL != "" && s.VideoURL != "" {
		return ErrInvalidMedia
	}
	if utf8.RuneCountInString(s.Caption) > maxCaptionLength {
		return fmt.Errorf("%w: caption exceeds %d characters", ErrInvalidInput, maxCaptionLength)
	}
	return nil
}
