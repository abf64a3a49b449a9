package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultPostTitle   = "Untitled Post"
	DefaultPostContent = "No content provided"

	maxTitleLength   = 255
	maxHashTagLength = 50
)

// Post is a piece of permanent content owned by a profile.
type Post struct {
	ID        int64
	ProfileID int64

	Title    string
	Content  string
	ImageURL string
	VideoURL string

	// HashTags holds tag names as stored.
	HashTags []string

	LikeCount    int
	CommentCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashTag is a unique tag name shared across posts.
type HashTag struct {
	ID   int64
	Name string
}

type CreatePostCommand struct {
	Title    string
	Content  string
	ImageURL string
	VideoURL string
	// Tags is comma-separated tag text, e.g. "go, backend".
	Tags string
}

// UpdatePostCommand is a partial update; nil fields are left unchanged.
type UpdatePostCommand struct {
	Title    *string
	Content  *string
	ImageURL *string
	VideoURL *string
	Tags     *string
}

// ParseHashTags splits comma-separated tag text into distinct names, preserving the
// order of first appearance. Empty entries are skipped.
func ParseHashTags(text string) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(text, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > maxHashTagLength {
			return nil, fmt.Errorf("%w: hashtag %q exceeds %d characters", ErrInvalidInput, name, maxHashTagLength)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
