package domain

import "time"

const maxCommentLength = 1000

// Comment is a text reply attached to a post.
type Comment struct {
	ID        int64
	ProfileID int64
	PostID    int64
	Text      string
	LikeCount int
	CreatedAt time.Time
}
