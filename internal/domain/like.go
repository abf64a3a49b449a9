package domain

import (
	"fmt"
	"time"
)

// TargetKind discriminates what a like points at.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
	TargetStory   TargetKind = "story"
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetPost, TargetComment, TargetStory:
		return true
	}
	return false
}

// Target is a reference to exactly one likeable entity.
type Target struct {
	Kind TargetKind
	ID   int64
}

func PostTarget(id int64) Target    { return Target{Kind: TargetPost, ID: id} }
func CommentTarget(id int64) Target { return Target{Kind: TargetComment, ID: id} }
func StoryTarget(id int64) Target   { return Target{Kind: TargetStory, ID: id} }

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// Like records that a profile liked a target. At most one exists per (profile, target).
type Like struct {
	ID        int64
	ProfileID int64
	Target    Target
	CreatedAt time.Time
}
