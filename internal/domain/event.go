package domain

import (
	"context"
	"time"
)

// EventKind names an activity event.
type EventKind string

const (
	EventStoryCreated   EventKind = "story.created"
	EventStoryDeleted   EventKind = "story.deleted"
	EventStoryExpired   EventKind = "story.expired"
	EventLikeCreated    EventKind = "like.created"
	EventLikeDeleted    EventKind = "like.deleted"
	EventFollowCreated  EventKind = "follow.created"
	EventFollowDeleted  EventKind = "follow.deleted"
	EventPostCreated    EventKind = "post.created"
	EventPostDeleted    EventKind = "post.deleted"
	EventCommentCreated EventKind = "comment.created"
)

// Event is a notification about a state change. SubjectKind/SubjectID identify the
// entity the event is about; Count carries a like count where relevant.
type Event struct {
	Kind        EventKind
	ActorID     int64
	SubjectKind string
	SubjectID   int64
	Count       int
	At          time.Time
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
