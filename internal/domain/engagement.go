package domain

import (
	"context"
	"fmt"
	"time"
)

// Ledger records likes. At most one like exists per (profile, target); the store's
// uniqueness constraint is the arbiter between concurrent likes. Posts and stories
// can only be liked by someone allowed to view them.
type Ledger struct {
	likes    LikeRepository
	posts    PostRepository
	comments CommentRepository
	stories  StoryRepository
	profiles ProfileRepository
	graph    FollowGraph

	publisher EventPublisher
	storyTTL  time.Duration
	now       func() time.Time
}

func NewLedger(likes LikeRepository, posts PostRepository, comments CommentRepository, stories StoryRepository, profiles ProfileRepository, graph FollowGraph, publisher EventPublisher, storyTTL time.Duration, opts ...Option) *Ledger {
	o := buildOptions(opts)
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Ledger{
		likes:     likes,
		posts:     posts,
		comments:  comments,
		stories:   stories,
		profiles:  profiles,
		graph:     graph,
		publisher: publisher,
		storyTTL:  storyTTL,
		now:       o.now,
	}
}

// Like records that actor likes target and returns the target's new like count.
// Returns ErrAlreadyLiked if the like exists and ErrUnauthorized if actor cannot
// view the post or story.
func (l *Ledger) Like(ctx context.Context, actor Actor, target Target) (int, error) {
	ownerID, err := l.checkTarget(ctx, target)
	if err != nil {
		return 0, err
	}
	if target.Kind != TargetComment {
		ok, err := canView(ctx, l.graph, actor, ownerID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrUnauthorized
		}
	}

	like := &Like{
		ProfileID: actor.ID,
		Target:    target,
		CreatedAt: timestamp(l.now()),
	}
	if err := l.likes.CreateLike(ctx, like); err != nil {
		return 0, err
	}

	count, err := l.Count(ctx, target)
	if err != nil {
		return 0, err
	}
	l.publish(ctx, EventLikeCreated, actor, target, count)
	return count, nil
}

// Unlike removes actor's like on target and returns the new like count. Returns
// ErrNotLiked if there is nothing to remove. A like can be withdrawn after the
// actor stops following the owner.
func (l *Ledger) Unlike(ctx context.Context, actor Actor, target Target) (int, error) {
	if _, err := l.checkTarget(ctx, target); err != nil {
		return 0, err
	}
	if err := l.likes.DeleteLike(ctx, actor.ID, target); err != nil {
		return 0, err
	}

	count, err := l.Count(ctx, target)
	if err != nil {
		return 0, err
	}
	l.publish(ctx, EventLikeDeleted, actor, target, count)
	return count, nil
}

// Count returns the number of likes on target.
func (l *Ledger) Count(ctx context.Context, target Target) (int, error) {
	if !target.Kind.Valid() {
		return 0, fmt.Errorf("%w: unknown like target %q", ErrInvalidInput, target.Kind)
	}
	count, err := l.likes.CountLikes(ctx, target)
	if err != nil {
		return 0, fmt.Errorf("count likes on %s: %w", target, err)
	}
	return count, nil
}

// Likers returns the profiles that liked target.
func (l *Ledger) Likers(ctx context.Context, target Target) ([]Profile, error) {
	if _, err := l.checkTarget(ctx, target); err != nil {
		return nil, err
	}
	likes, err := l.likes.ListLikes(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("list likes on %s: %w", target, err)
	}
	if len(likes) == 0 {
		return []Profile{}, nil
	}
	ids := make([]int64, len(likes))
	for i, lk := range likes {
		ids[i] = lk.ProfileID
	}
	profiles, err := l.profiles.GetProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load likers: %w", err)
	}
	return profiles, nil
}

// checkTarget ensures target exists and returns the profile that owns it. Stories
// past their lifetime count as missing.
func (l *Ledger) checkTarget(ctx context.Context, target Target) (int64, error) {
	switch target.Kind {
	case TargetPost:
		post, err := l.posts.GetPost(ctx, target.ID)
		if err != nil {
			return 0, err
		}
		return post.ProfileID, nil
	case TargetComment:
		comment, err := l.comments.GetComment(ctx, target.ID)
		if err != nil {
			return 0, err
		}
		return comment.ProfileID, nil
	case TargetStory:
		story, err := l.stories.GetStory(ctx, target.ID)
		if err != nil {
			return 0, err
		}
		if !story.VisibleAt(l.now(), l.storyTTL) {
			return 0, ErrNotFound
		}
		return story.ProfileID, nil
	default:
		return 0, fmt.Errorf("%w: unknown like target %q", ErrInvalidInput, target.Kind)
	}
}

func (l *Ledger) publish(ctx context.Context, kind EventKind, actor Actor, target Target, count int) {
	l.publisher.Publish(ctx, Event{
		Kind:        kind,
		ActorID:     actor.ID,
		SubjectKind: string(target.Kind),
		SubjectID:   target.ID,
		Count:       count,
		At:          l.now(),
	})
}
