package domain

import (
	"context"
	"fmt"
)

// Graph is the social graph service. Edges are directed: follower -> followee.
type Graph struct {
	edges     FollowGraph
	profiles  ProfileRepository
	publisher EventPublisher
	opts      options
}

func NewGraph(edges FollowGraph, profiles ProfileRepository, publisher EventPublisher, opts ...Option) *Graph {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Graph{
		edges:     edges,
		profiles:  profiles,
		publisher: publisher,
		opts:      buildOptions(opts),
	}
}

// Follow adds the edge actor -> targetID. Following someone already followed is a
// no-op and publishes nothing.
func (g *Graph) Follow(ctx context.Context, actor Actor, targetID int64) error {
	if actor.ID == targetID {
		return ErrSelfFollow
	}
	if _, err := g.profiles.GetProfile(ctx, targetID); err != nil {
		return err
	}
	added, err := g.edges.AddEdge(ctx, actor.ID, targetID)
	if err != nil {
		return fmt.Errorf("add follow edge: %w", err)
	}
	if added {
		g.publish(ctx, EventFollowCreated, actor, targetID)
	}
	return nil
}

// Unfollow removes the edge actor -> targetID if it exists.
func (g *Graph) Unfollow(ctx context.Context, actor Actor, targetID int64) error {
	if actor.ID == targetID {
		return ErrSelfFollow
	}
	removed, err := g.edges.RemoveEdge(ctx, actor.ID, targetID)
	if err != nil {
		return fmt.Errorf("remove follow edge: %w", err)
	}
	if removed {
		g.publish(ctx, EventFollowDeleted, actor, targetID)
	}
	return nil
}

// Followers returns the profiles following profileID.
func (g *Graph) Followers(ctx context.Context, profileID int64) ([]Profile, error) {
	if _, err := g.profiles.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}
	ids, err := g.edges.Followers(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return g.load(ctx, ids)
}

// Followings returns the profiles profileID follows.
func (g *Graph) Followings(ctx context.Context, profileID int64) ([]Profile, error) {
	if _, err := g.profiles.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}
	ids, err := g.edges.Followings(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list followings: %w", err)
	}
	return g.load(ctx, ids)
}

// FeedScope returns the IDs whose posts appear in profileID's home feed: exactly the
// accounts profileID follows.
func (g *Graph) FeedScope(ctx context.Context, profileID int64) ([]int64, error) {
	ids, err := g.edges.Followings(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list feed scope: %w", err)
	}
	return ids, nil
}

func (g *Graph) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return g.edges.HasEdge(ctx, followerID, followeeID)
}

func (g *Graph) load(ctx context.Context, ids []int64) ([]Profile, error) {
	if len(ids) == 0 {
		return []Profile{}, nil
	}
	profiles, err := g.profiles.GetProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return profiles, nil
}

func (g *Graph) publish(ctx context.Context, kind EventKind, actor Actor, targetID int64) {
	g.publisher.Publish(ctx, Event{
		Kind:        kind,
		ActorID:     actor.ID,
		SubjectKind: "profile",
		SubjectID:   targetID,
		At:          g.opts.now(),
	})
}
