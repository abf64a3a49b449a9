package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// StoryService manages ephemeral stories. Every read goes through the visibility
// filter so that a late or lost expiry job never exposes an expired story.
type StoryService struct {
	stories   StoryRepository
	graph     FollowGraph
	scheduler *ExpiryScheduler
	publisher EventPublisher
	ttl       time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

func NewStoryService(stories StoryRepository, graph FollowGraph, scheduler *ExpiryScheduler, publisher EventPublisher, logger *slog.Logger, opts ...Option) *StoryService {
	o := buildOptions(opts)
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &StoryService{
		stories:   stories,
		graph:     graph,
		scheduler: scheduler,
		publisher: publisher,
		ttl:       scheduler.TTL(),
		now:       o.now,
		logger:    logger,
	}
}

// Create persists a story and schedules its deletion. Media exclusivity is checked
// before anything is written. A scheduling failure is logged and does not fail the
// request.
func (s *StoryService) Create(ctx context.Context, actor Actor, cmd CreateStoryCommand) (*Story, error) {
	story := &Story{
		ProfileID: actor.ID,
		Caption:   cmd.Caption,
		ImageURL:  cmd.ImageURL,
		VideoURL:  cmd.VideoURL,
		CreatedAt: timestamp(s.now()),
	}
	if err := validateStory(story); err != nil {
		return nil, err
	}

	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}

	if err := s.scheduler.Schedule(ctx, story.ID, story.CreatedAt); err != nil {
		s.logger.Error("schedule story expiry failed", "story_id", story.ID, "error", err)
	}

	s.publisher.Publish(ctx, Event{
		Kind:        EventStoryCreated,
		ActorID:     actor.ID,
		SubjectKind: string(TargetStory),
		SubjectID:   story.ID,
		At:          story.CreatedAt,
	})
	return story, nil
}

// Get returns a visible story the actor may view. Expired stories are reported as
// not found.
func (s *StoryService) Get(ctx context.Context, actor Actor, id int64) (*Story, error) {
	story, err := s.visibleStory(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := canView(ctx, s.graph, actor, story.ProfileID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}
	return story, nil
}

// Update applies a partial update. Only the owner or staff may update.
func (s *StoryService) Update(ctx context.Context, actor Actor, id int64, cmd UpdateStoryCommand) (*Story, error) {
	story, err := s.visibleStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, story.ProfileID) {
		return nil, ErrUnauthorized
	}

	if cmd.Caption != nil {
		story.Caption = *cmd.Caption
	}
	if cmd.ImageURL != nil {
		story.ImageURL = *cmd.ImageURL
	}
	if cmd.VideoURL != nil {
		story.VideoURL = *cmd.VideoURL
	}
	if err := validateStory(story); err != nil {
		return nil, err
	}

	if err := s.stories.UpdateStory(ctx, story); err != nil {
		return nil, fmt.Errorf("update story: %w", err)
	}
	return story, nil
}

// Delete removes a story ahead of its expiry. The queued expiry job is left in place
// and becomes a no-op.
func (s *StoryService) Delete(ctx context.Context, actor Actor, id int64) error {
	story, err := s.stories.GetStory(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, story.ProfileID) {
		return ErrUnauthorized
	}
	if err := s.stories.DeleteStory(ctx, id); err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	s.publisher.Publish(ctx, Event{
		Kind:        EventStoryDeleted,
		ActorID:     actor.ID,
		SubjectKind: string(TargetStory),
		SubjectID:   id,
		At:          s.now(),
	})
	return nil
}

// Visible returns the stories active at the given instant, newest first.
func (s *StoryService) Visible(ctx context.Context, at time.Time) ([]Story, error) {
	stories, err := s.stories.ListStoriesSince(ctx, at.Add(-s.ttl))
	if err != nil {
		return nil, fmt.Errorf("list visible stories: %w", err)
	}
	return filterVisible(stories, at, s.ttl), nil
}

// VisibleByProfile is Visible restricted to one owner.
func (s *StoryService) VisibleByProfile(ctx context.Context, profileID int64, at time.Time) ([]Story, error) {
	stories, err := s.stories.ListProfileStoriesSince(ctx, profileID, at.Add(-s.ttl))
	if err != nil {
		return nil, fmt.Errorf("list visible stories of profile %d: %w", profileID, err)
	}
	return filterVisible(stories, at, s.ttl), nil
}

// TTL returns the visibility window.
func (s *StoryService) TTL() time.Duration {
	return s.ttl
}

// Now returns the service clock reading.
func (s *StoryService) Now() time.Time {
	return s.now()
}

func (s *StoryService) visibleStory(ctx context.Context, id int64) (*Story, error) {
	story, err := s.stories.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if !story.VisibleAt(s.now(), s.ttl) {
		return nil, ErrNotFound
	}
	return story, nil
}

// filterVisible re-applies the visibility rule in memory. Stories created after at
// are kept out as well.
func filterVisible(stories []Story, at time.Time, ttl time.Duration) []Story {
	out := make([]Story, 0, len(stories))
	for _, st := range stories {
		if st.CreatedAt.After(at) {
			continue
		}
		if st.VisibleAt(at, ttl) {
			out = append(out, st)
		}
	}
	return out
}
