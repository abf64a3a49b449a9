package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ExpiryScheduler owns the deferred deletion of stories. Jobs are enqueued on story
// creation and drained by a background loop; the visibility filter hides stories whose
// job is late or was lost.
type ExpiryScheduler struct {
	queue     ExpiryQueue
	stories   StoryRepository
	publisher EventPublisher
	ttl       time.Duration
	workers   int
	now       func() time.Time
	logger    *slog.Logger
}

// NewExpiryScheduler creates a scheduler that deletes stories ttl after creation using
// at most workers concurrent deletions per batch.
func NewExpiryScheduler(queue ExpiryQueue, stories StoryRepository, publisher EventPublisher, ttl time.Duration, workers int, logger *slog.Logger, opts ...Option) *ExpiryScheduler {
	o := buildOptions(opts)
	if workers < 1 {
		workers = 1
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &ExpiryScheduler{
		queue:     queue,
		stories:   stories,
		publisher: publisher,
		ttl:       ttl,
		workers:   workers,
		now:       o.now,
		logger:    logger,
	}
}

// TTL returns the story lifetime the scheduler enforces.
func (s *ExpiryScheduler) TTL() time.Duration {
	return s.ttl
}

// Schedule enqueues the deletion of storyID at createdAt + ttl.
func (s *ExpiryScheduler) Schedule(ctx context.Context, storyID int64, createdAt time.Time) error {
	job := ExpiryJob{
		ID:      uuid.NewString(),
		StoryID: storyID,
		RunAt:   createdAt.Add(s.ttl),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("enqueue expiry job for story %d: %w", storyID, err)
	}
	return nil
}

// Execute deletes the story. A story that no longer exists counts as success, so
// redelivered jobs and jobs for stories deleted early are harmless.
func (s *ExpiryScheduler) Execute(ctx context.Context, storyID int64) error {
	err := s.stories.DeleteStory(ctx, storyID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete story %d: %w", storyID, err)
	}
	s.publisher.Publish(ctx, Event{
		Kind:        EventStoryExpired,
		SubjectKind: string(TargetStory),
		SubjectID:   storyID,
		At:          s.now(),
	})
	return nil
}

// RunOnce executes up to batch due jobs and returns how many completed. A job that
// fails stays in the queue and is delivered again later.
func (s *ExpiryScheduler) RunOnce(ctx context.Context, batch int) (int, error) {
	jobs, err := s.queue.Due(ctx, s.now(), batch)
	if err != nil {
		return 0, fmt.Errorf("fetch due expiry jobs: %w", err)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	done := make([]bool, len(jobs))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := s.Execute(ctx, job.StoryID); err != nil {
				s.logger.Error("story expiry failed", "job_id", job.ID, "story_id", job.StoryID, "error", err)
				return nil
			}
			if err := s.queue.Complete(ctx, job.ID); err != nil {
				s.logger.Error("complete expiry job failed", "job_id", job.ID, "error", err)
				return nil
			}
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	completed := 0
	for _, ok := range done {
		if ok {
			completed++
		}
	}
	return completed, nil
}

// Sweep deletes stories already past their lifetime, regardless of whether their
// job is still queued.
func (s *ExpiryScheduler) Sweep(ctx context.Context) (int64, error) {
	deleted, err := s.stories.DeleteStoriesCreatedBefore(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("sweep expired stories: %w", err)
	}
	return deleted, nil
}

// Start runs the expiry loop. It runs immediately on start and then repeats at the
// given interval. It blocks until ctx is cancelled.
func (s *ExpiryScheduler) Start(ctx context.Context, interval time.Duration, batch int, sweep bool) {
	s.tick(ctx, batch, sweep)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, batch, sweep)
		}
	}
}

func (s *ExpiryScheduler) tick(ctx context.Context, batch int, sweep bool) {
	completed, err := s.RunOnce(ctx, batch)
	if err != nil {
		s.logger.Error("expiry run failed", "error", err)
	} else if completed > 0 {
		s.logger.Info("expiry run complete", "completed", completed)
	}

	if !sweep {
		return
	}
	deleted, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", "error", err)
	} else if deleted > 0 {
		s.logger.Info("expiry sweep complete", "deleted", deleted)
	}
}
