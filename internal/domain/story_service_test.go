package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmichael/instaapp/internal/domain"
	"github.com/blackmichael/instaapp/internal/domain/mocks"
)

type storyFixture struct {
	queue   *mocks.MockExpiryQueue
	stories *mocks.MockStoryRepository
	graph   *mocks.MockFollowGraph
	svc     *domain.StoryService
}

func newStoryFixture(t *testing.T, now time.Time) storyFixture {
	ctrl := gomock.NewController(t)
	f := storyFixture{
		queue:   mocks.NewMockExpiryQueue(ctrl),
		stories: mocks.NewMockStoryRepository(ctrl),
		graph:   mocks.NewMockFollowGraph(ctrl),
	}
	sched := domain.NewExpiryScheduler(f.queue, f.stories, nil, domain.DefaultStoryTTL, 1, discardLogger(), fixedClock(now))
	f.svc = domain.NewStoryService(f.stories, f.graph, sched, nil, discardLogger(), fixedClock(now))
	return f
}

func TestStoryService_Create(t *testing.T) {
	owner := domain.Actor{ID: 1}

	t.Run("happy path - persists then schedules", func(t *testing.T) {
		f := newStoryFixture(t, epoch)
		gomock.InOrder(
			f.stories.EXPECT().CreateStory(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, s *domain.Story) error {
					s.ID = 42
					return nil
				}),
			f.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, job domain.ExpiryJob) error {
					assert.Equal(t, int64(42), job.StoryID)
					assert.Equal(t, epoch.Add(24*time.Hour), job.RunAt)
					return nil
				}),
		)

		story, err := f.svc.Create(context.Background(), owner, domain.CreateStoryCommand{ImageURL: "a.png"})
		require.NoError(t, err)
		assert.Equal(t, int64(42), story.ID)
		assert.Equal(t, owner.ID, story.ProfileID)
		assert.Equal(t, epoch, story.CreatedAt)
	})

	t.Run("happy path - broker failure does not fail creation", func(t *testing.T) {
		f := newStoryFixture(t, epoch)
		f.stories.EXPECT().CreateStory(gomock.Any(), gomock.Any()).Return(nil)
		f.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		story, err := f.svc.Create(context.Background(), owner, domain.CreateStoryCommand{Caption: "hi"})
		require.NoError(t, err)
		assert.NotNil(t, story)
	})

	t.Run("sad path - image and video rejected before persistence", func(t *testing.T) {
		f := newStoryFixture(t, epoch)

		_, err := f.svc.Create(context.Background(), owner, domain.CreateStoryCommand{ImageURL: "a.png", VideoURL: "b.mp4"})
		assert.ErrorIs(t, err, domain.ErrInvalidMedia)
	})
}

func TestStoryService_GetVisibilityBoundary(t *testing.T) {
	owner := domain.Actor{ID: 1}
	created := epoch

	cases := []struct {
		name    string
		age     time.Duration
		wantErr error
	}{
		{"visible just after creation", time.Second, nil},
		{"visible at 23h59m", 23*time.Hour + 59*time.Minute, nil},
		{"hidden exactly at 24h", 24 * time.Hour, domain.ErrNotFound},
		{"hidden at 24h01m", 24*time.Hour + time.Minute, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newStoryFixture(t, created.Add(tc.age))
			f.stories.EXPECT().GetStory(gomock.Any(), int64(9)).
				Return(&domain.Story{ID: 9, ProfileID: owner.ID, CreatedAt: created}, nil)

			story, err := f.svc.Get(context.Background(), owner, 9)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(9), story.ID)
		})
	}
}

func TestStoryService_GetPermissions(t *testing.T) {
	story := &domain.Story{ID: 9, ProfileID: 1, CreatedAt: epoch}

	t.Run("happy path - follower may view", func(t *testing.T) {
		f := newStoryFixture(t, epoch.Add(time.Hour))
		f.stories.EXPECT().GetStory(gomock.Any(), int64(9)).Return(story, nil)
		f.graph.EXPECT().HasEdge(gomock.Any(), int64(2), int64(1)).Return(true, nil)

		_, err := f.svc.Get(context.Background(), domain.Actor{ID: 2}, 9)
		require.NoError(t, err)
	})

	t.Run("happy path - staff may view without following", func(t *testing.T) {
		f := newStoryFixture(t, epoch.Add(time.Hour))
		f.stories.EXPECT().GetStory(gomock.Any(), int64(9)).Return(story, nil)

		_, err := f.svc.Get(context.Background(), domain.Actor{ID: 5, Staff: true}, 9)
		require.NoError(t, err)
	})

	t.Run("sad path - stranger is refused", func(t *testing.T) {
		f := newStoryFixture(t, epoch.Add(time.Hour))
		f.stories.EXPECT().GetStory(gomock.Any(), int64(9)).Return(story, nil)
		f.graph.EXPECT().HasEdge(gomock.Any(), int64(3), int64(1)).Return(false, nil)

		_, err := f.svc.Get(context.Background(), domain.Actor{ID: 3}, 9)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestStoryService_Update(t *testing.T) {
	video := "clip.mp4"

	t.Run("sad path - adding video to an image story", func(t *testing.T) {
		f := newStoryFixture(t, epoch.Add(time.Hour))
		f.stories.EXPECT().GetStory(gomock.Any(), int64(9)).
			Return(&domain.Story{ID: 9, ProfileID: 1, ImageURL: "a.png", CreatedAt: epoch}, nil)

		_, err := f.svc.Update(context.Background(), domain.Actor{ID: 1}, 9, domain.UpdateStoryCommand{VideoURL: &video})
		assert.ErrorIs(t, err, domain.ErrInvalidMedia)
	})

	t.Run("sad path - non-owner", func(t *testing.T) {
		f := newStoryFixture(t, epoch.Add(time.Hour))
		f.stories.EXPECT().GetStory(gomock.Any(), int64(9)).
			Return(&domain.Story{ID: 9, ProfileID: 1, CreatedAt: epoch}, nil)

		_, err := f.svc.Update(context.Background(), domain.Actor{ID: 2}, 9, domain.UpdateStoryCommand{VideoURL: &video})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("happy path - swap image for video", func(t *testing.T) {
		f := newStoryFixture(t, epoch.Add(time.Hour))
		empty := ""
		f.stories.EXPECT().GetStory(gomock.Any(), int64(9)).
			Return(&domain.Story{ID: 9, ProfileID: 1, ImageURL: "a.png", CreatedAt: epoch}, nil)
		f.stories.EXPECT().UpdateStory(gomock.Any(), gomock.Any()).Return(nil)

		story, err := f.svc.Update(context.Background(), domain.Actor{ID: 1}, 9, domain.UpdateStoryCommand{ImageURL: &empty, VideoURL: &video})
		require.NoError(t, err)
		assert.Equal(t, video, story.VideoURL)
		assert.Empty(t, story.ImageURL)
	})
}

func TestStoryService_Visible(t *testing.T) {
	now := epoch.Add(48 * time.Hour)
	f := newStoryFixture(t, now)

	f.stories.EXPECT().ListStoriesSince(gomock.Any(), now.Add(-24*time.Hour)).Return([]domain.Story{
		{ID: 3, CreatedAt: now.Add(-time.Minute)},
		{ID: 2, CreatedAt: now.Add(-23*time.Hour - 59*time.Minute)},
		{ID: 1, CreatedAt: now.Add(-24 * time.Hour)},
	}, nil)

	stories, err := f.svc.Visible(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, int64(3), stories[0].ID)
	assert.Equal(t, int64(2), stories[1].ID)
}
