package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// PostService manages posts and the home feed.
type PostService struct {
	posts       PostRepository
	graph       *Graph
	publisher   EventPublisher
	includeSelf bool
	opts        options
	logger      *slog.Logger
}

// NewPostService creates a PostService. When includeSelf is set the home feed also
// shows the reader's own posts.
func NewPostService(posts PostRepository, graph *Graph, publisher EventPublisher, includeSelf bool, logger *slog.Logger, opts ...Option) *PostService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &PostService{
		posts:       posts,
		graph:       graph,
		publisher:   publisher,
		includeSelf: includeSelf,
		opts:        buildOptions(opts),
		logger:      logger,
	}
}

func (s *PostService) Create(ctx context.Context, actor Actor, cmd CreatePostCommand) (*Post, error) {
	tags, err := ParseHashTags(cmd.Tags)
	if err != nil {
		return nil, err
	}

	now := timestamp(s.opts.now())
	post := &Post{
		ProfileID: actor.ID,
		Title:     strings.TrimSpace(cmd.Title),
		Content:   strings.TrimSpace(cmd.Content),
		ImageURL:  cmd.ImageURL,
		VideoURL:  cmd.VideoURL,
		HashTags:  tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Title == "" {
		post.Title = DefaultPostTitle
	}
	if post.Content == "" {
		post.Content = DefaultPostContent
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.publish(ctx, EventPostCreated, actor, post.ID)
	return post, nil
}

// Get returns a post the actor may view.
func (s *PostService) Get(ctx context.Context, actor Actor, id int64) (*Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := canView(ctx, s.graph.edges, actor, post.ProfileID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, actor Actor, id int64, cmd UpdatePostCommand) (*Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, post.ProfileID) {
		return nil, ErrUnauthorized
	}

	if cmd.Title != nil {
		post.Title = strings.TrimSpace(*cmd.Title)
		if post.Title == "" {
			post.Title = DefaultPostTitle
		}
	}
	if cmd.Content != nil {
		post.Content = strings.TrimSpace(*cmd.Content)
		if post.Content == "" {
			post.Content = DefaultPostContent
		}
	}
	if cmd.ImageURL != nil {
		post.ImageURL = *cmd.ImageURL
	}
	if cmd.VideoURL != nil {
		post.VideoURL = *cmd.VideoURL
	}
	if cmd.Tags != nil {
		tags, err := ParseHashTags(*cmd.Tags)
		if err != nil {
			return nil, err
		}
		post.HashTags = tags
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}
	post.UpdatedAt = timestamp(s.opts.now())

	if err := s.posts.UpdatePost(ctx, post, cmd.Tags != nil); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes the post with its comments and likes.
func (s *PostService) Delete(ctx context.Context, actor Actor, id int64) error {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, post.ProfileID) {
		return ErrUnauthorized
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.publish(ctx, EventPostDeleted, actor, id)
	return nil
}

// Feed returns a page of posts by the accounts actor follows, newest first.
func (s *PostService) Feed(ctx context.Context, actor Actor, limit int, cursor string) (*PostPage, error) {
	scope, err := s.graph.FeedScope(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if s.includeSelf {
		scope = append(scope, actor.ID)
	}
	if len(scope) == 0 {
		return &PostPage{Posts: []Post{}}, nil
	}

	posts, next, err := s.posts.ListPostsByAuthors(ctx, scope, limit, cursor)
	if err != nil {
		s.logger.Error("feed query failed", "profile_id", actor.ID, "limit", limit, "cursor", cursor, "error", err)
		return nil, fmt.Errorf("list feed posts: %w", err)
	}
	return &PostPage{Posts: posts, Cursor: next}, nil
}

// HashTags lists every known hashtag. Returns ErrNotFound when none exist.
func (s *PostService) HashTags(ctx context.Context) ([]HashTag, error) {
	tags, err := s.posts.ListHashTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hashtags: %w", err)
	}
	if len(tags) == 0 {
		return nil, ErrNotFound
	}
	return tags, nil
}

func (s *PostService) publish(ctx context.Context, kind EventKind, actor Actor, postID int64) {
	s.publisher.Publish(ctx, Event{
		Kind:        kind,
		ActorID:     actor.ID,
		SubjectKind: string(TargetPost),
		SubjectID:   postID,
		At:          s.opts.now(),
	})
}

func validatePost(p *Post) error {
	if utf8.RuneCountInString(p.Title) > maxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLength)
	}
	return nil
}
