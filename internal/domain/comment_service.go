package domain

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

type CommentService struct {
	comments  CommentRepository
	posts     PostRepository
	publisher EventPublisher
	opts      options
}

func NewCommentService(comments CommentRepository, posts PostRepository, publisher EventPublisher, opts ...Option) *CommentService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &CommentService{
		comments:  comments,
		posts:     posts,
		publisher: publisher,
		opts:      buildOptions(opts),
	}
}

// Create attaches a comment to a post.
func (s *CommentService) Create(ctx context.Context, actor Actor, postID int64, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, maxCommentLength)
	}
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	c := &Comment{
		ProfileID: actor.ID,
		PostID:    postID,
		Text:      text,
		CreatedAt: timestamp(s.opts.now()),
	}
	if err := s.comments.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.publisher.Publish(ctx, Event{
		Kind:        EventCommentCreated,
		ActorID:     actor.ID,
		SubjectKind: string(TargetPost),
		SubjectID:   postID,
		At:          c.CreatedAt,
	})
	return c, nil
}

// ListForPost returns the comments of a post, oldest first.
func (s *CommentService) ListForPost(ctx context.Context, postID int64) ([]Comment, error) {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListPostComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list post comments: %w", err)
	}
	return comments, nil
}

// ListAll returns a page of comments across all posts, newest first.
func (s *CommentService) ListAll(ctx context.Context, limit int, cursor string) (*CommentPage, error) {
	comments, next, err := s.comments.ListComments(ctx, limit, cursor)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return &CommentPage{Comments: comments, Cursor: next}, nil
}

// Delete removes a comment. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, actor Actor, id int64) error {
	c, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if c.ProfileID != actor.ID {
		return ErrUnauthorized
	}
	if err := s.comments.DeleteComment(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
