package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/ports.go -package=mocks github.com/blackmichael/instaapp/internal/domain ExpiryQueue,StoryRepository,FollowGraph,LikeRepository,EventPublisher,Mailer

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	// CreateProfile inserts a profile and sets its ID. Returns ErrAlreadyExists when the
	// username is taken.
	CreateProfile(ctx context.Context, p *Profile) error

	// GetProfile returns ErrNotFound when no profile has the given ID.
	GetProfile(ctx context.Context, id int64) (*Profile, error)

	GetProfileByUsername(ctx context.Context, username string) (*Profile, error)

	// GetProfilesByIDs returns the existing profiles among ids, ordered by ID.
	GetProfilesByIDs(ctx context.Context, ids []int64) ([]Profile, error)

	// ListProfiles returns profiles ordered by ID. The cursor is opaque; the returned
	// cursor is empty when there are no more results.
	ListProfiles(ctx context.Context, limit int, cursor string) ([]Profile, string, error)

	// SearchProfiles matches query as a case-insensitive substring of the username.
	SearchProfiles(ctx context.Context, query string, limit int) ([]Profile, error)

	// UpdateProfile persists the mutable profile fields.
	UpdateProfile(ctx context.Context, p *Profile) error
}

// PostRepository defines persistence operations for posts and their hashtags.
type PostRepository interface {
	// CreatePost inserts the post and links post.HashTags, creating missing tags.
	CreatePost(ctx context.Context, post *Post) error

	// GetPost returns the post with its hashtags and derived counts.
	GetPost(ctx context.Context, id int64) (*Post, error)

	// UpdatePost persists content fields; when replaceTags is set the post's tag set
	// becomes exactly post.HashTags.
	UpdatePost(ctx context.Context, post *Post, replaceTags bool) error

	// DeletePost removes the post together with its comments and every like that
	// references the post or one of its comments.
	DeletePost(ctx context.Context, id int64) error

	// ListPostsByAuthors retrieves posts of the given authors ordered newest first.
	ListPostsByAuthors(ctx context.Context, authorIDs []int64, limit int, cursor string) ([]Post, string, error)

	HashTagRepository
}

// HashTagRepository reads the shared tag vocabulary.
type HashTagRepository interface {
	ListHashTags(ctx context.Context) ([]HashTag, error)
}

// StoryRepository defines persistence operations for stories.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *Story) error
	GetStory(ctx context.Context, id int64) (*Story, error)
	UpdateStory(ctx context.Context, story *Story) error

	// DeleteStory removes the story and its likes. Returns ErrNotFound when absent.
	DeleteStory(ctx context.Context, id int64) error

	// ListStoriesSince returns stories created strictly after since, newest first.
	ListStoriesSince(ctx context.Context, since time.Time) ([]Story, error)

	// ListProfileStoriesSince is ListStoriesSince restricted to one owner.
	ListProfileStoriesSince(ctx context.Context, profileID int64, since time.Time) ([]Story, error)

	// DeleteStoriesCreatedBefore removes stories created at or before cutoff and
	// returns how many were deleted.
	DeleteStoriesCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	CreateComment(ctx context.Context, c *Comment) error
	GetComment(ctx context.Context, id int64) (*Comment, error)
	ListPostComments(ctx context.Context, postID int64) ([]Comment, error)

	// ListComments returns comments across all posts, newest first.
	ListComments(ctx context.Context, limit int, cursor string) ([]Comment, string, error)

	// DeleteComment removes the comment and its likes.
	DeleteComment(ctx context.Context, id int64) error
}

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	// CreateLike inserts the like. A uniqueness violation is reported as ErrAlreadyLiked.
	CreateLike(ctx context.Context, like *Like) error

	// DeleteLike returns ErrNotLiked when the profile has no like on target.
	DeleteLike(ctx context.Context, profileID int64, target Target) error

	CountLikes(ctx context.Context, target Target) (int, error)
	ListLikes(ctx context.Context, target Target) ([]Like, error)
}

// FollowGraph is the directed follow relation keyed by profile ID.
type FollowGraph interface {
	// AddEdge records that follower follows followee and reports whether the edge is
	// new. Adding an existing edge is a no-op.
	AddEdge(ctx context.Context, followerID, followeeID int64) (bool, error)

	// RemoveEdge deletes the edge if present and reports whether it existed.
	RemoveEdge(ctx context.Context, followerID, followeeID int64) (bool, error)

	HasEdge(ctx context.Context, followerID, followeeID int64) (bool, error)
	Followers(ctx context.Context, profileID int64) ([]int64, error)
	Followings(ctx context.Context, profileID int64) ([]int64, error)
}

// ExpiryJob is a deferred story deletion.
type ExpiryJob struct {
	ID      string
	StoryID int64
	RunAt   time.Time
}

// ExpiryQueue is the task broker for deferred story deletion. Delivery is
// at-least-once: Due hands out jobs without removing them, and a job handed out but
// never completed becomes due again after a lease period.
type ExpiryQueue interface {
	Enqueue(ctx context.Context, job ExpiryJob) error

	// Due returns up to limit jobs whose RunAt is at or before now, earliest first.
	Due(ctx context.Context, now time.Time, limit int) ([]ExpiryJob, error)

	// Complete removes a job. Completing an unknown job is a no-op.
	Complete(ctx context.Context, jobID string) error
}

// EventPublisher receives activity events. Publishing is best-effort and never fails
// the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, e Event)
}

// Mailer delivers email verification codes.
type Mailer interface {
	SendVerificationCode(ctx context.Context, p *Profile, code string) error
}

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
