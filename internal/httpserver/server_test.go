package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/blackmichael/instaapp/internal/auth"
	"github.com/blackmichael/instaapp/internal/config"
	"github.com/blackmichael/instaapp/internal/domain"
	"github.com/blackmichael/instaapp/internal/mailer"
	"github.com/blackmichael/instaapp/internal/store"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	handler   http.Handler
	now       time.Time
	scheduler *domain.ExpiryScheduler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(ctx))

	env := &testEnv{now: t0}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := domain.WithClock(func() time.Time { return env.now })

	env.scheduler = domain.NewExpiryScheduler(store.NewJobQueue(st, time.Minute), st, nil, domain.DefaultStoryTTL, 2, logger, clock)
	graph := domain.NewGraph(st, st, nil, clock)
	svc := Services{
		Profiles: domain.NewProfileService(st, auth.BcryptHasher{Cost: bcrypt.MinCost}, mailer.NewLogMailer(logger, "noreply@test"), logger, clock),
		Posts:    domain.NewPostService(st, graph, nil, false, logger, clock),
		Comments: domain.NewCommentService(st, st, nil, clock),
		Stories:  domain.NewStoryService(st, st, env.scheduler, nil, logger, clock),
		Ledger:   domain.NewLedger(st, st, st, st, st, st, nil, domain.DefaultStoryTTL, clock),
		Graph:    graph,
		Tokens:   auth.NewTokenIssuer("test-secret", time.Hour),
		Ping:     st.Ping,
	}
	cfg := &config.Config{Port: 0, CORSAllowedOrigins: []string{"*"}}
	env.handler = NewServer(cfg, svc, logger).Handler()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

type session struct {
	Token   string      `json:"token"`
	Profile profileView `json:"profile"`
}

func (e *testEnv) register(t *testing.T, username string) session {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var s session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	s := env.register(t, "alice")
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "alice@example.com", s.Profile.Email)

	rec := env.do(t, http.MethodPost, "/v1/register", "", map[string]string{"username": "alice", "password": "correct horse"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "AlreadyExists", errorCode(t, rec))

	rec = env.do(t, http.MethodPost, "/v1/login", "", map[string]string{"username": "alice", "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/login", "", map[string]string{"username": "alice", "password": "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	me := env.do(t, http.MethodGet, "/v1/profiles/me", decode[session](t, rec).Token, nil)
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	for _, token := range []string{"", "garbage"} {
		rec := env.do(t, http.MethodGet, "/v1/posts", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthenticated", errorCode(t, rec))
	}
}

func TestFollowAndFeed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	rec := env.do(t, http.MethodPost, "/v1/posts", alice.Token, map[string]string{"title": "hello", "tags": "go, backend"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[postView](t, rec)
	assert.Equal(t, []string{"go", "backend"}, post.HashTags)

	feed := decode[postPageView](t, env.do(t, http.MethodGet, "/v1/posts", bob.Token, nil))
	assert.Empty(t, feed.Posts)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/v1/profiles/%d/follow", alice.Profile.ID), bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	feed = decode[postPageView](t, env.do(t, http.MethodGet, "/v1/posts", bob.Token, nil))
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, post.ID, feed.Posts[0].ID)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/v1/profiles/%d/follow", bob.Profile.ID), bob.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "SelfFollow", errorCode(t, rec))

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/v1/profiles/%d/followers", alice.Profile.ID), bob.Token, nil)
	followers := decode[struct {
		Profiles []profileView `json:"profiles"`
	}](t, rec)
	require.Len(t, followers.Profiles, 1)
	assert.Equal(t, "bob", followers.Profiles[0].Username)
	assert.Empty(t, followers.Profiles[0].Email)
}

func TestFeedRejectsBadLimit(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	for _, limit := range []string{"0", "101", "ten"} {
		rec := env.do(t, http.MethodGet, "/v1/posts?limit="+limit, alice.Token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
		assert.Equal(t, "InvalidRequest", errorCode(t, rec))
	}
}

func TestPostLikes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := decode[postView](t, env.do(t, http.MethodPost, "/v1/posts", alice.Token, map[string]string{"title": "t"}))
	path := fmt.Sprintf("/v1/posts/%d/like", post.ID)

	rec := env.do(t, http.MethodPost, path, bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", errorCode(t, rec))

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/v1/profiles/%d/follow", alice.Profile.ID), bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, path, bob.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, decode[likesView](t, rec).LikesCount)

	rec = env.do(t, http.MethodPost, path, bob.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "AlreadyLiked", errorCode(t, rec))

	rec = env.do(t, http.MethodGet, path, alice.Token, nil)
	likes := decode[likesView](t, rec)
	assert.Equal(t, 1, likes.LikesCount)
	require.Len(t, likes.Likers, 1)
	assert.Equal(t, bob.Profile.ID, likes.Likers[0].ID)

	rec = env.do(t, http.MethodDelete, path, bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[likesView](t, rec).LikesCount)

	rec = env.do(t, http.MethodDelete, path, bob.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "NotLiked", errorCode(t, rec))

	rec = env.do(t, http.MethodPost, "/v1/posts/9999/like", bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := decode[postView](t, env.do(t, http.MethodPost, "/v1/posts", alice.Token, map[string]string{"title": "t"}))
	path := fmt.Sprintf("/v1/posts/%d", post.ID)

	rec := env.do(t, http.MethodPatch, path, bob.Token, map[string]string{"title": "mine"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", errorCode(t, rec))

	rec = env.do(t, http.MethodPatch, path, alice.Token, map[string]string{"title": "renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "renamed", decode[postView](t, rec).Title)

	rec = env.do(t, http.MethodDelete, path, alice.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodGet, path, alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	post := decode[postView](t, env.do(t, http.MethodPost, "/v1/posts", alice.Token, map[string]string{"title": "t"}))

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/v1/posts/%d/comments", post.ID), alice.Token, map[string]string{"text": "first"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[commentView](t, rec)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/v1/comments/%d/like", comment.ID), alice.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/v1/posts/%d/comments", post.ID), alice.Token, nil)
	listed := decode[struct {
		Comments []commentView `json:"comments"`
	}](t, rec)
	require.Len(t, listed.Comments, 1)
	assert.Equal(t, 1, listed.Comments[0].LikesCount)

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/v1/posts/%d/comments", post.ID), alice.Token, map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/v1/comments/%d", comment.ID), alice.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStoryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	rec := env.do(t, http.MethodPost, "/v1/stories", alice.Token, map[string]string{"image_url": "a.png", "video_url": "a.mp4"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidMedia", errorCode(t, rec))

	rec = env.do(t, http.MethodPost, "/v1/stories", alice.Token, map[string]string{"image_url": "a.png"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	story := decode[storyView](t, rec)
	assert.Equal(t, t0.Add(24*time.Hour), story.ExpiresAt)
	path := fmt.Sprintf("/v1/stories/%d", story.ID)

	rec = env.do(t, http.MethodPost, path+"/like", alice.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	env.now = t0.Add(23*time.Hour + 59*time.Minute)
	listed := decode[struct {
		Stories []storyView `json:"stories"`
	}](t, env.do(t, http.MethodGet, "/v1/stories", alice.Token, nil))
	require.Len(t, listed.Stories, 1)
	assert.Equal(t, 1, listed.Stories[0].LikesCount)

	env.now = t0.Add(24 * time.Hour)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, alice.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path+"/like", alice.Token, nil).Code)
	listed = decode[struct {
		Stories []storyView `json:"stories"`
	}](t, env.do(t, http.MethodGet, fmt.Sprintf("/v1/profiles/%d/stories", alice.Profile.ID), alice.Token, nil))
	assert.Empty(t, listed.Stories)

	completed, err := env.scheduler.RunOnce(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
}

func TestHashTags(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	rec := env.do(t, http.MethodGet, "/v1/hashtags", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env.do(t, http.MethodPost, "/v1/posts", alice.Token, map[string]string{"tags": "go"})
	rec = env.do(t, http.MethodGet, "/v1/hashtags", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tags := decode[struct {
		HashTags []hashTagView `json:"hashtags"`
	}](t, rec)
	require.Len(t, tags.HashTags, 1)
	assert.Equal(t, "go", tags.HashTags[0].Name)
}

func TestProfileUpdateAndSearch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	env.register(t, "alicia")
	env.register(t, "bob")

	rec := env.do(t, http.MethodPatch, "/v1/profiles/me", alice.Token, map[string]string{"bio": "hi", "website_url": "https://alice.dev"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "hi", decode[profileView](t, rec).Bio)

	rec = env.do(t, http.MethodPatch, "/v1/profiles/me", alice.Token, map[string]string{"website_url": "ftp://x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/profiles/search?q=ali", alice.Token, nil)
	found := decode[struct {
		Profiles []profileView `json:"profiles"`
	}](t, rec)
	assert.Len(t, found.Profiles, 2)

	rec = env.do(t, http.MethodGet, "/v1/profiles?limit=2", alice.Token, nil)
	page := decode[struct {
		Profiles []profileView `json:"profiles"`
		Cursor   string        `json:"cursor"`
	}](t, rec)
	assert.Len(t, page.Profiles, 2)
	assert.NotEmpty(t, page.Cursor)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("get story 1: %w", domain.ErrNotFound), http.StatusNotFound, "NotFound"},
		{domain.ErrAlreadyLiked, http.StatusConflict, "AlreadyLiked"},
		{domain.ErrNotLiked, http.StatusConflict, "NotLiked"},
		{domain.ErrSelfFollow, http.StatusBadRequest, "SelfFollow"},
		{domain.ErrInvalidMedia, http.StatusBadRequest, "InvalidMedia"},
		{domain.ErrUnauthorized, http.StatusForbidden, "Forbidden"},
		{errors.New("boom"), http.StatusInternalServerError, "InternalError"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code := classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
