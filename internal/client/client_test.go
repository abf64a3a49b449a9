package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmichael/instaapp/internal/activity"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret-pass" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthenticated","message":"authentication required"}`))
			return
		}
		w.Write([]byte(`{"token":"tok","profile":{"id":7,"username":"alice"}}`))
	})
	mux.HandleFunc("POST /v1/posts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body NewPost
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Post{ID: 1, ProfileID: 7, Title: body.Title, HashTags: []string{"go"}})
	})
	mux.HandleFunc("POST /v1/stories/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "404" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"NotFound","message":"not found"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"target":"story:1","likes_count":3}`))
	})
	mux.HandleFunc("DELETE /v1/posts/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"target":"post:1","likes_count":0}`))
	})
	mux.HandleFunc("POST /v1/profiles/{id}/follow", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"following":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_RequiresLogin(t *testing.T) {
	c := NewClient(fakeAPI(t).URL)
	_, err := c.CreatePost(context.Background(), NewPost{Title: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestClient_LoginFailure(t *testing.T) {
	c := NewClient(fakeAPI(t).URL)
	err := c.Login(context.Background(), "alice", "nope")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Unauthenticated", apiErr.Code)
}

func TestClient_Flow(t *testing.T) {
	ctx := context.Background()
	c := NewClient(fakeAPI(t).URL)
	require.NoError(t, c.Login(ctx, "alice", "secret-pass"))
	assert.Equal(t, "tok", c.Token())
	assert.Equal(t, int64(7), c.ProfileID())

	post, err := c.CreatePost(ctx, NewPost{Title: "hello", Tags: "go"})
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Title)
	assert.Equal(t, []string{"go"}, post.HashTags)

	count, err := c.Like(ctx, "story", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = c.Unlike(ctx, "post", 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = c.Like(ctx, "story", 404)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "NotFound", apiErr.Code)

	require.NoError(t, c.Follow(ctx, 2))
}

func TestLikePath(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"post", "/v1/posts/3/like"},
		{"comment", "/v1/comments/3/like"},
		{"story", "/v1/stories/3/like"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := likePath(tt.kind, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := likePath("reel", 3)
	assert.Error(t, err)
}

func TestClient_LikeUnknownKind(t *testing.T) {
	ctx := context.Background()
	c := NewClient(fakeAPI(t).URL)
	require.NoError(t, c.Login(ctx, "alice", "secret-pass"))

	_, err := c.Like(ctx, "reel", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown like target kind")
}

func TestStream_DeliversMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var mu sync.Mutex
	var gotAuth, gotKinds string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = r.Header.Get("Authorization")
		gotKinds = r.URL.Query().Get("kinds")
		mu.Unlock()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"kind":"story.created","actor_id":1,"subject":{"kind":"story","id":9},"time_us":1}`))
		conn.ReadMessage()
	}))
	defer srv.Close()

	var got []*activity.Message
	received := make(chan struct{}, 1)
	handle := func(m *activity.Message) {
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
		received <- struct{}{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := NewStream(srv.URL, "tok", []string{"story.created"}, handle, slog.New(slog.NewTextHandler(io.Discard, nil)))
	errc := make(chan error, 1)
	go func() { errc <- stream.Start(ctx) }()

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "story.created", got[0].Kind)
	assert.Equal(t, int64(9), got[0].Subject.ID)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "story.created", gotKinds)
}

func TestStream_BuildURL(t *testing.T) {
	s := NewStream("https://api.example.com/", "tok", nil, nil, nil)
	u, err := s.buildURL()
	require.NoError(t, err)
	assert.Equal(t, "wss://api.example.com/v1/stream", u)
}
