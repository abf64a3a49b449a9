// Package client is a small Go client for the instaapp REST API and activity stream.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "http://localhost:3000"

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error (status %d)", e.Status)
	}
	return fmt.Sprintf("API error (status %d): %s: %s", e.Status, e.Code, e.Message)
}

// Client is a minimal instaapp API client.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// populated after Login or Register
	token     string
	profileID int64
}

// NewClient creates a new API client. If baseURL is empty, it defaults to
// http://localhost:3000.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Token returns the current access token. Only valid after Login or Register.
func (c *Client) Token() string {
	return c.token
}

// ProfileID returns the authenticated profile's ID.
func (c *Client) ProfileID() int64 {
	return c.profileID
}

type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Bio      string `json:"bio"`
}

type Post struct {
	ID            int64     `json:"id"`
	ProfileID     int64     `json:"profile_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ImageURL      string    `json:"image_url,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	HashTags      []string  `json:"hashtags"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type Story struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"profile_id"`
	Caption    string    `json:"caption"`
	ImageURL   string    `json:"image_url,omitempty"`
	VideoURL   string    `json:"video_url,omitempty"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// NewPost is the body of a post creation. Tags is comma-separated.
type NewPost struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
	Tags     string `json:"tags,omitempty"`
}

type NewStory struct {
	Caption  string `json:"caption,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

// FeedPage is one page of the home feed.
type FeedPage struct {
	Posts  []Post `json:"posts"`
	Cursor string `json:"cursor,omitempty"`
}

type sessionResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

type likesResponse struct {
	LikesCount int `json:"likes_count"`
}

// Register creates an account and keeps its session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Profile, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/register", body, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	c.setSession(resp)
	return &resp.Profile, nil
}

// Login authenticates and stores the session token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/login", body, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.setSession(resp)
	return nil
}

func (c *Client) setSession(resp sessionResponse) {
	c.token = resp.Token
	c.profileID = resp.Profile.ID
}

func (c *Client) CreatePost(ctx context.Context, p NewPost) (*Post, error) {
	var post Post
	if err := c.authed(ctx, http.MethodPost, "/v1/posts", p, &post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

func (c *Client) CreateStory(ctx context.Context, s NewStory) (*Story, error) {
	var story Story
	if err := c.authed(ctx, http.MethodPost, "/v1/stories", s, &story); err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	return &story, nil
}

// Feed fetches one page of the home feed. An empty cursor starts from the newest post.
func (c *Client) Feed(ctx context.Context, limit int, cursor string) (*FeedPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	path := "/v1/posts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var page FeedPage
	if err := c.authed(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return &page, nil
}

// Like likes a post, comment or story and returns the new like count. kind is
// "post", "comment" or "story".
func (c *Client) Like(ctx context.Context, kind string, id int64) (int, error) {
	path, err := likePath(kind, id)
	if err != nil {
		return 0, err
	}
	var resp likesResponse
	if err := c.authed(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("like %s %d: %w", kind, id, err)
	}
	return resp.LikesCount, nil
}

func (c *Client) Unlike(ctx context.Context, kind string, id int64) (int, error) {
	path, err := likePath(kind, id)
	if err != nil {
		return 0, err
	}
	var resp likesResponse
	if err := c.authed(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("unlike %s %d: %w", kind, id, err)
	}
	return resp.LikesCount, nil
}

func (c *Client) Follow(ctx context.Context, profileID int64) error {
	if err := c.authed(ctx, http.MethodPost, fmt.Sprintf("/v1/profiles/%d/follow", profileID), nil, nil); err != nil {
		return fmt.Errorf("follow %d: %w", profileID, err)
	}
	return nil
}

func (c *Client) Unfollow(ctx context.Context, profileID int64) error {
	if err := c.authed(ctx, http.MethodDelete, fmt.Sprintf("/v1/profiles/%d/follow", profileID), nil, nil); err != nil {
		return fmt.Errorf("unfollow %d: %w", profileID, err)
	}
	return nil
}

// likeCollections maps a like target kind to its collection path segment.
var likeCollections = map[string]string{
	"post":    "posts",
	"comment": "comments",
	"story":   "stories",
}

func likePath(kind string, id int64) (string, error) {
	collection, ok := likeCollections[kind]
	if !ok {
		return "", fmt.Errorf("unknown like target kind %q", kind)
	}
	return fmt.Sprintf("/v1/%s/%d/like", collection, id), nil
}

func (c *Client) authed(ctx context.Context, method, path string, body, result any) error {
	if c.token == "" {
		return fmt.Errorf("not authenticated: call Login first")
	}
	return c.do(ctx, method, path, body, result)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		json.Unmarshal(respBody, apiErr)
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
