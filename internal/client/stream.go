package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blackmichael/instaapp/internal/activity"
)

const reconnectBackoff = 5 * time.Second

// Stream follows the activity stream and hands each message to a callback.
type Stream struct {
	url     string
	token   string
	kinds   []string
	handle  func(*activity.Message)
	logger  *slog.Logger
	backoff time.Duration
}

// NewStream creates a stream follower. baseURL is the API base (http or https);
// kinds optionally restricts the event kinds delivered.
func NewStream(baseURL, token string, kinds []string, handle func(*activity.Message), logger *slog.Logger) *Stream {
	return &Stream{
		url:     baseURL,
		token:   token,
		kinds:   kinds,
		handle:  handle,
		logger:  logger,
		backoff: reconnectBackoff,
	}
}

// Start reads the stream until the context is cancelled. It automatically
// reconnects on transient errors.
func (s *Stream) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.subscribe(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Error("stream connection error, reconnecting", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(s.backoff):
				}
			}
		}
	}
}

func (s *Stream) buildURL() (string, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return "", fmt.Errorf("parse stream url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/v1/stream"
	q := u.Query()
	if len(s.kinds) > 0 {
		q.Set("kinds", strings.Join(s.kinds, ","))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Stream) subscribe(ctx context.Context) error {
	wsURL, err := s.buildURL()
	if err != nil {
		return err
	}
	s.logger.Info("connecting to activity stream", "url", wsURL)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer conn.Close()

	s.logger.Info("connected to activity stream")

	// Unblock ReadMessage when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read message: %w", err)
		}

		msg, err := activity.ParseMessage(data)
		if err != nil {
			s.logger.Error("failed to parse message", "error", err)
			continue
		}
		s.handle(msg)
	}
}
