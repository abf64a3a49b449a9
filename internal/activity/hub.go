// Package activity fans domain events out to websocket subscribers.
package activity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blackmichael/instaapp/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// TokenVerifier resolves an access token to the acting profile.
type TokenVerifier interface {
	Verify(token string) (domain.Actor, error)
}

// Hub implements domain.EventPublisher and serves the event stream.
type Hub struct {
	verifier TokenVerifier
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	actorID int64
	kinds   map[string]struct{} // nil means every kind
	send    chan Message
	once    sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

func (s *subscriber) wants(kind string) bool {
	if s.kinds == nil {
		return true
	}
	_, ok := s.kinds[kind]
	return ok
}

// NewHub creates a hub. allowedOrigins limits browser websocket origins; "*" or an
// empty list allows any origin.
func NewHub(verifier TokenVerifier, allowedOrigins []string, logger *slog.Logger) *Hub {
	h := &Hub{
		verifier: verifier,
		logger:   logger,
		subs:     make(map[*subscriber]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// Publish delivers e to every interested subscriber. A subscriber whose buffer is
// full is disconnected rather than blocking the publisher.
func (h *Hub) Publish(_ context.Context, e domain.Event) {
	msg := newMessage(e)

	h.mu.RLock()
	var slow []*subscriber
	for sub := range h.subs {
		if !sub.wants(msg.Kind) {
			continue
		}
		select {
		case sub.send <- msg:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.logger.Warn("dropping slow stream subscriber", "profile_id", sub.actorID)
		h.remove(sub)
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		delete(h.subs, sub)
		sub.close()
	}
}

// ServeHTTP authenticates the request and upgrades it to a websocket stream. The
// token is read from the Authorization header or the access_token query parameter.
// An optional kinds parameter restricts the stream to a comma-separated set of
// event kinds.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		token = r.URL.Query().Get("access_token")
	}
	actor, err := h.verifier.Verify(token)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Unauthenticated","message":"valid access token required"}`))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sub := &subscriber{
		actorID: actor.ID,
		kinds:   parseKinds(r.URL.Query().Get("kinds")),
		send:    make(chan Message, sendBuffer),
	}
	h.add(sub)
	h.logger.Info("stream subscriber connected", "profile_id", actor.ID)

	go h.readLoop(conn, sub)
	h.writeLoop(conn, sub)
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[sub] = struct{}{}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		sub.close()
	}
}

// readLoop discards client frames and keeps the read deadline moving with pongs.
// It removes the subscriber when the connection drops.
func (h *Hub) readLoop(conn *websocket.Conn, sub *subscriber) {
	defer h.remove(sub)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		h.logger.Info("stream subscriber disconnected", "profile_id", sub.actorID)
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.remove(sub)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(sub)
				return
			}
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func parseKinds(raw string) map[string]struct{} {
	if raw == "" {
		return nil
	}
	kinds := make(map[string]struct{})
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kinds[k] = struct{}{}
		}
	}
	if len(kinds) == 0 {
		return nil
	}
	return kinds
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

var _ domain.EventPublisher = (*Hub)(nil)
