package activity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blackmichael/instaapp/internal/domain"
)

// Message is the JSON frame sent to stream subscribers.
type Message struct {
	Kind    string  `json:"kind"`
	ActorID int64   `json:"actor_id,omitempty"`
	Subject Subject `json:"subject"`
	// Count is the target's like count after a like or unlike.
	Count  *int  `json:"count,omitempty"`
	TimeUS int64 `json:"time_us"`
}

// Subject identifies the entity an event is about.
type Subject struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

func newMessage(e domain.Event) Message {
	m := Message{
		Kind:    string(e.Kind),
		ActorID: e.ActorID,
		Subject: Subject{Kind: e.SubjectKind, ID: e.SubjectID},
		TimeUS:  e.At.UnixMicro(),
	}
	if strings.HasPrefix(string(e.Kind), "like.") {
		count := e.Count
		m.Count = &count
	}
	return m
}

// ParseMessage decodes a stream frame.
func ParseMessage(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal message: %w", err)
	}
	if m.Kind == "" {
		return nil, fmt.Errorf("message without kind")
	}
	return &m, nil
}
