package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmichael/instaapp/internal/domain"
)

func TestLogMailer_SendVerificationCode(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)), "noreply@instaapp.local")

	err := m.SendVerificationCode(context.Background(), &domain.Profile{ID: 3, Email: "a@b.c"}, "012345")
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "a@b.c", entry["to"])
	assert.Equal(t, "012345", entry["code"])
	assert.Equal(t, "noreply@instaapp.local", entry["from"])
}
