package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blackmichael/instaapp/internal/domain"
)

const defaultLimit = 50

// Cursors have the form "createdAt::id" with createdAt in unix microseconds.
func encodeCursor(t time.Time, id int64) string {
	return fmt.Sprintf("%d::%d", t.UnixMicro(), id)
}

func parseCursor(cursor string) (time.Time, int64, error) {
	parts := strings.SplitN(cursor, "::", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("%w: cursor must be in format 'timestamp::id'", domain.ErrInvalidInput)
	}
	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: invalid timestamp in cursor", domain.ErrInvalidInput)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: invalid id in cursor", domain.ErrInvalidInput)
	}
	return time.UnixMicro(micros).UTC(), id, nil
}

func parseIDCursor(cursor string) (int64, error) {
	id, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid cursor", domain.ErrInvalidInput)
	}
	return id, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
