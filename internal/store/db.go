// Package store persists the domain model through bun. It runs on PostgreSQL (pgx)
// in production and on embedded SQLite for local runs and tests.
package store

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/blackmichael/instaapp/internal/domain"
)

// Store implements the domain repositories and the follow graph.
type Store struct {
	db *bun.DB
}

// Open connects to the database named by dsn and verifies the connection.
// postgres:// and postgresql:// URLs use pgx; sqlite:// and file: DSNs use SQLite.
// The caller should call Close when the store is no longer needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	var db *bun.DB
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "store.Open.postgres")
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"):
		sqldb, err := sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, errors.Wrap(err, "store.Open.sqlite")
		}
		// SQLite serializes writers; one connection also keeps in-memory databases alive.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, errors.Errorf("store.Open: unsupported database url %q", redact(dsn))
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store.Open.Ping")
	}
	return &Store{db: db}, nil
}

// New wraps an existing bun.DB.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) isPostgres() bool {
	return s.db.Dialect().Name() == dialect.PG
}

// sqliteDSN strips the sqlite:// scheme and turns on foreign key enforcement.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func redact(dsn string) string {
	if i := strings.Index(dsn, "@"); i >= 0 {
		if j := strings.Index(dsn, "://"); j >= 0 && j < i {
			return dsn[:j+3] + "***" + dsn[i:]
		}
	}
	return dsn
}

var (
	_ domain.ProfileRepository = (*Store)(nil)
	_ domain.PostRepository    = (*Store)(nil)
	_ domain.StoryRepository   = (*Store)(nil)
	_ domain.CommentRepository = (*Store)(nil)
	_ domain.LikeRepository    = (*Store)(nil)
	_ domain.FollowGraph       = (*Store)(nil)
	_ domain.ExpiryQueue       = (*JobQueue)(nil)
)
