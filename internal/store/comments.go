package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/blackmichael/instaapp/internal/domain"
)

func commentQuery(db bun.IDB, model any) *bun.SelectQuery {
	return db.NewSelect().
		Model(model).
		ColumnExpr("c.*").
		ColumnExpr("(SELECT COUNT(*) FROM likes AS l WHERE l.target_type = ? AND l.target_id = c.id) AS like_count", string(domain.TargetComment))
}

func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	m := &commentModel{
		ProfileID: c.ProfileID,
		PostID:    c.PostID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return errors.Wrap(err, "store.CreateComment.Insert")
	}
	c.ID = m.ID
	return nil
}

func (s *Store) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	m := new(commentModel)
	if err := commentQuery(s.db, m).Where("c.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "store.GetComment.Scan")
	}
	c := m.toDomain()
	return &c, nil
}

func (s *Store) ListPostComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var models []commentModel
	err := commentQuery(s.db, &models).
		Where("c.post_id = ?", postID).
		OrderExpr("c.created_at ASC, c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.ListPostComments.Scan")
	}
	return commentsToDomain(models), nil
}

// ListComments pages through all comments, newest first.
func (s *Store) ListComments(ctx context.Context, limit int, cursor string) ([]domain.Comment, string, error) {
	limit = normalizeLimit(limit)
	var models []commentModel
	q := commentQuery(s.db, &models).
		OrderExpr("c.created_at DESC, c.id DESC").
		Limit(limit)
	if cursor != "" {
		at, id, err := parseCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		q = q.Where("(c.created_at < ? OR (c.created_at = ? AND c.id < ?))", at, at, id)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, "", errors.Wrap(err, "store.ListComments.Scan")
	}

	comments := commentsToDomain(models)
	var next string
	if len(comments) == limit {
		last := comments[len(comments)-1]
		next = encodeCursor(last.CreatedAt, last.ID)
	}
	return comments, next, nil
}

// DeleteComment removes the comment and the likes on it.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*likeModel)(nil)).
			Where("target_type = ? AND target_id = ?", string(domain.TargetComment), id).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.DeleteComment.DeleteLikes")
		}
		res, err := tx.NewDelete().Model((*commentModel)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.DeleteComment.Delete")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func commentsToDomain(models []commentModel) []domain.Comment {
	out := make([]domain.Comment, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out
}
