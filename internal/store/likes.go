package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/blackmichael/instaapp/internal/domain"
)

// CreateLike inserts a like. The unique (profile, target) constraint decides
// between concurrent likes; the loser gets domain.ErrAlreadyLiked.
func (s *Store) CreateLike(ctx context.Context, like *domain.Like) error {
	m := &likeModel{
		ProfileID:  like.ProfileID,
		TargetType: string(like.Target.Kind),
		TargetID:   like.Target.ID,
		CreatedAt:  like.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyLiked
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return errors.Wrap(err, "store.CreateLike.Insert")
	}
	like.ID = m.ID
	return nil
}

func (s *Store) DeleteLike(ctx context.Context, profileID int64, target domain.Target) error {
	res, err := s.db.NewDelete().
		Model((*likeModel)(nil)).
		Where("profile_id = ? AND target_type = ? AND target_id = ?", profileID, string(target.Kind), target.ID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "store.DeleteLike.Delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotLiked
	}
	return nil
}

func (s *Store) CountLikes(ctx context.Context, target domain.Target) (int, error) {
	count, err := s.db.NewSelect().
		Model((*likeModel)(nil)).
		Where("target_type = ? AND target_id = ?", string(target.Kind), target.ID).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "store.CountLikes.Count")
	}
	return count, nil
}

func (s *Store) ListLikes(ctx context.Context, target domain.Target) ([]domain.Like, error) {
	var models []likeModel
	err := s.db.NewSelect().
		Model(&models).
		Where("target_type = ? AND target_id = ?", string(target.Kind), target.ID).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.ListLikes.Scan")
	}
	likes := make([]domain.Like, len(models))
	for i := range models {
		likes[i] = models[i].toDomain()
	}
	return likes, nil
}
