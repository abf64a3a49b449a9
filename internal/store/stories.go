package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/blackmichael/instaapp/internal/domain"
)

func storyQuery(db bun.IDB, model any) *bun.SelectQuery {
	return db.NewSelect().
		Model(model).
		ColumnExpr("s.*").
		ColumnExpr("(SELECT COUNT(*) FROM likes AS l WHERE l.target_type = ? AND l.target_id = s.id) AS like_count", string(domain.TargetStory))
}

func (s *Store) CreateStory(ctx context.Context, story *domain.Story) error {
	m := &storyModel{
		ProfileID: story.ProfileID,
		Caption:   story.Caption,
		ImageURL:  story.ImageURL,
		VideoURL:  story.VideoURL,
		CreatedAt: story.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return errors.Wrap(err, "store.CreateStory.Insert")
	}
	story.ID = m.ID
	return nil
}

func (s *Store) GetStory(ctx context.Context, id int64) (*domain.Story, error) {
	m := new(storyModel)
	if err := storyQuery(s.db, m).Where("s.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "store.GetStory.Scan")
	}
	story := m.toDomain()
	return &story, nil
}

func (s *Store) UpdateStory(ctx context.Context, story *domain.Story) error {
	res, err := s.db.NewUpdate().
		Model(&storyModel{
			ID:       story.ID,
			Caption:  story.Caption,
			ImageURL: story.ImageURL,
			VideoURL: story.VideoURL,
		}).
		Column("caption", "image_url", "video_url").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "store.UpdateStory.Update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteStory removes the story and the likes on it.
func (s *Store) DeleteStory(ctx context.Context, id int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*likeModel)(nil)).
			Where("target_type = ? AND target_id = ?", string(domain.TargetStory), id).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.DeleteStory.DeleteLikes")
		}
		res, err := tx.NewDelete().Model((*storyModel)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.DeleteStory.Delete")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (s *Store) ListStoriesSince(ctx context.Context, since time.Time) ([]domain.Story, error) {
	var models []storyModel
	err := storyQuery(s.db, &models).
		Where("s.created_at > ?", since.UTC()).
		OrderExpr("s.created_at DESC, s.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.ListStoriesSince.Scan")
	}
	return storiesToDomain(models), nil
}

func (s *Store) ListProfileStoriesSince(ctx context.Context, profileID int64, since time.Time) ([]domain.Story, error) {
	var models []storyModel
	err := storyQuery(s.db, &models).
		Where("s.profile_id = ?", profileID).
		Where("s.created_at > ?", since.UTC()).
		OrderExpr("s.created_at DESC, s.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.ListProfileStoriesSince.Scan")
	}
	return storiesToDomain(models), nil
}

// DeleteStoriesCreatedBefore removes stories created at or before cutoff together
// with their likes. Returns the number of stories deleted.
func (s *Store) DeleteStoriesCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		expired := tx.NewSelect().
			Model((*storyModel)(nil)).
			Column("id").
			Where("created_at <= ?", cutoff.UTC())

		_, err := tx.NewDelete().
			Model((*likeModel)(nil)).
			Where("target_type = ? AND target_id IN (?)", string(domain.TargetStory), expired).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.DeleteStoriesCreatedBefore.DeleteLikes")
		}

		res, err := tx.NewDelete().
			Model((*storyModel)(nil)).
			Where("created_at <= ?", cutoff.UTC()).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.DeleteStoriesCreatedBefore.Delete")
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}

func storiesToDomain(models []storyModel) []domain.Story {
	out := make([]domain.Story, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out
}
