package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/blackmichael/instaapp/internal/domain"
)

// AddEdge records follower -> followee. An existing edge is left untouched and
// reported as not added.
func (s *Store) AddEdge(ctx context.Context, followerID, followeeID int64) (bool, error) {
	res, err := s.db.NewInsert().
		Model(&followModel{
			FollowerID: followerID,
			FolloweeID: followeeID,
			CreatedAt:  time.Now().UTC(),
		}).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrNotFound
		}
		return false, errors.Wrap(err, "store.AddEdge.Insert")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "store.AddEdge.RowsAffected")
	}
	return n > 0, nil
}

func (s *Store) RemoveEdge(ctx context.Context, followerID, followeeID int64) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*followModel)(nil)).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Exec(ctx)
	if err != nil {
		return false, errors.Wrap(err, "store.RemoveEdge.Delete")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "store.RemoveEdge.RowsAffected")
	}
	return n > 0, nil
}

func (s *Store) HasEdge(ctx context.Context, followerID, followeeID int64) (bool, error) {
	ok, err := s.db.NewSelect().
		Model((*followModel)(nil)).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "store.HasEdge.Exists")
	}
	return ok, nil
}

func (s *Store) Followers(ctx context.Context, profileID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.NewSelect().
		Model((*followModel)(nil)).
		Column("follower_id").
		Where("followee_id = ?", profileID).
		Order("follower_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, errors.Wrap(err, "store.Followers.Scan")
	}
	return ids, nil
}

func (s *Store) Followings(ctx context.Context, profileID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.NewSelect().
		Model((*followModel)(nil)).
		Column("followee_id").
		Where("follower_id = ?", profileID).
		Order("followee_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, errors.Wrap(err, "store.Followings.Scan")
	}
	return ids, nil
}
