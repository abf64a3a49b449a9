package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type table struct {
	model       any
	foreignKeys []string
}

var tables = []table{
	{model: (*profileModel)(nil)},
	{model: (*followModel)(nil), foreignKeys: []string{
		`("follower_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`,
		`("followee_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`,
	}},
	{model: (*postModel)(nil), foreignKeys: []string{
		`("profile_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`,
	}},
	{model: (*hashTagModel)(nil)},
	{model: (*postHashTagModel)(nil), foreignKeys: []string{
		`("post_id") REFERENCES "posts" ("id") ON DELETE CASCADE`,
		`("hashtag_id") REFERENCES "hashtags" ("id") ON DELETE CASCADE`,
	}},
	{model: (*storyModel)(nil), foreignKeys: []string{
		`("profile_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`,
	}},
	{model: (*commentModel)(nil), foreignKeys: []string{
		`("profile_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`,
		`("post_id") REFERENCES "posts" ("id") ON DELETE CASCADE`,
	}},
	{model: (*likeModel)(nil), foreignKeys: []string{
		`("profile_id") REFERENCES "profiles" ("id") ON DELETE CASCADE`,
	}},
	{model: (*expiryJobModel)(nil)},
}

type index struct {
	model   any
	name    string
	columns []string
}

var indexes = []index{
	{(*followModel)(nil), "follows_followee_idx", []string{"followee_id"}},
	{(*postModel)(nil), "posts_profile_created_idx", []string{"profile_id", "created_at"}},
	{(*storyModel)(nil), "stories_created_at_idx", []string{"created_at"}},
	{(*storyModel)(nil), "stories_profile_created_idx", []string{"profile_id", "created_at"}},
	{(*commentModel)(nil), "comments_post_idx", []string{"post_id"}},
	{(*likeModel)(nil), "likes_target_idx", []string{"target_type", "target_id"}},
	{(*expiryJobModel)(nil), "story_expiry_jobs_run_at_idx", []string{"run_at"}},
}

// Migrate creates any missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, t := range tables {
			q := tx.NewCreateTable().Model(t.model).IfNotExists()
			for _, fk := range t.foreignKeys {
				q = q.ForeignKey(fk)
			}
			if _, err := q.Exec(ctx); err != nil {
				return errors.Wrapf(err, "store.Migrate.CreateTable %T", t.model)
			}
		}
		for _, idx := range indexes {
			_, err := tx.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.columns...).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return errors.Wrapf(err, "store.Migrate.CreateIndex %s", idx.name)
			}
		}
		return nil
	})
}
