package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/blackmichael/instaapp/internal/domain"
)

// postQuery selects posts together with their like and comment counts.
func postQuery(db bun.IDB, model any) *bun.SelectQuery {
	return db.NewSelect().
		Model(model).
		ColumnExpr("p.*").
		ColumnExpr("(SELECT COUNT(*) FROM likes AS l WHERE l.target_type = ? AND l.target_id = p.id) AS like_count", string(domain.TargetPost)).
		ColumnExpr("(SELECT COUNT(*) FROM comments AS c WHERE c.post_id = p.id) AS comment_count")
}

// CreatePost inserts the post and links its hashtags in one transaction.
func (s *Store) CreatePost(ctx context.Context, post *domain.Post) error {
	m := &postModel{
		ProfileID: post.ProfileID,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		VideoURL:  post.VideoURL,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return errors.Wrap(err, "store.CreatePost.Insert")
		}
		return linkHashTags(ctx, tx, m.ID, post.HashTags)
	})
	if err != nil {
		return err
	}
	post.ID = m.ID
	return nil
}

func (s *Store) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	m := new(postModel)
	if err := postQuery(s.db, m).Where("p.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "store.GetPost.Scan")
	}
	posts := []domain.Post{m.toDomain()}
	if err := loadHashTags(ctx, s.db, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (s *Store) UpdatePost(ctx context.Context, post *domain.Post, replaceTags bool) error {
	m := &postModel{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		VideoURL:  post.VideoURL,
		UpdatedAt: post.UpdatedAt,
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(m).
			Column("title", "content", "image_url", "video_url", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.UpdatePost.Update")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		if !replaceTags {
			return nil
		}
		_, err = tx.NewDelete().
			Model((*postHashTagModel)(nil)).
			Where("post_id = ?", post.ID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.UpdatePost.UnlinkTags")
		}
		return linkHashTags(ctx, tx, post.ID, post.HashTags)
	})
}

// DeletePost removes the post, its comments, its tag links and every like that
// points at the post or at one of its comments.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		commentIDs := tx.NewSelect().
			Model((*commentModel)(nil)).
			Column("id").
			Where("post_id = ?", id)

		_, err := tx.NewDelete().
			Model((*likeModel)(nil)).
			Where("(target_type = ? AND target_id = ?) OR (target_type = ? AND target_id IN (?))",
				string(domain.TargetPost), id, string(domain.TargetComment), commentIDs).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.DeletePost.DeleteLikes")
		}

		if _, err := tx.NewDelete().Model((*commentModel)(nil)).Where("post_id = ?", id).Exec(ctx); err != nil {
			return errors.Wrap(err, "store.DeletePost.DeleteComments")
		}
		if _, err := tx.NewDelete().Model((*postHashTagModel)(nil)).Where("post_id = ?", id).Exec(ctx); err != nil {
			return errors.Wrap(err, "store.DeletePost.UnlinkTags")
		}

		res, err := tx.NewDelete().Model((*postModel)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.DeletePost.Delete")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ListPostsByAuthors retrieves posts of the given authors, newest first.
// The cursor format is "createdAt::id" (unix micros::id).
func (s *Store) ListPostsByAuthors(ctx context.Context, authorIDs []int64, limit int, cursor string) ([]domain.Post, string, error) {
	if len(authorIDs) == 0 {
		return []domain.Post{}, "", nil
	}
	limit = normalizeLimit(limit)

	var models []postModel
	q := postQuery(s.db, &models).
		Where("p.profile_id IN (?)", bun.In(authorIDs)).
		OrderExpr("p.created_at DESC, p.id DESC").
		Limit(limit)
	if cursor != "" {
		at, id, err := parseCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		q = q.Where("(p.created_at < ? OR (p.created_at = ? AND p.id < ?))", at, at, id)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, "", errors.Wrapf(err, "store.ListPostsByAuthors.Scan (limit=%d, cursor=%s)", limit, cursor)
	}

	posts := make([]domain.Post, len(models))
	for i := range models {
		posts[i] = models[i].toDomain()
	}
	if err := loadHashTags(ctx, s.db, posts); err != nil {
		return nil, "", err
	}

	var next string
	if len(posts) == limit {
		last := posts[len(posts)-1]
		next = encodeCursor(last.CreatedAt, last.ID)
	}
	return posts, next, nil
}

func (s *Store) ListHashTags(ctx context.Context) ([]domain.HashTag, error) {
	var models []hashTagModel
	if err := s.db.NewSelect().Model(&models).Order("name ASC").Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "store.ListHashTags.Scan")
	}
	tags := make([]domain.HashTag, len(models))
	for i, m := range models {
		tags[i] = domain.HashTag{ID: m.ID, Name: m.Name}
	}
	return tags, nil
}

// linkHashTags gets or creates the named tags and attaches them to the post.
func linkHashTags(ctx context.Context, tx bun.Tx, postID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tags := make([]hashTagModel, len(names))
	for i, name := range names {
		tags[i] = hashTagModel{Name: name}
	}
	_, err := tx.NewInsert().
		Model(&tags).
		On("CONFLICT (name) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "linkHashTags.InsertTags")
	}

	var existing []hashTagModel
	if err := tx.NewSelect().Model(&existing).Where("name IN (?)", bun.In(names)).Scan(ctx); err != nil {
		return errors.Wrap(err, "linkHashTags.SelectTags")
	}

	links := make([]postHashTagModel, len(existing))
	for i, t := range existing {
		links[i] = postHashTagModel{PostID: postID, HashTagID: t.ID}
	}
	if len(links) == 0 {
		return nil
	}
	_, err = tx.NewInsert().Model(&links).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "linkHashTags.InsertLinks")
	}
	return nil
}

// loadHashTags fills HashTags for each post, sorted by name.
func loadHashTags(ctx context.Context, db bun.IDB, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	byID := make(map[int64]*domain.Post, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		byID[posts[i].ID] = &posts[i]
	}

	var rows []postTagRow
	err := db.NewSelect().
		TableExpr("post_hashtags AS ph").
		Join("JOIN hashtags AS h ON h.id = ph.hashtag_id").
		ColumnExpr("ph.post_id, h.name").
		Where("ph.post_id IN (?)", bun.In(ids)).
		OrderExpr("ph.post_id ASC, h.name ASC").
		Scan(ctx, &rows)
	if err != nil {
		return errors.Wrap(err, "loadHashTags.Scan")
	}
	for _, r := range rows {
		if p, ok := byID[r.PostID]; ok {
			p.HashTags = append(p.HashTags, r.Name)
		}
	}
	return nil
}
