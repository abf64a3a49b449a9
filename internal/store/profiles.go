package store

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/blackmichael/instaapp/internal/domain"
)

func (s *Store) CreateProfile(ctx context.Context, p *domain.Profile) error {
	m := profileFromDomain(p)
	_, err := s.db.NewInsert().Model(m).Returning("id").Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return errors.Wrap(err, "store.CreateProfile.Insert")
	}
	p.ID = m.ID
	return nil
}

func (s *Store) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	m := new(profileModel)
	if err := s.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "store.GetProfile.Scan")
	}
	p := m.toDomain()
	return &p, nil
}

func (s *Store) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	m := new(profileModel)
	if err := s.db.NewSelect().Model(m).Where("username = ?", username).Scan(ctx); err != nil {
		return nil, notFound(err, "store.GetProfileByUsername.Scan")
	}
	p := m.toDomain()
	return &p, nil
}

func (s *Store) GetProfilesByIDs(ctx context.Context, ids []int64) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}
	var models []profileModel
	err := s.db.NewSelect().
		Model(&models).
		Where("id IN (?)", bun.In(ids)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.GetProfilesByIDs.Scan")
	}
	return profilesToDomain(models), nil
}

// ListProfiles pages through profiles by ascending ID. The cursor is the last ID seen.
func (s *Store) ListProfiles(ctx context.Context, limit int, cursor string) ([]domain.Profile, string, error) {
	limit = normalizeLimit(limit)
	var models []profileModel
	q := s.db.NewSelect().Model(&models).Order("id ASC").Limit(limit)
	if cursor != "" {
		after, err := parseIDCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		q = q.Where("id > ?", after)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, "", errors.Wrap(err, "store.ListProfiles.Scan")
	}

	var next string
	if len(models) == limit {
		next = strconv.FormatInt(models[len(models)-1].ID, 10)
	}
	return profilesToDomain(models), next, nil
}

func (s *Store) SearchProfiles(ctx context.Context, query string, limit int) ([]domain.Profile, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var models []profileModel
	err := s.db.NewSelect().
		Model(&models).
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern).
		Order("username ASC").
		Limit(normalizeLimit(limit)).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "store.SearchProfiles.Scan")
	}
	return profilesToDomain(models), nil
}

func (s *Store) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	res, err := s.db.NewUpdate().
		Model(profileFromDomain(p)).
		Column("bio", "avatar_url", "website_url", "email", "email_verified", "verification_code", "is_staff").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "store.UpdateProfile.Update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func profilesToDomain(models []profileModel) []domain.Profile {
	out := make([]domain.Profile, len(models))
	for i := range models {
		out[i] = models[i].toDomain()
	}
	return out
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
