package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/blackmichael/instaapp/internal/domain"
)

// DefaultLease is how long a delivered job stays hidden from Due before it is
// handed out again.
const DefaultLease = 5 * time.Minute

// JobQueue is a durable domain.ExpiryQueue backed by the story_expiry_jobs table.
type JobQueue struct {
	store *Store
	lease time.Duration
}

func NewJobQueue(s *Store, lease time.Duration) *JobQueue {
	if lease <= 0 {
		lease = DefaultLease
	}
	return &JobQueue{store: s, lease: lease}
}

func (q *JobQueue) Enqueue(ctx context.Context, job domain.ExpiryJob) error {
	_, err := q.store.db.NewInsert().
		Model(&expiryJobModel{
			ID:        job.ID,
			StoryID:   job.StoryID,
			RunAt:     job.RunAt.UTC(),
			CreatedAt: time.Now().UTC(),
		}).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "store.JobQueue.Enqueue")
	}
	return nil
}

// Due leases up to limit jobs whose run time has passed. Leased jobs are not returned
// again until the lease runs out.
func (q *JobQueue) Due(ctx context.Context, now time.Time, limit int) ([]domain.ExpiryJob, error) {
	now = now.UTC()
	var models []expiryJobModel
	err := q.store.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		sel := tx.NewSelect().
			Model(&models).
			Where("run_at <= ?", now).
			Where("locked_until <= ?", now).
			OrderExpr("run_at ASC, id ASC").
			Limit(normalizeLimit(limit))
		if q.store.isPostgres() {
			sel = sel.For("UPDATE SKIP LOCKED")
		}
		if err := sel.Scan(ctx); err != nil {
			return errors.Wrap(err, "store.JobQueue.Due.Scan")
		}
		if len(models) == 0 {
			return nil
		}

		ids := make([]string, len(models))
		for i, m := range models {
			ids[i] = m.ID
		}
		_, err := tx.NewUpdate().
			Model((*expiryJobModel)(nil)).
			Set("locked_until = ?", now.Add(q.lease)).
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "store.JobQueue.Due.Lease")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	jobs := make([]domain.ExpiryJob, len(models))
	for i, m := range models {
		jobs[i] = domain.ExpiryJob{ID: m.ID, StoryID: m.StoryID, RunAt: m.RunAt.UTC()}
	}
	return jobs, nil
}

func (q *JobQueue) Complete(ctx context.Context, jobID string) error {
	_, err := q.store.db.NewDelete().
		Model((*expiryJobModel)(nil)).
		Where("id = ?", jobID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "store.JobQueue.Complete")
	}
	return nil
}
