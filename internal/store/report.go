package store

import (
	"context"

	"bugdesk.app/api-server/internal/model"
	"github.com/jackc/pgx/v5"
)

type reportStore struct {
	db querier
}

func (s *reportStore) CountPerStatus(ctx context.Context, projectID int64) ([]BucketCount, error) {
	return s.buckets(ctx, `
		SELECT status, COUNT(*)
		FROM issues
		WHERE project_id = $1
		GROUP BY status
		ORDER BY COUNT(*) DESC`, projectID)
}

func (s *reportStore) CountPerFixer(ctx context.Context, projectID int64) ([]BucketCount, error) {
	return s.buckets(ctx, `
		SELECT u.username, COUNT(*)
		FROM issues i
		JOIN users u ON u.id = i.fixer_id
		WHERE i.project_id = $1
		GROUP BY u.username
		ORDER BY COUNT(*) DESC`, projectID)
}

func (s *reportStore) CountPerDayInMonth(ctx context.Context, projectID int64) ([]BucketCount, error) {
	return s.buckets(ctx, `
		SELECT to_char(reported_date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM issues
		WHERE project_id = $1
		  AND reported_date >= date_trunc('month', now())
		GROUP BY day
		ORDER BY day`, projectID)
}

func (s *reportStore) CountPerMonth(ctx context.Context, projectID int64) ([]BucketCount, error) {
	return s.buckets(ctx, `
		SELECT to_char(reported_date, 'YYYY-MM') AS month, COUNT(*)
		FROM issues
		WHERE project_id = $1
		GROUP BY month
		ORDER BY month`, projectID)
}

func (s *reportStore) CountPerPriorityInMonth(ctx context.Context, projectID int64) ([]BucketCount, error) {
	return s.buckets(ctx, `
		SELECT priority, COUNT(*)
		FROM issues
		WHERE project_id = $1
		  AND reported_date >= date_trunc('month', now())
		GROUP BY priority
		ORDER BY COUNT(*) DESC`, projectID)
}

func (s *reportStore) CountPerDayWithStatusInWeek(ctx context.Context, projectID int64, status model.Status) ([]BucketCount, error) {
	return s.buckets(ctx, `
		SELECT to_char(reported_date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM issues
		WHERE project_id = $1
		  AND status = $2
		  AND reported_date >= now() - interval '7 days'
		GROUP BY day
		ORDER BY day`, projectID, string(status))
}

func (s *reportStore) CountPerDayWithPriorityInWeek(ctx context.Context, projectID int64, priority model.Priority) ([]BucketCount, error) {
	return s.buckets(ctx, `
		SELECT to_char(reported_date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM issues
		WHERE project_id = $1
		  AND priority = $2
		  AND reported_date >= now() - interval '7 days'
		GROUP BY day
		ORDER BY day`, projectID, string(priority))
}

func (s *reportStore) CountCommentsPerIssue(ctx context.Context, projectID int64) ([]BucketCount, error) {
	return s.buckets(ctx, `
		SELECT i.title, COUNT(c.id)
		FROM issues i
		LEFT JOIN comments c ON c.issue_id = i.id
		WHERE i.project_id = $1
		GROUP BY i.id, i.title
		ORDER BY COUNT(c.id) DESC`, projectID)
}

func (s *reportStore) buckets(ctx context.Context, query string, args ...any) ([]BucketCount, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (BucketCount, error) {
		var b BucketCount
		err := row.Scan(&b.Key, &b.Count)
		return b, err
	})
}
