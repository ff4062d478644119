package store

import (
	"context"
	"errors"
	"fmt"

	"bugdesk.app/api-server/internal/model"
	"github.com/jackc/pgx/v5"
)

type issueStore struct {
	db querier
}

const issueColumns = `
	i.id, i.title, i.description, i.priority, i.status, i.reported_date, i.project_id,
	r.id, r.username, r.role,
	f.id, f.username, f.role,
	a.id, a.username, a.role`

const issueJoins = `
	FROM issues i
	JOIN users r ON r.id = i.reporter_id
	LEFT JOIN users f ON f.id = i.fixer_id
	LEFT JOIN users a ON a.id = i.assignee_id`

func (s *issueStore) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	row := s.db.QueryRow(ctx, "SELECT"+issueColumns+issueJoins+" WHERE i.id = $1", id)
	issue, err := scanIssue(row)
	if err != nil {
		return nil, err
	}

	comments, err := (&commentStore{db: s.db}).ListByIssue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}
	issue.Comments = comments
	return issue, nil
}

func (s *issueStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM issues WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

func (s *issueStore) Create(ctx context.Context, issue *model.Issue) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO issues (id, title, description, reporter_id, reported_date, priority, status, project_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		issue.ID, issue.Title, issue.Description, issue.Reporter.ID, issue.ReportedAt,
		string(issue.Priority), string(issue.Status), issue.ProjectID,
	)
	return err
}

func (s *issueStore) Update(ctx context.Context, issue *model.Issue) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE issues
		SET title = $2, description = $3, priority = $4, status = $5,
		    fixer_id = $6, assignee_id = $7
		WHERE id = $1`,
		issue.ID, issue.Title, issue.Description,
		string(issue.Priority), string(issue.Status),
		userID(issue.Fixer), userID(issue.Assignee),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByProject puts the viewer's actionable issues first: a project lead
// sees NEW then RESOLVED at the top, a developer their own assignments, a
// tester their own reports with FIXED ones first. Everything else follows in
// reverse id order.
func (s *issueStore) ListByProject(ctx context.Context, projectID, viewerID int64) ([]model.Issue, error) {
	rows, err := s.db.Query(ctx, "SELECT"+issueColumns+issueJoins+`
		WHERE i.project_id = $1
		ORDER BY CASE
			WHEN (SELECT role FROM users WHERE id = $2) = 'PL' AND i.status = 'NEW' THEN 0
			WHEN (SELECT role FROM users WHERE id = $2) = 'PL' AND i.status = 'RESOLVED' THEN 1
			WHEN (SELECT role FROM users WHERE id = $2) = 'DEV' AND i.assignee_id = $2 THEN 0
			WHEN (SELECT role FROM users WHERE id = $2) = 'TESTER' AND i.reporter_id = $2 AND i.status = 'FIXED' THEN 0
			WHEN (SELECT role FROM users WHERE id = $2) = 'TESTER' AND i.reporter_id = $2 THEN 1
			ELSE 2
		END, i.id DESC`,
		projectID, viewerID)
	if err != nil {
		return nil, err
	}
	return collectIssues(rows)
}

func (s *issueStore) Search(ctx context.Context, projectID int64, filter IssueFilter) ([]model.Issue, error) {
	query := "SELECT" + issueColumns + issueJoins + " WHERE i.project_id = $1"
	args := []any{projectID}

	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		query += fmt.Sprintf(" AND i.assignee_id = $%d", len(args))
	}
	if filter.ReporterID != nil {
		args = append(args, *filter.ReporterID)
		query += fmt.Sprintf(" AND i.reporter_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND i.status = $%d", len(args))
	}
	query += " ORDER BY i.id DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectIssues(rows)
}

// SearchRaw executes an externally generated SELECT against the issues table
// and resolves the matched rows into full issues. Only the id column of the
// result is trusted; everything else is re-read through GetByID.
func (s *issueStore) SearchRaw(ctx context.Context, query string) ([]model.Issue, error) {
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	idIdx := -1
	for i, fd := range rows.FieldDescriptions() {
		if fd.Name == "id" {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		rows.Close()
		return nil, fmt.Errorf("generated query returns no id column")
	}

	var ids []int64
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			rows.Close()
			return nil, err
		}
		if id, ok := values[idIdx].(int64); ok {
			ids = append(ids, id)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	issues := make([]model.Issue, 0, len(ids))
	for _, id := range ids {
		issue, err := s.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		issues = append(issues, *issue)
	}
	return issues, nil
}

func scanIssue(row pgx.Row) (*model.Issue, error) {
	var (
		issue            model.Issue
		priority, status string
		reporter         model.User
		reporterRole     string
		fixerID          *int64
		fixerName        *string
		fixerRole        *string
		assigneeID       *int64
		assigneeName     *string
		assigneeRole     *string
	)
	err := row.Scan(
		&issue.ID, &issue.Title, &issue.Description, &priority, &status,
		&issue.ReportedAt, &issue.ProjectID,
		&reporter.ID, &reporter.Username, &reporterRole,
		&fixerID, &fixerName, &fixerRole,
		&assigneeID, &assigneeName, &assigneeRole,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	issue.Priority = model.Priority(priority)
	issue.Status = model.Status(status)
	reporter.Role = model.Role(reporterRole)
	issue.Reporter = &reporter

	if fixerID != nil {
		issue.Fixer = &model.User{ID: *fixerID, Username: *fixerName, Role: model.Role(*fixerRole)}
	}
	if assigneeID != nil {
		issue.Assignee = &model.User{ID: *assigneeID, Username: *assigneeName, Role: model.Role(*assigneeRole)}
	}
	return &issue, nil
}

func collectIssues(rows pgx.Rows) ([]model.Issue, error) {
	defer rows.Close()
	var issues []model.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *issue)
	}
	return issues, rows.Err()
}

func userID(u *model.User) *int64 {
	if u == nil {
		return nil
	}
	return &u.ID
}
