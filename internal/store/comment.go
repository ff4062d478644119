package store

import (
	"context"
	"errors"

	"bugdesk.app/api-server/internal/model"
	"github.com/jackc/pgx/v5"
)

type commentStore struct {
	db querier
}

const commentColumns = `
	c.id, c.issue_id, c.content, c.created_at,
	u.id, u.username, u.role`

const commentJoins = `
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func (s *commentStore) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	row := s.db.QueryRow(ctx, "SELECT"+commentColumns+commentJoins+" WHERE c.id = $1", id)
	return scanComment(row)
}

func (s *commentStore) Create(ctx context.Context, comment *model.Comment) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO comments (id, issue_id, user_id, content, created_at) VALUES ($1, $2, $3, $4, $5)",
		comment.ID, comment.IssueID, comment.Author.ID, comment.Content, comment.CreatedAt,
	)
	return err
}

func (s *commentStore) Update(ctx context.Context, comment *model.Comment) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE comments SET content = $2 WHERE id = $1", comment.ID, comment.Content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *commentStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *commentStore) ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error) {
	rows, err := s.db.Query(ctx,
		"SELECT"+commentColumns+commentJoins+" WHERE c.issue_id = $1 ORDER BY c.created_at", issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var (
		c      model.Comment
		author model.User
		role   string
	)
	err := row.Scan(&c.ID, &c.IssueID, &c.Content, &c.CreatedAt,
		&author.ID, &author.Username, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	author.Role = model.Role(role)
	c.Author = &author
	return &c, nil
}
