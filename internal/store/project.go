package store

import (
	"context"
	"errors"

	"bugdesk.app/api-server/internal/model"
	"github.com/jackc/pgx/v5"
)

type projectStore struct {
	db querier
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	err := s.db.QueryRow(ctx, "SELECT id, name FROM projects WHERE id = $1", id).
		Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO projects (id, name) VALUES ($1, $2)", project.ID, project.Name)
	return err
}

func (s *projectStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *projectStore) List(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.Query(ctx, "SELECT id, name FROM projects ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
