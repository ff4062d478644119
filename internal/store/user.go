package store

import (
	"context"
	"errors"

	"bugdesk.app/api-server/internal/model"
	"github.com/jackc/pgx/v5"
)

type userStore struct {
	db querier
}

const userColumns = "id, username, password, role"

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO users (id, username, password, role) VALUES ($1, $2, $3, $4)",
		user.ID, user.Username, user.PasswordHash, string(user.Role),
	)
	return err
}

func (s *userStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}
