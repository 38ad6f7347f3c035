package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"geopolitik/internal/app/user"
)

const userColumns = `id, email, password_hash, name, avatar, created_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Avatar, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Avatar, u.CreatedAt,
	)
	return mapErr(err)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Store) UpdateUserProfile(ctx context.Context, id, name, avatar string) (*user.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET name = $2, avatar = $3 WHERE id = $1 RETURNING `+userColumns,
		id, name, avatar,
	))
}
