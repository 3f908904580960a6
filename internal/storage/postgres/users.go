package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/chama-backend/internal/models"
)

const userColumns = `id, username, email, phone, gender, role, password_hash, created_at`

// CreateUser inserts a new user row. A duplicate email surfaces as
// storage.ErrAlreadyExists via the unique index.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (username, email, phone, gender, role, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + userColumns
	row := s.pool.QueryRow(ctx, query, user.Username, user.Email, user.Phone, user.Gender, user.Role, user.PasswordHash)
	return scanUser(row)
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// UpdateRole changes the role of the user with the given email.
func (s *Store) UpdateRole(ctx context.Context, email, role string) (models.User, error) {
	const query = `UPDATE users SET role = $2 WHERE email = $1 RETURNING ` + userColumns
	return scanUser(s.pool.QueryRow(ctx, query, email, role))
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Phone, &user.Gender, &user.Role, &user.PasswordHash, &user.CreatedAt); err != nil {
		return models.User{}, translate(err)
	}
	return user, nil
}
