package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bedirhan/todo-backend/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// UserRepo is the Postgres-backed UserStore.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) (*UserRepo, error) {
	repo := &UserRepo{db: db}

	if err := repo.createTable(); err != nil {
		return nil, fmt.Errorf("could not initialize users table: %w", err)
	}

	return repo, nil
}

func (r *UserRepo) createTable() error {
	createTableQuery := `CREATE TABLE IF NOT EXISTS users(
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL
	);`
	_, err := r.db.Exec(createTableQuery)
	return err
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&count)
	return count > 0, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	query := "SELECT id, email, password_hash, role FROM users WHERE email = $1"
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// Create relies on the unique index on email so that concurrent registrations
// of the same address cannot both succeed.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	query := "INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Role).Scan(&u.ID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}
