package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bedirhan/todo-backend/internal/models"
)

// TaskRepo is the Postgres-backed TaskStore.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) (*TaskRepo, error) {
	repo := &TaskRepo{db: db}

	if err := repo.createTable(); err != nil {
		return nil, fmt.Errorf("could not initialize todos table: %w", err)
	}

	return repo, nil
}

func (r *TaskRepo) createTable() error {
	createTableQuery := `CREATE TABLE IF NOT EXISTS todos(
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		completed BOOLEAN,
		order_index BIGINT,
		due_date DATE
	);`
	_, err := r.db.Exec(createTableQuery)
	return err
}

const taskColumns = "id, title, completed, order_index, due_date"

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var t models.Task
	var completed sql.NullBool
	var orderIndex sql.NullInt64
	var dueDate sql.NullTime
	if err := row.Scan(&t.ID, &t.Title, &completed, &orderIndex, &dueDate); err != nil {
		return models.Task{}, err
	}
	if completed.Valid {
		t.Completed = &completed.Bool
	}
	if orderIndex.Valid {
		t.OrderIndex = &orderIndex.Int64
	}
	if dueDate.Valid {
		d := models.Date{Time: dueDate.Time}
		t.DueDate = &d
	}
	return t, nil
}

func (r *TaskRepo) ListOrdered(ctx context.Context) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM todos ORDER BY COALESCE(order_index, id) DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) MaxOrder(ctx context.Context) (int64, error) {
	var max int64
	query := "SELECT COALESCE(MAX(COALESCE(order_index, id)), 0) FROM todos"
	err := r.db.QueryRowContext(ctx, query).Scan(&max)
	return max, err
}

func (r *TaskRepo) FindByID(ctx context.Context, id int64) (models.Task, error) {
	query := "SELECT " + taskColumns + " FROM todos WHERE id = $1"
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	return t, err
}

func (r *TaskRepo) FindByIDs(ctx context.Context, ids []int64) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM todos WHERE id = ANY($1)"
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Save(ctx context.Context, t *models.Task) error {
	if t.ID == 0 {
		query := "INSERT INTO todos (title, completed, order_index, due_date) VALUES ($1, $2, $3, $4) RETURNING id"
		return r.db.QueryRowContext(ctx, query, t.Title, t.Completed, t.OrderIndex, t.DueDate).Scan(&t.ID)
	}
	query := "UPDATE todos SET title = $1, completed = $2, order_index = $3, due_date = $4 WHERE id = $5"
	_, err := r.db.ExecContext(ctx, query, t.Title, t.Completed, t.OrderIndex, t.DueDate, t.ID)
	return err
}

// SaveAll updates the batch inside one transaction so a reorder is never
// partially visible.
func (r *TaskRepo) SaveAll(ctx context.Context, tasks []models.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "UPDATE todos SET title = $1, completed = $2, order_index = $3, due_date = $4 WHERE id = $5"
	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx, query, t.Title, t.Completed, t.OrderIndex, t.DueDate, t.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM todos WHERE id = $1", id)
	return err
}
