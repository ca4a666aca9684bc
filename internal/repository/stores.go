package repository

import (
	"context"
	"errors"

	"github.com/bedirhan/todo-backend/internal/models"
)

var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken means a user with that email already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// TaskStore is the persistence port for tasks. Ordering semantics live in the
// implementations: "effective order" is order_index when set, else the id,
// and higher values sort first.
type TaskStore interface {
	// ListOrdered returns every task, effective order descending, id
	// descending as tie-break.
	ListOrdered(ctx context.Context) ([]models.Task, error)
	// MaxOrder returns the highest effective order across all tasks,
	// 0 when the store is empty.
	MaxOrder(ctx context.Context) (int64, error)
	// FindByID returns ErrNotFound when the id does not exist.
	FindByID(ctx context.Context, id int64) (models.Task, error)
	// FindByIDs returns the tasks matching the given ids; missing ids are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []int64) ([]models.Task, error)
	// Save inserts when the task has no id yet and fills it in, otherwise
	// updates the existing row.
	Save(ctx context.Context, t *models.Task) error
	// SaveAll persists the batch atomically; a partial write is never visible.
	SaveAll(ctx context.Context, tasks []models.Task) error
	// Delete removes the row if present. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id int64) error
}

// UserStore is the persistence port for accounts.
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindByEmail returns ErrNotFound when no such account exists.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// Create inserts the user and fills in the id. Returns ErrEmailTaken when
	// the email is already registered, even under concurrent registration.
	Create(ctx context.Context, u *models.User) error
}
