package repository

import (
	"context"
	"testing"

	"github.com/bedirhan/todo-backend/internal/models"
)

func int64p(v int64) *int64 { return &v }

func TestListOrderedUsesEffectiveOrder(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	// id 1 with explicit order 5, id 2 legacy (orders by its id), id 3 legacy.
	seed := []models.Task{
		{ID: 1, Title: "explicit", OrderIndex: int64p(5)},
		{ID: 2, Title: "legacy-low"},
		{ID: 3, Title: "legacy-high"},
	}
	for i := range seed {
		if err := store.Save(ctx, &seed[i]); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ListOrdered(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Effective orders: 5, 2, 3 -> ids 1, 3, 2.
	want := []int64{1, 3, 2}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order: got %v, want %v", ids(got), want)
		}
	}
}

func TestListOrderedTieBreaksOnID(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	seed := []models.Task{
		{ID: 1, Title: "a", OrderIndex: int64p(9)},
		{ID: 2, Title: "b", OrderIndex: int64p(9)},
	}
	for i := range seed {
		if err := store.Save(ctx, &seed[i]); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ListOrdered(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("tie-break: got %v, want [2 1]", ids(got))
	}
}

func TestMaxOrder(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	max, err := store.MaxOrder(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if max != 0 {
		t.Errorf("empty store max: got %d, want 0", max)
	}

	legacy := models.Task{ID: 4, Title: "legacy"}
	explicit := models.Task{ID: 1, Title: "explicit", OrderIndex: int64p(2)}
	for _, task := range []*models.Task{&legacy, &explicit} {
		if err := store.Save(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	max, err = store.MaxOrder(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Legacy id 4 beats explicit order 2.
	if max != 4 {
		t.Errorf("max: got %d, want 4", max)
	}
}

func TestFindByIDsSkipsMissing(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	task := models.Task{Title: "only"}
	if err := store.Save(ctx, &task); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindByIDs(ctx, []int64{99, task.ID, 100})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != task.ID {
		t.Errorf("got %v, want just id %d", ids(got), task.ID)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	store := NewMemoryTaskStore()
	if err := store.Delete(context.Background(), 12345); err != nil {
		t.Errorf("delete of missing id: got %v, want nil", err)
	}
}

func TestUserStoreConflict(t *testing.T) {
	store := NewMemoryUserStore()
	ctx := context.Background()

	u := models.User{Email: "a@b.c", PasswordHash: "x", Role: models.RoleUser}
	if err := store.Create(ctx, &u); err != nil {
		t.Fatal(err)
	}
	if u.ID == 0 {
		t.Error("Create should assign an id")
	}

	dup := models.User{Email: "a@b.c", PasswordHash: "y", Role: models.RoleUser}
	if err := store.Create(ctx, &dup); err != ErrEmailTaken {
		t.Errorf("duplicate create: got %v, want ErrEmailTaken", err)
	}

	if _, err := store.FindByEmail(ctx, "missing@b.c"); err != ErrNotFound {
		t.Errorf("missing email: got %v, want ErrNotFound", err)
	}
}

func ids(tasks []models.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
