package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/bedirhan/todo-backend/internal/models"
)

// MemoryTaskStore keeps tasks in a map behind a RWMutex. It backs tests and
// can serve as a throwaway store when no database is around.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]models.Task
	nextID int64
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[int64]models.Task), nextID: 1}
}

func (s *MemoryTaskStore) ListOrdered(ctx context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := out[i].EffectiveOrder(), out[j].EffectiveOrder()
		if oi != oj {
			return oi > oj
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryTaskStore) MaxOrder(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max int64
	for _, t := range s.tasks {
		if o := t.EffectiveOrder(); o > max {
			max = o
		}
	}
	return max, nil
}

func (s *MemoryTaskStore) FindByID(ctx context.Context, id int64) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryTaskStore) FindByIDs(ctx context.Context, ids []int64) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Task
	for _, id := range ids {
		if t, ok := s.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryTaskStore) Save(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		t.ID = s.nextID
		s.nextID++
	} else if t.ID >= s.nextID {
		s.nextID = t.ID + 1
	}
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryTaskStore) SaveAll(ctx context.Context, tasks []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range tasks {
		s.tasks[t.ID] = t
	}
	return nil
}

func (s *MemoryTaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, id)
	return nil
}

// MemoryUserStore is the in-memory UserStore counterpart.
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID int64
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User), nextID: 1}
}

func (s *MemoryUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[email]
	return ok, nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return ErrEmailTaken
	}
	u.ID = s.nextID
	s.nextID++
	s.users[u.Email] = *u
	return nil
}
