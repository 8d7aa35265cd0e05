// Package memory implements the expense store on a process-lifetime,
// mutex-guarded slice. It is the backend the mock services run against
// during development and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wanderlog/expenseclient/internal/logger"
	"github.com/wanderlog/expenseclient/internal/storage"
)

type memoryStore struct {
	mu     sync.Mutex
	items  []storage.Expense
	public []storage.Expense
}

func New() storage.Store {
	return &memoryStore{}
}

func (s *memoryStore) ApplyMigrations(_ context.Context, _ *logger.Logger) error {
	// Nothing to migrate for a slice-backed store.
	return nil
}

func (s *memoryStore) SeedFixtures(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.public = storage.FixtureExpenses()
	s.items = storage.FixtureExpenses()
	return nil
}

func (s *memoryStore) CreateExpense(
	_ context.Context,
	userID int64,
	input storage.ExpenseInput,
) (storage.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expense := storage.NewExpense(
		s.nextID(),
		input.Date,
		input.Category,
		input.PaymentMethod,
		input.Note,
		input.Amount,
		userID,
		false,
		now,
		now,
	)
	s.items = append(s.items, expense)

	return expense, nil
}

func (s *memoryStore) GetExpenseByID(_ context.Context, id int64) (storage.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return nil, &storage.NotFoundError{}
	}
	return s.items[idx], nil
}

func (s *memoryStore) UpdateExpense(
	_ context.Context,
	id int64,
	update storage.ExpenseUpdate,
) (storage.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return nil, &storage.NotFoundError{}
	}

	current := s.items[idx]
	merged := storage.NewExpense(
		current.ID(),
		value(update.Date, current.Date()),
		value(update.Category, current.Category()),
		value(update.PaymentMethod, current.PaymentMethod()),
		value(update.Note, current.Note()),
		value(update.Amount, current.Amount()),
		current.UserID(),
		current.Deleted(),
		current.CreatedAt(),
		time.Now(),
	)
	s.items[idx] = merged

	return merged, nil
}

func (s *memoryStore) DeleteExpense(_ context.Context, id int64) (storage.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return nil, &storage.NotFoundError{}
	}

	current := s.items[idx]
	deleted := storage.NewExpense(
		current.ID(),
		current.Date(),
		current.Category(),
		current.PaymentMethod(),
		current.Note(),
		current.Amount(),
		current.UserID(),
		true,
		current.CreatedAt(),
		time.Now(),
	)
	s.items[idx] = deleted

	return deleted, nil
}

func (s *memoryStore) GetExpensesByUser(_ context.Context, userID int64) ([]storage.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []storage.Expense
	for _, e := range s.items {
		if e.UserID() == userID && !e.Deleted() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memoryStore) PublicExpenses(_ context.Context) ([]storage.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]storage.Expense, len(s.public))
	copy(out, s.public)
	return out, nil
}

func (s *memoryStore) CountExpenses(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.items)), nil
}

func (s *memoryStore) Close() error {
	return nil
}

// indexOf reports the position of a live record. Soft-deleted rows stay in
// the slice but are invisible to lookups.
func (s *memoryStore) indexOf(id int64) int {
	for i, e := range s.items {
		if e.ID() == id && !e.Deleted() {
			return i
		}
	}
	return -1
}

func (s *memoryStore) nextID() int64 {
	var max int64
	for _, e := range s.items {
		if e.ID() > max {
			max = e.ID()
		}
	}
	return max + 1
}

func value[T any](v *T, fallback T) T {
	if v != nil {
		return *v
	}
	return fallback
}
