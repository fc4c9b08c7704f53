// Package memory is the in-process backend: a unit registry and an expense
// ledger behind a mutex. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"condo/internal/core"
	"condo/internal/ledger"
	"condo/internal/registry"
)

type Store struct {
	mu    sync.Mutex
	units *registry.Registry
	book  *ledger.Ledger
}

func New(units []core.UnitInput, expenses []core.ExpenseInput) *Store {
	return &Store{
		units: registry.New(units...),
		book:  ledger.New(expenses...),
	}
}

func (s *Store) AddUnit(_ context.Context, in core.UnitInput) (core.Unit, error) {
	if err := in.Validate(); err != nil {
		return core.Unit{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units.Add(in), nil
}

func (s *Store) UpdateUnit(_ context.Context, u core.Unit) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units.Update(u), nil
}

func (s *Store) DeleteUnit(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units.Delete(id), nil
}

func (s *Store) GetUnit(_ context.Context, id int64) (core.Unit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units.Get(id)
	return u, ok, nil
}

func (s *Store) ListUnits(_ context.Context) ([]core.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.units.List(), nil
}

func (s *Store) AddExpense(_ context.Context, in core.ExpenseInput) (core.Expense, error) {
	if err := in.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Add(in), nil
}

func (s *Store) ExpensesInWindow(_ context.Context, start, end core.Date) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.InWindow(start, end), nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.List(), nil
}
