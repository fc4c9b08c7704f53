package session

import (
	"context"

	"condo/internal/core"
	"condo/internal/events"
	"condo/internal/log"
)

func (s *Session) AddUnit(ctx context.Context, in core.UnitInput) (core.Unit, error) {
	s.mu.Lock()
	u, err := s.store.AddUnit(ctx, in)
	s.mu.Unlock()
	if err != nil {
		return core.Unit{}, err
	}

	s.metrics.RecordMutation("unit", log.OpCreate)
	s.logger.InfoContext(ctx, "Unit added",
		log.NewFields().WithOperation(log.OpCreate).WithUnit(u.ID, u.Name).ToSlice()...)
	s.publish(ctx, events.UnitAdded, u)
	return u, nil
}

// UpdateUnit replaces the unit with u's id. A miss returns false and changes
// nothing.
func (s *Session) UpdateUnit(ctx context.Context, u core.Unit) (bool, error) {
	s.mu.Lock()
	found, err := s.store.UpdateUnit(ctx, u)
	s.mu.Unlock()
	if err != nil || !found {
		return false, err
	}

	s.metrics.RecordMutation("unit", log.OpUpdate)
	s.logger.InfoContext(ctx, "Unit updated",
		log.NewFields().WithOperation(log.OpUpdate).WithUnit(u.ID, u.Name).ToSlice()...)
	s.publish(ctx, events.UnitUpdated, u)
	return true, nil
}

// DeleteUnit removes a unit; the others keep their ids.
func (s *Session) DeleteUnit(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	found, err := s.store.DeleteUnit(ctx, id)
	s.mu.Unlock()
	if err != nil || !found {
		return false, err
	}

	s.metrics.RecordMutation("unit", log.OpDelete)
	s.logger.InfoContext(ctx, "Unit deleted",
		log.NewFields().WithOperation(log.OpDelete).WithUnit(id, "").ToSlice()...)
	s.publish(ctx, events.UnitDeleted, events.DeletedUnit{ID: id})
	return true, nil
}

// SetPaid flips the manual paid flag of a unit.
func (s *Session) SetPaid(ctx context.Context, id int64, paid bool) (core.Unit, bool, error) {
	s.mu.Lock()
	u, found, err := s.store.GetUnit(ctx, id)
	if err == nil && found {
		u.IsPaid = paid
		found, err = s.store.UpdateUnit(ctx, u)
	}
	s.mu.Unlock()
	if err != nil || !found {
		return core.Unit{}, false, err
	}

	s.metrics.RecordMutation("unit", log.OpSetPaid)
	s.logger.InfoContext(ctx, "Unit payment flag set",
		log.NewFields().WithOperation(log.OpSetPaid).WithUnit(u.ID, u.Name).
			With("is_paid", paid).ToSlice()...)
	s.publish(ctx, events.UnitUpdated, u)
	return u, true, nil
}

// AddExpense records an expense. The ledger is append-only.
func (s *Session) AddExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	s.mu.Lock()
	e, err := s.store.AddExpense(ctx, in)
	s.mu.Unlock()
	if err != nil {
		return core.Expense{}, err
	}

	s.metrics.RecordMutation("expense", log.OpCreate)
	s.logger.InfoContext(ctx, "Expense recorded",
		log.NewFields().WithOperation(log.OpCreate).
			WithExpense(e.ID, e.AccountGroup, e.Amount.String(), e.Date.String()).ToSlice()...)
	s.publish(ctx, events.ExpenseRecorded, e)
	return e, nil
}
