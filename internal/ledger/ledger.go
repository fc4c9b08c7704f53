// Package ledger is the append-only record of expenses.
package ledger

import (
	"cmp"
	"slices"

	"condo/internal/core"
)

// Ledger holds expenses in the order they were recorded. Records are never
// changed or removed. A Ledger is not safe for concurrent use.
type Ledger struct {
	items  []core.Expense
	nextID int64
}

// New returns a ledger preloaded with the given expenses, numbered from 1.
func New(seed ...core.ExpenseInput) *Ledger {
	l := &Ledger{nextID: 1}
	for _, in := range seed {
		l.Add(in)
	}
	return l
}

// Add assigns the next id and appends the expense.
func (l *Ledger) Add(in core.ExpenseInput) core.Expense {
	if l.nextID == 0 {
		l.nextID = 1
	}
	e := in.Expense(l.nextID)
	l.nextID++
	l.items = append(l.items, e)
	return e
}

// InWindow returns every expense dated between start and end, both included.
func (l *Ledger) InWindow(start, end core.Date) []core.Expense {
	return core.FilterExpenses(l.items, core.Window{Start: start, End: end})
}

// List returns a copy of all expenses in recording order.
func (l *Ledger) List() []core.Expense {
	out := make([]core.Expense, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Len() int { return len(l.items) }

// SortByDateDesc orders expenses newest first; same-day records keep their
// id order.
func SortByDateDesc(items []core.Expense) {
	slices.SortStableFunc(items, func(a, b core.Expense) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
