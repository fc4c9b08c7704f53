// Package ports declares the storage and export interfaces the session
// depends on. Adapters live in memory, storage and sheets/google.
package ports

import (
	"context"

	"condo/internal/core"
)

type (
	// UnitStore keeps the unit registry. Update and Delete report whether
	// the id matched; a miss is not an error.
	UnitStore interface {
		AddUnit(ctx context.Context, in core.UnitInput) (core.Unit, error)
		UpdateUnit(ctx context.Context, u core.Unit) (found bool, err error)
		DeleteUnit(ctx context.Context, id int64) (found bool, err error)
		GetUnit(ctx context.Context, id int64) (core.Unit, bool, error)
		ListUnits(ctx context.Context) ([]core.Unit, error)
	}

	// ExpenseStore is the append-only ledger.
	ExpenseStore interface {
		AddExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error)
		// ExpensesInWindow returns the expenses dated in [start, end].
		ExpensesInWindow(ctx context.Context, start, end core.Date) ([]core.Expense, error)
		ListExpenses(ctx context.Context) ([]core.Expense, error)
	}

	// Store is a backend holding both collections.
	Store interface {
		UnitStore
		ExpenseStore
	}

	// SummaryExporter writes a month's summary and ledger somewhere outside
	// the process and returns a reference to what it wrote.
	SummaryExporter interface {
		ExportMonth(ctx context.Context, s core.Summary, expenses []core.Expense) (ref string, err error)
	}
)
