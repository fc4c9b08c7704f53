package http

import (
	"fmt"
	"net/http"

	"condo/internal/core"
	"condo/internal/log"
)

// handleListExpenses returns the selected month's expenses, or the whole
// ledger with ?scope=all, newest first.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var (
		items []core.Expense
		err   error
	)
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "month":
		items, err = s.session.MonthExpenses(r.Context())
	case "all":
		items, err = s.session.Expenses(r.Context())
	default:
		err = fmt.Errorf("%w: unknown scope %q", errBadRequest, scope)
	}
	if err != nil {
		s.writeError(w, r, "list_expenses", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in core.ExpenseInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}
	in.AccountGroup = sanitizeInput(in.AccountGroup)
	in.ExpenseType = sanitizeInput(in.ExpenseType)
	in.Description = sanitizeInput(in.Description)

	e, err := s.session.AddExpense(r.Context(), in)
	if err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}
