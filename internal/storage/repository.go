// Package storage is the SQLite backend for units and expenses.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"condo/internal/core"
	"condo/internal/log"

	_ "modernc.org/sqlite"
)

// DefaultDSN is a process-local in-memory database.
const DefaultDSN = "file:condo?mode=memory&cache=shared"

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens dsn, creating the parent directory of a plain
// file path, and applies the embedded migrations.
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; also keeps a shared in-memory database alive
	// between statements.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database answers.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const unitColumns = `id, name, nickname, occupant, rent, due_day, is_paid, move_in_date`

func (r *SQLiteRepository) AddUnit(ctx context.Context, in core.UnitInput) (core.Unit, error) {
	if err := in.Validate(); err != nil {
		return core.Unit{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO units (name, nickname, occupant, rent, due_day, is_paid, move_in_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Name, in.Nickname, in.Occupant, in.Rent.String(), in.DueDay, boolToInt(in.IsPaid), in.MoveInDate.String())
	if err != nil {
		return core.Unit{}, fmt.Errorf("insert unit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Unit{}, fmt.Errorf("unit id: %w", err)
	}

	slog.DebugContext(ctx, "Unit saved to SQLite",
		storageFields().WithUnit(id, in.Name).ToSlice()...)
	return in.Unit(id), nil
}

func (r *SQLiteRepository) UpdateUnit(ctx context.Context, u core.Unit) (bool, error) {
	if err := u.Validate(); err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE units SET name = ?, nickname = ?, occupant = ?, rent = ?, due_day = ?, is_paid = ?, move_in_date = ?
		 WHERE id = ?`,
		u.Name, u.Nickname, u.Occupant, u.Rent.String(), u.DueDay, boolToInt(u.IsPaid), u.MoveInDate.String(), u.ID)
	if err != nil {
		return false, fmt.Errorf("update unit %d: %w", u.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update unit %d: %w", u.ID, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteUnit(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete unit %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete unit %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) GetUnit(ctx context.Context, id int64) (core.Unit, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM units WHERE id = ?`, id)
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Unit{}, false, nil
	}
	if err != nil {
		return core.Unit{}, false, fmt.Errorf("get unit %d: %w", id, err)
	}
	return u, true, nil
}

func (r *SQLiteRepository) ListUnits(ctx context.Context) ([]core.Unit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+unitColumns+` FROM units ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	units := make([]core.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

const expenseColumns = `id, account_group, expense_type, description, amount, date`

func (r *SQLiteRepository) AddExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	if err := in.Validate(); err != nil {
		return core.Expense{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (account_group, expense_type, description, amount, date) VALUES (?, ?, ?, ?, ?)`,
		in.AccountGroup, in.ExpenseType, in.Description, in.Amount.String(), in.Date.String())
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense id: %w", err)
	}

	slog.DebugContext(ctx, "Expense saved to SQLite",
		storageFields().WithExpense(id, in.AccountGroup, in.Amount.String(), in.Date.String()).ToSlice()...)
	return in.Expense(id), nil
}

// ExpensesInWindow compares ISO dates as text, which orders them correctly.
func (r *SQLiteRepository) ExpensesInWindow(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return r.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE date BETWEEN ? AND ? ORDER BY id`,
		start.String(), end.String())
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return r.queryExpenses(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY id`)
}

func (r *SQLiteRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	out := make([]core.Expense, 0)
	for rows.Next() {
		var (
			e            core.Expense
			amount, date string
		)
		if err := rows.Scan(&e.ID, &e.AccountGroup, &e.ExpenseType, &e.Description, &amount, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Amount, err = core.ParseMoney(amount); err != nil {
			return nil, fmt.Errorf("expense %d amount %q: %w", e.ID, amount, err)
		}
		if e.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("expense %d date %q: %w", e.ID, date, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	return out, nil
}

func storageFields() log.LogFields {
	return log.NewFields().With(log.FieldComponent, log.ComponentStorage)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(s scanner) (core.Unit, error) {
	var (
		u          core.Unit
		rent, date string
		paid       int64
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Nickname, &u.Occupant, &rent, &u.DueDay, &paid, &date); err != nil {
		return core.Unit{}, err
	}
	var err error
	if u.Rent, err = core.ParseMoney(rent); err != nil {
		return core.Unit{}, fmt.Errorf("unit %d rent %q: %w", u.ID, rent, err)
	}
	if u.MoveInDate, err = core.ParseDate(date); err != nil {
		return core.Unit{}, fmt.Errorf("unit %d move-in %q: %w", u.ID, date, err)
	}
	u.IsPaid = paid != 0
	return u, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
