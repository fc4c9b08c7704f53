// Package session holds the running state of the dashboard: the unit and
// expense stores, the selected period and the collaborators notified of
// every change. Aggregates are recomputed from the stores on every read.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"condo/internal/aggregate"
	"condo/internal/core"
	"condo/internal/events"
	"condo/internal/ledger"
	"condo/internal/log"
	"condo/internal/metrics"
	"condo/internal/ports"
	"condo/internal/registry"
)

var (
	ErrNoStore        = errors.New("session needs a store")
	ErrExportDisabled = errors.New("export is not configured")
)

type Config struct {
	Store     ports.Store
	Publisher events.Publisher
	Exporter  ports.SummaryExporter
	Metrics   *metrics.Metrics
	Logger    *log.Logger
	Property  core.Property
	Partners  []string
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type Session struct {
	mu     sync.Mutex
	period core.Date

	store    ports.Store
	pub      events.Publisher
	exporter ports.SummaryExporter
	metrics  *metrics.Metrics
	logger   *log.Logger
	property core.Property
	partners []string
	now      func() time.Time
}

// New starts a session whose selected period is today.
func New(cfg Config) (*Session, error) {
	if cfg.Store == nil {
		return nil, ErrNoStore
	}
	s := &Session{
		store:    cfg.Store,
		pub:      cfg.Publisher,
		exporter: cfg.Exporter,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		property: cfg.Property,
		partners: cfg.Partners,
		now:      cfg.Clock,
	}
	if s.pub == nil {
		s.pub = events.Nop{}
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.period = s.Today()
	return s, nil
}

// Today is the clock's current day.
func (s *Session) Today() core.Date {
	return core.DateOf(s.now())
}

// Property describes the complex with its current unit count.
func (s *Session) Property(ctx context.Context) (core.Property, error) {
	units, err := s.Units(ctx)
	if err != nil {
		return core.Property{}, err
	}
	p := s.property
	p.Units = len(units)
	return p, nil
}

func (s *Session) Units(ctx context.Context) ([]core.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ListUnits(ctx)
}

// UnitStatuses derives residence, due date and payment state of every unit
// at ref, or today when ref is zero.
func (s *Session) UnitStatuses(ctx context.Context, ref core.Date) ([]registry.Status, error) {
	if ref.IsZero() {
		ref = s.Today()
	}
	units, err := s.Units(ctx)
	if err != nil {
		return nil, err
	}
	return registry.Statuses(units, ref), nil
}

// Expenses returns the whole ledger, newest first.
func (s *Session) Expenses(ctx context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	items, err := s.store.ListExpenses(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	ledger.SortByDateDesc(items)
	return items, nil
}

// MonthExpenses returns the selected month's expenses, newest first.
func (s *Session) MonthExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.MonthExpensesAt(ctx, s.SelectedPeriod())
}

// MonthExpensesAt returns the expenses of ref's month, newest first.
func (s *Session) MonthExpensesAt(ctx context.Context, ref core.Date) ([]core.Expense, error) {
	w := aggregate.MonthWindow(ref)
	s.mu.Lock()
	items, err := s.store.ExpensesInWindow(ctx, w.Start, w.End)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	ledger.SortByDateDesc(items)
	return items, nil
}

// Summary aggregates the selected period.
func (s *Session) Summary(ctx context.Context) (core.Summary, error) {
	s.mu.Lock()
	ref := s.period
	s.mu.Unlock()
	return s.SummaryAt(ctx, ref)
}

// SummaryAt aggregates the month of ref without moving the selected period.
func (s *Session) SummaryAt(ctx context.Context, ref core.Date) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, _, err := s.summarizeLocked(ctx, ref)
	return sum, err
}

// summarizeLocked aggregates ref's month and also returns the year-to-month
// expenses it was computed from. s.mu must be held.
func (s *Session) summarizeLocked(ctx context.Context, ref core.Date) (core.Summary, []core.Expense, error) {
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return core.Summary{}, nil, fmt.Errorf("list units: %w", err)
	}
	yw := aggregate.YearWindow(ref)
	expenses, err := s.store.ExpensesInWindow(ctx, yw.Start, yw.End)
	if err != nil {
		return core.Summary{}, nil, fmt.Errorf("list expenses: %w", err)
	}

	sum := aggregate.Summarize(units, expenses, ref, s.partners...)
	s.metrics.RecordSummary(sum)
	return sum, expenses, nil
}

// Export writes the selected month's summary and ledger through the
// configured exporter.
func (s *Session) Export(ctx context.Context) (string, error) {
	return s.ExportAt(ctx, s.SelectedPeriod())
}

// ExportAt exports the month of ref without moving the selected period.
func (s *Session) ExportAt(ctx context.Context, ref core.Date) (string, error) {
	if s.exporter == nil {
		return "", ErrExportDisabled
	}
	// Summary and ledger rows come from one read so they always agree.
	s.mu.Lock()
	sum, yearItems, err := s.summarizeLocked(ctx, ref)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	items := core.FilterExpenses(yearItems, aggregate.MonthWindow(ref))
	ledger.SortByDateDesc(items)

	label := periodLabel(sum.Year, sum.Month)
	out, err := s.exporter.ExportMonth(ctx, sum, items)
	s.metrics.RecordExport(err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Export failed",
			log.NewFields().WithOperation(log.OpExport).WithError(err).
				With(log.FieldPeriod, label).ToSlice()...)
		return "", fmt.Errorf("export %s: %w", label, err)
	}
	s.logger.InfoContext(ctx, "Exported month",
		log.FieldPeriod, label,
		log.FieldExportRef, out)
	return out, nil
}

// publish notifies the publisher outside the lock. Failures are logged and
// counted, the mutation already happened.
func (s *Session) publish(ctx context.Context, kind events.Kind, payload any) {
	ev := events.New(kind, payload)
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.metrics.RecordPublishFailure()
		s.logger.WarnContext(ctx, "Failed to publish event",
			log.NewFields().WithOperation(log.OpPublish).WithError(err).
				With(log.FieldEventKind, string(kind)).ToSlice()...)
	}
}

func periodLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
