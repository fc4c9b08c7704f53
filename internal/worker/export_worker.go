// Package worker keeps the exported spreadsheet in step with the stores by
// re-exporting the months that change events touch.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"condo/internal/amqp"
	"condo/internal/core"
	"condo/internal/events"
	"condo/internal/log"

	"golang.org/x/sync/errgroup"
)

// Kinds are the events that change an exported month.
var Kinds = []events.Kind{
	events.UnitAdded,
	events.UnitUpdated,
	events.UnitDeleted,
	events.ExpenseRecorded,
}

// Exporter writes one month out. *session.Session satisfies it.
type Exporter interface {
	ExportAt(ctx context.Context, ref core.Date) (string, error)
	Today() core.Date
}

// Consumer delivers event messages from a queue until ctx ends.
type Consumer interface {
	Consume(ctx context.Context, queue string, kinds []events.Kind, handle amqp.Handler) error
}

type ExportWorker struct {
	exporter Exporter
	logger   *log.Logger
	queue    string
	interval time.Duration
}

// NewExportWorker builds a worker consuming queue. A positive interval also
// re-exports the current month on a timer, covering events lost while the
// worker was down.
func NewExportWorker(exporter Exporter, logger *log.Logger, queue string, interval time.Duration) *ExportWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExportWorker{
		exporter: exporter,
		logger:   logger.WithComponent(log.ComponentWorker),
		queue:    queue,
		interval: interval,
	}
}

// Run exports the current month once, then consumes events and ticks until
// ctx is cancelled or the consumer fails.
func (w *ExportWorker) Run(ctx context.Context, consumer Consumer) error {
	w.exportCurrent(ctx, "startup")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Consume(gCtx, w.queue, Kinds, w.HandleEvent)
	})
	if w.interval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			for {
				select {
				case <-gCtx.Done():
					return nil
				case <-ticker.C:
					w.exportCurrent(gCtx, "periodic")
				}
			}
		})
	}

	err := g.Wait()
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

// HandleEvent exports the month msg touched: the expense's month for a
// recorded expense, the current month for any unit change.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.EventMessage) error {
	ref, err := w.monthOf(msg)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", amqp.ErrReject, msg.Kind, msg.ID, err)
	}
	if ref.IsZero() {
		w.logger.DebugContext(ctx, "Ignoring event", log.FieldEventKind, string(msg.Kind))
		return nil
	}

	out, err := w.exporter.ExportAt(ctx, ref)
	if err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "Re-exported month after event",
		log.NewFields().WithOperation(log.OpConsume).
			With(log.FieldEventKind, string(msg.Kind)).
			With(log.FieldPeriod, ref.Format(core.MonthLayout)).
			With(log.FieldExportRef, out).ToSlice()...)
	return nil
}

func (w *ExportWorker) monthOf(msg *amqp.EventMessage) (core.Date, error) {
	switch msg.Kind {
	case events.ExpenseRecorded:
		var e core.Expense
		if err := json.Unmarshal(msg.Payload, &e); err != nil {
			return core.Date{}, fmt.Errorf("decode expense: %w", err)
		}
		if e.Date.IsZero() {
			return core.Date{}, errors.New("expense without date")
		}
		return e.Date, nil
	case events.UnitAdded, events.UnitUpdated, events.UnitDeleted:
		return w.exporter.Today(), nil
	default:
		return core.Date{}, nil
	}
}

func (w *ExportWorker) exportCurrent(ctx context.Context, trigger string) {
	today := w.exporter.Today()
	if _, err := w.exporter.ExportAt(ctx, today); err != nil {
		w.logger.ErrorContext(ctx, "Failed to export current month",
			log.NewFields().WithOperation(log.OpExport).WithError(err).
				With("trigger", trigger).
				With(log.FieldPeriod, today.Format(core.MonthLayout)).ToSlice()...)
	}
}
