package session

import (
	"context"

	"condo/internal/core"
	"condo/internal/events"
	"condo/internal/log"
)

func (s *Session) SelectedPeriod() core.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

// SetSelectedPeriod moves the aggregation window to d's month.
func (s *Session) SetSelectedPeriod(ctx context.Context, d core.Date) (core.Date, error) {
	if err := d.Validate(); err != nil {
		return core.Date{}, err
	}
	return s.movePeriod(ctx, func(core.Date) core.Date { return d }), nil
}

// NextMonth advances one month, clamping the day to the target month.
func (s *Session) NextMonth(ctx context.Context) core.Date {
	return s.movePeriod(ctx, func(p core.Date) core.Date { return p.AddMonths(1) })
}

// PreviousMonth goes back one month, clamping the day to the target month.
func (s *Session) PreviousMonth(ctx context.Context) core.Date {
	return s.movePeriod(ctx, func(p core.Date) core.Date { return p.AddMonths(-1) })
}

func (s *Session) movePeriod(ctx context.Context, next func(core.Date) core.Date) core.Date {
	s.mu.Lock()
	s.period = next(s.period)
	p := s.period
	s.mu.Unlock()

	s.metrics.RecordMutation("period", log.OpNavigate)
	s.logger.DebugContext(ctx, "Selected period changed",
		log.FieldOperation, log.OpNavigate,
		log.FieldPeriod, p.String())
	s.publish(ctx, events.PeriodChanged, p)
	return p
}
