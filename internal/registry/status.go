package registry

import (
	"condo/internal/core"
)

// Payment is the derived payment state of a unit for the reference month.
type Payment string

const (
	Paid    Payment = "paid"
	Pending Payment = "pending"
	Overdue Payment = "overdue"
)

// ResidenceYears returns the whole years between the unit's move-in date and
// ref, truncated. A reference before the move-in date gives 0.
func ResidenceYears(u core.Unit, ref core.Date) int {
	in := u.MoveInDate
	if in.IsZero() || ref.Before(in) {
		return 0
	}
	years := ref.Year() - in.Year()
	if ref.Month() < in.Month() || (ref.Month() == in.Month() && ref.Day() < in.Day()) {
		years--
	}
	return years
}

// DueDate is the unit's due day in ref's month. A due day past the end of the
// month falls on the month's last day.
func DueDate(u core.Unit, ref core.Date) core.Date {
	return ref.WithDay(u.DueDay)
}

// IsOverdue reports whether an unpaid unit's due date for ref's month has
// passed. The due day itself is not overdue.
func IsOverdue(u core.Unit, ref core.Date) bool {
	if u.IsPaid {
		return false
	}
	return ref.After(DueDate(u, ref))
}

func PaymentOf(u core.Unit, ref core.Date) Payment {
	switch {
	case u.IsPaid:
		return Paid
	case IsOverdue(u, ref):
		return Overdue
	default:
		return Pending
	}
}

// Status is a unit with everything derived from it at a reference day.
type Status struct {
	core.Unit
	ResidenceYears int       `json:"residenceYears"`
	DueDate        core.Date `json:"dueDate"`
	Overdue        bool      `json:"overdue"`
	Vacant         bool      `json:"vacant"`
	Payment        Payment   `json:"payment"`
}

func StatusOf(u core.Unit, ref core.Date) Status {
	return Status{
		Unit:           u,
		ResidenceYears: ResidenceYears(u, ref),
		DueDate:        DueDate(u, ref),
		Overdue:        IsOverdue(u, ref),
		Vacant:         u.IsVacant(),
		Payment:        PaymentOf(u, ref),
	}
}

// Statuses derives the status of every unit, in input order.
func Statuses(units []core.Unit, ref core.Date) []Status {
	out := make([]Status, 0, len(units))
	for _, u := range units {
		out = append(out, StatusOf(u, ref))
	}
	return out
}
