package registry

import (
	"testing"

	"condo/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestResidenceYears(t *testing.T) {
	u := core.Unit{MoveInDate: core.NewDate(2021, 6, 15)}

	cases := []struct {
		ref  core.Date
		want int
	}{
		{core.NewDate(2021, 6, 15), 0},
		{core.NewDate(2022, 6, 14), 0},
		{core.NewDate(2022, 6, 15), 1},
		{core.NewDate(2025, 3, 1), 3},
		{core.NewDate(2025, 6, 15), 4},
		{core.NewDate(2020, 1, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.ref.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, ResidenceYears(u, tc.ref))
		})
	}
}

func TestResidenceYearsLeapDayMoveIn(t *testing.T) {
	u := core.Unit{MoveInDate: core.NewDate(2020, 2, 29)}
	assert.Equal(t, 0, ResidenceYears(u, core.NewDate(2021, 2, 28)))
	assert.Equal(t, 1, ResidenceYears(u, core.NewDate(2021, 3, 1)))
	assert.Equal(t, 4, ResidenceYears(u, core.NewDate(2024, 2, 29)))
}

func TestIsOverdue(t *testing.T) {
	unpaid := core.Unit{DueDay: 5}
	paid := core.Unit{DueDay: 5, IsPaid: true}

	cases := []struct {
		name string
		u    core.Unit
		ref  core.Date
		want bool
	}{
		{"after due day", unpaid, core.NewDate(2025, 3, 10), true},
		{"before due day", unpaid, core.NewDate(2025, 3, 3), false},
		{"on due day", unpaid, core.NewDate(2025, 3, 5), false},
		{"paid after due day", paid, core.NewDate(2025, 3, 10), false},
		{"day 31 in april on the 30th", core.Unit{DueDay: 31}, core.NewDate(2025, 4, 30), false},
		{"day 31 in february on the 28th", core.Unit{DueDay: 31}, core.NewDate(2025, 2, 28), false},
		{"first of month with due day 30", core.Unit{DueDay: 30}, core.NewDate(2024, 3, 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsOverdue(tc.u, tc.ref))
		})
	}
}

func TestDueDateClamps(t *testing.T) {
	u := core.Unit{DueDay: 31}
	assert.Equal(t, "2025-02-28", DueDate(u, core.NewDate(2025, 2, 1)).String())
	assert.Equal(t, "2024-02-29", DueDate(u, core.NewDate(2024, 2, 1)).String())
	assert.Equal(t, "2025-01-31", DueDate(u, core.NewDate(2025, 1, 1)).String())
}

func TestStatusOf(t *testing.T) {
	u := core.Unit{
		ID:         4,
		Name:       "Casa 4",
		Occupant:   core.VacantOccupant,
		Rent:       core.MoneyFromInt(800),
		DueDay:     5,
		MoveInDate: core.NewDate(2019, 1, 10),
	}
	ref := core.NewDate(2025, 3, 10)

	s := StatusOf(u, ref)
	assert.Equal(t, int64(4), s.ID)
	assert.Equal(t, 6, s.ResidenceYears)
	assert.True(t, s.Vacant)
	assert.True(t, s.Overdue)
	assert.Equal(t, Overdue, s.Payment)
	assert.Equal(t, "2025-03-05", s.DueDate.String())

	u.IsPaid = true
	assert.Equal(t, Paid, PaymentOf(u, ref))
	u.IsPaid = false
	assert.Equal(t, Pending, PaymentOf(u, core.NewDate(2025, 3, 1)))

	all := Statuses([]core.Unit{u, u}, ref)
	assert.Len(t, all, 2)
}
