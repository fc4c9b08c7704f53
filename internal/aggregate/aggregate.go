// Package aggregate derives income, expense and balance figures from units
// and expenses for a reference month. Every function is pure and recomputes
// from its inputs; empty inputs give zero totals.
package aggregate

import (
	"condo/internal/core"
)

// DefaultPartners names the two co-owners when none are configured.
var DefaultPartners = [2]string{"Edson", "Talita"}

// MonthWindow spans the first to the last day of ref's month.
func MonthWindow(ref core.Date) core.Window {
	return core.Window{Start: ref.StartOfMonth(), End: ref.EndOfMonth()}
}

// YearWindow spans January 1st to the last day of ref's month.
func YearWindow(ref core.Date) core.Window {
	return core.Window{Start: ref.StartOfYear(), End: ref.EndOfMonth()}
}

// TotalIncome is the sum of every unit's rent, paid or not.
func TotalIncome(units []core.Unit) core.Money {
	total := core.Zero
	for _, u := range units {
		total = total.Add(u.Rent)
	}
	return total
}

// TotalExpenses sums the expenses dated inside w.
func TotalExpenses(expenses []core.Expense, w core.Window) core.Money {
	total := core.Zero
	for _, e := range expenses {
		if w.Contains(e.Date) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// YearlyIncome projects the current monthly income over the months of ref's
// year up to and including ref's month.
func YearlyIncome(units []core.Unit, ref core.Date) core.Money {
	return TotalIncome(units).Mul(int64(ref.MonthIndex() + 1))
}

// PartnerShare is each co-owner's half of a balance.
func PartnerShare(balance core.Money) core.Money {
	return balance.Half()
}

// GroupByAccount sums amounts per account group. Groups appear in the order
// of their first expense.
func GroupByAccount(expenses []core.Expense) []core.CategoryAmount {
	index := make(map[string]int)
	out := make([]core.CategoryAmount, 0)
	for _, e := range expenses {
		i, ok := index[e.AccountGroup]
		if !ok {
			index[e.AccountGroup] = len(out)
			out = append(out, core.CategoryAmount{Name: e.AccountGroup, Amount: e.Amount})
			continue
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// Summarize computes the full month and year-to-date aggregation for ref.
// Without partner names the defaults are used; only the first two names
// count.
func Summarize(units []core.Unit, expenses []core.Expense, ref core.Date, partners ...string) core.Summary {
	mw, yw := MonthWindow(ref), YearWindow(ref)
	monthItems := core.FilterExpenses(expenses, mw)

	monthlyIncome := TotalIncome(units)
	monthlyExpenses := TotalExpenses(monthItems, mw)
	monthlyBalance := monthlyIncome.Sub(monthlyExpenses)

	yearlyIncome := YearlyIncome(units, ref)
	yearlyExpenses := TotalExpenses(expenses, yw)
	yearlyBalance := yearlyIncome.Sub(yearlyExpenses)

	monthlyShare := PartnerShare(monthlyBalance)
	yearlyShare := PartnerShare(yearlyBalance)

	names := DefaultPartners
	for i := 0; i < len(names) && i < len(partners); i++ {
		if partners[i] != "" {
			names[i] = partners[i]
		}
	}
	shares := make([]core.PartnerShare, 0, len(names))
	for _, n := range names {
		shares = append(shares, core.PartnerShare{Name: n, Monthly: monthlyShare, Yearly: yearlyShare})
	}

	return core.Summary{
		Year:                ref.Year(),
		Month:               ref.Month(),
		MonthWindow:         mw,
		YearWindow:          yw,
		MonthlyIncome:       monthlyIncome,
		MonthlyExpenses:     monthlyExpenses,
		MonthlyBalance:      monthlyBalance,
		YearlyIncome:        yearlyIncome,
		YearlyExpenses:      yearlyExpenses,
		YearlyBalance:       yearlyBalance,
		MonthlyPartnerShare: monthlyShare,
		YearlyPartnerShare:  yearlyShare,
		Partners:            shares,
		ByGroup:             GroupByAccount(monthItems),
		Chart: []core.ChartPoint{{
			Month:    ref.Format("2006-01"),
			Income:   monthlyIncome,
			Expenses: monthlyExpenses,
		}},
		UnitCount:    len(units),
		ExpenseCount: len(monthItems),
	}
}
