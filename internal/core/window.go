package core

// Window is an inclusive range of calendar days.
type Window struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Contains reports whether Start <= d <= End.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// FilterExpenses returns the expenses dated inside w, in input order.
func FilterExpenses(items []Expense, w Window) []Expense {
	out := make([]Expense, 0, len(items))
	for _, e := range items {
		if w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
