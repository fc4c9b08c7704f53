package core

// CategoryAmount represents an amount aggregated by account group.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// ChartPoint is one month of the income against expenses series.
type ChartPoint struct {
	Month    string `json:"month"`
	Income   Money  `json:"income"`
	Expenses Money  `json:"expenses"`
}

// PartnerShare is what one co-owner receives of the balances.
type PartnerShare struct {
	Name    string `json:"name"`
	Monthly Money  `json:"monthly"`
	Yearly  Money  `json:"yearly"`
}

// Summary is the full aggregation for a selected month.
type Summary struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"` // 1-12
	MonthWindow Window `json:"monthWindow"`
	YearWindow  Window `json:"yearWindow"`

	MonthlyIncome   Money `json:"monthlyIncome"`
	MonthlyExpenses Money `json:"monthlyExpenses"`
	MonthlyBalance  Money `json:"monthlyBalance"`

	YearlyIncome   Money `json:"yearlyIncome"`
	YearlyExpenses Money `json:"yearlyExpenses"`
	YearlyBalance  Money `json:"yearlyBalance"`

	MonthlyPartnerShare Money          `json:"monthlyPartnerShare"`
	YearlyPartnerShare  Money          `json:"yearlyPartnerShare"`
	Partners            []PartnerShare `json:"partners"`

	ByGroup []CategoryAmount `json:"byGroup"`
	Chart   []ChartPoint     `json:"chart"`

	UnitCount    int `json:"unitCount"`
	ExpenseCount int `json:"expenseCount"`
}
