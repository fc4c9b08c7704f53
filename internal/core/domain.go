package core

import (
	"errors"
	"strings"
)

// VacantOccupant is the occupant name used for a unit nobody lives in.
const VacantOccupant = "Vago"

type (
	// Property describes the managed complex.
	Property struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Address     string `json:"address"`
		Units       int    `json:"units"`
	}

	// UnitInput is a unit as submitted for creation, before an id is assigned.
	UnitInput struct {
		Name       string `json:"name"`
		Nickname   string `json:"nickname"`
		Occupant   string `json:"occupant"`
		Rent       Money  `json:"rent"`
		DueDay     int    `json:"dueDay"`
		IsPaid     bool   `json:"isPaid"`
		MoveInDate Date   `json:"moveInDate"`
	}

	// Unit is one rentable house of the property.
	Unit struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		Nickname   string `json:"nickname"`
		Occupant   string `json:"occupant"`
		Rent       Money  `json:"rent"`
		DueDay     int    `json:"dueDay"`
		IsPaid     bool   `json:"isPaid"`
		MoveInDate Date   `json:"moveInDate"`
	}

	// ExpenseInput is an expense as submitted, before an id is assigned.
	ExpenseInput struct {
		AccountGroup string `json:"accountGroup"`
		ExpenseType  string `json:"expenseType"`
		Description  string `json:"description"`
		Amount       Money  `json:"amount"`
		Date         Date   `json:"date"`
	}

	// Expense is an immutable ledger record.
	Expense struct {
		ID           int64  `json:"id"`
		AccountGroup string `json:"accountGroup"`
		ExpenseType  string `json:"expenseType"`
		Description  string `json:"description"`
		Amount       Money  `json:"amount"`
		Date         Date   `json:"date"`
	}
)

const maxTextLen = 200

var (
	ErrEmptyName     = errors.New("empty unit name")
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")
	ErrNegativeRent  = errors.New("rent cannot be negative")
	ErrZeroDate      = errors.New("date cannot be zero")
	ErrEmptyGroup    = errors.New("empty account group")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth  = errors.New("invalid month, expected YYYY-MM")
	ErrTextTooLong   = errors.New("text too long (max 200 characters)")
)

// Unit returns the input as a stored unit carrying id.
func (in UnitInput) Unit(id int64) Unit {
	return Unit{
		ID:         id,
		Name:       in.Name,
		Nickname:   in.Nickname,
		Occupant:   in.Occupant,
		Rent:       in.Rent,
		DueDay:     in.DueDay,
		IsPaid:     in.IsPaid,
		MoveInDate: in.MoveInDate,
	}
}

// Input strips the id.
func (u Unit) Input() UnitInput {
	return UnitInput{
		Name:       u.Name,
		Nickname:   u.Nickname,
		Occupant:   u.Occupant,
		Rent:       u.Rent,
		DueDay:     u.DueDay,
		IsPaid:     u.IsPaid,
		MoveInDate: u.MoveInDate,
	}
}

// IsVacant reports whether the unit has no resident.
func (u Unit) IsVacant() bool {
	occ := strings.TrimSpace(u.Occupant)
	return occ == "" || strings.EqualFold(occ, VacantOccupant)
}

func (in UnitInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if len(in.Name) > maxTextLen || len(in.Nickname) > maxTextLen || len(in.Occupant) > maxTextLen {
		return ErrTextTooLong
	}
	if in.Rent.IsNegative() {
		return ErrNegativeRent
	}
	if in.DueDay < 1 || in.DueDay > 31 {
		return ErrInvalidDueDay
	}
	if in.MoveInDate.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (u Unit) Validate() error {
	return u.Input().Validate()
}

// Expense returns the input as a stored expense carrying id.
func (in ExpenseInput) Expense(id int64) Expense {
	return Expense{
		ID:           id,
		AccountGroup: in.AccountGroup,
		ExpenseType:  in.ExpenseType,
		Description:  in.Description,
		Amount:       in.Amount,
		Date:         in.Date,
	}
}

// Validate checks the fields an expense cannot do without. Amounts of any
// sign are accepted: refunds are recorded as negative expenses.
func (in ExpenseInput) Validate() error {
	if strings.TrimSpace(in.AccountGroup) == "" {
		return ErrEmptyGroup
	}
	if len(in.AccountGroup) > maxTextLen || len(in.ExpenseType) > maxTextLen || len(in.Description) > maxTextLen {
		return ErrTextTooLong
	}
	if in.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}
