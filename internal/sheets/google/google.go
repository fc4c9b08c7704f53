// Package google exports monthly summaries and ledger rows to a Google
// Sheets spreadsheet using a service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"condo/internal/core"
	"condo/internal/ports"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config selects the spreadsheet, the credentials and the base sheet names.
// Sheet names are prefixed with the exported year, "2025 Resumo".
type Config struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
	SummarySheet    string
	LedgerSheet     string
}

type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	summaryBase   string
	ledgerBase    string
}

var _ ports.SummaryExporter = (*Exporter)(nil)

// New creates an exporter authenticated with the configured service account.
// Extra options are passed to the Sheets client.
func New(ctx context.Context, cfg Config, opts ...goption.ClientOption) (*Exporter, error) {
	spreadsheetID := strings.TrimSpace(cfg.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	if len(opts) == 0 {
		credentialsJSON, err := loadCredentials(cfg)
		if err != nil {
			return nil, err
		}
		opts = []goption.ClientOption{
			goption.WithCredentialsJSON(credentialsJSON),
			goption.WithScopes(gsheet.SpreadsheetsScope),
		}
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	summary := strings.TrimSpace(cfg.SummarySheet)
	if summary == "" {
		summary = "Resumo"
	}
	ledger := strings.TrimSpace(cfg.LedgerSheet)
	if ledger == "" {
		ledger = "Despesas"
	}

	slog.InfoContext(ctx, "Google Sheets exporter ready",
		"spreadsheet_id", spreadsheetID,
		"summary_sheet", summary,
		"ledger_sheet", ledger)

	return &Exporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		summaryBase:   summary,
		ledgerBase:    ledger,
	}, nil
}

func loadCredentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}
}

// ExportMonth writes the month's summary row and the month's expenses not
// yet in the ledger sheet, so exporting the same month again is a no-op
// apart from refreshing the summary. It returns the range of the summary row.
//
// Summary rows live at a fixed place: month m on row m+1 of "<year> Resumo",
// row 1 being left for headers. Ledger rows are keyed by expense id in
// column A of "<year> Despesas".
func (e *Exporter) ExportMonth(ctx context.Context, s core.Summary, expenses []core.Expense) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if s.Month < 1 || s.Month > 12 {
		return "", fmt.Errorf("invalid summary month %d", s.Month)
	}

	summarySheet := yearPrefixedName(e.summaryBase, s.Year)
	row := s.Month + 1
	summaryRange := sheetRange(summarySheet, fmt.Sprintf("A%d:K%d", row, row))
	resp, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, summaryRange,
		&gsheet.ValueRange{Values: [][]any{summaryRow(s)}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write summary to %s: %w", summarySheet, err)
	}

	ref := summaryRange
	if resp.UpdatedRange != "" {
		ref = resp.UpdatedRange
	}

	added := 0
	if len(expenses) > 0 {
		ledgerSheet := yearPrefixedName(e.ledgerBase, s.Year)
		existing, err := e.ledgerIDs(ctx, ledgerSheet)
		if err != nil {
			return ref, err
		}

		rows := ledgerRows(missingExpenses(expenses, existing))
		if len(rows) > 0 {
			_, err = e.svc.Spreadsheets.Values.Append(e.spreadsheetID, sheetRange(ledgerSheet, "A:F"),
				&gsheet.ValueRange{Values: rows}).
				ValueInputOption("USER_ENTERED").
				InsertDataOption("INSERT_ROWS").
				Context(ctx).Do()
			if err != nil {
				return ref, fmt.Errorf("append ledger to %s: %w", ledgerSheet, err)
			}
		}
		added = len(rows)
	}

	slog.InfoContext(ctx, "Exported month to Google Sheets",
		"year", s.Year,
		"month", s.Month,
		"ledger_rows_added", added,
		"export_ref", ref)
	return ref, nil
}

// ledgerIDs reads the expense ids already in column A of sheet. Cells that
// are not ids, such as a header, are skipped.
func (e *Exporter) ledgerIDs(ctx context.Context, sheet string) (map[int64]bool, error) {
	resp, err := e.svc.Spreadsheets.Values.Get(e.spreadsheetID, sheetRange(sheet, "A:A")).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read ledger ids from %s: %w", sheet, err)
	}

	ids := make(map[int64]bool, len(resp.Values))
	for _, r := range resp.Values {
		if len(r) == 0 {
			continue
		}
		if id, ok := cellID(r[0]); ok {
			ids[id] = true
		}
	}
	return ids, nil
}

func missingExpenses(expenses []core.Expense, existing map[int64]bool) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !existing[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// cellID reads an id cell, which the API returns formatted as a string.
func cellID(v any) (int64, bool) {
	switch c := v.(type) {
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(c), 10, 64)
		return id, err == nil
	case float64:
		return int64(c), c == float64(int64(c))
	default:
		return 0, false
	}
}

// summaryRow lays out: month, monthly income/expenses/balance, yearly
// income/expenses/balance, then each partner's name and monthly share.
func summaryRow(s core.Summary) []any {
	row := []any{
		fmt.Sprintf("%04d-%02d", s.Year, s.Month),
		s.MonthlyIncome.StringFixed(),
		s.MonthlyExpenses.StringFixed(),
		s.MonthlyBalance.StringFixed(),
		s.YearlyIncome.StringFixed(),
		s.YearlyExpenses.StringFixed(),
		s.YearlyBalance.StringFixed(),
	}
	for _, p := range s.Partners {
		row = append(row, p.Name, p.Monthly.StringFixed())
	}
	return row
}

// ledgerRows lays out: id, date, account group, type, description, amount.
func ledgerRows(expenses []core.Expense) [][]any {
	rows := make([][]any, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []any{
			e.ID,
			e.Date.String(),
			e.AccountGroup,
			e.ExpenseType,
			e.Description,
			e.Amount.StringFixed(),
		})
	}
	return rows
}

// sheetRange quotes the sheet name when it contains spaces.
func sheetRange(sheet, cells string) string {
	if strings.ContainsAny(sheet, " '") {
		sheet = "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	return sheet + "!" + cells
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}
