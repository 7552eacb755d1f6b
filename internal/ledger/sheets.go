package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio1982/app-gastos/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultSheetName is used when no sheet name is configured.
const DefaultSheetName = "Gastos"

// SheetsStore is an alternate Store implementation that keeps the ledger in
// a Google Sheet: one row per record, columns chat_id, valor (cents),
// categoria, descricao, created_at. Aggregations scan the sheet; fine for a
// personal ledger, not for anything bigger.
type SheetsStore struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ Store = (*SheetsStore)(nil)

// NewSheetsStore creates a Sheets-backed store for the given spreadsheet.
// The spreadsheet id and sheet name come from configuration; only the
// service account credentials are read from the environment
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS), since those are secrets.
func NewSheetsStore(ctx context.Context, spreadsheetID, sheetName string) (*SheetsStore, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (s *SheetsStore) Append(ctx context.Context, chatID string, p core.ParsedExpense) (core.ExpenseRecord, error) {
	p = p.Normalize()
	rec := core.ExpenseRecord{
		ChatID:      chatID,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	if s.svc == nil {
		return core.ExpenseRecord{}, errors.New("sheets service not initialized")
	}

	// Find the next empty row from the sheet dimensions; the row number
	// doubles as the record id.
	rng := fmt.Sprintf("%s!A:A", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("get sheet dimensions for %s: %w", s.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:E%d", s.sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{{
		rec.ChatID, rec.Amount.Cents, rec.Category, rec.Description, rec.CreatedAt.Format(time.RFC3339),
	}}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, dataRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("append row to sheet %s: %w", s.sheetName, err)
	}

	rec.ID = int64(nextRow)
	return rec, nil
}

func (s *SheetsStore) TotalFor(ctx context.Context, chatID string) (core.Money, error) {
	rows, err := s.readRows(ctx)
	if err != nil {
		return core.Money{}, err
	}
	var cents int64
	for _, r := range rows {
		if r.chatID == chatID {
			cents += r.cents
		}
	}
	return core.Money{Cents: cents}, nil
}

func (s *SheetsStore) TotalsByCategory(ctx context.Context, chatID string) ([]core.CategoryTotal, error) {
	rows, err := s.readRows(ctx)
	if err != nil {
		return nil, err
	}
	return aggregateByCategory(rows, chatID), nil
}

type sheetRow struct {
	chatID   string
	cents    int64
	category string
}

// parseSheetRow extracts the ledger fields from one raw sheet row. Rows
// that are too short or carry a non-numeric amount are skipped rather than
// failing the whole report.
func parseSheetRow(row []any) (sheetRow, bool) {
	if len(row) < 3 {
		return sheetRow{}, false
	}
	cents, err := strconv.ParseInt(strings.TrimSpace(fmt.Sprint(row[1])), 10, 64)
	if err != nil {
		return sheetRow{}, false
	}
	return sheetRow{
		chatID:   strings.TrimSpace(fmt.Sprint(row[0])),
		cents:    cents,
		category: strings.TrimSpace(fmt.Sprint(row[2])),
	}, true
}

// aggregateByCategory sums one chat's rows per category, ordered by
// descending subtotal with ties broken alphabetically, matching the SQLite
// store's aggregation.
func aggregateByCategory(rows []sheetRow, chatID string) []core.CategoryTotal {
	sums := make(map[string]int64)
	for _, r := range rows {
		if r.chatID == chatID {
			sums[r.category] += r.cents
		}
	}
	if len(sums) == 0 {
		return nil
	}
	totals := make([]core.CategoryTotal, 0, len(sums))
	for name, cents := range sums {
		totals = append(totals, core.CategoryTotal{Name: name, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount.Cents != totals[j].Amount.Cents {
			return totals[i].Amount.Cents > totals[j].Amount.Cents
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

func (s *SheetsStore) readRows(ctx context.Context) ([]sheetRow, error) {
	if s.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:C", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	out := make([]sheetRow, 0, len(resp.Values))
	for _, row := range resp.Values {
		if r, ok := parseSheetRow(row); ok {
			out = append(out, r)
		}
	}
	return out, nil
}
