package export

import (
	"context"
	"fmt"
	"os"

	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/recorderror"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig locates the service account and target spreadsheet.
// An empty SpreadsheetID creates a new spreadsheet on every export.
type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
}

// SheetsAPI is the subset of the Sheets service used by SheetsWriter.
type SheetsAPI interface {
	CreateSpreadsheet(ctx context.Context, title string) (string, error)
	EnsureTab(ctx context.Context, spreadsheetID, title string) error
	ReplaceValues(ctx context.Context, spreadsheetID, tab string, values [][]interface{}) error
}

// SheetsWriter writes each table into a tab named after its sheet.
type SheetsWriter struct {
	api           SheetsAPI
	spreadsheetID string
	logger        logging.Logger
}

// NewSheetsWriter authenticates with the service account in cfg.
func NewSheetsWriter(ctx context.Context, cfg SheetsConfig, logger logging.Logger) (*SheetsWriter, error) {
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("sheets credentials file is not configured")
	}
	credentialsJSON, err := os.ReadFile(cfg.CredentialsFile) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return NewSheetsWriterWithAPI(&googleSheets{svc: svc}, cfg.SpreadsheetID, logger), nil
}

// NewSheetsWriterWithAPI returns a writer over an existing API client.
func NewSheetsWriterWithAPI(api SheetsAPI, spreadsheetID string, logger logging.Logger) *SheetsWriter {
	return &SheetsWriter{api: api, spreadsheetID: spreadsheetID, logger: logger}
}

// Write replaces the content of one tab per table and returns "<spreadsheet>!<tab>" for each.
func (w *SheetsWriter) Write(ctx context.Context, stamp string, tables []Table) ([]string, error) {
	id := w.spreadsheetID
	if id == "" {
		created, err := w.api.CreateSpreadsheet(ctx, WorkbookName(stamp))
		if err != nil {
			return nil, &recorderror.ExportError{Target: "sheets", Err: err}
		}
		id = created
		w.logger.Info("Created spreadsheet", logging.F(logging.FieldSheet, id))
	}

	dests := make([]string, 0, len(tables))
	for _, t := range tables {
		dest := id + "!" + t.Sheet
		values, err := t.Values()
		if err != nil {
			return dests, &recorderror.ExportError{Target: dest, Err: err}
		}
		if err := w.api.EnsureTab(ctx, id, t.Sheet); err != nil {
			return dests, &recorderror.ExportError{Target: dest, Err: err}
		}
		if err := w.api.ReplaceValues(ctx, id, t.Sheet, toCells(values)); err != nil {
			return dests, &recorderror.ExportError{Target: dest, Err: err}
		}
		w.logger.Debug("Wrote sheet", logging.F(logging.FieldSheet, dest), logging.F(logging.FieldCount, t.Len()))
		dests = append(dests, dest)
	}
	return dests, nil
}

func toCells(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

type googleSheets struct {
	svc *sheets.Service
}

func (g *googleSheets) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	created, err := g.svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}
	return created.SpreadsheetId, nil
}

func (g *googleSheets) EnsureTab(ctx context.Context, spreadsheetID, title string) error {
	ss, err := g.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to access spreadsheet %s: %w", spreadsheetID, err)
	}
	for _, sheet := range ss.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: title}},
		}},
	}
	if _, err := g.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to add tab %s: %w", title, err)
	}
	return nil
}

func (g *googleSheets) ReplaceValues(ctx context.Context, spreadsheetID, tab string, values [][]interface{}) error {
	tabRange := fmt.Sprintf("'%s'", tab)
	if _, err := g.svc.Spreadsheets.Values.Clear(spreadsheetID, tabRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear tab %s: %w", tab, err)
	}
	_, err := g.svc.Spreadsheets.Values.Update(spreadsheetID, tabRange+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write tab %s: %w", tab, err)
	}
	return nil
}
