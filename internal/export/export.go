// Package export turns the record collections into spreadsheet tables and
// writes them as CSV files or Google Sheets tabs.
package export

import (
	"context"
	"fmt"
	"time"

	"fjacquet/kfinance/internal/dashboard"
	"fjacquet/kfinance/internal/dateutils"
	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/models"
	"fjacquet/kfinance/internal/recorderror"
)

// FilePrefix starts every exported file and spreadsheet name.
const FilePrefix = "K-Finance"

// Writer persists non-empty tables stamped with the export date and returns
// where each table was written.
type Writer interface {
	Write(ctx context.Context, stamp string, tables []Table) ([]string, error)
}

// Exporter selects the tables to export and hands them to a Writer.
type Exporter struct {
	writer Writer
	logger logging.Logger

	// Now stamps export names.
	Now func() time.Time
}

// NewExporter returns an exporter writing through w.
func NewExporter(w Writer, logger logging.Logger) *Exporter {
	return &Exporter{writer: w, logger: logger, Now: time.Now}
}

// ExportAll writes every non-empty collection. It fails with
// ErrNothingToExport when all four are empty.
func (e *Exporter) ExportAll(ctx context.Context, s dashboard.Snapshot) ([]string, error) {
	var tables []Table
	for _, t := range Tables(s) {
		if !t.Empty() {
			tables = append(tables, t)
		}
	}
	if len(tables) == 0 {
		return nil, recorderror.ErrNothingToExport
	}
	return e.write(ctx, tables)
}

// ExportKind writes the collection of a single kind. It fails with
// ErrNothingToExport when that collection is empty.
func (e *Exporter) ExportKind(ctx context.Context, kind models.Kind, s dashboard.Snapshot) ([]string, error) {
	t, err := TableFor(kind, s)
	if err != nil {
		return nil, err
	}
	if t.Empty() {
		return nil, fmt.Errorf("%w: %s", recorderror.ErrNothingToExport, kind.Collection())
	}
	return e.write(ctx, []Table{t})
}

func (e *Exporter) write(ctx context.Context, tables []Table) ([]string, error) {
	stamp := dateutils.ToISODate(e.Now())
	dests, err := e.writer.Write(ctx, stamp, tables)
	if err != nil {
		e.logger.WithError(err).Error("Export failed")
		return dests, err
	}
	e.logger.Info("Export completed", logging.F(logging.FieldCount, len(dests)))
	return dests, nil
}

// FileName returns the export name of sheet for the given date stamp.
func FileName(sheet, stamp, ext string) string {
	return fmt.Sprintf("%s_%s_%s%s", FilePrefix, sheet, stamp, ext)
}

// WorkbookName returns the name of a spreadsheet holding every sheet.
func WorkbookName(stamp string) string {
	return FilePrefix + "_" + stamp
}
