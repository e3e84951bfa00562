package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"

	"fjacquet/kfinance/internal/fileutils"
	"fjacquet/kfinance/internal/logging"
	"fjacquet/kfinance/internal/recorderror"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter separates CSV fields unless configured otherwise.
const DefaultDelimiter = ','

// CSVWriter writes one CSV file per table into a directory.
type CSVWriter struct {
	dir       string
	delimiter rune
	logger    logging.Logger
}

// NewCSVWriter returns a writer targeting dir. A zero delimiter means DefaultDelimiter.
func NewCSVWriter(dir string, delimiter rune, logger logging.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &CSVWriter{dir: dir, delimiter: delimiter, logger: logger}
}

// Write creates K-Finance_<Sheet>_<stamp>.csv for each table.
func (w *CSVWriter) Write(ctx context.Context, stamp string, tables []Table) ([]string, error) {
	if err := fileutils.EnsureDirectoryExists(w.dir); err != nil {
		return nil, &recorderror.ExportError{Target: w.dir, Err: err}
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(w.dir, FileName(t.Sheet, stamp, ".csv"))
		if err := w.WriteTable(path, t); err != nil {
			return paths, &recorderror.ExportError{Target: path, Err: err}
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteTable writes the header and rows of t to path.
func (w *CSVWriter) WriteTable(path string, t Table) error {
	w.logger.Info("Writing CSV file",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, t.Len()),
		logging.F(logging.FieldDelimiter, string(w.delimiter)))

	file, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = w.delimiter

	if err := t.Marshal(gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV data: %w", err)
	}
	return nil
}
