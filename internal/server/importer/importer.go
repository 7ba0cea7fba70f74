// Package importer implements the spreadsheet bulk-load pipeline: format
// gate, table purge, row-by-row validation, single-transaction commit of the
// valid rows, and a structured report of what was skipped.
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/ymori23/ranking-server/internal/common"
	"github.com/ymori23/ranking-server/internal/dbx"
	"github.com/ymori23/ranking-server/internal/logging"
	"github.com/ymori23/ranking-server/internal/server/influencers"
	"github.com/ymori23/ranking-server/internal/server/models"
)

// Report is the pipeline outcome returned to the client. Row-level errors
// are part of a successful report; only purge, parse, and commit failures
// surface as errors.
type Report struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Archiver stores a copy of a successfully imported workbook. Implementations
// must be safe to call after the commit; failures are logged, never fatal.
type Archiver interface {
	Archive(ctx context.Context, path string) error
}

type Importer struct {
	db       *sql.DB
	logger   logging.Logger
	archiver Archiver

	// mu serializes whole import runs. The purge commits before the row
	// inserts do, so two interleaved runs could otherwise wipe each other's
	// data mid-flight.
	mu sync.Mutex
}

func NewImporter(db *sql.DB, logger logging.Logger, archiver Archiver) *Importer {
	return &Importer{
		db:       db,
		logger:   logger.With("module", "importer"),
		archiver: archiver,
	}
}

func acceptedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".xlsx" || ext == ".xls"
}

// Run executes the pipeline on the uploaded workbook.
//
// The purge runs in its own committed transaction: a failure while the table
// is being emptied aborts the run before any rows are touched, but a later
// parse or commit failure leaves the table empty. That window is inherited
// from the system this replaces and is deliberate; see the design notes.
func (im *Importer) Run(ctx context.Context, src io.Reader, filename string) (*Report, error) {

	if filename == "" || !acceptedExtension(filename) {
		return nil, common.ErrInvalidFileType
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	path, err := bufferToTemp(src, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("cannot buffer upload: %w", err)
	}
	defer os.Remove(path)

	err = dbx.WithTx(ctx, im.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return influencers.NewPostgresRepository(tx).PurgeAll(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("purge failed: %w", err)
	}

	staged, rowErrors, err := im.parse(path)
	if err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, im.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := influencers.NewPostgresRepository(tx)
		for _, inf := range staged {
			if err := repo.Insert(ctx, inf); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	im.archive(ctx, path)

	report := &Report{
		Message:  fmt.Sprintf("import finished: imported %d, skipped %d", len(staged), len(rowErrors)),
		Imported: len(staged),
		Skipped:  len(rowErrors),
		Errors:   rowErrors,
	}

	im.logger.Info(ctx, "import finished", "imported", report.Imported, "skipped", report.Skipped)

	return report, nil
}

// parse loads the workbook and partitions its data rows into staged records
// and collected row errors. Row 1 is the header and is skipped without
// inspection, but its width decides whether the sheet carries enough columns
// at all.
func (im *Importer) parse(path string) ([]*models.Influencer, []string, error) {

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read workbook: %w", err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read workbook: %w", err)
	}

	var sheetWidth int
	if len(rows) > 0 {
		sheetWidth = len(rows[0])
	}

	var staged []*models.Influencer
	var rowErrors []string

	for i, cells := range rows {
		if i == 0 {
			continue
		}

		inf, rowErr := parseRow(cells, i+1, sheetWidth)
		if rowErr != nil {
			rowErrors = append(rowErrors, rowErr.Error())
			continue
		}
		staged = append(staged, inf)
	}

	return staged, rowErrors, nil
}

// archive stores a copy of the imported workbook if an archiver is
// configured. Best-effort: a failed archive never fails the import.
func (im *Importer) archive(ctx context.Context, path string) {
	if im.archiver == nil {
		return
	}
	if err := im.archiver.Archive(ctx, path); err != nil {
		im.logger.Warn(ctx, "workbook archive failed", "error", err.Error())
	}
}

// bufferToTemp spools the upload to a temp file and returns its path. The
// caller removes the file when done.
func bufferToTemp(src io.Reader, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
