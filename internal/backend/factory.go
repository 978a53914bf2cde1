package backend

import (
	"context"
	"fmt"
	"time"

	"personal-budget/internal/core"
	applog "personal-budget/internal/log"
	"personal-budget/internal/source"
	"personal-budget/internal/source/file"
	"personal-budget/internal/source/sheets"
	"personal-budget/internal/source/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new reader factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentSource),
	}
}

// CreateReader implements Factory.CreateReader
func (f *DefaultFactory) CreateReader(ctx context.Context, config Config) (*Result, error) {
	if !config.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownSource, config.Kind)
	}

	var (
		reader  source.DocumentReader
		cleanup CleanupFunc
	)

	switch config.Kind {
	case source.KindFile:
		reader = file.New(config.BudgetFile)
	case source.KindSQLite:
		r, err := sqlite.Open(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source: %w", err)
		}
		reader, cleanup = r, r.Close
	case source.KindSheets:
		cli, err := sheets.New(ctx, config.GoogleSpreadsheetID, config.GoogleSheetRange, sheets.Credentials{
			ServiceAccountJSON: config.GoogleServiceAccountJSON,
			ServiceAccountFile: config.GoogleServiceAccountFile,
			ApplicationDefault: config.GoogleApplicationCredsEnv,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		reader = cli
	}

	res := &Result{
		Reader:   reader,
		Kind:     config.Kind,
		Location: source.LocationOf(reader),
		Cleanup:  cleanup,
	}
	f.logger.Info("Initialized document source", applog.FieldSource, res.Kind, applog.FieldLocation, res.Location)
	return res, nil
}

// LoadDocument creates the configured reader, loads the document once and
// releases the reader. The returned document is validated.
func LoadDocument(ctx context.Context, factory Factory, config Config, logger *applog.Logger) (core.Document, *Result, error) {
	res, err := factory.CreateReader(ctx, config)
	if err != nil {
		return core.Document{}, nil, err
	}
	defer func() {
		if res.Cleanup != nil {
			if err := res.Cleanup(); err != nil {
				logger.WarnContext(ctx, "Document source cleanup failed", applog.FieldError, err)
			}
		}
	}()

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	doc, err := res.Reader.Load(loadCtx)
	if err != nil {
		return core.Document{}, res, fmt.Errorf("load budget document from %s: %w", res.Location, err)
	}
	if err := doc.Validate(); err != nil {
		return core.Document{}, res, fmt.Errorf("validate budget document from %s: %w", res.Location, err)
	}

	applog.NewStructuredLogger(logger).LogDocumentLoaded(ctx, string(res.Kind), res.Location, doc.Len(), doc.Total())
	return doc, res, nil
}
