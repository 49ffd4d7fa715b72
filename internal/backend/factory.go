package backend

import (
	"context"
	"fmt"
	"log/slog"

	gsheet "finanzas/internal/sheets/google"
	"finanzas/internal/sheets/memory"
	"finanzas/internal/storage"
)

// Create builds the row store for the configured backend type. The sheets
// backend also bootstraps missing worksheets so a blank spreadsheet works
// out of the box.
func Create(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case MemoryBackend:
		slog.Info("Initialized memory backend")
		return &Result{Store: memory.New()}, nil
	case SheetsBackend:
		return createSheets(ctx, cfg)
	case SQLiteBackend:
		return createSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func createSheets(ctx context.Context, cfg Config) (*Result, error) {
	cli, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:      cfg.GoogleSpreadsheetID,
		ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		ServiceAccountFile: cfg.GoogleServiceAccountFile,
		Timeout:            cfg.StoreTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
	}

	if err := cli.EnsureSheets(ctx); err != nil {
		return nil, fmt.Errorf("ensure worksheets: %w", err)
	}

	slog.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	return &Result{Store: cli}, nil
}

func createSQLite(cfg Config) (*Result, error) {
	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	slog.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	return &Result{Store: repo, Cleanup: repo.Close}, nil
}
