package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// BulkArchiver is the one store operation the loader drives.
type BulkArchiver interface {
	BulkArchive(ctx context.Context, rows []store.BulkEmployee) (store.BulkResult, error)
}

// Loader parses spreadsheets and archives their rows through the store.
type Loader struct {
	archiver BulkArchiver
	logger   zerolog.Logger
}

// NewLoader creates a loader on top of the employees store.
func NewLoader(archiver BulkArchiver, logger zerolog.Logger) *Loader {
	return &Loader{
		archiver: archiver,
		logger:   logger.With().Str("component", "import").Logger(),
	}
}

// LoadFromReader parses the named spreadsheet and archives every row.
// Returns ErrNoRows when the file has a valid header but no data.
func (l *Loader) LoadFromReader(ctx context.Context, filename string, r io.Reader) (store.BulkResult, error) {
	rows, err := ParseFile(filename, r)
	if err != nil {
		return store.BulkResult{}, err
	}
	if len(rows) == 0 {
		return store.BulkResult{}, ErrNoRows
	}

	result, err := l.archiver.BulkArchive(ctx, rows)
	if err != nil {
		return store.BulkResult{}, err
	}

	l.logger.Info().
		Str("file", filename).
		Int("rows", len(rows)).
		Int("added", result.Added).
		Int("failed", result.Failed).
		Msg("bulk archive finished")
	return result, nil
}

// LoadFromFile archives every row of the spreadsheet at path.
func (l *Loader) LoadFromFile(ctx context.Context, path string) (store.BulkResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return store.BulkResult{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer file.Close()

	return l.LoadFromReader(ctx, filepath.Base(path), file)
}
