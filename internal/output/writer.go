package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsontab/jsontab/internal/config"
	"github.com/jsontab/jsontab/internal/errors"
	"github.com/jsontab/jsontab/internal/logger"
	"github.com/jsontab/jsontab/internal/models"
)

// Sink persists tables as delimited text files. Destination directory,
// file name, and field delimiter are fixed at construction time from the
// resolved configuration.
type Sink struct {
	dir       string
	filename  string
	delimiter rune
	log       logger.Logger
}

// NewSink creates a Sink writing <OutputDir>/<Filename> per cfg.
func NewSink(cfg *config.Config, log logger.Logger) *Sink {
	return &Sink{
		dir:       cfg.OutputDir,
		filename:  cfg.Filename,
		delimiter: cfg.DelimiterRune(),
		log:       log,
	}
}

// Path returns the destination the sink writes to.
func (s *Sink) Path() string {
	return filepath.Join(s.dir, s.filename)
}

// Write serializes the table and installs it at Path, overwriting any
// existing file. The CSV goes to a temp file in the same directory
// first, is synced and closed, then renamed over the target; on any
// failure the temp file is removed and the target is left as it was. A
// partially-written file is never observable at the destination.
func (s *Sink) Write(table *models.Table) error {
	target := s.Path()
	tempFile := target + ".tmp"

	f, err := os.Create(tempFile)
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create %s", tempFile), err)
	}

	if err := WriteCSV(f, table, s.delimiter); err != nil {
		_ = f.Close()
		_ = os.Remove(tempFile)
		return errors.NewOutputError(fmt.Sprintf("failed to write csv to %s", tempFile), err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tempFile)
		return errors.NewOutputError(fmt.Sprintf("failed to sync %s", tempFile), err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempFile)
		return errors.NewOutputError(fmt.Sprintf("failed to close %s", tempFile), err)
	}

	if err := os.Rename(tempFile, target); err != nil {
		_ = os.Remove(tempFile)
		return errors.NewOutputError(fmt.Sprintf("failed to move result into place at %s", target), err)
	}

	s.log.Debug("result file written",
		"path", target,
		"rows", len(table.Rows),
		"columns", len(table.Columns),
	)
	return nil
}
