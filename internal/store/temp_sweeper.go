package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

type tempSweeper struct {
	root   string
	logger *logger.Logger
	now    func() time.Time
}

// NewTempSweeper returns a [TempSweeper] over the whole data directory.
func NewTempSweeper(dataDir string, logger *logger.Logger) TempSweeper {
	return &tempSweeper{
		root:   dataDir,
		logger: logger,
		now:    time.Now,
	}
}

// SweepTempFiles removes hidden "*.tmp" files older than maxAge and reports
// how many were removed. Younger files may still be in flight and are kept.
func (s *tempSweeper) SweepTempFiles(ctx context.Context, maxAge time.Duration) (int, error) {
	removed := 0
	cutoff := s.now().Add(-maxAge)

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		name := d.Name()
		if !d.Type().IsRegular() || !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, tmpSuffix) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", path).Msg("error removing stale temp file")
			return nil
		}
		removed++

		return nil
	})

	return removed, err
}
