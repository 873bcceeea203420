package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/rohmanhakim/aocinput/pkg/failure"
	"github.com/rohmanhakim/aocinput/pkg/fileutil"
)

const filePerms = 0o644

// PathFormatter computes where on disk the input for a key lives.
type PathFormatter interface {
	Path(key puzzle.Key) string
}

// PathFormatterFunc adapts a plain function to PathFormatter.
type PathFormatterFunc func(key puzzle.Key) string

func (f PathFormatterFunc) Path(key puzzle.Key) string {
	return f(key)
}

// DayFilePath lays inputs out as <dir>/day<N>.txt, one directory per event.
func DayFilePath(dir string) PathFormatter {
	return PathFormatterFunc(func(key puzzle.Key) string {
		return filepath.Join(dir, fmt.Sprintf("day%d.txt", key.Day))
	})
}

// YearDayFilePath lays inputs out as <root>/<year>/day<N>.txt.
func YearDayFilePath(root string) PathFormatter {
	return PathFormatterFunc(func(key puzzle.Key) string {
		return filepath.Join(root, key.Year.String(), fmt.Sprintf("day%d.txt", key.Day))
	})
}

// FileCache stores each input as a plain file.
// It does no key-level conflict detection: Write always overwrites.
type FileCache struct {
	formatter PathFormatter
}

var _ Cache = (*FileCache)(nil)

func NewFileCache(formatter PathFormatter) *FileCache {
	return &FileCache{formatter: formatter}
}

// Path exposes where key is stored.
func (c *FileCache) Path(key puzzle.Key) string {
	return c.formatter.Path(key)
}

func (c *FileCache) Read(_ context.Context, key puzzle.Key) (string, bool) {
	content, err := os.ReadFile(c.formatter.Path(key))
	if err != nil {
		return "", false
	}
	return string(content), true
}

func (c *FileCache) Write(_ context.Context, key puzzle.Key, input string) failure.ClassifiedError {
	path := c.formatter.Path(key)

	if err := fileutil.EnsureParentDir(path); err != nil {
		return &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Key:       key,
		}
	}

	// atomic.WriteFile goes through a temp file and rename, so a reader
	// never observes a half-written input.
	if err := atomic.WriteFile(path, strings.NewReader(input)); err != nil {
		return &CacheError{
			Message:   fmt.Sprintf("%s: %v", path, err),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Key:       key,
		}
	}

	// atomic.WriteFile leaves new files at the temp file's 0600.
	if err := os.Chmod(path, filePerms); err != nil {
		return &CacheError{
			Message:   fmt.Sprintf("%s: %v", path, err),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Key:       key,
		}
	}
	return nil
}
