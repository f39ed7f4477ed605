package feed

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// TempSuffix is appended to the feed path to get the temporary file written before the final rename
const TempSuffix = ".kaboom"

// Write stores the feed at path. The document goes to a temporary file next to the
// target first and then renamed over it, so the target is never left half-written.
func Write(ctx context.Context, f *Feed, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode().Perm()
	}

	tmpPath := path + TempSuffix
	log.Printf("[DEBUG] writing %d bytes to %s", len(data), tmpPath)

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err = retrier.Do(ctx, func() error {
		return replaceFile(tmpPath, path, data, mode)
	})
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write feed %s: %w", path, err)
	}
	return nil
}

// replaceFile writes data to tmpPath, syncs it and renames it to path
func replaceFile(tmpPath, path string, data []byte, mode os.FileMode) error {
	fh, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode) //nolint:gosec // path comes from CLI flag
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err = fh.Write(data); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = fh.Sync(); err != nil {
		_ = fh.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = fh.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
