package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce groups the burst of events an editor emits for one save.
const reloadDebounce = 200 * time.Millisecond

// Watch reloads the catalog tree at dir into holder whenever a file under
// dir/locales changes. A tree that fails to load is logged and the previous
// bundle keeps serving. Watch blocks until ctx is done.
func Watch(ctx context.Context, dir string, holder *Holder, logger *zap.Logger) error {
	if holder == nil {
		return fmt.Errorf("catalog holder is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer watcher.Close()

	if err := addCatalogDirs(watcher, dir); err != nil {
		return err
	}

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warn("watch catalog dir", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			bundle, err := LoadDir(dir)
			if err != nil {
				logger.Error("reload catalogs", zap.String("dir", dir), zap.Error(err))
				continue
			}
			ReportMissingKeys(bundle, logger)
			holder.Swap(bundle)
			logger.Info("catalogs reloaded", zap.String("dir", dir), zap.Strings("locales", bundle.Locales()))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

// ReportMissingKeys logs a warning for every locale of bundle that lacks
// base-locale keys. Those keys render in the base locale.
func ReportMissingKeys(bundle *Bundle, logger *zap.Logger) {
	if logger == nil {
		return
	}
	for locale, keys := range bundle.MissingKeys() {
		logger.Warn("catalog keys fall back to base locale",
			zap.String("locale", locale),
			zap.Strings("keys", keys),
		)
	}
}

func addCatalogDirs(watcher *fsnotify.Watcher, dir string) error {
	root := filepath.Join(dir, "locales")
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read %s: %w", root, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	return nil
}
