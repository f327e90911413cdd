package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ggdaltoso/aleph.js/core/logger"
)

var sourceExts = map[string]struct{}{
	".js":  {},
	".jsx": {},
	".mjs": {},
	".ts":  {},
	".tsx": {},
}

// ModuleWatcher watches an app directory for source-module edits and
// reports each changed file once per debounce window.
type ModuleWatcher struct {
	watcher      *fsnotify.Watcher
	rootDir      string
	excludePaths []string

	mu       sync.Mutex
	debounce map[string]*time.Timer
	onChange func(path string) error
}

func NewModuleWatcher(rootDir string, excludePaths []string) (*ModuleWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &ModuleWatcher{
		watcher:      w,
		rootDir:      rootDir,
		excludePaths: append([]string{".git", "node_modules"}, excludePaths...),
		debounce:     make(map[string]*time.Timer),
		onChange:     func(string) error { return fmt.Errorf("OnChange not set") },
	}, nil
}

func (mw *ModuleWatcher) SetOnChange(fn func(path string) error) {
	mw.onChange = fn
}

func (mw *ModuleWatcher) Watch() error {
	if err := mw.addWatchersRecursively(mw.rootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	for {
		select {
		case event, ok := <-mw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if mw.shouldExcludePath(event.Name) {
				continue
			}

			logger.Debug("File event: %s %s", event.Op, event.Name)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					logger.Debug("Adding watcher for new directory: %s", event.Name)
					mw.watcher.Add(event.Name)
					continue
				}
			}

			if !isSourceFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				mw.debounceChange(event.Name)
			}

		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

// debounceChange coalesces the burst of events editors emit per save into
// a single OnChange call per file.
func (mw *ModuleWatcher) debounceChange(path string) {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if timer, ok := mw.debounce[path]; ok {
		timer.Stop()
	}
	mw.debounce[path] = time.AfterFunc(100*time.Millisecond, func() {
		mw.mu.Lock()
		delete(mw.debounce, path)
		mw.mu.Unlock()

		logger.Debug("Module changed: %s", path)
		if err := mw.onChange(path); err != nil {
			logger.Error("Watcher.OnChange failed for %s: %v", path, err)
		}
	})
}

func (mw *ModuleWatcher) Close() error {
	mw.mu.Lock()
	for _, timer := range mw.debounce {
		timer.Stop()
	}
	mw.mu.Unlock()
	return mw.watcher.Close()
}

func (mw *ModuleWatcher) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(mw.rootDir, path)
	if err != nil {
		return false
	}
	relPath = filepath.Clean(relPath)

	for _, excludePath := range mw.excludePaths {
		excludePath = filepath.Clean(excludePath)
		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (mw *ModuleWatcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if mw.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}
		logger.Debug("Adding watcher for: %s", path)
		if err := mw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		return nil
	})
}

func isSourceFile(path string) bool {
	_, ok := sourceExts[filepath.Ext(path)]
	return ok
}
