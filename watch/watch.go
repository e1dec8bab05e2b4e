// Package watch observes a folder for newly sliced G-code files and runs
// the extraction engine once per stable file. De-duplication, settle/debounce
// and retry concerns live here, outside the engine.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/printwatch"
	"github.com/fwojciec/printwatch/fs"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Defaults for watcher tuning knobs.
const (
	DefaultConcurrency    = 4
	DefaultSettleInterval = 200 * time.Millisecond
	DefaultSettleAttempts = 12
	DefaultEventRate      = 20.0 // events per second
)

// Watcher processes newly appearing .gcode files in a directory. Each file
// is extracted at most once per content hash: a re-copied identical file is
// skipped, both within a run (in-memory set) and across runs when a
// ResultService is configured.
type Watcher struct {
	Extractor printwatch.Extractor
	Writers   []printwatch.ResultWriter

	// Results, when set, persists processed files and extends
	// de-duplication across restarts.
	Results printwatch.ResultService

	Logger *slog.Logger

	SourceMode  printwatch.SourceMode
	Concurrency int

	// SettleInterval and SettleAttempts control the wait for a file's
	// size to stop changing, so half-copied files are not parsed.
	SettleInterval time.Duration
	SettleAttempts int

	// EventRate caps how many filesystem events per second are acted
	// on, guarding against event storms from bulk copies.
	EventRate float64

	// OnResult, if set, is called for each successfully processed file.
	OnResult func(*printwatch.ExtractionResult)

	mu       sync.Mutex
	seen     map[string]struct{} // content hashes processed this run
	inflight map[string]struct{} // paths currently being processed
}

// Run watches dir until the context is canceled. Per-file failures are
// logged and never stop the loop; only a missing directory or a watcher
// setup failure is returned as an error.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return printwatch.Errorf(printwatch.ENOTFOUND, "watch folder %s does not exist", dir)
	}
	if !info.IsDir() {
		return printwatch.Errorf(printwatch.EINVALID, "watch path %s is not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return printwatch.Errorf(printwatch.EINTERNAL, "create watcher: %v", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return printwatch.Errorf(printwatch.EINTERNAL, "watch %s: %v", dir, err)
	}

	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	eventRate := w.EventRate
	if eventRate <= 0 {
		eventRate = DefaultEventRate
	}
	limiter := rate.NewLimiter(rate.Limit(eventRate), 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	w.logger().Info("watching folder", "dir", dir)

	for {
		select {
		case <-ctx.Done():
			_ = g.Wait()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return g.Wait()
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			path := event.Name
			if !strings.EqualFold(filepath.Ext(path), ".gcode") {
				continue
			}
			if !w.claim(path) {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				w.release(path)
				_ = g.Wait()
				return nil
			}
			g.Go(func() error {
				defer w.release(path)
				result, err := w.ProcessFile(gctx, path)
				if err != nil {
					w.logger().Error("failed to process file", "path", path, "error", err)
					return nil
				}
				if result != nil && w.OnResult != nil {
					w.OnResult(result)
				}
				return nil
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return g.Wait()
			}
			w.logger().Error("watch error", "error", err)
		}
	}
}

// ProcessFile settles, de-duplicates and extracts one file, routing the
// result to the configured writers. It returns (nil, nil) when the file was
// already processed.
func (w *Watcher) ProcessFile(ctx context.Context, path string) (*printwatch.ExtractionResult, error) {
	if err := w.settle(ctx, path); err != nil {
		return nil, err
	}

	hash, err := fs.HashFile(path)
	if err != nil {
		return nil, err
	}

	if w.alreadySeen(ctx, hash) {
		w.logger().Debug("skipping already processed file", "path", path, "hash", hash)
		return nil, nil
	}

	result, err := fs.ExtractFile(ctx, w.Extractor, path, w.SourceMode)
	if err != nil {
		return nil, err
	}

	for _, writer := range w.Writers {
		if err := writer.WriteResult(ctx, result); err != nil {
			w.logger().Error("failed to write result", "path", path, "error", err)
		}
	}

	if w.Results != nil {
		if err := w.Results.CreateResult(ctx, result); err != nil {
			w.logger().Error("failed to store result", "path", path, "error", err)
		}
	}

	w.markSeen(hash)
	w.logger().Info("processed file",
		"path", path,
		"slicer", string(result.Slicer),
		"metrics", result.MetricFields(),
	)

	return result, nil
}

// settle waits for the file size to stop changing, so that files still
// being copied in are not parsed half-written.
func (w *Watcher) settle(ctx context.Context, path string) error {
	interval := w.SettleInterval
	if interval <= 0 {
		interval = DefaultSettleInterval
	}
	attempts := w.SettleAttempts
	if attempts <= 0 {
		attempts = DefaultSettleAttempts
	}

	lastSize := int64(-1)
	for i := 0; i < attempts; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return printwatch.Errorf(printwatch.ENOTFOUND, "file %s disappeared while settling", path)
		}
		if info.Size() == lastSize {
			return nil
		}
		lastSize = info.Size()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	// Still growing after all attempts; parse what is there rather than
	// dropping the file.
	return nil
}

func (w *Watcher) alreadySeen(ctx context.Context, hash string) bool {
	w.mu.Lock()
	_, ok := w.seen[hash]
	w.mu.Unlock()
	if ok {
		return true
	}

	if w.Results != nil {
		if _, err := w.Results.FindResultBySourceHash(ctx, hash); err == nil {
			return true
		}
	}

	return false
}

func (w *Watcher) markSeen(hash string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen == nil {
		w.seen = make(map[string]struct{})
	}
	w.seen[hash] = struct{}{}
}

// claim marks a path as in-flight so repeated events for a file being
// copied do not spawn concurrent extractions.
func (w *Watcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight == nil {
		w.inflight = make(map[string]struct{})
	}
	if _, ok := w.inflight[path]; ok {
		return false
	}
	w.inflight[path] = struct{}{}
	return true
}

func (w *Watcher) release(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, path)
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
