package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"flipbook/internal/assembly"
	"flipbook/internal/config"
	"flipbook/internal/logging"
	"flipbook/internal/queue"
)

// Watcher monitors the watch directory and enqueues conversion jobs for
// settled frame sequences.
type Watcher struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
	settle time.Duration

	fsw *fsnotify.Watcher

	mu       sync.Mutex
	pending  map[string]time.Time
	enqueued map[string]struct{}
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWatcher constructs a watcher for the configured watch directory.
func NewWatcher(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Watcher, error) {
	if strings.TrimSpace(cfg.Paths.WatchDir) == "" {
		return nil, errors.New("watch directory is not configured (set paths.watch_dir)")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	settle := time.Duration(cfg.Workflow.WatchSettleSeconds) * time.Second
	if settle <= 0 {
		settle = 2 * time.Second
	}
	return &Watcher{
		cfg:      cfg,
		store:    store,
		logger:   logger.With(logging.String(logging.FieldComponent, "watch")),
		settle:   settle,
		pending:  make(map[string]time.Time),
		enqueued: make(map[string]struct{}),
	}, nil
}

// Start begins watching. It is non-blocking; Stop shuts the watcher down.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}

	if err := os.MkdirAll(w.cfg.Paths.WatchDir, 0o755); err != nil {
		w.mu.Unlock()
		return err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := fsw.Add(w.cfg.Paths.WatchDir); err != nil {
		fsw.Close()
		w.mu.Unlock()
		return err
	}
	w.fsw = fsw

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	w.logger.Info("watching for frame sequences",
		logging.String("watch_dir", w.cfg.Paths.WatchDir),
		logging.Duration("settle", w.settle),
	)

	go w.run(runCtx)
	return nil
}

// Stop terminates the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.cancel = nil
	w.mu.Unlock()

	cancel()
	w.wg.Wait()
	_ = w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	tick := w.settle / 2
	if tick < 100*time.Millisecond {
		tick = 100 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.observe(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", logging.Error(err))
		case <-ticker.C:
			w.flushSettled(ctx)
		}
	}
}

// observe records activity against the sequence directory the event belongs
// to. Events on the watch directory itself (a new subdirectory) and events on
// files inside a subdirectory both count.
func (w *Watcher) observe(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	dir := w.sequenceDir(event.Name)
	if dir == "" {
		return
	}

	// Watch newly created subdirectories so frame writes inside them are seen.
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() && event.Op&fsnotify.Create != 0 {
		if err := w.fsw.Add(event.Name); err != nil {
			w.logger.Warn("failed to watch new directory", logging.String("dir", event.Name), logging.Error(err))
		}
	}

	w.mu.Lock()
	if _, done := w.enqueued[dir]; !done {
		w.pending[dir] = time.Now()
	}
	w.mu.Unlock()
}

func (w *Watcher) sequenceDir(path string) string {
	rel, err := filepath.Rel(w.cfg.Paths.WatchDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.Split(rel, string(filepath.Separator))
	return filepath.Join(w.cfg.Paths.WatchDir, parts[0])
}

func (w *Watcher) flushSettled(ctx context.Context) {
	now := time.Now()

	w.mu.Lock()
	var ready []string
	for dir, last := range w.pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, dir)
			delete(w.pending, dir)
		}
	}
	w.mu.Unlock()

	for _, dir := range ready {
		w.enqueue(ctx, dir)
	}
}

func (w *Watcher) enqueue(ctx context.Context, dir string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}

	paths, err := assembly.ScanFrames(dir)
	if err != nil {
		if errors.Is(err, assembly.ErrNoFrames) {
			w.logger.Debug("settled directory holds no frames", logging.String("dir", dir))
			return
		}
		w.logger.Warn("failed to scan settled directory", logging.String("dir", dir), logging.Error(err))
		return
	}

	params := w.defaultParams()
	outputPath := filepath.Join(w.cfg.Paths.OutputDir, filepath.Base(dir)+params.Format.Extension())

	job, err := w.store.NewJob(ctx, dir, outputPath, params)
	if err != nil {
		w.logger.Error("failed to enqueue conversion", logging.String("dir", dir), logging.Error(err))
		return
	}

	w.mu.Lock()
	w.enqueued[dir] = struct{}{}
	w.mu.Unlock()

	w.logger.Info("conversion enqueued",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String("input_dir", dir),
		logging.Int("frame_count", len(paths)),
		logging.String("output", outputPath),
	)
}

func (w *Watcher) defaultParams() assembly.Params {
	format, err := assembly.ParseFormat(w.cfg.Conversion.Format)
	if err != nil {
		format = assembly.FormatWebP
	}
	params := assembly.Params{
		Format:   format,
		FPS:      w.cfg.Conversion.FPS,
		Quality:  w.cfg.Conversion.Quality,
		Lossless: w.cfg.Conversion.Lossless,
		Width:    w.cfg.Conversion.Width,
		Height:   w.cfg.Conversion.Height,
	}
	params.Normalize()
	return params
}
