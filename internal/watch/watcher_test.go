package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"flipbook/internal/logging"
	"flipbook/internal/queue"
	"flipbook/internal/testsupport"
	"flipbook/internal/watch"
)

func waitForJob(t *testing.T, store *queue.Store, inputDir string) *queue.Job {
	t.Helper()
	deadline := time.After(15 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for job on %s", inputDir)
		case <-time.After(100 * time.Millisecond):
		}
		jobs, err := store.List(context.Background())
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		for _, job := range jobs {
			if job.InputDir == inputDir {
				return job
			}
		}
	}
}

func TestWatcherEnqueuesSettledSequence(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	store := testsupport.MustOpenStore(t, cfg)

	watcher, err := watch.NewWatcher(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	seqDir := filepath.Join(cfg.Paths.WatchDir, "sunrise")
	testsupport.WriteFrameSequence(t, seqDir, 3, 4, 4)

	job := waitForJob(t, store, seqDir)
	if job.Status != queue.StatusPending {
		t.Fatalf("expected pending job, got %q", job.Status)
	}
	if job.Format != cfg.Conversion.Format {
		t.Fatalf("expected configured format, got %q", job.Format)
	}
	wantOutput := filepath.Join(cfg.Paths.OutputDir, "sunrise.webp")
	if job.OutputPath != wantOutput {
		t.Fatalf("unexpected output path: got %q want %q", job.OutputPath, wantOutput)
	}
}

func TestWatcherIgnoresDirWithoutFrames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	store := testsupport.MustOpenStore(t, cfg)

	watcher, err := watch.NewWatcher(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := watcher.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer watcher.Stop()

	empty := filepath.Join(cfg.Paths.WatchDir, "notes")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(empty, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	time.Sleep(3 * time.Second)
	jobs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %+v", jobs)
	}
}

func TestWatcherRequiresWatchDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.WatchDir = ""
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := watch.NewWatcher(cfg, store, logging.NewNop()); err == nil {
		t.Fatal("expected error when watch dir unset")
	}
}

func TestAcquireLockIsExclusive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	lock, err := watch.AcquireLock(cfg)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	defer lock.Unlock()

	if _, err := watch.AcquireLock(cfg); err == nil {
		t.Fatal("expected second lock acquisition to fail")
	}
}
