package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"flipbook/internal/assembly"
	"flipbook/internal/queue"
)

func newTestParams() assembly.Params {
	params := assembly.Params{Format: assembly.FormatWebP, FPS: 24, Quality: 90}
	params.Normalize()
	return params
}

func TestQueueStatusAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	if _, err := env.store.NewJob(ctx, "/frames/alpha", "/out/alpha.webp", newTestParams()); err != nil {
		t.Fatalf("alpha job: %v", err)
	}

	beta, err := env.store.NewJob(ctx, "/frames/beta", "/out/beta.webp", newTestParams())
	if err != nil {
		t.Fatalf("beta job: %v", err)
	}
	beta.SetFailed("encoder exploded")
	if err := env.store.Update(ctx, beta); err != nil {
		t.Fatalf("beta failed: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	requireContains(t, out, "pending")
	requireContains(t, out, "failed")

	out, _, err = runCLI(t, []string{"queue", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "/frames/alpha")
	requireContains(t, out, "/frames/beta")
	requireContains(t, out, "encoder exploded")

	out, _, err = runCLI(t, []string{"queue", "list", "--status", "failed"}, env.configPath)
	if err != nil {
		t.Fatalf("queue list --status failed: %v", err)
	}
	requireContains(t, out, "/frames/beta")
	if strings.Contains(out, "/frames/alpha") {
		t.Fatalf("status filter leaked pending job:\n%s", out)
	}
}

func TestQueueRetryAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	job, err := env.store.NewJob(ctx, "/frames/alpha", "/out/alpha.webp", newTestParams())
	if err != nil {
		t.Fatalf("job: %v", err)
	}
	job.SetFailed("boom")
	if err := env.store.Update(ctx, job); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "retry", strconv.FormatInt(job.ID, 10)}, env.configPath)
	if err != nil {
		t.Fatalf("queue retry: %v", err)
	}
	requireContains(t, out, fmt.Sprintf("Job %d reset for retry", job.ID))

	refreshed, err := env.store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if refreshed.Status != queue.StatusPending {
		t.Fatalf("expected pending after retry, got %q", refreshed.Status)
	}

	out, _, err = runCLI(t, []string{"queue", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Cleared 1 jobs")

	out, _, err = runCLI(t, []string{"queue", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	requireContains(t, out, "Queue is empty")
}

func TestQueueRemoveAndHealth(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	job, err := env.store.NewJob(ctx, "/frames/alpha", "/out/alpha.webp", newTestParams())
	if err != nil {
		t.Fatalf("job: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "remove", strconv.FormatInt(job.ID, 10)}, env.configPath)
	if err != nil {
		t.Fatalf("queue remove: %v", err)
	}
	requireContains(t, out, fmt.Sprintf("Job %d removed", job.ID))

	out, _, err = runCLI(t, []string{"queue", "remove", "999"}, env.configPath)
	if err != nil {
		t.Fatalf("queue remove missing: %v", err)
	}
	requireContains(t, out, "Job 999 not found")

	out, _, err = runCLI(t, []string{"queue", "health"}, env.configPath)
	if err != nil {
		t.Fatalf("queue health: %v", err)
	}
	requireContains(t, out, "Total: 0")
}

func TestQueueListRejectsUnknownStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"queue", "list", "--status", "bogus"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown status filter")
	}
	if !strings.Contains(err.Error(), "unknown status") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueRetryRejectsBadID(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"queue", "retry", "zero"}, env.configPath); err == nil {
		t.Fatal("expected error for non-numeric job id")
	}
}
