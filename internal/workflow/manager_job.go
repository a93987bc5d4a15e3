package workflow

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"flipbook/internal/assembly"
	"flipbook/internal/logging"
	"flipbook/internal/queue"
)

func (m *Manager) processJob(ctx context.Context, job *queue.Job) error {
	jobLogger := m.logger.With(
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String(logging.FieldRequestID, job.RequestID),
	)

	job.Status = queue.StatusConverting
	job.SetProgress("Starting", "claimed by worker", 0)
	if err := m.store.Update(ctx, job); err != nil {
		jobLogger.Error("failed to claim job", logging.Error(err))
		m.setLastError(err)
		return err
	}

	label := filepath.Base(job.OutputPath)
	start := time.Now()
	jobLogger.Info("conversion started",
		logging.String(logging.FieldEventType, "job_start"),
		logging.String("input_dir", job.InputDir),
		logging.String("output", job.OutputPath),
		logging.String("format", job.Format),
	)
	if paths, scanErr := assembly.ScanFrames(job.InputDir); scanErr == nil {
		if notifyErr := m.notifier.NotifyConversionStarted(ctx, label, len(paths)); notifyErr != nil {
			jobLogger.Warn("start notification failed", logging.Error(notifyErr))
		}
	}

	const progressPersistInterval = time.Second
	var lastPersisted time.Time
	progress := func(stage, message string, percent float64) {
		job.SetProgress(stage, message, percent)
		now := time.Now()
		if percent < 100 && !lastPersisted.IsZero() && now.Sub(lastPersisted) < progressPersistInterval {
			return
		}
		lastPersisted = now
		if err := m.store.UpdateProgress(ctx, job); err != nil {
			jobLogger.Warn("failed to persist progress", logging.Error(err))
		}
	}

	result, err := Convert(ctx, m.cfg, jobLogger, job.InputDir, job.OutputPath, job.Params(), progress)
	job.FrameCount = result.FrameCount
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		m.failJob(ctx, jobLogger, job, label, err)
		return err
	}

	job.SetCompleted()
	if err := m.store.Update(ctx, job); err != nil {
		jobLogger.Error("failed to persist completion", logging.Error(err))
		m.setLastError(err)
		return err
	}
	jobLogger.Info("conversion completed",
		logging.String(logging.FieldEventType, "job_complete"),
		logging.Int("frame_count", job.FrameCount),
		logging.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
		logging.String("output", job.OutputPath),
	)
	if notifyErr := m.notifier.NotifyConversionCompleted(ctx, label, job.OutputPath); notifyErr != nil {
		jobLogger.Warn("completion notification failed", logging.Error(notifyErr))
	}
	return nil
}

func (m *Manager) failJob(ctx context.Context, jobLogger *slog.Logger, job *queue.Job, label string, cause error) {
	m.setLastError(cause)
	job.SetFailed(cause.Error())
	if err := m.store.Update(ctx, job); err != nil {
		jobLogger.Error("failed to persist failure", logging.Error(err))
	}
	jobLogger.Error("conversion failed",
		logging.Error(cause),
		logging.String(logging.FieldEventType, "job_failed"),
	)
	if notifyErr := m.notifier.NotifyConversionFailed(ctx, label, cause); notifyErr != nil {
		jobLogger.Warn("failure notification failed", logging.Error(notifyErr))
	}
}
