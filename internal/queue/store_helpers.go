package queue

import (
	"database/sql"
	"errors"
	"time"
)

const jobColumns = "id, request_id, input_dir, output_path, format, fps, quality, lossless, width, height, frame_count, status, error_message, progress_stage, progress_percent, progress_message, created_at, updated_at, completed_at"

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id              int64
		requestID       string
		inputDir        string
		outputPath      string
		format          string
		fps             int
		quality         int
		lossless        sql.NullInt64
		width           sql.NullInt64
		height          sql.NullInt64
		frameCount      sql.NullInt64
		statusStr       string
		errorMessage    sql.NullString
		progressStage   sql.NullString
		progressPercent sql.NullFloat64
		progressMessage sql.NullString
		createdRaw      sql.NullString
		updatedRaw      sql.NullString
		completedRaw    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&requestID,
		&inputDir,
		&outputPath,
		&format,
		&fps,
		&quality,
		&lossless,
		&width,
		&height,
		&frameCount,
		&statusStr,
		&errorMessage,
		&progressStage,
		&progressPercent,
		&progressMessage,
		&createdRaw,
		&updatedRaw,
		&completedRaw,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:              id,
		RequestID:       requestID,
		InputDir:        inputDir,
		OutputPath:      outputPath,
		Format:          format,
		FPS:             fps,
		Quality:         quality,
		Lossless:        lossless.Int64 != 0,
		Width:           int(width.Int64),
		Height:          int(height.Int64),
		FrameCount:      int(frameCount.Int64),
		Status:          Status(statusStr),
		ErrorMessage:    errorMessage.String,
		ProgressStage:   progressStage.String,
		ProgressPercent: progressPercent.Float64,
		ProgressMessage: progressMessage.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		job.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		job.UpdatedAt = updated
	}
	if completedRaw.Valid {
		if completed, err := parseTimeString(completedRaw.String); err == nil {
			job.CompletedAt = &completed
		}
	}
	return job, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
