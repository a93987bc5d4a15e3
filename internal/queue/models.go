package queue

import (
	"strings"
	"time"

	"flipbook/internal/assembly"
)

// Status represents the lifecycle of a conversion job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConverting Status = "converting"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusConverting,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Job represents a conversion job persisted in SQLite.
type Job struct {
	ID              int64
	RequestID       string
	InputDir        string
	OutputPath      string
	Format          string
	FPS             int
	Quality         int
	Lossless        bool
	Width           int
	Height          int
	FrameCount      int
	Status          Status
	ErrorMessage    string
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

// HealthSummary describes aggregated queue counts per lifecycle state.
type HealthSummary struct {
	Total      int
	Pending    int
	Converting int
	Failed     int
	Completed  int
}

// Params reconstructs the encoding parameters stored on the job.
func (j *Job) Params() assembly.Params {
	return assembly.Params{
		Format:   assembly.Format(j.Format),
		FPS:      j.FPS,
		Quality:  j.Quality,
		Lossless: j.Lossless,
		Width:    j.Width,
		Height:   j.Height,
	}
}

// IsProcessing returns true when the job reflects an in-flight conversion.
func (j *Job) IsProcessing() bool {
	return j.Status == StatusConverting
}

// SetProgress updates the progress fields together.
func (j *Job) SetProgress(stage, message string, percent float64) {
	j.ProgressStage = stage
	j.ProgressMessage = message
	j.ProgressPercent = percent
}

// SetFailed marks the job as failed with the given error message.
func (j *Job) SetFailed(message string) {
	j.Status = StatusFailed
	j.ErrorMessage = message
	j.ProgressStage = "Failed"
	j.ProgressMessage = message
	j.ProgressPercent = 0
}

// SetCompleted marks the job as completed and stamps the completion time.
func (j *Job) SetCompleted() {
	now := time.Now().UTC()
	j.Status = StatusCompleted
	j.ErrorMessage = ""
	j.CompletedAt = &now
	j.SetProgress("Completed", "conversion finished", 100)
}
