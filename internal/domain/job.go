package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus tracks a job through the worker pipeline.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusNarrating   JobStatus = "narrating"
	StatusTranscoding JobStatus = "transcoding"
	StatusDelivering  JobStatus = "delivering"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
)

// Job represents one accepted video-to-note conversion request.
// At most one job per user exists at any instant; the admission set
// enforces that, not the job itself. Only the worker mutates a job
// after it is enqueued.
type Job struct {
	ID              uuid.UUID
	UserID          int64
	ChatID          int64
	SourceMessageID int
	StatusMessageID int
	SourcePath      string
	OutputPath      string
	EnqueuedAt      time.Time
	Status          JobStatus
}

// NewJob creates a queued job for a downloaded source file.
func NewJob(userID, chatID int64, sourceMessageID, statusMessageID int, sourcePath string) *Job {
	return &Job{
		ID:              uuid.New(),
		UserID:          userID,
		ChatID:          chatID,
		SourceMessageID: sourceMessageID,
		StatusMessageID: statusMessageID,
		SourcePath:      sourcePath,
		EnqueuedAt:      time.Now(),
		Status:          StatusQueued,
	}
}
