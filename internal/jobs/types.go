package jobs

import (
	"context"
	"time"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ExtractReceiptJob asks the worker to run AI extraction over a receipt
// image staged in GCS and create the resulting expense record in Notion.
type ExtractReceiptJob struct {
	JobID string `json:"job_id"`

	// GCSURI locates the staged receipt image.
	GCSURI string `json:"gcs_uri"`

	// ContentType is the image MIME type recorded at upload.
	ContentType string `json:"content_type,omitempty"`

	// PageID is set once the worker has created the Notion expense page.
	PageID string `json:"page_id,omitempty"`

	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Publisher enqueues receipt extraction jobs. The in-memory queue is the
// only implementation today; the interface leaves room for Cloud Tasks.
type Publisher interface {
	PublishExtractReceipt(ctx context.Context, job *ExtractReceiptJob) error
	Close() error
}

// Handler processes one job. A returned error marks the job failed.
type Handler func(ctx context.Context, job *ExtractReceiptJob) error

// Consumer drains jobs from a queue.
type Consumer interface {
	Start(ctx context.Context, handler Handler) error
	Stop(ctx context.Context) error
}

// Store tracks job state so clients can poll progress.
type Store interface {
	SaveJob(ctx context.Context, job *ExtractReceiptJob) error
	GetJob(ctx context.Context, jobID string) (*ExtractReceiptJob, error)
	ListJobs(ctx context.Context, status Status) ([]*ExtractReceiptJob, error)
}
