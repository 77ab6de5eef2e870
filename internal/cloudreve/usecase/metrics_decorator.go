package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ablecats/filestream/internal/cloudreve/domain"
	"github.com/ablecats/filestream/internal/metrics"
)

// downloadUseCaseWithMetrics decorates DownloadUseCase with metrics instrumentation.
type downloadUseCaseWithMetrics struct {
	next    DownloadUseCase
	metrics metrics.BusinessMetrics
}

// NewDownloadUseCaseWithMetrics wraps a DownloadUseCase with metrics recording.
func NewDownloadUseCaseWithMetrics(useCase DownloadUseCase, m metrics.BusinessMetrics) DownloadUseCase {
	return &downloadUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Submit records metrics for remote-download submissions.
func (d *downloadUseCaseWithMetrics) Submit(ctx context.Context, srcURL string) (*domain.SubmissionResult, error) {
	start := time.Now()
	result, err := d.next.Submit(ctx, srcURL)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "cloudreve", "submit", status)
	d.metrics.RecordDuration(ctx, "cloudreve", "submit", time.Since(start), status)

	return result, err
}

// SearchTask is a pure local scan; nothing worth recording.
func (d *downloadUseCaseWithMetrics) SearchTask(taskList json.RawMessage, srcURL string) *domain.TaskStatus {
	return d.next.SearchTask(taskList, srcURL)
}

// ListTasks records metrics for task list fetches.
func (d *downloadUseCaseWithMetrics) ListTasks(ctx context.Context, pageSize int, category string) (json.RawMessage, error) {
	start := time.Now()
	data, err := d.next.ListTasks(ctx, pageSize, category)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "cloudreve", "task_list", status)
	d.metrics.RecordDuration(ctx, "cloudreve", "task_list", time.Since(start), status)

	return data, err
}

// ListFiles records metrics for file list fetches.
func (d *downloadUseCaseWithMetrics) ListFiles(ctx context.Context, pageSize int, fileURI string, page int) (json.RawMessage, error) {
	start := time.Now()
	data, err := d.next.ListFiles(ctx, pageSize, fileURI, page)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "cloudreve", "file_list", status)
	d.metrics.RecordDuration(ctx, "cloudreve", "file_list", time.Since(start), status)

	return data, err
}

// ShareFile records metrics for share creation.
func (d *downloadUseCaseWithMetrics) ShareFile(ctx context.Context, fileURI string) (json.RawMessage, error) {
	start := time.Now()
	data, err := d.next.ShareFile(ctx, fileURI)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "cloudreve", "share", status)
	d.metrics.RecordDuration(ctx, "cloudreve", "share", time.Since(start), status)

	return data, err
}
