package usecase

import (
	"context"
	"time"

	"github.com/ablecats/filestream/internal/metrics"
	"github.com/ablecats/filestream/internal/platform"
)

// botUseCaseWithMetrics decorates BotUseCase with metrics instrumentation.
type botUseCaseWithMetrics struct {
	next    BotUseCase
	metrics metrics.BusinessMetrics
}

// NewBotUseCaseWithMetrics wraps a BotUseCase with metrics recording.
func NewBotUseCaseWithMetrics(useCase BotUseCase, m metrics.BusinessMetrics) BotUseCase {
	return &botUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// HandleMedia records metrics for file ingestion.
func (b *botUseCaseWithMetrics) HandleMedia(ctx context.Context, msg platform.Message) error {
	return b.record(ctx, "handle_media", func() error {
		return b.next.HandleMedia(ctx, msg)
	})
}

// HandleSaveCallback records metrics for button-triggered hand-offs.
func (b *botUseCaseWithMetrics) HandleSaveCallback(ctx context.Context, query platform.CallbackQuery) error {
	return b.record(ctx, "handle_save_callback", func() error {
		return b.next.HandleSaveCallback(ctx, query)
	})
}

// HandleSaveCommand records metrics for command-triggered hand-offs.
func (b *botUseCaseWithMetrics) HandleSaveCommand(ctx context.Context, msg platform.Message) error {
	return b.record(ctx, "handle_save_command", func() error {
		return b.next.HandleSaveCommand(ctx, msg)
	})
}

func (b *botUseCaseWithMetrics) record(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "success"
	if err != nil {
		status = "error"
	}

	b.metrics.RecordOperation(ctx, "bot", operation, status)
	b.metrics.RecordDuration(ctx, "bot", operation, time.Since(start), status)

	return err
}
