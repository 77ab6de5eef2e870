package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	cloudreveUseCase "github.com/ablecats/filestream/internal/cloudreve/usecase"
)

// RunRemoteTasks lists remote-download tasks for a category and optionally
// searches them for the task created from a specific source URL. Outputs the
// raw task list, or the condensed match, in JSON.
func RunRemoteTasks(
	ctx context.Context,
	useCase cloudreveUseCase.DownloadUseCase,
	logger *slog.Logger,
	out io.Writer,
	pageSize int,
	category string,
	searchURL string,
	format string,
) error {
	if pageSize <= 0 {
		return fmt.Errorf("page-size must be a positive number, got: %d", pageSize)
	}
	switch category {
	case "general", "downloading", "downloaded":
	default:
		return fmt.Errorf(
			"invalid category: %s (valid options: general, downloading, downloaded)",
			category,
		)
	}
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format: %s (valid options: json, text)", format)
	}

	logger.Info("listing remote-download tasks",
		slog.String("category", category),
		slog.Int("page_size", pageSize),
	)

	taskList, err := useCase.ListTasks(ctx, pageSize, category)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if searchURL != "" {
		status := useCase.SearchTask(taskList, searchURL)
		if status == nil {
			return fmt.Errorf("no task found for source url: %s", searchURL)
		}
		if format == "text" {
			_, err = fmt.Fprintf(out, "name=%s status=%s progress=%.2f\n",
				status.Name, status.Status, status.Progress)
			return err
		}
		return writeJSON(out, status)
	}

	if format == "text" {
		_, err = fmt.Fprintln(out, string(taskList))
		return err
	}
	return writeJSON(out, json.RawMessage(taskList))
}
