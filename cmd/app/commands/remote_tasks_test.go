package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ablecats/filestream/internal/cloudreve/domain"
	cloudreveMocks "github.com/ablecats/filestream/internal/cloudreve/usecase/mocks"
)

func TestRunRemoteTasks(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	taskList := json.RawMessage(`{"tasks":[{"type":"remote_download","status":"processing"}]}`)

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		mockUseCase.On("ListTasks", ctx, 20, "general").Return(taskList, nil)

		var out bytes.Buffer
		err := RunRemoteTasks(ctx, mockUseCase, logger, &out, 20, "general", "", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"remote_download"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		mockUseCase.On("ListTasks", ctx, 10, "downloading").Return(taskList, nil)

		var out bytes.Buffer
		err := RunRemoteTasks(ctx, mockUseCase, logger, &out, 10, "downloading", "", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"status":"processing"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("search-match", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		mockUseCase.On("ListTasks", ctx, 20, "general").Return(taskList, nil)
		mockUseCase.On("SearchTask", taskList, "https://cdn.example.com/movie.mkv").Return(&domain.TaskStatus{
			Name:     "movie.mkv",
			Status:   "processing",
			Progress: 0.42,
		})

		var out bytes.Buffer
		err := RunRemoteTasks(ctx, mockUseCase, logger, &out, 20, "general", "https://cdn.example.com/movie.mkv", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "name=movie.mkv status=processing progress=0.42")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("search-miss", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		mockUseCase.On("ListTasks", ctx, 20, "general").Return(taskList, nil)
		mockUseCase.On("SearchTask", taskList, "https://cdn.example.com/missing.mkv").Return(nil)

		err := RunRemoteTasks(ctx, mockUseCase, logger, &bytes.Buffer{}, 20, "general", "https://cdn.example.com/missing.mkv", "json")

		require.Error(t, err)
		require.Contains(t, err.Error(), "no task found for source url")
	})

	t.Run("invalid-page-size", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		err := RunRemoteTasks(ctx, mockUseCase, logger, &bytes.Buffer{}, 0, "general", "", "json")

		require.Error(t, err)
		require.Contains(t, err.Error(), "page-size must be a positive number")
	})

	t.Run("invalid-category", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		err := RunRemoteTasks(ctx, mockUseCase, logger, &bytes.Buffer{}, 20, "uploads", "", "json")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid category")
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		err := RunRemoteTasks(ctx, mockUseCase, logger, &bytes.Buffer{}, 20, "general", "", "yaml")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
	})
}
