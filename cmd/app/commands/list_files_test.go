package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	cloudreveMocks "github.com/ablecats/filestream/internal/cloudreve/usecase/mocks"
)

func TestRunListFiles(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("listing", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		mockUseCase.On("ListFiles", ctx, 50, "cloudreve://my/", 0).
			Return(json.RawMessage(`{"files":[{"name":"movie.mkv"}]}`), nil)

		var out bytes.Buffer
		err := RunListFiles(ctx, mockUseCase, logger, &out, 50, "cloudreve://my/", 0)

		require.NoError(t, err)
		require.Contains(t, out.String(), `"movie.mkv"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-page-size", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		err := RunListFiles(ctx, mockUseCase, logger, &bytes.Buffer{}, -1, "cloudreve://my/", 0)

		require.Error(t, err)
		require.Contains(t, err.Error(), "page-size must be a positive number")
	})

	t.Run("invalid-page", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		err := RunListFiles(ctx, mockUseCase, logger, &bytes.Buffer{}, 50, "cloudreve://my/", -2)

		require.Error(t, err)
		require.Contains(t, err.Error(), "page must not be negative")
	})

	t.Run("empty-uri", func(t *testing.T) {
		mockUseCase := &cloudreveMocks.MockDownloadUseCase{}
		err := RunListFiles(ctx, mockUseCase, logger, &bytes.Buffer{}, 50, "", 0)

		require.Error(t, err)
		require.Contains(t, err.Error(), "uri must not be empty")
	})
}
