package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	cloudreveUseCase "github.com/ablecats/filestream/internal/cloudreve/usecase"
)

// RunSubmit queues a URL as a remote-download task and prints the submission
// result.
func RunSubmit(
	ctx context.Context,
	useCase cloudreveUseCase.DownloadUseCase,
	logger *slog.Logger,
	out io.Writer,
	srcURL string,
) error {
	if strings.TrimSpace(srcURL) == "" {
		return fmt.Errorf("url must not be empty")
	}

	logger.Info("submitting remote download", slog.String("url", srcURL))

	result, err := useCase.Submit(ctx, srcURL)
	if err != nil {
		return fmt.Errorf("failed to submit download: %w", err)
	}

	return writeJSON(out, map[string]any{
		"attempts": result.Attempts,
		"msg":      result.Msg,
	})
}
