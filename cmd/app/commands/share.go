package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	cloudreveUseCase "github.com/ablecats/filestream/internal/cloudreve/usecase"
)

// RunShare creates a share for the file behind a service URI and prints the
// share details in JSON.
func RunShare(
	ctx context.Context,
	useCase cloudreveUseCase.DownloadUseCase,
	logger *slog.Logger,
	out io.Writer,
	fileURI string,
) error {
	if strings.TrimSpace(fileURI) == "" {
		return fmt.Errorf("uri must not be empty")
	}

	logger.Info("creating share", slog.String("uri", fileURI))

	share, err := useCase.ShareFile(ctx, fileURI)
	if err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}

	return writeJSON(out, json.RawMessage(share))
}
