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

// RunListFiles lists files stored under a service URI and prints the raw
// listing in JSON.
func RunListFiles(
	ctx context.Context,
	useCase cloudreveUseCase.DownloadUseCase,
	logger *slog.Logger,
	out io.Writer,
	pageSize int,
	fileURI string,
	page int,
) error {
	if pageSize <= 0 {
		return fmt.Errorf("page-size must be a positive number, got: %d", pageSize)
	}
	if page < 0 {
		return fmt.Errorf("page must not be negative, got: %d", page)
	}
	if strings.TrimSpace(fileURI) == "" {
		return fmt.Errorf("uri must not be empty")
	}

	logger.Info("listing files", slog.String("uri", fileURI), slog.Int("page", page))

	listing, err := useCase.ListFiles(ctx, pageSize, fileURI, page)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	return writeJSON(out, json.RawMessage(listing))
}
