// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ablecats/filestream/cmd/app/commands"
	"github.com/ablecats/filestream/internal/app"
	cloudreveUseCase "github.com/ablecats/filestream/internal/cloudreve/usecase"
	"github.com/ablecats/filestream/internal/config"
)

const version = "1.0.0"

// withDownloadUseCase builds the container and hands the remote-download use
// case to fn, shutting the container down afterwards.
func withDownloadUseCase(
	ctx context.Context,
	fn func(useCase cloudreveUseCase.DownloadUseCase, logger *slog.Logger) error,
) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer func() {
		if err := container.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown container", slog.Any("error", err))
		}
	}()

	useCase, err := container.DownloadUseCase(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize download use case: %w", err)
	}
	return fn(useCase, logger)
}

func main() {
	cmd := &cli.Command{
		Name:    "filestream",
		Usage:   "File relay bot core with remote storage hand-off",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the operational HTTP server (metrics and health probes)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServe(ctx, version)
				},
			},
			{
				Name:  "remote-tasks",
				Usage: "List remote-download tasks, optionally searching by source URL",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Value:   "general",
						Usage:   "Task category: general, downloading, or downloaded",
					},
					&cli.IntFlag{
						Name:    "page-size",
						Aliases: []string{"s"},
						Value:   20,
						Usage:   "Number of tasks to fetch",
					},
					&cli.StringFlag{
						Name:    "search-url",
						Aliases: []string{"u"},
						Value:   "",
						Usage:   "Show only the task created from this source URL",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "json",
						Usage:   "Output format: 'json' or 'text'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDownloadUseCase(ctx, func(useCase cloudreveUseCase.DownloadUseCase, logger *slog.Logger) error {
						return commands.RunRemoteTasks(
							ctx,
							useCase,
							logger,
							os.Stdout,
							int(cmd.Int("page-size")),
							cmd.String("category"),
							cmd.String("search-url"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:  "submit",
				Usage: "Queue a URL as a remote-download task",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Source URL to download on the remote service",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDownloadUseCase(ctx, func(useCase cloudreveUseCase.DownloadUseCase, logger *slog.Logger) error {
						return commands.RunSubmit(ctx, useCase, logger, os.Stdout, cmd.String("url"))
					})
				},
			},
			{
				Name:  "list-files",
				Usage: "List files stored under a service URI",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "uri",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Service URI (e.g., cloudreve://my/)",
					},
					&cli.IntFlag{
						Name:    "page-size",
						Aliases: []string{"s"},
						Value:   50,
						Usage:   "Number of files to fetch per page",
					},
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Value:   0,
						Usage:   "Page number to fetch",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDownloadUseCase(ctx, func(useCase cloudreveUseCase.DownloadUseCase, logger *slog.Logger) error {
						return commands.RunListFiles(
							ctx,
							useCase,
							logger,
							os.Stdout,
							int(cmd.Int("page-size")),
							cmd.String("uri"),
							int(cmd.Int("page")),
						)
					})
				},
			},
			{
				Name:  "share",
				Usage: "Create a share for the file behind a service URI",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "uri",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Service URI of the file to share",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withDownloadUseCase(ctx, func(useCase cloudreveUseCase.DownloadUseCase, logger *slog.Logger) error {
						return commands.RunShare(ctx, useCase, logger, os.Stdout, cmd.String("uri"))
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
