package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/ablecats/filestream/internal/cloudreve/domain"
	"github.com/ablecats/filestream/internal/config"
	apperrors "github.com/ablecats/filestream/internal/errors"
)

// maxSubmitAttempts bounds the submission loop: the initial attempt plus one
// retry with a fresh credential. Never recursion.
const maxSubmitAttempts = 2

// downloadUseCase implements DownloadUseCase against the storage service.
type downloadUseCase struct {
	cfg     *config.Config
	client  ServiceClient
	creds   CredentialProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewDownloadUseCase creates the remote-download use case. The limiter bounds
// the global submission rate; list and share operations are not limited.
func NewDownloadUseCase(
	cfg *config.Config,
	client ServiceClient,
	creds CredentialProvider,
	limiter *rate.Limiter,
	logger *slog.Logger,
) DownloadUseCase {
	return &downloadUseCase{
		cfg:     cfg,
		client:  client,
		creds:   creds,
		limiter: limiter,
		logger:  logger,
	}
}

// Submit queues srcURL as a remote-download task.
//
// The first rejected submission is assumed to be a stale credential: the
// cached token is invalidated and the request sent once more with a fresh
// one. A second rejection is final and surfaces as ErrRemoteSubmit carrying
// the service message.
func (u *downloadUseCase) Submit(ctx context.Context, srcURL string) (*domain.SubmissionResult, error) {
	if !u.cfg.CloudreveEnabled {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "remote download hand-off is disabled")
	}
	if u.cfg.CloudreveDownloadPath == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "CLOUDREVE_DOWNLOAD_PATH is empty")
	}
	srcURL = strings.TrimSpace(srcURL)
	if srcURL == "" {
		return nil, apperrors.Wrap(apperrors.ErrParse, "submission url is empty")
	}

	if err := u.limiter.Wait(ctx); err != nil {
		return nil, apperrors.Wrap(err, "submission rate limit wait aborted")
	}

	body := map[string]any{
		"dst": u.cfg.CloudreveDownloadPath,
		// The endpoint takes a list but honors a single source per task.
		"src": []string{srcURL},
	}

	var lastCode int
	var lastMsg string
	for attempt := 1; attempt <= maxSubmitAttempts; attempt++ {
		token, err := u.creds.AccessToken(ctx)
		if err != nil {
			return nil, err
		}

		envelope, err := u.client.PostJSON(ctx, u.endpoint("/api/v4/workflow/download"), body, bearer(token))
		if err != nil {
			return nil, err
		}
		if envelope.Ok(u.cfg.CloudreveSuccessCode) {
			u.logger.Info("remote download submitted",
				slog.String("src", srcURL),
				slog.Int("attempt", attempt),
			)
			return &domain.SubmissionResult{Attempts: attempt, Msg: envelope.Msg}, nil
		}

		lastCode, lastMsg = envelope.Code, envelope.Msg
		if attempt < maxSubmitAttempts {
			u.logger.Warn("remote download rejected, retrying with fresh credential",
				slog.Int("code", lastCode),
				slog.String("msg", lastMsg),
			)
			u.creds.Invalidate()
		}
	}

	return nil, apperrors.Wrapf(
		apperrors.ErrRemoteSubmit,
		"submission rejected after retry: code=%d msg=%s", lastCode, lastMsg,
	)
}

// SearchTask scans a previously fetched task list for the task whose recorded
// source URL equals srcURL and condenses the first match.
func (u *downloadUseCase) SearchTask(taskList json.RawMessage, srcURL string) *domain.TaskStatus {
	for _, task := range domain.ExtractTasks(taskList) {
		if task.Summary.Props.SrcStr != srcURL {
			continue
		}
		return &domain.TaskStatus{
			Name:     task.Summary.Props.Download.Name,
			Status:   task.Status,
			Progress: task.Summary.Props.Download.Files.Progress,
		}
	}
	return nil
}

// ListTasks fetches the remote-download task list for a category
// ("general", "downloading", "downloaded").
func (u *downloadUseCase) ListTasks(ctx context.Context, pageSize int, category string) (json.RawMessage, error) {
	if !u.cfg.CloudreveEnabled {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "remote download hand-off is disabled")
	}

	token, err := u.creds.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("category", category)

	envelope, err := u.client.GetJSON(ctx, u.endpoint("/api/v4/workflow"), params, bearer(token))
	if err != nil {
		return nil, err
	}
	if !envelope.Ok(u.cfg.CloudreveSuccessCode) {
		return nil, apperrors.Newf("workflow list rejected: code=%d msg=%s", envelope.Code, envelope.Msg)
	}
	return envelope.Data, nil
}

// ListFiles lists files stored under a service URI (e.g., "cloudreve://my/").
func (u *downloadUseCase) ListFiles(ctx context.Context, pageSize int, fileURI string, page int) (json.RawMessage, error) {
	if !u.cfg.CloudreveEnabled {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "remote download hand-off is disabled")
	}

	token, err := u.creds.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("uri", fileURI)
	params.Set("page", strconv.Itoa(page))

	envelope, err := u.client.GetJSON(ctx, u.endpoint("/api/v4/file"), params, bearer(token))
	if err != nil {
		return nil, err
	}
	if !envelope.Ok(u.cfg.CloudreveSuccessCode) {
		return nil, apperrors.Newf("file list rejected: code=%d msg=%s", envelope.Code, envelope.Msg)
	}
	return envelope.Data, nil
}

// ShareFile creates a share for the file behind a service URI.
func (u *downloadUseCase) ShareFile(ctx context.Context, fileURI string) (json.RawMessage, error) {
	if !u.cfg.CloudreveEnabled {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "remote download hand-off is disabled")
	}
	if strings.TrimSpace(fileURI) == "" {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "share uri is empty")
	}

	token, err := u.creds.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	envelope, err := u.client.PostJSON(ctx, u.endpoint("/api/v4/share"), map[string]string{"uri": fileURI}, bearer(token))
	if err != nil {
		return nil, err
	}
	if !envelope.Ok(u.cfg.CloudreveSuccessCode) {
		return nil, apperrors.Newf("share rejected: code=%d msg=%s", envelope.Code, envelope.Msg)
	}
	return envelope.Data, nil
}

// endpoint joins the API base with a path, tolerating a trailing slash on the
// configured base.
func (u *downloadUseCase) endpoint(path string) string {
	return strings.TrimRight(u.cfg.CloudreveAPIURL, "/") + path
}

// bearer builds the Authorization header authenticated endpoints expect.
func bearer(accessToken string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + accessToken}
}
