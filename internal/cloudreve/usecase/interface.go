// Package usecase defines business logic interfaces for the remote-download
// hand-off against the storage service.
package usecase

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/ablecats/filestream/internal/cloudreve/domain"
)

// ServiceClient defines the network operations the use case performs. The
// concrete implementation is the HTTP client in the service layer.
type ServiceClient interface {
	// PostJSON sends a JSON body and decodes the response envelope.
	PostJSON(ctx context.Context, rawURL string, body any, headers map[string]string) (*domain.Envelope, error)

	// GetJSON sends a GET request with query parameters and decodes the
	// response envelope.
	GetJSON(ctx context.Context, rawURL string, params url.Values, headers map[string]string) (*domain.Envelope, error)
}

// CredentialProvider supplies valid access tokens and supports forced
// invalidation when the service rejects one.
type CredentialProvider interface {
	// AccessToken returns an access token valid at call time, renewing the
	// credential when needed.
	AccessToken(ctx context.Context) (string, error)

	// Invalidate clears the cached credential, forcing a fresh login on the
	// next AccessToken call.
	Invalidate()
}

// DownloadUseCase defines the remote-download operations exposed to the bot
// orchestration and the CLI debug surface.
type DownloadUseCase interface {
	// Submit queues a URL as a remote-download task. On a rejected submission
	// it invalidates the credential and retries exactly once; a second
	// rejection surfaces as ErrRemoteSubmit.
	Submit(ctx context.Context, srcURL string) (*domain.SubmissionResult, error)

	// SearchTask scans a previously fetched task list for a task whose source
	// URL equals srcURL. Pure local scan, no network.
	SearchTask(taskList json.RawMessage, srcURL string) *domain.TaskStatus

	// ListTasks fetches the remote-download task list for a category.
	ListTasks(ctx context.Context, pageSize int, category string) (json.RawMessage, error)

	// ListFiles lists files stored on the service under a URI.
	ListFiles(ctx context.Context, pageSize int, uri string, page int) (json.RawMessage, error)

	// ShareFile creates a share for a stored file.
	ShareFile(ctx context.Context, uri string) (json.RawMessage, error)
}
