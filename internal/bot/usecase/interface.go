// Package usecase orchestrates inbound platform events: file ingestion,
// link replies, and remote-storage hand-off.
package usecase

import (
	"context"

	cloudrevedomain "github.com/ablecats/filestream/internal/cloudreve/domain"
	"github.com/ablecats/filestream/internal/platform"
	relaydomain "github.com/ablecats/filestream/internal/relay/domain"
)

// Relayer places a message into the holding channel.
type Relayer interface {
	Relay(ctx context.Context, msg platform.Message) (*relaydomain.Outcome, error)
}

// LinkResolver recovers a link from a message.
type LinkResolver interface {
	Extract(msg *platform.Message) (string, error)
	ExtractFromCaptionOrText(msg *platform.Message) (string, error)
}

// LinkCache maps the bot's reply-message ids to stream links.
type LinkCache interface {
	Put(replyMessageID int64, streamLink string)
	Get(replyMessageID int64) (string, bool)
	Evict(replyMessageID int64)
}

// Submitter queues a URL as a remote-download task.
type Submitter interface {
	Submit(ctx context.Context, srcURL string) (*cloudrevedomain.SubmissionResult, error)
}

// FileProperties derives the link inputs for a stored message.
type FileProperties interface {
	Describe(msg platform.Message) (hash string, displayName string)
}

// BotUseCase defines the inbound event handlers.
type BotUseCase interface {
	// HandleMedia ingests a file-bearing message: relay into the holding
	// channel, materialize links, reply, cache the reply.
	HandleMedia(ctx context.Context, msg platform.Message) error

	// HandleSaveCallback hands the link behind one of the bot's replies off to
	// remote storage.
	HandleSaveCallback(ctx context.Context, query platform.CallbackQuery) error

	// HandleSaveCommand hands off a link given explicitly, in the command
	// message itself or in the message it replies to.
	HandleSaveCommand(ctx context.Context, msg platform.Message) error
}
