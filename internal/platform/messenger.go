package platform

import (
	"context"
	"fmt"
)

// MediaSource is the payload of a media send: either the platform's remote
// file reference or a path to a local file to upload. Exactly one is set.
type MediaSource struct {
	FileID    string
	LocalPath string
	FileName  string
}

// SendOptions carries the optional parts of an outgoing message.
type SendOptions struct {
	Caption         string
	CaptionEntities []Entity
	Buttons         [][]Button
	// ReplyTo quotes another message in the same chat when non-zero.
	ReplyTo int64
	// Monospace renders the text body as inline code.
	Monospace bool
}

// Messenger is the platform capability surface consumed by the core. The
// concrete client is provided by the embedding program.
type Messenger interface {
	// Copy duplicates a message verbatim into another chat, stripping forward
	// provenance. It must not re-upload media.
	Copy(ctx context.Context, msg Message, toChatID int64) (Message, error)

	// SendText delivers a plain or formatted text message.
	SendText(ctx context.Context, chatID int64, text string, opts SendOptions) (Message, error)

	// SendMedia delivers media of the given kind from a remote reference or a
	// local file.
	SendMedia(ctx context.Context, chatID int64, kind MediaKind, src MediaSource, opts SendOptions) (Message, error)

	// Download fetches the file behind a remote reference into dir and returns
	// the local path.
	Download(ctx context.Context, ref MediaRef, dir string) (string, error)

	// AnswerCallback acknowledges a callback interaction with a toast, or an
	// alert when alert is true.
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}

// RPCError is a protocol-level failure reported by the platform, as opposed to
// transport or context errors. Tier escalation in the relay keys off it.
type RPCError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("platform rpc error %d: %s", e.Code, e.Message)
}
