// Package service implements the three-tier relay into the holding channel.
package service

import (
	"context"
	"errors"
	"log/slog"
	"os"

	apperrors "github.com/ablecats/filestream/internal/errors"
	"github.com/ablecats/filestream/internal/metrics"
	"github.com/ablecats/filestream/internal/platform"
	"github.com/ablecats/filestream/internal/relay/domain"
)

// Forwarder places an inbound message into the holding channel. Three
// escalating tiers, each attempted only when the previous failed: a verbatim
// platform-side copy, a typed resend via the remote file reference, and a
// download-and-reupload through transient local storage.
type Forwarder struct {
	messenger        platform.Messenger
	holdingChannelID int64
	downloadDir      string
	metrics          metrics.BusinessMetrics
	logger           *slog.Logger
}

// NewForwarder creates a Forwarder targeting the holding channel. downloadDir
// is the scratch directory for the reupload tier.
func NewForwarder(
	messenger platform.Messenger,
	holdingChannelID int64,
	downloadDir string,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *Forwarder {
	return &Forwarder{
		messenger:        messenger,
		holdingChannelID: holdingChannelID,
		downloadDir:      downloadDir,
		metrics:          businessMetrics,
		logger:           logger,
	}
}

// Relay escalates through the tiers until one lands msg in the holding
// channel. The copy tier is content-agnostic and always tried first. The
// reupload tier is reached only when the typed resend fails with a platform
// RPC error; any failure there is final and surfaces as ErrRelay.
func (f *Forwarder) Relay(ctx context.Context, msg platform.Message) (*domain.Outcome, error) {
	kind := mediaKind(msg)

	copied, err := f.messenger.Copy(ctx, msg, f.holdingChannelID)
	if err == nil {
		return f.outcome(ctx, copied.ID, kind, domain.TierCopy), nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	f.logger.Warn("copy into holding channel failed, escalating to typed resend",
		slog.Int64("message_id", msg.ID),
		slog.String("error", err.Error()),
	)

	sent, err := f.resend(ctx, msg, kind, remoteSource(msg))
	if err == nil {
		return f.outcome(ctx, sent.ID, kind, domain.TierResend), nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	var rpcErr *platform.RPCError
	if !errors.As(err, &rpcErr) || msg.Media == nil {
		return nil, f.exhausted(ctx, "typed resend failed: %v", err)
	}
	f.logger.Warn("typed resend failed, escalating to download and reupload",
		slog.Int64("message_id", msg.ID),
		slog.Int("rpc_code", rpcErr.Code),
	)

	localPath, err := f.messenger.Download(ctx, *msg.Media, f.downloadDir)
	if err != nil {
		return nil, f.exhausted(ctx, "media download for reupload failed: %v", err)
	}
	defer func() {
		if removeErr := os.Remove(localPath); removeErr != nil && !os.IsNotExist(removeErr) {
			f.logger.Warn("transient relay file not removed",
				slog.String("path", localPath),
				slog.String("error", removeErr.Error()),
			)
		}
	}()

	sent, err = f.resend(ctx, msg, kind, platform.MediaSource{
		LocalPath: localPath,
		FileName:  msg.Media.FileName,
	})
	if err != nil {
		return nil, f.exhausted(ctx, "reupload failed: %v", err)
	}
	return f.outcome(ctx, sent.ID, kind, domain.TierReupload), nil
}

// resend dispatches by media kind, preserving caption, caption entities, and
// reply markup where the kind supports them.
func (f *Forwarder) resend(ctx context.Context, msg platform.Message, kind platform.MediaKind, src platform.MediaSource) (platform.Message, error) {
	if kind == platform.MediaNone {
		return f.messenger.SendText(ctx, f.holdingChannelID, msg.Text, platform.SendOptions{
			CaptionEntities: msg.Entities,
			Buttons:         msg.Buttons,
		})
	}

	opts := platform.SendOptions{}
	if kind.SupportsCaption() {
		opts.Caption = msg.Caption
		opts.CaptionEntities = msg.CaptionEntities
	}
	if kind.SupportsReplyMarkup() {
		opts.Buttons = msg.Buttons
	}
	return f.messenger.SendMedia(ctx, f.holdingChannelID, kind, src, opts)
}

func (f *Forwarder) outcome(ctx context.Context, messageID int64, kind platform.MediaKind, tier domain.Tier) *domain.Outcome {
	f.metrics.RecordOperation(ctx, "relay", string(tier), "success")
	f.logger.Info("message relayed",
		slog.Int64("holding_message_id", messageID),
		slog.String("kind", string(kind)),
		slog.String("tier", string(tier)),
	)
	return &domain.Outcome{MessageID: messageID, Kind: kind, Tier: tier}
}

func (f *Forwarder) exhausted(ctx context.Context, format string, err error) error {
	f.metrics.RecordOperation(ctx, "relay", "exhausted", "error")
	return apperrors.Wrapf(apperrors.ErrRelay, format, err)
}

func mediaKind(msg platform.Message) platform.MediaKind {
	if msg.Media == nil {
		return platform.MediaNone
	}
	return msg.Media.Kind
}

func remoteSource(msg platform.Message) platform.MediaSource {
	if msg.Media == nil {
		return platform.MediaSource{}
	}
	return platform.MediaSource{
		FileID:   msg.Media.FileID,
		FileName: msg.Media.FileName,
	}
}
