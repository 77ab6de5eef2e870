package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ablecats/filestream/internal/config"
	apperrors "github.com/ablecats/filestream/internal/errors"
	linkdomain "github.com/ablecats/filestream/internal/link/domain"
	"github.com/ablecats/filestream/internal/platform"
)

// saveCallbackData tags the inline button that triggers the remote hand-off.
const saveCallbackData = "save"

type botUseCase struct {
	cfg       *config.Config
	messenger platform.Messenger
	relayer   Relayer
	links     LinkResolver
	cache     LinkCache
	submitter Submitter
	props     FileProperties
	logger    *slog.Logger
}

// NewBotUseCase wires the event handlers.
func NewBotUseCase(
	cfg *config.Config,
	messenger platform.Messenger,
	relayer Relayer,
	links LinkResolver,
	cache LinkCache,
	submitter Submitter,
	props FileProperties,
	logger *slog.Logger,
) BotUseCase {
	return &botUseCase{
		cfg:       cfg,
		messenger: messenger,
		relayer:   relayer,
		links:     links,
		cache:     cache,
		submitter: submitter,
		props:     props,
		logger:    logger,
	}
}

// HandleMedia relays msg into the holding channel, builds the link pair, and
// replies with the stream link plus inline buttons. When the platform rejects
// the button URLs the reply is retried as plain monospace text. The reply id
// is cached so a later save callback can skip extraction.
func (u *botUseCase) HandleMedia(ctx context.Context, msg platform.Message) error {
	logger := u.eventLogger(msg.ID, msg.From.ID)

	if !u.allowed(msg.From) {
		logger.Warn("media from user outside the allow list")
		_, err := u.messenger.SendText(ctx, msg.ChatID,
			"You are not allowed to use this bot.",
			platform.SendOptions{ReplyTo: msg.ID},
		)
		return err
	}

	outcome, err := u.relayer.Relay(ctx, msg)
	if err != nil {
		logger.Error("relay into holding channel failed", slog.String("error", err.Error()))
		if _, sendErr := u.messenger.SendText(ctx, msg.ChatID,
			"Storing your file failed, please try again later.",
			platform.SendOptions{ReplyTo: msg.ID},
		); sendErr != nil {
			logger.Error("failure notice not delivered", slog.String("error", sendErr.Error()))
		}
		return err
	}

	hash, displayName := u.props.Describe(msg)
	pair := linkdomain.Build(u.cfg.LinkBaseURL, hash, outcome.MessageID, displayName)

	reply, err := u.messenger.SendText(ctx, msg.ChatID, pair.Stream, platform.SendOptions{
		ReplyTo:   msg.ID,
		Monospace: true,
		Buttons: [][]platform.Button{
			{
				{Label: "Open", URL: pair.Stream},
				{Label: "Short link", URL: pair.Short},
			},
			{
				{Label: "Save to storage", CallbackData: saveCallbackData},
			},
		},
	})
	if err != nil {
		var rpcErr *platform.RPCError
		if !errors.As(err, &rpcErr) {
			return err
		}
		logger.Warn("button reply rejected, retrying as plain text", slog.Int("rpc_code", rpcErr.Code))
		reply, err = u.messenger.SendText(ctx, msg.ChatID, pair.Stream, platform.SendOptions{
			ReplyTo:   msg.ID,
			Monospace: true,
		})
		if err != nil {
			return err
		}
	}

	u.cache.Put(reply.ID, pair.Stream)
	logger.Info("file ingested",
		slog.Int64("holding_message_id", outcome.MessageID),
		slog.String("tier", string(outcome.Tier)),
	)
	return nil
}

// HandleSaveCallback resolves the link behind the pressed reply, preferring
// the cache and falling back to the full extraction chain, then submits it as
// a remote-download task. The cache entry is consumed only on success.
func (u *botUseCase) HandleSaveCallback(ctx context.Context, query platform.CallbackQuery) error {
	logger := u.eventLogger(query.Message.ID, query.From.ID)

	if !u.allowed(query.From) {
		logger.Warn("callback from user outside the allow list")
		return u.messenger.AnswerCallback(ctx, query.ID, "You are not allowed to use this bot.", true)
	}

	link, ok := u.cache.Get(query.Message.ID)
	if !ok {
		var err error
		link, err = u.links.Extract(&query.Message)
		if err != nil {
			logger.Warn("no link recoverable from pressed message", slog.String("error", err.Error()))
			return u.messenger.AnswerCallback(ctx, query.ID, "No link found in this message.", true)
		}
	}

	result, err := u.submitter.Submit(ctx, link)
	if err != nil {
		logger.Error("remote hand-off failed", slog.String("error", err.Error()))
		return u.messenger.AnswerCallback(ctx, query.ID, "Save failed: "+err.Error(), true)
	}

	u.cache.Evict(query.Message.ID)
	logger.Info("remote hand-off accepted", slog.Int("attempts", result.Attempts))
	return u.messenger.AnswerCallback(ctx, query.ID, "Saved to remote storage.", false)
}

// HandleSaveCommand resolves a user-supplied link, from the replied-to message
// when the command is a reply and from the command message otherwise, using
// only the user-authored-text extraction stages.
func (u *botUseCase) HandleSaveCommand(ctx context.Context, msg platform.Message) error {
	logger := u.eventLogger(msg.ID, msg.From.ID)

	if !u.allowed(msg.From) {
		logger.Warn("command from user outside the allow list")
		_, err := u.messenger.SendText(ctx, msg.ChatID,
			"You are not allowed to use this bot.",
			platform.SendOptions{ReplyTo: msg.ID},
		)
		return err
	}

	target := &msg
	if msg.ReplyToMessage != nil {
		target = msg.ReplyToMessage
	}

	link, err := u.links.ExtractFromCaptionOrText(target)
	if err != nil {
		logger.Warn("no link in command or replied-to message", slog.String("error", err.Error()))
		_, sendErr := u.messenger.SendText(ctx, msg.ChatID,
			"No link found to save. Send the command with a link or as a reply to one.",
			platform.SendOptions{ReplyTo: msg.ID},
		)
		return sendErr
	}

	result, err := u.submitter.Submit(ctx, link)
	if err != nil {
		logger.Error("remote hand-off failed", slog.String("error", err.Error()))
		_, sendErr := u.messenger.SendText(ctx, msg.ChatID,
			"Save failed: "+err.Error(),
			platform.SendOptions{ReplyTo: msg.ID},
		)
		if sendErr != nil {
			return sendErr
		}
		if terminal(err) {
			return nil
		}
		return err
	}

	logger.Info("remote hand-off accepted", slog.Int("attempts", result.Attempts))
	_, err = u.messenger.SendText(ctx, msg.ChatID,
		"Saved to remote storage.",
		platform.SendOptions{ReplyTo: msg.ID},
	)
	return err
}

// allowed reports whether a user may drive the bot. Allow-list entries are
// numeric ids or usernames; an empty list admits everyone.
func (u *botUseCase) allowed(user platform.User) bool {
	if len(u.cfg.AllowedUsers) == 0 {
		return true
	}
	id := strconv.FormatInt(user.ID, 10)
	for _, entry := range u.cfg.AllowedUsers {
		if entry == id {
			return true
		}
		if user.Username != "" && strings.EqualFold(entry, user.Username) {
			return true
		}
	}
	return false
}

// terminal reports whether the error is final for the triggering user action
// and must not bubble into any retry path.
func terminal(err error) bool {
	return apperrors.Is(err, apperrors.ErrConfig) ||
		apperrors.Is(err, apperrors.ErrParse) ||
		apperrors.Is(err, apperrors.ErrRemoteSubmit) ||
		apperrors.Is(err, apperrors.ErrRelay)
}

func (u *botUseCase) eventLogger(messageID, userID int64) *slog.Logger {
	return u.logger.With(
		slog.String("correlation_id", uuid.NewString()),
		slog.Int64("message_id", messageID),
		slog.Int64("user_id", userID),
	)
}
