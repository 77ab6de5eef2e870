package service

import (
	"log/slog"
	"regexp"
	"unicode/utf16"

	apperrors "github.com/ablecats/filestream/internal/errors"
	"github.com/ablecats/filestream/internal/platform"
)

// urlPattern is the last-resort scan for a bare link in plain text.
var urlPattern = regexp.MustCompile(`https?://\S+`)

// Extractor recovers a link from an arbitrary message through an ordered
// fallback chain. Every stage tolerates malformed input: a broken annotation
// falls through to the next stage instead of aborting extraction.
type Extractor struct {
	cache  *Cache
	logger *slog.Logger
}

// NewExtractor creates an Extractor backed by the reply-link cache.
func NewExtractor(cache *Cache, logger *slog.Logger) *Extractor {
	return &Extractor{cache: cache, logger: logger}
}

// Extract resolves the link carried by msg. Precedence, first match wins:
// the cache entry for the message's own id, inline button URLs in row-major
// order, text-link annotations, URL-flagged spans of the raw text, inline-code
// spans taken verbatim, and finally a generic regex scan. Returns ErrParse
// when every stage misses.
func (e *Extractor) Extract(msg *platform.Message) (string, error) {
	stages := []struct {
		name string
		fn   func(*platform.Message) string
	}{
		{"cache", e.fromCache},
		{"buttons", fromButtons},
		{"text_link", fromTextLinks},
		{"url_entity", fromURLEntities},
		{"code_entity", fromCodeEntities},
		{"regex", fromRegex},
	}
	for _, stage := range stages {
		if link := stage.fn(msg); link != "" {
			e.logger.Debug("link extracted",
				slog.String("stage", stage.name),
				slog.Int64("message_id", msg.ID),
			)
			return link, nil
		}
	}
	return "", apperrors.Wrapf(apperrors.ErrParse, "no link recoverable from message %d", msg.ID)
}

// ExtractFromCaptionOrText resolves a link from user-authored text: only URL
// and text-link annotations over body and caption, then the regex fallback.
// Inline buttons and code spans are never consulted since the source is not
// one of the bot's own formatted replies.
func (e *Extractor) ExtractFromCaptionOrText(msg *platform.Message) (string, error) {
	spans := []struct {
		text     string
		entities []platform.Entity
	}{
		{msg.Text, msg.Entities},
		{msg.Caption, msg.CaptionEntities},
	}
	for _, span := range spans {
		for _, entity := range span.entities {
			switch entity.Type {
			case platform.EntityTextLink:
				if entity.URL != "" {
					return entity.URL, nil
				}
			case platform.EntityURL:
				if link := entitySpan(span.text, entity); link != "" {
					return link, nil
				}
			}
		}
	}
	if link := urlPattern.FindString(msg.Text + "\n" + msg.Caption); link != "" {
		return link, nil
	}
	return "", apperrors.Wrapf(apperrors.ErrParse, "no link in text or caption of message %d", msg.ID)
}

func (e *Extractor) fromCache(msg *platform.Message) string {
	if e.cache == nil {
		return ""
	}
	link, _ := e.cache.Get(msg.ID)
	return link
}

func fromButtons(msg *platform.Message) string {
	for _, row := range msg.Buttons {
		for _, button := range row {
			if button.URL != "" {
				return button.URL
			}
		}
	}
	return ""
}

func fromTextLinks(msg *platform.Message) string {
	for _, entity := range allEntities(msg) {
		if entity.Type == platform.EntityTextLink && entity.URL != "" {
			return entity.URL
		}
	}
	return ""
}

func fromURLEntities(msg *platform.Message) string {
	return firstSpan(msg, platform.EntityURL)
}

// fromCodeEntities returns the first inline-code span verbatim. Older reply
// formats carried the link as monospace text, so no URL shape is required.
func fromCodeEntities(msg *platform.Message) string {
	return firstSpan(msg, platform.EntityCode)
}

func fromRegex(msg *platform.Message) string {
	if link := urlPattern.FindString(msg.Text); link != "" {
		return link
	}
	return urlPattern.FindString(msg.Caption)
}

func firstSpan(msg *platform.Message, kind platform.EntityType) string {
	for _, entity := range msg.Entities {
		if entity.Type == kind {
			if span := entitySpan(msg.Text, entity); span != "" {
				return span
			}
		}
	}
	for _, entity := range msg.CaptionEntities {
		if entity.Type == kind {
			if span := entitySpan(msg.Caption, entity); span != "" {
				return span
			}
		}
	}
	return ""
}

func allEntities(msg *platform.Message) []platform.Entity {
	if len(msg.CaptionEntities) == 0 {
		return msg.Entities
	}
	entities := make([]platform.Entity, 0, len(msg.Entities)+len(msg.CaptionEntities))
	entities = append(entities, msg.Entities...)
	entities = append(entities, msg.CaptionEntities...)
	return entities
}

// entitySpan slices the annotated span out of text. Offsets and lengths are
// UTF-16 code units; an out-of-range annotation yields the empty string rather
// than a panic.
func entitySpan(text string, entity platform.Entity) string {
	if entity.Offset < 0 || entity.Length <= 0 {
		return ""
	}
	units := utf16.Encode([]rune(text))
	if entity.Offset+entity.Length > len(units) {
		return ""
	}
	return string(utf16.Decode(units[entity.Offset : entity.Offset+entity.Length]))
}
