// Package platform defines the narrow boundary to the messaging platform.
// The protocol client itself (delivery, entity rendering, chat membership) is an
// external collaborator; only the capabilities the core consumes are modeled.
package platform

// MediaKind identifies the media type carried by a message.
type MediaKind string

// Media kinds dispatched by the relay and the ingestion flow.
const (
	MediaDocument  MediaKind = "document"
	MediaVideo     MediaKind = "video"
	MediaAudio     MediaKind = "audio"
	MediaAnimation MediaKind = "animation"
	MediaVoice     MediaKind = "voice"
	MediaVideoNote MediaKind = "video_note"
	MediaPhoto     MediaKind = "photo"
	MediaSticker   MediaKind = "sticker"
	MediaNone      MediaKind = ""
)

// SupportsCaption reports whether the platform lets this media kind carry a
// caption and caption entities. Video notes and stickers do not.
func (k MediaKind) SupportsCaption() bool {
	switch k {
	case MediaVideoNote, MediaSticker, MediaNone:
		return false
	default:
		return true
	}
}

// SupportsReplyMarkup reports whether this media kind may carry an inline
// keyboard when resent.
func (k MediaKind) SupportsReplyMarkup() bool {
	switch k {
	case MediaVideoNote, MediaSticker:
		return false
	default:
		return true
	}
}

// EntityType identifies a rich-text annotation kind.
type EntityType string

// Entity types the extraction chain cares about.
const (
	EntityTextLink EntityType = "text_link"
	EntityURL      EntityType = "url"
	EntityCode     EntityType = "code"
)

// Entity is a rich-text annotation over a span of message text. Offset and
// Length are measured in UTF-16 code units, as the platform defines them.
type Entity struct {
	Type   EntityType
	Offset int
	Length int
	// URL is set for text_link entities only.
	URL string
}

// Button is a single inline keyboard button.
type Button struct {
	Label        string
	URL          string
	CallbackData string
}

// MediaRef is the platform's remote reference to an already-uploaded file.
type MediaRef struct {
	Kind     MediaKind
	FileID   string
	FileName string
	FileSize int64
	MIMEType string
}

// User identifies the sender of a message or callback.
type User struct {
	ID       int64
	Username string
}

// Message is a capability-tagged view of a platform message: the core only
// sees its text, caption, annotations, buttons, and media reference.
type Message struct {
	ID              int64
	ChatID          int64
	From            User
	Text            string
	Caption         string
	Entities        []Entity
	CaptionEntities []Entity
	// Buttons holds the inline keyboard rows attached to the message.
	Buttons [][]Button
	Media   *MediaRef
	// ReplyToMessage is the quoted message, when this message is a reply.
	ReplyToMessage *Message
}

// CallbackQuery is an inline-button interaction against one of the bot's own
// messages.
type CallbackQuery struct {
	ID      string
	From    User
	Data    string
	Message Message
}
