// Package domain holds the relay model: which escalation tier placed a message
// into the holding channel.
package domain

import "github.com/ablecats/filestream/internal/platform"

// Tier identifies the escalation stage that produced the holding-channel
// message.
type Tier string

// Escalation tiers in attempt order.
const (
	TierCopy     Tier = "copy"
	TierResend   Tier = "resend"
	TierReupload Tier = "reupload"
)

// Outcome is the holding-channel message produced by a relay. Downstream code
// consumes only the message id and the media kind.
type Outcome struct {
	MessageID int64
	Kind      platform.MediaKind
	Tier      Tier
}
