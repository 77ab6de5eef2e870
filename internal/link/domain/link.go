// Package domain holds the link model: the two URL forms materialized for a
// file parked in the holding channel.
package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Pair is the two links handed out for a stored file. Stream is the long-form
// direct URL embedding message id, escaped display name, and content hash as a
// query parameter. Short concatenates hash and message id with no separator;
// the hash is assumed fixed width so the id is recoverable. Immutable once
// built and never persisted.
type Pair struct {
	Stream string
	Short  string
}

// Build materializes the link pair from the content hash, the holding-channel
// message id, and the file's display name. Deterministic: identical inputs
// always yield an identical pair. The display name is percent-encoded for the
// path segment; the hash is embedded untransformed.
func Build(base, fileHash string, messageID int64, displayName string) Pair {
	base = strings.TrimRight(base, "/") + "/"
	id := strconv.FormatInt(messageID, 10)
	return Pair{
		Stream: base + id + "/" + url.PathEscape(displayName) + "?hash=" + url.QueryEscape(fileHash),
		Short:  base + fileHash + id,
	}
}
