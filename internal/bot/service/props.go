// Package service derives link inputs from platform messages.
package service

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"mime"

	"github.com/ablecats/filestream/internal/platform"
)

// hashLength is the fixed width of the content hash embedded in links. The
// short-link form concatenates hash and message id with no separator, so the
// width must never change once links are in the wild.
const hashLength = 6

// FileProps derives the content hash and display name used to materialize
// links for a stored message.
type FileProps struct{}

// NewFileProps creates the default file-properties collaborator.
func NewFileProps() *FileProps {
	return &FileProps{}
}

// Describe returns the fixed-width content hash and the display name for the
// media carried by msg. The hash digests the platform file id; the display
// name falls back to a synthesized kind-based name when the platform supplied
// none.
func (p *FileProps) Describe(msg platform.Message) (string, string) {
	if msg.Media == nil {
		return "", ""
	}
	sum := md5.Sum([]byte(msg.Media.FileID))
	hash := hex.EncodeToString(sum[:])[:hashLength]

	name := msg.Media.FileName
	if name == "" {
		name = fmt.Sprintf("%s_%d%s", msg.Media.Kind, msg.ID, extensionFor(msg.Media.MIMEType))
	}
	return hash, name
}

func extensionFor(mimeType string) string {
	if mimeType == "" {
		return ""
	}
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
