package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	t.Run("Success_EscapesDisplayName", func(t *testing.T) {
		pair := Build("https://files.example.com/", "abc123", 456, "movie file.mp4")

		assert.Equal(t, "https://files.example.com/456/movie%20file.mp4?hash=abc123", pair.Stream)
		assert.Equal(t, "https://files.example.com/abc123456", pair.Short)
	})

	t.Run("Success_BaseWithoutTrailingSlash", func(t *testing.T) {
		pair := Build("https://files.example.com", "abc123", 456, "a.mp4")

		assert.Equal(t, "https://files.example.com/456/a.mp4?hash=abc123", pair.Stream)
		assert.Equal(t, "https://files.example.com/abc123456", pair.Short)
	})

	t.Run("Success_Deterministic", func(t *testing.T) {
		first := Build("https://files.example.com/", "deadbeef", 99, "clip.webm")
		second := Build("https://files.example.com/", "deadbeef", 99, "clip.webm")

		assert.Equal(t, first, second)
	})

	t.Run("Success_UnicodeDisplayName", func(t *testing.T) {
		pair := Build("https://files.example.com/", "abc123", 7, "видео.mp4")

		assert.Contains(t, pair.Stream, "/7/%D0%B2%D0%B8%D0%B4%D0%B5%D0%BE.mp4?hash=abc123")
	})
}
