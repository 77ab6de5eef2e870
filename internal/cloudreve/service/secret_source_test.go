package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	"github.com/ablecats/filestream/internal/config"
	apperrors "github.com/ablecats/filestream/internal/errors"
)

// testKeyURI is a fixed 32-byte base64key for offline keeper tests.
const testKeyURI = "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

func encryptForTest(t *testing.T, keyURI, plaintext string) string {
	t.Helper()
	ctx := context.Background()

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	require.NoError(t, err)
	defer func() { _ = keeper.Close() }()

	ciphertext, err := keeper.Encrypt(ctx, []byte(plaintext))
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(ciphertext)
}

func TestResolvePassword(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("Success_PlainPassword", func(t *testing.T) {
		cfg := &config.Config{CloudrevePassword: "plain-secret"}

		password, err := ResolvePassword(ctx, cfg)

		require.NoError(t, err)
		assert.Equal(t, "plain-secret", password)
	})

	t.Run("Success_EncryptedPassword", func(t *testing.T) {
		cfg := &config.Config{
			CloudrevePasswordEncrypted: encryptForTest(t, testKeyURI, "kms-secret"),
			KMSKeyURI:                  testKeyURI,
		}

		password, err := ResolvePassword(ctx, cfg)

		require.NoError(t, err)
		assert.Equal(t, "kms-secret", password)
	})

	t.Run("Error_MissingKeyURI", func(t *testing.T) {
		cfg := &config.Config{CloudrevePasswordEncrypted: "aGVsbG8="}

		_, err := ResolvePassword(ctx, cfg)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	})

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		cfg := &config.Config{
			CloudrevePasswordEncrypted: "%%%not-base64%%%",
			KMSKeyURI:                  testKeyURI,
		}

		_, err := ResolvePassword(ctx, cfg)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	})

	t.Run("Error_WrongCiphertext", func(t *testing.T) {
		cfg := &config.Config{
			CloudrevePasswordEncrypted: base64.StdEncoding.EncodeToString([]byte("garbage")),
			KMSKeyURI:                  testKeyURI,
		}

		_, err := ResolvePassword(ctx, cfg)

		assert.Error(t, err)
	})
}
