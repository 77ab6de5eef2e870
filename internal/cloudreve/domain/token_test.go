package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochSecondsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want EpochSeconds
	}{
		{"second integer", `1700000000`, 1700000000},
		{"millisecond integer", `1700000000000`, 1700000000},
		{"decimal string", `"1700000000"`, 1700000000},
		{"millisecond decimal string", `"1700000000000"`, 1700000000},
		{"iso8601 with offset", `"2023-11-14T22:13:20Z"`, 1700000000},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage string", `"not a time"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got EpochSeconds
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenNeedsRefresh(t *testing.T) {
	now := time.Now()

	t.Run("NearExpiryWithinSkew", func(t *testing.T) {
		token := &Token{
			AccessToken:   "token",
			AccessExpires: EpochSeconds(now.Add(30 * time.Second).Unix()),
		}
		assert.True(t, token.NeedsRefresh(now, time.Minute))
	})

	t.Run("FarFromExpiry", func(t *testing.T) {
		token := &Token{
			AccessToken:   "token",
			AccessExpires: EpochSeconds(now.Add(time.Hour).Unix()),
		}
		assert.False(t, token.NeedsRefresh(now, time.Minute))
	})

	t.Run("UnknownExpiryAlwaysValid", func(t *testing.T) {
		token := &Token{AccessToken: "token"}
		assert.False(t, token.NeedsRefresh(now, time.Minute))
	})

	t.Run("NegativeSkewClampedToZero", func(t *testing.T) {
		token := &Token{
			AccessToken:   "token",
			AccessExpires: EpochSeconds(now.Add(30 * time.Second).Unix()),
		}
		assert.False(t, token.NeedsRefresh(now, -time.Hour))
	})
}

func TestTokenRefreshUsable(t *testing.T) {
	now := time.Now()

	t.Run("NoRefreshToken", func(t *testing.T) {
		token := &Token{AccessToken: "token"}
		assert.False(t, token.RefreshUsable(now))
	})

	t.Run("UnknownRefreshExpiry", func(t *testing.T) {
		token := &Token{AccessToken: "token", RefreshToken: "refresh"}
		assert.True(t, token.RefreshUsable(now))
	})

	t.Run("ExpiredRefreshToken", func(t *testing.T) {
		token := &Token{
			AccessToken:    "token",
			RefreshToken:   "refresh",
			RefreshExpires: EpochSeconds(now.Add(-time.Minute).Unix()),
		}
		assert.False(t, token.RefreshUsable(now))
	})
}

func TestEnvelopeExtractToken(t *testing.T) {
	t.Run("TokenUnderDataToken", func(t *testing.T) {
		env := &Envelope{
			Data: json.RawMessage(`{"token":{"access_token":"abc","refresh_token":"def"}}`),
		}
		token, err := env.ExtractToken()
		require.NoError(t, err)
		assert.Equal(t, "abc", token.AccessToken)
		assert.Equal(t, "def", token.RefreshToken)
	})

	t.Run("TokenAtDataDirectly", func(t *testing.T) {
		env := &Envelope{
			Data: json.RawMessage(`{"access_token":"abc","access_expires":"2023-11-14T22:13:20Z"}`),
		}
		token, err := env.ExtractToken()
		require.NoError(t, err)
		assert.Equal(t, "abc", token.AccessToken)
		assert.Equal(t, EpochSeconds(1700000000), token.AccessExpires)
	})

	t.Run("MissingAccessToken", func(t *testing.T) {
		env := &Envelope{Data: json.RawMessage(`{"token":{"refresh_token":"def"}}`)}
		_, err := env.ExtractToken()
		assert.Error(t, err)
	})

	t.Run("EmptyData", func(t *testing.T) {
		env := &Envelope{}
		_, err := env.ExtractToken()
		assert.Error(t, err)
	})
}

func TestEnvelopeOk(t *testing.T) {
	env := &Envelope{Code: 0}
	assert.True(t, env.Ok(0))
	assert.False(t, env.Ok(200))
}
